package runner

import (
	"io"

	"github.com/tauraamui/dragonframes/pkg/database/models"
	"github.com/tauraamui/dragonframes/pkg/extract"
)

func OverloadOut(overload io.Writer) func() {
	outRef := out
	out = overload
	return func() { out = outRef }
}

func OverloadResolveBackend(overload func(kind string, mockFrames int) extract.Backend) func() {
	resolveBackendRef := resolveBackend
	resolveBackend = overload
	return func() { resolveBackend = resolveBackendRef }
}

func OverloadRecordRun(overload func(path string, run *models.Run) error) func() {
	recordRunRef := recordRun
	recordRun = overload
	return func() { recordRun = recordRunRef }
}
