// Package runner wires configuration values to the extract and rename
// passes, records each run in the ledger when enabled and prints the
// operator facing summary.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tauraamui/dragonframes/pkg/configdef"
	"github.com/tauraamui/dragonframes/pkg/database"
	"github.com/tauraamui/dragonframes/pkg/database/models"
	"github.com/tauraamui/dragonframes/pkg/extract"
	"github.com/tauraamui/dragonframes/pkg/framefile"
	"github.com/tauraamui/dragonframes/pkg/log"
	"github.com/tauraamui/dragonframes/pkg/rename"
	"github.com/tauraamui/dragonframes/pkg/video/videobackend"
)

var out io.Writer = os.Stdout

var resolveBackend = func(kind string, mockFrames int) extract.Backend {
	return videobackend.Resolve(kind, mockFrames)
}

var recordRun = database.Record

func Extract(ctx context.Context, values configdef.Values) (extract.Result, error) {
	backend := resolveBackend(values.VideoBackend, values.Extract.MockFrameCount)
	result, err := extract.Extract(ctx, backend, extract.Config{
		VideoPath:   values.Extract.VideoPath,
		OutputDir:   values.Extract.OutputDir,
		FramePrefix: values.Extract.FramePrefix,
	})

	record(values, &models.Run{
		Kind:   models.KindExtract,
		Source: values.Extract.VideoPath,
		Target: values.Extract.OutputDir,
		Count:  result.Extracted,
	}, err)

	if err != nil {
		return result, err
	}

	printf("\nFrames saved in: %s\n", result.OutputDir)
	printf("Frame naming: %s\n", result.Pattern)
	printf("\nUsage with the segmentation model:\n")
	printf("   video_dir = \"%s\"\n", result.OutputDir)
	printf("   # instead of the video file path\n")
	if len(values.Extract.FramePrefix) > 0 {
		printf("   # run renameframes with prefix %q first to get %s\n",
			values.Extract.FramePrefix, framefile.Pattern(""))
	}

	return result, nil
}

func Rename(ctx context.Context, values configdef.Values) (rename.Result, error) {
	if err := ctx.Err(); err != nil {
		return rename.Result{FramesDir: values.Rename.FramesDir}, err
	}

	result, err := rename.Rename(rename.Config{
		FramesDir: values.Rename.FramesDir,
		Prefix:    values.Rename.Prefix,
	})

	record(values, &models.Run{
		Kind:   models.KindRename,
		Source: values.Rename.FramesDir,
		Target: values.Rename.FramesDir,
		Count:  result.Renamed,
	}, err)

	if err != nil {
		return result, err
	}

	if result.Renamed > 0 {
		printf("\nNow you can use the segmentation model with:\n")
		printf("   video_dir = \"%s\"\n", result.FramesDir)
		printf("   # it will find files: %s\n", framefile.Pattern(""))
	}

	return result, nil
}

func record(values configdef.Values, run *models.Run, runErr error) {
	if !values.RecordRuns {
		return
	}

	if runErr != nil {
		run.Failed = true
		run.ErrorMsg = runErr.Error()
	}

	if err := recordRun(values.DatabasePath, run); err != nil {
		log.Warn("unable to record %s run: %s", run.Kind, err.Error())
	}
}

func printf(format string, a ...interface{}) {
	if log.Silent() {
		return
	}
	fmt.Fprintf(out, format, a...)
}
