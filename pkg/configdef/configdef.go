package configdef

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tauraamui/dragonframes/pkg/framefile"
	"gopkg.in/dealancer/validate.v2"
)

const (
	BackendOpenCV = "opencv"
	BackendMock   = "mock"
)

type Extract struct {
	VideoPath      string `json:"video_path"`
	OutputDir      string `json:"output_dir"`
	FramePrefix    string `json:"frame_prefix"`
	MockFrameCount int    `json:"mock_frame_count" validate:"gte=0 & lte=100000"`
}

type Rename struct {
	FramesDir string `json:"frames_dir"`
	Prefix    string `json:"prefix"`
}

type Values struct {
	Debug        bool    `json:"debug"`
	VideoBackend string  `json:"video_backend"`
	RecordRuns   bool    `json:"record_runs"`
	DatabasePath string  `json:"database_path"`
	Extract      Extract `json:"extract"`
	Rename       Rename  `json:"rename"`
}

func (v Values) RunValidate() error {
	if err := validate.Validate(&v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	switch v.VideoBackend {
	case "", BackendOpenCV, BackendMock:
	default:
		return fmt.Errorf(validationErrorHeader, fmt.Errorf("unknown video backend %q", v.VideoBackend))
	}
	if hasPathSeparator(v.Extract.FramePrefix) || hasPathSeparator(v.Rename.Prefix) {
		return fmt.Errorf(validationErrorHeader, errors.New("frame prefixes must not contain path separators"))
	}
	if framefile.HasGlobMeta(v.Extract.FramePrefix) || framefile.HasGlobMeta(v.Rename.Prefix) {
		return fmt.Errorf(validationErrorHeader, errors.New("frame prefixes must not contain any of *?[\\"))
	}
	return nil
}

func hasPathSeparator(s string) bool {
	return strings.ContainsAny(s, `/\`)
}
