package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/dragonframes/pkg/framefile"
	"github.com/tauraamui/dragonframes/pkg/log"
	"github.com/tauraamui/dragonframes/pkg/video/videoframe"
	"github.com/tauraamui/dragonframes/pkg/video/videosource"
	"github.com/tauraamui/xerror"
)

const (
	JPEGQuality      = 95
	ProgressInterval = 30
)

var ErrInvalidConfig = xerror.New("invalid extraction config")

var fs = afero.NewOsFs()

// Backend opens video sources and allocates the frame buffer they
// decode into.
type Backend interface {
	Open(context.Context, string) (videosource.Source, error)
	NewFrame() videoframe.Frame
}

type Config struct {
	VideoPath string
	OutputDir string
	// FramePrefix, when set, is prepended to every output filename
	// as "<prefix>_00000.jpg".
	FramePrefix string
}

type Result struct {
	Properties videosource.Properties
	Extracted  int
	OutputDir  string
	Pattern    string
}

// Extract decodes every frame the source yields and writes each one as
// a JPEG into the output directory, named by its zero based position in
// decode order. A failed read ends the pass; it is not reported as an
// error. On error the returned result still counts the frames already
// written, and those files are left in place.
func Extract(ctx context.Context, backend Backend, cfg Config) (Result, error) {
	result := Result{OutputDir: cfg.OutputDir, Pattern: framefile.Pattern(cfg.FramePrefix)}

	if len(cfg.VideoPath) == 0 {
		return result, xerror.Errorf("%w: video path is required", ErrInvalidConfig)
	}
	if len(cfg.OutputDir) == 0 {
		return result, xerror.Errorf("%w: output directory is required", ErrInvalidConfig)
	}

	if err := ensureDirectoryPathExists(cfg.OutputDir); err != nil {
		return result, xerror.Errorf("unable to create output directory %s: %w", cfg.OutputDir, err)
	}

	src, err := backend.Open(ctx, cfg.VideoPath)
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, videosource.ErrSourceUnavailable) {
			err = xerror.Errorf("%w: %s: %v", videosource.ErrSourceUnavailable, cfg.VideoPath, err)
		}
		return result, err
	}
	defer closeSource(src)

	result.Properties = src.Properties()
	logProperties(cfg, result.Properties)

	frame := backend.NewFrame()
	defer frame.Close()

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := src.Read(frame); err != nil {
			log.Debug("Stopped reading from %s: %s", cfg.VideoPath, err.Error())
			break
		}

		if err := writeFrame(frame, cfg.OutputDir, framefile.Name(cfg.FramePrefix, result.Extracted)); err != nil {
			return result, err
		}
		result.Extracted++

		if result.Extracted%ProgressInterval == 0 {
			log.Info("Extracted %d/%d frames (%s)", result.Extracted, result.Properties.FrameCount,
				percentage(result.Extracted, result.Properties.FrameCount))
		}
	}

	log.Info("Successfully extracted %d frames into %s", result.Extracted, cfg.OutputDir)
	log.Info("Frame naming: %s", result.Pattern)

	return result, nil
}

func writeFrame(frame videoframe.Frame, dir, name string) error {
	data, err := frame.EncodeJPEG(JPEGQuality)
	if err != nil {
		return xerror.Errorf("unable to encode frame %s: %w", name, err)
	}

	path := filepath.Join(dir, name)
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return xerror.Errorf("unable to write frame %s: %w", path, err)
	}
	return nil
}

func ensureDirectoryPathExists(path string) error {
	if exists, _ := afero.DirExists(fs, path); exists {
		return nil
	}
	err := fs.MkdirAll(path, os.ModePerm|os.ModeDir)
	if err == nil || os.IsExist(err) {
		return nil
	}
	return err
}

func closeSource(src videosource.Source) {
	if err := src.Close(); err != nil {
		log.Warn("unable to close video source: %s", err.Error())
	}
}

func logProperties(cfg Config, props videosource.Properties) {
	log.Info("Video: %s", cfg.VideoPath)
	log.Info("Properties: %dx%d, %d FPS, %d frames", props.Width, props.Height, props.FPS, props.FrameCount)
	log.Info("Output directory: %s", cfg.OutputDir)
	log.Info("Extracting frames...")
}

// percentage is against the reported total, so it can pass 100%
// when the container under reports its frame count.
func percentage(n, total int) string {
	if total <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
