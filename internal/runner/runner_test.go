package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"
	"github.com/tauraamui/dragonframes/internal/runner"
	"github.com/tauraamui/dragonframes/pkg/configdef"
	"github.com/tauraamui/dragonframes/pkg/database/models"
	"github.com/tauraamui/dragonframes/pkg/extract"
	"github.com/tauraamui/dragonframes/pkg/rename"
	"github.com/tauraamui/dragonframes/pkg/video/videoframe"
	"github.com/tauraamui/dragonframes/pkg/video/videosource"
	"github.com/tauraamui/xerror"
)

type stubFrame struct{}

func (f *stubFrame) DataRef() interface{} { return nil }

func (f *stubFrame) Dimensions() videoframe.Dimensions { return videoframe.Dimensions{W: 2, H: 2} }

func (f *stubFrame) EncodeJPEG(int) ([]byte, error) { return []byte{0xFF, 0xD8}, nil }

func (f *stubFrame) Close() {}

type stubSource struct {
	frames int
}

func (s *stubSource) Properties() videosource.Properties {
	return videosource.Properties{FPS: 30, FrameCount: s.frames, Width: 2, Height: 2}
}

func (s *stubSource) Read(videoframe.Frame) error {
	if s.frames == 0 {
		return xerror.New("end of stream")
	}
	s.frames--
	return nil
}

func (s *stubSource) Close() error { return nil }

type stubBackend struct {
	frames  int
	openErr error
}

func (b *stubBackend) Open(context.Context, string) (videosource.Source, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	return &stubSource{frames: b.frames}, nil
}

func (b *stubBackend) NewFrame() videoframe.Frame { return &stubFrame{} }

func setup(t *testing.T, backend extract.Backend) (*bytes.Buffer, *[]models.Run) {
	var buf bytes.Buffer
	t.Cleanup(runner.OverloadOut(&buf))

	var kinds []string
	t.Cleanup(runner.OverloadResolveBackend(func(kind string, mockFrames int) extract.Backend {
		kinds = append(kinds, kind)
		return backend
	}))

	var recorded []models.Run
	t.Cleanup(runner.OverloadRecordRun(func(path string, run *models.Run) error {
		recorded = append(recorded, *run)
		return nil
	}))
	return &buf, &recorded
}

func TestExtractPrintsUsageHintAndRecordsRun(t *testing.T) {
	is := is.New(t)
	buf, recorded := setup(t, &stubBackend{frames: 3})
	outputDir := filepath.Join(t.TempDir(), "frames")

	result, err := runner.Extract(context.TODO(), configdef.Values{
		RecordRuns: true,
		Extract:    configdef.Extract{VideoPath: "clip.mp4", OutputDir: outputDir},
	})
	is.NoErr(err)
	is.Equal(result.Extracted, 3)

	is.True(strings.Contains(buf.String(), "video_dir = \""+outputDir+"\""))
	is.True(strings.Contains(buf.String(), "Frame naming: 00000.jpg, 00001.jpg, ..."))

	is.Equal(len(*recorded), 1)
	run := (*recorded)[0]
	is.Equal(run.Kind, models.KindExtract)
	is.Equal(run.Count, 3)
	is.True(!run.Failed)
}

func TestExtractFailureIsRecordedAndReturned(t *testing.T) {
	is := is.New(t)
	buf, recorded := setup(t, &stubBackend{openErr: xerror.New("no such file")})

	_, err := runner.Extract(context.TODO(), configdef.Values{
		RecordRuns: true,
		Extract:    configdef.Extract{VideoPath: "missing.mp4", OutputDir: filepath.Join(t.TempDir(), "frames")},
	})
	is.True(errors.Is(err, videosource.ErrSourceUnavailable))
	is.Equal(buf.Len(), 0)

	is.Equal(len(*recorded), 1)
	is.True((*recorded)[0].Failed)
	is.Equal((*recorded)[0].ErrorMsg, err.Error())
}

func TestExtractDoesNotRecordWhenDisabled(t *testing.T) {
	is := is.New(t)
	_, recorded := setup(t, &stubBackend{frames: 1})

	_, err := runner.Extract(context.TODO(), configdef.Values{
		Extract: configdef.Extract{VideoPath: "clip.mp4", OutputDir: filepath.Join(t.TempDir(), "frames")},
	})
	is.NoErr(err)
	is.Equal(len(*recorded), 0)
}

func TestExtractWithPrefixThenRename(t *testing.T) {
	is := is.New(t)
	buf, _ := setup(t, &stubBackend{frames: 2})
	outputDir := filepath.Join(t.TempDir(), "frames")

	_, err := runner.Extract(context.TODO(), configdef.Values{
		Extract: configdef.Extract{VideoPath: "clip.mp4", OutputDir: outputDir, FramePrefix: "frame"},
	})
	is.NoErr(err)
	is.True(strings.Contains(buf.String(), "Frame naming: frame_00000.jpg, frame_00001.jpg, ..."))

	result, err := runner.Rename(context.TODO(), configdef.Values{
		Rename: configdef.Rename{FramesDir: outputDir, Prefix: "frame"},
	})
	is.NoErr(err)
	is.Equal(result.Renamed, 2)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	is.Equal(names, []string{"00000.jpg", "00001.jpg"})
}

func TestRenameMissingDirectoryIsRecorded(t *testing.T) {
	is := is.New(t)
	_, recorded := setup(t, &stubBackend{})

	_, err := runner.Rename(context.TODO(), configdef.Values{
		RecordRuns: true,
		Rename:     configdef.Rename{FramesDir: filepath.Join(t.TempDir(), "nope")},
	})
	is.True(errors.Is(err, rename.ErrDirectoryMissing))
	is.Equal(len(*recorded), 1)
	is.Equal((*recorded)[0].Kind, models.KindRename)
	is.True((*recorded)[0].Failed)
}

func TestRenameWithCancelledContextDoesNothing(t *testing.T) {
	is := is.New(t)
	setup(t, &stubBackend{})
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frame_00000.jpg"), []byte("x"), 0644))

	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	_, err := runner.Rename(ctx, configdef.Values{Rename: configdef.Rename{FramesDir: dir}})
	is.True(errors.Is(err, context.Canceled))
	_, err = os.Stat(filepath.Join(dir, "frame_00000.jpg"))
	is.NoErr(err)
}
