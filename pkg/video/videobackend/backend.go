package videobackend

import (
	"context"

	"github.com/tauraamui/dragonframes/pkg/video/videoframe"
	"github.com/tauraamui/dragonframes/pkg/video/videosource"
)

const DefaultMockFrameCount = 90

type Backend interface {
	Open(context.Context, string) (videosource.Source, error)
	NewFrame() videoframe.Frame
}

func Default() Backend {
	return OpenCV()
}

func OpenCV() Backend {
	return &openCVBackend{}
}

// Mock returns a backend whose sources ignore the given path and
// yield the given number of generated frames.
func Mock(frames int) Backend {
	if frames < 0 {
		frames = 0
	}
	return &mockVideoBackend{frames: frames}
}

func Resolve(t string, mockFrames int) Backend {
	switch t {
	case "mock":
		return Mock(mockFrames)
	default:
		return Default()
	}
}
