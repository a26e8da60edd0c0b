package videosource

import (
	"github.com/tauraamui/dragonframes/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

var ErrSourceUnavailable = xerror.New("unable to open video source")

// Properties are as reported by the container. They are informational,
// nothing guarantees FrameCount matches the number of decodable frames.
type Properties struct {
	FPS        int
	FrameCount int
	Width      int
	Height     int
}

type Source interface {
	Properties() Properties
	// Read decodes the next frame into the given frame. Any error means
	// no further frames can be read, end of stream included.
	Read(videoframe.Frame) error
	Close() error
}
