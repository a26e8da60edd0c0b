package videobackend

import (
	"context"
	"sync"

	"github.com/tauraamui/dragonframes/pkg/log"
	"github.com/tauraamui/dragonframes/pkg/video/videoframe"
	"github.com/tauraamui/dragonframes/pkg/video/videosource"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

type openCVFrame struct {
	isClosed bool
	mat      gocv.Mat
}

func (frame *openCVFrame) DataRef() interface{} {
	return &frame.mat
}

func (frame *openCVFrame) Dimensions() videoframe.Dimensions {
	return videoframe.Dimensions{W: frame.mat.Cols(), H: frame.mat.Rows()}
}

func (frame *openCVFrame) EncodeJPEG(quality int) ([]byte, error) {
	if frame.isClosed || frame.mat.Empty() {
		return nil, xerror.New("cannot encode empty frame")
	}
	return encodeJPEG(frame.mat, quality)
}

var encodeJPEG = func(mat gocv.Mat, quality int) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{int(gocv.IMWriteJpegQuality), quality})
	if err != nil {
		return nil, xerror.Errorf("unable to encode frame as jpeg: %w", err)
	}
	defer buf.Close()

	// buffer memory belongs to OpenCV and is freed on close
	b := buf.GetBytes()
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (frame *openCVFrame) Close() {
	if !frame.isClosed {
		frame.mat.Close()
		frame.isClosed = true
	}
}

type openCVBackend struct{}

func (b *openCVBackend) Open(cancel context.Context, path string) (videosource.Source, error) {
	src := openCVSource{}
	if err := src.open(cancel, path); err != nil {
		return nil, err
	}
	return &src, nil
}

func (b *openCVBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

type openCVSource struct {
	mu     sync.Mutex
	isOpen bool
	vc     *gocv.VideoCapture
}

func (s *openCVSource) open(cancel context.Context, path string) error {
	vcAndError := make(chan openVideoFileResult, 1)
	go openVideoFile(path, vcAndError)
	select {
	case r := <-vcAndError:
		if r.err != nil {
			return xerror.Errorf("%w: %s: %v", videosource.ErrSourceUnavailable, path, r.err)
		}
		s.vc = r.vc
		s.isOpen = true
		return nil
	case <-cancel.Done():
		go releaseAbandonedCapture(vcAndError)
		return xerror.Errorf("opening %s cancelled: %w", path, cancel.Err())
	}
}

// releaseAbandonedCapture waits for an open nobody is waiting on any
// more and closes whatever capture it produced.
func releaseAbandonedCapture(d chan openVideoFileResult) {
	r := <-d
	if r.err == nil && r.vc != nil {
		if err := closeVideoCapture(r.vc); err != nil {
			log.Warn("unable to close abandoned video capture: %s", err.Error())
		}
	}
}

type openVideoFileResult struct {
	vc  *gocv.VideoCapture
	err error
}

func openVideoFile(path string, d chan openVideoFileResult) {
	vc, err := openVideoCapture(path)
	d <- openVideoFileResult{vc: vc, err: err}
}

var openVideoCapture = func(path string) (*gocv.VideoCapture, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, err
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, xerror.New("video capture did not open")
	}
	return vc, nil
}

var closeVideoCapture = func(vc *gocv.VideoCapture) error {
	return vc.Close()
}

var readFromVideoCapture = func(vc *gocv.VideoCapture, mat *gocv.Mat) bool {
	if vc.IsOpened() {
		return vc.Read(mat) && !mat.Empty()
	}
	return false
}

var videoCaptureProperty = func(vc *gocv.VideoCapture, prop gocv.VideoCaptureProperties) int {
	return int(vc.Get(prop))
}

func (s *openCVSource) Properties() videosource.Properties {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isOpen {
		return videosource.Properties{}
	}
	return videosource.Properties{
		FPS:        videoCaptureProperty(s.vc, gocv.VideoCaptureFPS),
		FrameCount: videoCaptureProperty(s.vc, gocv.VideoCaptureFrameCount),
		Width:      videoCaptureProperty(s.vc, gocv.VideoCaptureFrameWidth),
		Height:     videoCaptureProperty(s.vc, gocv.VideoCaptureFrameHeight),
	}
}

func (s *openCVSource) Read(frame videoframe.Frame) error {
	mat, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame to OpenCV source read")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isOpen {
		return xerror.New("video source is closed")
	}
	if !readFromVideoCapture(s.vc, mat) {
		return xerror.New("unable to read from video source")
	}
	return nil
}

func (s *openCVSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isOpen {
		return nil
	}
	s.isOpen = false
	return closeVideoCapture(s.vc)
}
