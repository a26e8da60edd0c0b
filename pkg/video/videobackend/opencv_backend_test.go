package videobackend

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/dragonframes/pkg/video/videoframe"
	"github.com/tauraamui/dragonframes/pkg/video/videosource"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

func overloadOpenVidCap(overload func(path string) (*gocv.VideoCapture, error)) func() {
	openVidCapRef := openVideoCapture
	openVideoCapture = overload
	return func() { openVideoCapture = openVidCapRef }
}

func overloadCloseVidCap(overload func(vc *gocv.VideoCapture) error) func() {
	closeVidCapRef := closeVideoCapture
	closeVideoCapture = overload
	return func() { closeVideoCapture = closeVidCapRef }
}

func overloadEncodeJPEG(overload func(mat gocv.Mat, quality int) ([]byte, error)) func() {
	encodeJPEGRef := encodeJPEG
	encodeJPEG = overload
	return func() { encodeJPEG = encodeJPEGRef }
}

func TestOpenWrapsCaptureErrorAsSourceUnavailable(t *testing.T) {
	is := is.New(t)
	resetOpenVidCap := overloadOpenVidCap(
		func(path string) (*gocv.VideoCapture, error) {
			return nil, xerror.New("test open error")
		},
	)
	defer resetOpenVidCap()

	src := openCVSource{}
	err := src.open(context.TODO(), "TestPath.mp4")
	is.True(errors.Is(err, videosource.ErrSourceUnavailable))
	is.Equal(err.Error(), "unable to open video source: TestPath.mp4: test open error")
	is.True(!src.isOpen)
}

func TestOpenWithCancelBeforeCaptureOpens(t *testing.T) {
	is := is.New(t)
	release := make(chan struct{})
	resetOpenVidCap := overloadOpenVidCap(
		func(path string) (*gocv.VideoCapture, error) {
			<-release
			return nil, xerror.New("too late")
		},
	)
	defer resetOpenVidCap()
	defer close(release)

	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	_, err := OpenCV().Open(ctx, "TestPath.mp4")
	is.True(errors.Is(err, context.Canceled))
	is.True(!errors.Is(err, videosource.ErrSourceUnavailable))
}

func TestOpenCancelledClosesCaptureThatOpensLate(t *testing.T) {
	is := is.New(t)
	lateCapture := &gocv.VideoCapture{}
	release := make(chan struct{})
	resetOpenVidCap := overloadOpenVidCap(
		func(path string) (*gocv.VideoCapture, error) {
			<-release
			return lateCapture, nil
		},
	)
	defer resetOpenVidCap()

	closed := make(chan *gocv.VideoCapture, 1)
	resetCloseVidCap := overloadCloseVidCap(func(vc *gocv.VideoCapture) error {
		closed <- vc
		return nil
	})
	defer resetCloseVidCap()

	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	src := openCVSource{}
	err := src.open(ctx, "TestPath.mp4")
	is.True(errors.Is(err, context.Canceled))
	is.True(!src.isOpen)

	close(release)
	is.Equal(<-closed, lateCapture)
}

func TestReadRejectsNonOpenCVFrame(t *testing.T) {
	is := is.New(t)
	src := openCVSource{isOpen: true}
	err := src.Read(&foreignFrame{})
	is.Equal(err.Error(), "must pass OpenCV frame to OpenCV source read")
}

func TestReadOnClosedSourceFails(t *testing.T) {
	is := is.New(t)
	src := openCVSource{}
	frame := OpenCV().NewFrame()
	defer frame.Close()

	is.Equal(src.Read(frame).Error(), "video source is closed")
	is.Equal(src.Properties(), videosource.Properties{})
	is.NoErr(src.Close())
}

func TestFrameEncodeUsesGivenQuality(t *testing.T) {
	is := is.New(t)
	var gotQuality int
	resetEncode := overloadEncodeJPEG(func(mat gocv.Mat, quality int) ([]byte, error) {
		gotQuality = quality
		return []byte{0xFF, 0xD8}, nil
	})
	defer resetEncode()

	frame := &openCVFrame{mat: gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC3)}
	defer frame.Close()

	data, err := frame.EncodeJPEG(95)
	is.NoErr(err)
	is.Equal(gotQuality, 95)
	is.Equal(data, []byte{0xFF, 0xD8})
}

func TestClosedFrameCannotBeEncoded(t *testing.T) {
	is := is.New(t)
	frame := &openCVFrame{mat: gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC3)}
	frame.Close()
	frame.Close()

	_, err := frame.EncodeJPEG(95)
	is.Equal(err.Error(), "cannot encode empty frame")
}

type foreignFrame struct{}

func (f *foreignFrame) DataRef() interface{} { return nil }

func (f *foreignFrame) Dimensions() videoframe.Dimensions { return videoframe.Dimensions{} }

func (f *foreignFrame) EncodeJPEG(int) ([]byte, error) { return nil, nil }

func (f *foreignFrame) Close() {}
