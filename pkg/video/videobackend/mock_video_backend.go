package videobackend

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/tauraamui/dragonframes/pkg/video/videoframe"
	"github.com/tauraamui/dragonframes/pkg/video/videosource"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	mockFPS    = 30
	mockWidth  = 600
	mockHeight = 400
)

type mockVideoBackend struct {
	frames int
}

func (b *mockVideoBackend) Open(cancel context.Context, path string) (videosource.Source, error) {
	if err := cancel.Err(); err != nil {
		return nil, xerror.Errorf("opening %s cancelled: %w", path, err)
	}
	return &mockVideoSource{title: path, frames: b.frames}, nil
}

func (b *mockVideoBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

type mockVideoSource struct {
	title                   string
	frames                  int
	read                    int
	closed                  bool
	renderedBaseFrameCanvas bool
	baseFrameCanvas         image.Image
}

func (s *mockVideoSource) Properties() videosource.Properties {
	return videosource.Properties{
		FPS:        mockFPS,
		FrameCount: s.frames,
		Width:      mockWidth,
		Height:     mockHeight,
	}
}

func (s *mockVideoSource) Read(frame videoframe.Frame) error {
	frameMatRef, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame to mock source read")
	}

	if s.closed {
		return xerror.New("video source is closed")
	}

	if s.read >= s.frames {
		return xerror.New("end of mock video stream")
	}

	if !s.renderedBaseFrameCanvas {
		s.baseFrameCanvas = renderBaseFrameCanvas()
		s.renderedBaseFrameCanvas = true
	}

	img, err := drawTextLayerOntoBaseFrameClone(
		s.baseFrameCanvas, s.title, fmt.Sprintf("FRAME %05d", s.read),
	)
	if err != nil {
		return err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return xerror.Errorf("unable to convert Go image into OpenCV mat: %w", err)
	}
	defer mat.Close()

	mat.CopyTo(frameMatRef)
	s.read++

	return nil
}

func (s *mockVideoSource) Close() error {
	s.closed = true
	s.renderedBaseFrameCanvas = false
	s.baseFrameCanvas = nil
	return nil
}

func drawTextLayerOntoBaseFrameClone(base image.Image, title, label string) (image.Image, error) {
	baseClone := cloneImage(base)
	if err := drawText(baseClone, 5, 50, "DF_MOCK_SOURCE"); err != nil {
		return nil, xerror.Errorf("unable to draw text onto in-mem image for mock source: %w", err)
	}

	if err := drawText(baseClone, 5, 180, label); err != nil {
		return nil, xerror.Errorf("unable to draw text onto in-mem image for mock source: %w", err)
	}

	if err := drawText(baseClone, 5, 310, title); err != nil {
		return nil, xerror.Errorf("unable to draw text onto in-mem image for mock source: %w", err)
	}
	return baseClone, nil
}

func renderBaseFrameCanvas() image.Image {
	var w, h int = mockWidth, mockHeight
	var hw, hh float64 = float64(w / 2), float64(h / 2)
	r := 200.0
	θ := 2 * math.Pi / 3
	cr := &circle{hw - r*math.Sin(0), hh - r*math.Cos(0), 300}
	cg := &circle{hw - r*math.Sin(θ), hh - r*math.Cos(θ), 300}
	cb := &circle{hw - r*math.Sin(-θ), hh - r*math.Cos(-θ), 300}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{
				cr.Brightness(float64(x), float64(y)),
				cg.Brightness(float64(x), float64(y)),
				cb.Brightness(float64(x), float64(y)),
				255,
			})
		}
	}
	return img
}

func cloneImage(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

func drawText(canvas *image.RGBA, x, y int, text string) error {
	fontFace, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return err
	}
	fontDrawer := &font.Drawer{
		Dst: canvas,
		Src: image.White,
		Face: truetype.NewFace(fontFace, &truetype.Options{
			Size:    48,
			Hinting: font.HintingFull,
		}),
	}
	textBounds, _ := fontDrawer.BoundString(text)
	textHeight := textBounds.Max.Y - textBounds.Min.Y
	yPosition := fixed.I((y)-textHeight.Ceil())/2 + fixed.I(textHeight.Ceil())
	fontDrawer.Dot = fixed.Point26_6{
		X: fixed.I(x),
		Y: yPosition,
	}
	fontDrawer.DrawString(text)
	return nil
}

type circle struct {
	X, Y, R float64
}

func (c *circle) Brightness(x, y float64) uint8 {
	var dx, dy float64 = c.X - x, c.Y - y
	if math.Sqrt(dx*dx+dy*dy)/c.R > 1 {
		return 0
	}
	return 255
}
