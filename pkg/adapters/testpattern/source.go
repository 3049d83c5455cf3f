// Package testpattern provides a synthetic capture backend that renders
// numbered gradient frames with the gg library. It lets the CLI and
// examples run without a camera, file, or OpenCV installation.
package testpattern

import (
	"image"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/user/vidsz/pkg/ports"
)

// Backend generates a fixed number of synthetic frames per stream. It
// implements ports.Capture; the source identifier is used only as a
// label.
type Backend struct {
	Count  int
	Width  int
	Height int
	FPS    float64
}

// New creates a pattern backend producing count frames of the given size.
func New(count, width, height int, fps float64) *Backend {
	return &Backend{Count: count, Width: width, Height: height, FPS: fps}
}

// Name identifies the backend.
func (b *Backend) Name() string {
	return "testpattern"
}

// Open starts a new pattern stream. It never fails.
func (b *Backend) Open(source string) (ports.CaptureStream, error) {
	return &stream{backend: b}, nil
}

var _ ports.Capture = (*Backend)(nil)

type stream struct {
	backend  *Backend
	next     int
	released bool
}

func (s *stream) ReadNext() (ports.Frame, bool) {
	if s.released || s.next >= s.backend.Count {
		return ports.Frame{}, false
	}
	frame := render(s.next, s.backend.Width, s.backend.Height)
	s.next++
	return frame, true
}

func (s *stream) IsOpened() bool { return !s.released }

func (s *stream) Width() int { return s.backend.Width }

func (s *stream) Height() int { return s.backend.Height }

func (s *stream) FPS() float64 { return s.backend.FPS }

func (s *stream) Release() error {
	s.released = true
	return nil
}

// render draws frame n: a horizontal gradient whose hue shifts with the
// frame index, plus the index as centered text.
func render(n, width, height int) ports.Frame {
	dc := gg.NewContext(width, height)
	for x := 0; x < width; x++ {
		shade := float64(x) / float64(width)
		dc.SetRGB(shade, 1-shade, float64(n%256)/255)
		dc.DrawRectangle(float64(x), 0, 1, float64(height))
		dc.Fill()
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(
		strconv.Itoa(n),
		float64(width)/2, float64(height)/2,
		0.5, 0.5,
	)
	return fromImage(dc.Image(), width, height)
}

// fromImage converts an RGBA image to a BGR frame buffer.
func fromImage(img image.Image, width, height int) ports.Frame {
	frame := ports.NewFrame(width, height)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			frame.Data[i] = byte(b >> 8)
			frame.Data[i+1] = byte(g >> 8)
			frame.Data[i+2] = byte(r >> 8)
			i += ports.Channels
		}
	}
	return frame
}
