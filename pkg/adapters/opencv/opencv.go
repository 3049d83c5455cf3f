// Package opencv implements the capture and sink ports on top of OpenCV
// through gocv.
package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/user/vidsz/pkg/ports"
)

// Backend opens OpenCV capture and writer handles. It implements both
// ports.Capture and ports.SinkOpener.
type Backend struct{}

// New creates the OpenCV backend.
func New() *Backend {
	return &Backend{}
}

// Name identifies the backend.
func (b *Backend) Name() string {
	return "opencv"
}

// Open acquires a VideoCapture for the source. gocv resolves all-digit
// strings to device indices, so webcams and files share one entry point.
func (b *Backend) Open(source string) (ports.CaptureStream, error) {
	cap, err := gocv.OpenVideoCapture(source)
	if err != nil {
		return nil, fmt.Errorf("open video capture: %w", err)
	}
	return &captureStream{cap: cap, mat: gocv.NewMat()}, nil
}

// Create acquires a VideoWriter for the path with the given codec tag.
func (b *Backend) Create(path, codec string, fps float64, width, height int) (ports.SinkStream, error) {
	vw, err := gocv.VideoWriterFile(path, codec, fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("open video writer: %w", err)
	}
	return &sinkStream{vw: vw}, nil
}

var (
	_ ports.Capture    = (*Backend)(nil)
	_ ports.SinkOpener = (*Backend)(nil)
)

type captureStream struct {
	cap      *gocv.VideoCapture
	mat      gocv.Mat
	released bool
}

func (s *captureStream) ReadNext() (ports.Frame, bool) {
	if s.released {
		return ports.Frame{}, false
	}
	if ok := s.cap.Read(&s.mat); !ok || s.mat.Empty() {
		return ports.Frame{}, false
	}
	// ToBytes copies out of the Mat, so the frame stays valid after the
	// next read reuses the buffer.
	return ports.Frame{
		Data:   s.mat.ToBytes(),
		Width:  s.mat.Cols(),
		Height: s.mat.Rows(),
	}, true
}

func (s *captureStream) IsOpened() bool {
	return !s.released && s.cap.IsOpened()
}

func (s *captureStream) Width() int {
	return int(s.cap.Get(gocv.VideoCaptureFrameWidth))
}

func (s *captureStream) Height() int {
	return int(s.cap.Get(gocv.VideoCaptureFrameHeight))
}

func (s *captureStream) FPS() float64 {
	return s.cap.Get(gocv.VideoCaptureFPS)
}

func (s *captureStream) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	if err := s.mat.Close(); err != nil {
		return fmt.Errorf("close mat: %w", err)
	}
	if err := s.cap.Close(); err != nil {
		return fmt.Errorf("close capture: %w", err)
	}
	return nil
}

type sinkStream struct {
	vw       *gocv.VideoWriter
	released bool
}

func (s *sinkStream) Write(frame ports.Frame) error {
	mat, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Data)
	if err != nil {
		return fmt.Errorf("wrap frame: %w", err)
	}
	defer mat.Close()
	if err := s.vw.Write(mat); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}

func (s *sinkStream) IsOpened() bool {
	return !s.released && s.vw.IsOpened()
}

func (s *sinkStream) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	if err := s.vw.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return nil
}
