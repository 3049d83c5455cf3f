// Package mocks provides hand-written mock implementations of the ports
// interfaces for testing.
package mocks

import (
	"github.com/user/vidsz/pkg/ports"
)

// Capture is a mock implementation of ports.Capture.
type Capture struct {
	OpenFunc func(source string) (ports.CaptureStream, error)

	// Stream is returned by Open when OpenFunc is nil.
	Stream *CaptureStream

	// Recorded calls for verification
	OpenCalls []string
}

func (m *Capture) Name() string { return "mock" }

func (m *Capture) Open(source string) (ports.CaptureStream, error) {
	m.OpenCalls = append(m.OpenCalls, source)
	if m.OpenFunc != nil {
		return m.OpenFunc(source)
	}
	return m.Stream, nil
}

var _ ports.Capture = (*Capture)(nil)

// CaptureStream is a mock implementation of ports.CaptureStream backed by
// a fixed queue of frames.
type CaptureStream struct {
	Frames       []ports.Frame
	FrameWidth   int
	FrameHeight  int
	FrameRate    float64
	ReadNextFunc func() (ports.Frame, bool)

	// Recorded state for verification
	ReadCalls    int
	ReleaseCalls int
	Closed       bool

	next int
}

// NewCaptureStream builds a stream that yields count frames of the given
// dimensions. Every byte of frame i has the value i+1 so tests can tell
// real frames from zero padding.
func NewCaptureStream(count, width, height int, fps float64) *CaptureStream {
	frames := make([]ports.Frame, count)
	for i := range frames {
		f := ports.NewFrame(width, height)
		for j := range f.Data {
			f.Data[j] = byte(i + 1)
		}
		frames[i] = f
	}
	return &CaptureStream{
		Frames:      frames,
		FrameWidth:  width,
		FrameHeight: height,
		FrameRate:   fps,
	}
}

func (m *CaptureStream) ReadNext() (ports.Frame, bool) {
	m.ReadCalls++
	if m.ReadNextFunc != nil {
		return m.ReadNextFunc()
	}
	if m.Closed || m.next >= len(m.Frames) {
		return ports.Frame{}, false
	}
	frame := m.Frames[m.next].Clone()
	m.next++
	return frame, true
}

func (m *CaptureStream) IsOpened() bool { return !m.Closed }

func (m *CaptureStream) Width() int { return m.FrameWidth }

func (m *CaptureStream) Height() int { return m.FrameHeight }

func (m *CaptureStream) FPS() float64 { return m.FrameRate }

func (m *CaptureStream) Release() error {
	m.ReleaseCalls++
	m.Closed = true
	return nil
}

var _ ports.CaptureStream = (*CaptureStream)(nil)
