package mocks

import (
	"github.com/user/vidsz/pkg/ports"
)

// SinkOpener is a mock implementation of ports.SinkOpener.
type SinkOpener struct {
	CreateFunc func(path, codec string, fps float64, width, height int) (ports.SinkStream, error)

	// Stream is returned by Create when CreateFunc is nil. A nil Stream
	// yields a fresh SinkStream per call.
	Stream *SinkStream

	// Recorded calls for verification
	CreateCalls []CreateCall
}

// CreateCall records one call to Create.
type CreateCall struct {
	Path   string
	Codec  string
	FPS    float64
	Width  int
	Height int
}

func (m *SinkOpener) Name() string { return "mock" }

func (m *SinkOpener) Create(path, codec string, fps float64, width, height int) (ports.SinkStream, error) {
	m.CreateCalls = append(m.CreateCalls, CreateCall{
		Path:   path,
		Codec:  codec,
		FPS:    fps,
		Width:  width,
		Height: height,
	})
	if m.CreateFunc != nil {
		return m.CreateFunc(path, codec, fps, width, height)
	}
	if m.Stream != nil {
		return m.Stream, nil
	}
	return &SinkStream{}, nil
}

var _ ports.SinkOpener = (*SinkOpener)(nil)

// SinkStream is a mock implementation of ports.SinkStream that records
// every written frame.
type SinkStream struct {
	WriteFunc func(frame ports.Frame) error

	// Recorded state for verification
	Written      []ports.Frame
	ReleaseCalls int
	Closed       bool
}

func (m *SinkStream) Write(frame ports.Frame) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(frame)
	}
	m.Written = append(m.Written, frame.Clone())
	return nil
}

func (m *SinkStream) IsOpened() bool { return !m.Closed }

func (m *SinkStream) Release() error {
	m.ReleaseCalls++
	m.Closed = true
	return nil
}

var _ ports.SinkStream = (*SinkStream)(nil)
