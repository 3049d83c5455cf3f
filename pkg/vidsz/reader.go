// Package vidsz provides a uniform Reader/Writer abstraction over video
// backends: single-frame and batched frame access, explicit idempotent
// lifecycle management, and derived status metrics.
package vidsz

import (
	"fmt"
	"iter"

	"github.com/user/vidsz/pkg/ports"
)

// Reader reads frames one at a time from a capture backend and tracks how
// many frames were successfully obtained.
//
// A Reader owns its stream exclusively and is not safe for concurrent use.
type Reader struct {
	name    string
	backend string
	stream  ports.CaptureStream

	width  int
	height int
	fps    float64

	open       bool
	released   bool
	frameCount int

	log ports.Logger
}

// NewReader opens source through the given backend. The stream is acquired
// eagerly; an unopenable source fails here, not on the first read.
func NewReader(backend ports.Capture, source string, log ports.Logger) (*Reader, error) {
	stream, err := backend.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open source %q: %w", source, err)
	}
	if !stream.IsOpened() {
		stream.Release()
		return nil, fmt.Errorf("open source %q: %w", source, ErrSourceUnavailable)
	}

	r := &Reader{
		name:    source,
		backend: backend.Name(),
		stream:  stream,
		width:   stream.Width(),
		height:  stream.Height(),
		fps:     stream.FPS(),
		open:    true,
		log:     log.WithComponent("reader"),
	}
	r.log.Debug("opened %s (%dx%d @ %g fps)", r.name, r.width, r.height, r.fps)
	return r, nil
}

// Name returns the source identifier the reader was opened with.
func (r *Reader) Name() string { return r.name }

// Width returns the frame width reported by the source at open time.
func (r *Reader) Width() int { return r.width }

// Height returns the frame height reported by the source at open time.
func (r *Reader) Height() int { return r.height }

// FPS returns the frame rate reported by the source, 0 if unknown.
func (r *Reader) FPS() float64 { return r.fps }

// Backend returns the name of the backend serving this reader.
func (r *Reader) Backend() string { return r.backend }

// FrameCount returns the number of frames successfully read so far.
// Attempted reads that hit end-of-stream are not counted.
func (r *Reader) FrameCount() int { return r.frameCount }

// Seconds returns the stream time covered by the frames read so far,
// 0 when the frame rate is unknown.
func (r *Reader) Seconds() float64 {
	if r.fps == 0 {
		return 0
	}
	return float64(r.frameCount) / r.fps
}

// Minutes returns Seconds divided by 60.
func (r *Reader) Minutes() float64 { return r.Seconds() / 60 }

// Info returns a snapshot of the reader's stream configuration. It stays
// valid after Release.
func (r *Reader) Info() Info {
	return Info{
		Name:    r.name,
		Width:   r.width,
		Height:  r.height,
		FPS:     r.fps,
		Backend: r.backend,
	}
}

// String implements fmt.Stringer.
func (r *Reader) String() string { return r.Info().String() }

// IsOpen reports whether the source is open and the last read succeeded.
// Once a read fails the state latches shut and never resets, even if the
// underlying handle would allow further reads; iteration built on IsOpen
// relies on the latch to terminate deterministically.
func (r *Reader) IsOpen() bool {
	return !r.released && r.open && r.stream.IsOpened()
}

// Read returns the next frame. ok=false signals end-of-stream (or a read
// after Release); it is never an error. A successful read increments
// FrameCount by exactly one.
func (r *Reader) Read() (frame ports.Frame, ok bool) {
	if r.released || !r.open {
		return ports.Frame{}, false
	}
	frame, ok = r.stream.ReadNext()
	if !ok {
		r.open = false
		return ports.Frame{}, false
	}
	r.frameCount++
	return frame, true
}

// Frames returns a lazy, finite, one-shot sequence of the remaining
// frames. The sequence ends at the first failed read and cannot be
// restarted.
func (r *Reader) Frames() iter.Seq[ports.Frame] {
	return func(yield func(ports.Frame) bool) {
		for {
			frame, ok := r.Read()
			if !ok {
				return
			}
			if !yield(frame) {
				return
			}
		}
	}
}

// Release closes the underlying stream. It is idempotent; repeated calls
// return nil and do not change counters. Reads after Release return
// ok=false while property accessors keep returning last-known values.
func (r *Reader) Release() error {
	if r.released {
		return nil
	}
	r.released = true
	r.open = false
	r.log.Debug("released %s after %d frames", r.name, r.frameCount)
	return r.stream.Release()
}
