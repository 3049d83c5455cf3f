// Package ports defines the capability interfaces the domain core consumes
// from video backends, along with the Frame and Logger abstractions.
package ports

// Capture opens video sources for reading. A source identifier may be a
// file path, a stream URL, or a numeric device index in string form.
type Capture interface {
	// Name identifies the backend, e.g. "opencv".
	Name() string

	// Open acquires a stream for the given source. Failure to open is
	// reported here, not deferred to the first read.
	Open(source string) (CaptureStream, error)
}

// CaptureStream is one open frame source. A stream is owned by exactly one
// reader and is not safe for concurrent use.
type CaptureStream interface {
	// ReadNext blocks until the next frame is decoded. It returns
	// ok=false when the source is exhausted or the decode failed; the
	// frame is only valid when ok is true.
	ReadNext() (frame Frame, ok bool)

	// IsOpened reports whether the underlying handle is still open.
	IsOpened() bool

	// Width returns the frame width reported by the source.
	Width() int

	// Height returns the frame height reported by the source.
	Height() int

	// FPS returns the frame rate reported by the source, 0 if unknown.
	FPS() float64

	// Release closes the handle. Calling it more than once is safe.
	Release() error
}
