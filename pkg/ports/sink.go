package ports

// SinkOpener creates encoding sinks, the write-side counterpart of Capture.
type SinkOpener interface {
	// Name identifies the backend, e.g. "opencv".
	Name() string

	// Create opens a sink that encodes frames of the given dimensions to
	// path using the four-character codec tag.
	Create(path, codec string, fps float64, width, height int) (SinkStream, error)
}

// SinkStream is one open encoding target. Like CaptureStream it is owned
// exclusively and not safe for concurrent use.
type SinkStream interface {
	// Write encodes one frame. The sink does not validate frame
	// dimensions; mismatched frames are the caller's responsibility.
	Write(frame Frame) error

	// IsOpened reports whether the underlying handle is still open.
	IsOpened() bool

	// Release finalizes the container and closes the handle. Calling it
	// more than once is safe.
	Release() error
}
