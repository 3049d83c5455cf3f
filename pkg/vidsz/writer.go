package vidsz

import (
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/user/vidsz/pkg/ports"
)

// Options overrides the writer configuration derived from a source
// reader, field by field. Zero values leave the derived value in place.
type Options struct {
	// Name is the output path. Defaults to the source reader's name with
	// an "_out" suffix before the extension.
	Name string

	// Width overrides the output frame width.
	Width int

	// Height overrides the output frame height.
	Height int

	// FPS overrides the output frame rate.
	FPS float64

	// Ext overrides the container extension used for codec resolution.
	// Defaults to the extension of the output name.
	Ext string
}

// Writer encodes frames to an output sink and tracks how many were
// written.
//
// A Writer owns its sink exclusively and is not safe for concurrent use.
type Writer struct {
	name    string
	backend string
	stream  ports.SinkStream

	width  int
	height int
	fps    float64
	ext    string

	released   bool
	frameCount int

	log ports.Logger
}

// NewWriter creates a sink through the given backend. Configuration is
// inherited from source when present and overridden by opts field by
// field; constructing with neither source nor an explicit name fails with
// ErrMissingTarget. An extension without a codec mapping fails here with
// ErrUnsupportedFormat, before any write.
func NewWriter(backend ports.SinkOpener, source *Reader, opts Options, log ports.Logger) (*Writer, error) {
	w := &Writer{
		backend: backend.Name(),
		log:     log.WithComponent("writer"),
	}

	if source != nil {
		ext := filepath.Ext(source.Name())
		w.name = strings.TrimSuffix(source.Name(), ext) + "_out" + ext
		w.width = source.Width()
		w.height = source.Height()
		w.fps = source.FPS()
	}
	if opts.Name != "" {
		w.name = opts.Name
	}
	if opts.Width > 0 {
		w.width = opts.Width
	}
	if opts.Height > 0 {
		w.height = opts.Height
	}
	if opts.FPS > 0 {
		w.fps = opts.FPS
	}
	if w.name == "" {
		return nil, ErrMissingTarget
	}

	w.ext = opts.Ext
	if w.ext == "" {
		w.ext = filepath.Ext(w.name)
	}
	if !strings.HasPrefix(w.ext, ".") {
		w.ext = "." + w.ext
	}

	codec, err := CodecForExt(w.ext)
	if err != nil {
		return nil, err
	}

	stream, err := backend.Create(w.name, codec, w.fps, w.width, w.height)
	if err != nil {
		return nil, fmt.Errorf("create sink %q: %w", w.name, err)
	}
	if !stream.IsOpened() {
		stream.Release()
		return nil, fmt.Errorf("create sink %q: %w", w.name, ErrSourceUnavailable)
	}
	w.stream = stream

	w.log.Debug("created %s (%dx%d @ %g fps, %s)", w.name, w.width, w.height, w.fps, codec)
	return w, nil
}

// Name returns the output path.
func (w *Writer) Name() string { return w.name }

// Width returns the configured output frame width.
func (w *Writer) Width() int { return w.width }

// Height returns the configured output frame height.
func (w *Writer) Height() int { return w.height }

// FPS returns the configured output frame rate.
func (w *Writer) FPS() float64 { return w.fps }

// Ext returns the container extension, with leading dot.
func (w *Writer) Ext() string { return w.ext }

// Backend returns the name of the backend serving this writer.
func (w *Writer) Backend() string { return w.backend }

// FrameCount returns the number of frames written so far.
func (w *Writer) FrameCount() int { return w.frameCount }

// Seconds returns the stream time covered by the frames written so far,
// 0 when the frame rate is unknown.
func (w *Writer) Seconds() float64 {
	if w.fps == 0 {
		return 0
	}
	return float64(w.frameCount) / w.fps
}

// Minutes returns Seconds divided by 60.
func (w *Writer) Minutes() float64 { return w.Seconds() / 60 }

// Info returns a snapshot of the writer's configuration. It stays valid
// after Release.
func (w *Writer) Info() Info {
	return Info{
		Name:    w.name,
		Width:   w.width,
		Height:  w.height,
		FPS:     w.fps,
		Backend: w.backend,
		Ext:     w.ext,
	}
}

// String implements fmt.Stringer.
func (w *Writer) String() string { return w.Info().String() }

// IsOpen reports whether the sink accepts writes.
func (w *Writer) IsOpen() bool {
	return !w.released && w.stream.IsOpened()
}

// Write encodes one frame. Unlike the reader's fail-soft reads, writing
// after Release or a failed open fails loudly with ErrWriterClosed. Frame
// dimensions are not validated against the configured output size.
func (w *Writer) Write(frame ports.Frame) error {
	if !w.IsOpen() {
		return ErrWriterClosed
	}
	if err := w.stream.Write(frame); err != nil {
		return fmt.Errorf("write frame %d: %w", w.frameCount, err)
	}
	w.frameCount++
	return nil
}

// WriteAll writes every frame of the sequence in order, stopping at the
// sequence's end or the first write error. The sequence may come from a
// Reader's Frames, a BatchReader's batches, or slices.Values.
func (w *Writer) WriteAll(frames iter.Seq[ports.Frame]) error {
	for frame := range frames {
		if err := w.Write(frame); err != nil {
			return err
		}
	}
	return nil
}

// Release finalizes and closes the sink. It is idempotent; repeated calls
// return nil and do not change counters.
func (w *Writer) Release() error {
	if w.released {
		return nil
	}
	w.released = true
	w.log.Debug("released %s after %d frames", w.name, w.frameCount)
	return w.stream.Release()
}
