package ports

// Channels is the per-pixel channel count of every frame the library
// handles. Backends deliver 8-bit BGR, matching the capture engine's
// native layout.
const Channels = 3

// Frame is one decoded image buffer: Height x Width x Channels bytes in
// row-major order. The zero value carries no pixel data and is used by
// readers as the end-of-stream marker's payload.
//
// A Frame returned from a read is always an independent copy; it is never
// invalidated by a later read on the same stream.
type Frame struct {
	Data   []byte
	Width  int
	Height int
}

// NewFrame returns a zero-filled frame of the given dimensions.
func NewFrame(width, height int) Frame {
	return Frame{
		Data:   make([]byte, width*height*Channels),
		Width:  width,
		Height: height,
	}
}

// Size returns the expected byte length of the frame's pixel buffer.
func (f Frame) Size() int {
	return f.Width * f.Height * Channels
}

// Empty reports whether the frame carries no pixel data.
func (f Frame) Empty() bool {
	return len(f.Data) == 0
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	data := make([]byte, len(f.Data))
	copy(data, f.Data)
	return Frame{Data: data, Width: f.Width, Height: f.Height}
}
