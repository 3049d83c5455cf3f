package vidsz

import (
	"fmt"
	"iter"

	"github.com/user/vidsz/pkg/ports"
)

// BatchReader groups a Reader's frames into batches of a fixed capacity.
//
// In fixed mode every batch has exactly BatchSize slots; when the source
// runs out mid-batch the trailing slots stay zero-filled. In dynamic mode
// the last batch is truncated to the frames actually obtained. A batch is
// never emitted with zero valid frames in either mode.
type BatchReader struct {
	r       *Reader
	size    int
	dynamic bool
}

// NewBatchReader wraps r with a batch assembler. batchSize must be
// positive; dynamic selects truncation instead of zero-padding for the
// final partial batch.
func NewBatchReader(r *Reader, batchSize int, dynamic bool) (*BatchReader, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size %d: %w", batchSize, ErrInvalidBatchSize)
	}
	return &BatchReader{r: r, size: batchSize, dynamic: dynamic}, nil
}

// BatchSize returns the batch capacity fixed at construction.
func (b *BatchReader) BatchSize() int { return b.size }

// Dynamic reports whether partial batches are truncated instead of padded.
func (b *BatchReader) Dynamic() bool { return b.dynamic }

// Reader returns the wrapped single-frame reader.
func (b *BatchReader) Reader() *Reader { return b.r }

// FrameCount returns the delegate's frame counter: frames actually
// obtained, not batches emitted.
func (b *BatchReader) FrameCount() int { return b.r.FrameCount() }

// Seconds returns the delegate's elapsed stream time.
func (b *BatchReader) Seconds() float64 { return b.r.Seconds() }

// Minutes returns the delegate's elapsed stream time in minutes.
func (b *BatchReader) Minutes() float64 { return b.r.Minutes() }

// IsOpen reports the delegate's latched open state.
func (b *BatchReader) IsOpen() bool { return b.r.IsOpen() }

// Read assembles the next batch. ok=false signals end-of-stream.
func (b *BatchReader) Read() (batch []ports.Frame, ok bool) {
	if !b.r.IsOpen() {
		return nil, false
	}

	// One zeroed allocation backs the whole batch; each slot is a view
	// into it. Faster than growing a slice frame by frame, see
	// BenchmarkBatchAllocation.
	width, height := b.r.Width(), b.r.Height()
	stride := width * height * ports.Channels
	backing := make([]byte, b.size*stride)
	batch = make([]ports.Frame, b.size)
	for i := range batch {
		batch[i] = ports.Frame{
			Data:   backing[i*stride : (i+1)*stride],
			Width:  width,
			Height: height,
		}
	}

	filled := 0
	for i := 0; i < b.size; i++ {
		frame, ok := b.r.Read()
		if !ok {
			break
		}
		copy(batch[i].Data, frame.Data)
		filled++
	}

	// The delegate reports open right up until the read that discovers
	// exhaustion, so the loop can fill nothing at all. Such a batch would
	// be pure padding; report end-of-stream instead of emitting it.
	if filled == 0 {
		return nil, false
	}
	if b.dynamic {
		return batch[:filled], true
	}
	return batch, true
}

// Batches returns a lazy, finite, one-shot sequence of the remaining
// batches.
func (b *BatchReader) Batches() iter.Seq[[]ports.Frame] {
	return func(yield func([]ports.Frame) bool) {
		for {
			batch, ok := b.Read()
			if !ok {
				return
			}
			if !yield(batch) {
				return
			}
		}
	}
}

// Release releases the wrapped reader. Idempotent.
func (b *BatchReader) Release() error { return b.r.Release() }
