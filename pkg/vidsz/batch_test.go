package vidsz

import (
	"errors"
	"testing"

	"github.com/user/vidsz/pkg/mocks"
	"github.com/user/vidsz/pkg/ports"
)

func newTestBatchReader(t *testing.T, frames, batchSize int, dynamic bool) (*BatchReader, *mocks.CaptureStream) {
	t.Helper()
	stream := mocks.NewCaptureStream(frames, 4, 4, 30)
	r := newTestReader(t, stream)
	b, err := NewBatchReader(r, batchSize, dynamic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b, stream
}

func allZero(data []byte) bool {
	for _, v := range data {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestNewBatchReader_InvalidSize(t *testing.T) {
	r := newTestReader(t, mocks.NewCaptureStream(1, 4, 4, 30))
	for _, size := range []int{0, -1} {
		if _, err := NewBatchReader(r, size, false); !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("size %d: expected ErrInvalidBatchSize, got %v", size, err)
		}
	}
}

func TestBatchReader_FixedPadsFinalBatch(t *testing.T) {
	// 5 frames, batch size 2: batches of shapes [2,2,2], last batch one
	// real frame plus one zero-padded slot.
	b, _ := newTestBatchReader(t, 5, 2, false)

	var batches [][]ports.Frame
	for batch := range b.Batches() {
		batches = append(batches, batch)
	}
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	for i, batch := range batches {
		if len(batch) != 2 {
			t.Errorf("batch %d: expected capacity 2, got %d", i, len(batch))
		}
	}

	last := batches[2]
	if allZero(last[0].Data) {
		t.Error("expected a real frame in the final batch's first slot")
	}
	if last[0].Data[0] != 5 {
		t.Errorf("expected frame value 5 in final batch, got %d", last[0].Data[0])
	}
	if !allZero(last[1].Data) {
		t.Error("expected zero padding in the final batch's trailing slot")
	}
	if got := b.FrameCount(); got != 5 {
		t.Errorf("expected frame count 5, got %d", got)
	}
}

func TestBatchReader_DynamicTruncatesFinalBatch(t *testing.T) {
	// Same 5-frame source, dynamic mode: batch lengths [2,2,1].
	b, _ := newTestBatchReader(t, 5, 2, true)

	var lengths []int
	total := 0
	for batch := range b.Batches() {
		lengths = append(lengths, len(batch))
		total += len(batch)
		for _, frame := range batch {
			if allZero(frame.Data) {
				t.Error("dynamic batch contains a padding frame")
			}
		}
	}
	want := []int{2, 2, 1}
	if len(lengths) != len(want) {
		t.Fatalf("expected %d batches, got %d (%v)", len(want), len(lengths), lengths)
	}
	for i := range want {
		if lengths[i] != want[i] {
			t.Errorf("batch %d: expected length %d, got %d", i, want[i], lengths[i])
		}
	}
	if total != 5 {
		t.Errorf("expected batch lengths to sum to 5, got %d", total)
	}
}

func TestBatchReader_ExactMultipleEmitsNoPaddingBatch(t *testing.T) {
	// When the frame count divides evenly the assembler discovers
	// exhaustion with an empty batch in hand. It must report end of
	// stream rather than emit the all-padding batch.
	for _, dynamic := range []bool{false, true} {
		b, _ := newTestBatchReader(t, 4, 2, dynamic)

		n := 0
		for range b.Batches() {
			n++
		}
		if n != 2 {
			t.Errorf("dynamic=%v: expected 2 batches, got %d", dynamic, n)
		}
		if got := b.FrameCount(); got != 4 {
			t.Errorf("dynamic=%v: expected frame count 4, got %d", dynamic, got)
		}
	}
}

func TestBatchReader_EmptySource(t *testing.T) {
	for _, dynamic := range []bool{false, true} {
		b, _ := newTestBatchReader(t, 0, 3, dynamic)

		if _, ok := b.Read(); ok {
			t.Errorf("dynamic=%v: expected end of stream from empty source", dynamic)
		}
		if got := b.FrameCount(); got != 0 {
			t.Errorf("dynamic=%v: expected frame count 0, got %d", dynamic, got)
		}
	}
}

func TestBatchReader_BatchCountIsCeil(t *testing.T) {
	// ceil(N / batchSize) non-end-marker batches for every size.
	const frames = 11
	for size := 1; size <= frames+2; size++ {
		b, _ := newTestBatchReader(t, frames, size, false)

		n := 0
		for range b.Batches() {
			n++
		}
		want := (frames + size - 1) / size
		if n != want {
			t.Errorf("batch size %d: expected %d batches, got %d", size, want, n)
		}
		if got := b.FrameCount(); got != frames {
			t.Errorf("batch size %d: expected frame count %d, got %d", size, frames, got)
		}
	}
}

func TestBatchReader_PreservesFrameOrder(t *testing.T) {
	b, _ := newTestBatchReader(t, 7, 3, true)

	value := byte(1)
	for batch := range b.Batches() {
		for _, frame := range batch {
			if frame.Data[0] != value {
				t.Fatalf("expected frame value %d, got %d", value, frame.Data[0])
			}
			value++
		}
	}
	if value != 8 {
		t.Errorf("expected 7 frames in order, saw %d", value-1)
	}
}

func TestBatchReader_ClosedReaderSkipsAllocation(t *testing.T) {
	b, stream := newTestBatchReader(t, 2, 2, false)

	for range b.Batches() {
	}
	readsAfterDrain := stream.ReadCalls

	// A closed delegate short-circuits before any batch is allocated or
	// any stream read attempted.
	if _, ok := b.Read(); ok {
		t.Error("expected end of stream")
	}
	if stream.ReadCalls != readsAfterDrain {
		t.Errorf("expected no further stream reads, got %d extra",
			stream.ReadCalls-readsAfterDrain)
	}
}

func TestBatchReader_ReleaseDelegates(t *testing.T) {
	b, stream := newTestBatchReader(t, 3, 2, false)

	if err := b.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := b.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
	if stream.ReleaseCalls != 1 {
		t.Errorf("expected 1 stream release, got %d", stream.ReleaseCalls)
	}
	if _, ok := b.Read(); ok {
		t.Error("expected end of stream after release")
	}
}

func TestBatchReader_SlotsAreIndependent(t *testing.T) {
	b, _ := newTestBatchReader(t, 4, 2, false)

	first, ok := b.Read()
	if !ok {
		t.Fatal("unexpected end of stream")
	}
	marker := first[0].Data[0]

	// A later batch must not alias the previous batch's buffer.
	second, ok := b.Read()
	if !ok {
		t.Fatal("unexpected end of stream")
	}
	if second[0].Data[0] == marker {
		t.Error("expected distinct frame values across batches")
	}
	if first[0].Data[0] != marker {
		t.Error("earlier batch mutated by later read")
	}
}

// BenchmarkBatchAllocation compares the batch assembler's single upfront
// allocation against growing the batch frame by frame, the same
// comparison the allocation strategy was chosen by.
func BenchmarkBatchAllocation(b *testing.B) {
	const (
		batchSize = 64
		width     = 1280
		height    = 720
	)
	stride := width * height * ports.Channels
	src := make([]byte, stride)

	b.Run("preallocate", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			backing := make([]byte, batchSize*stride)
			batch := make([]ports.Frame, batchSize)
			for j := range batch {
				batch[j] = ports.Frame{
					Data:   backing[j*stride : (j+1)*stride],
					Width:  width,
					Height: height,
				}
				copy(batch[j].Data, src)
			}
		}
	})

	b.Run("append", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var batch []ports.Frame
			for j := 0; j < batchSize; j++ {
				frame := ports.NewFrame(width, height)
				copy(frame.Data, src)
				batch = append(batch, frame)
			}
			_ = batch
		}
	})
}
