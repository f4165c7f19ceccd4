package pt

import (
	"testing"

	"github.com/Berrysoft/hdf5-ext/dst"
	"github.com/Berrysoft/hdf5-ext/hdftype"
)

func newIntTable(t *testing.T) *PacketTable {
	t.Helper()
	store := openStore(t)
	table, err := NewBuilder(store).Chunk(16).Dtype(hdftype.I32).Create("data")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() { table.Close() })
	return table
}

func mustCount(t *testing.T, table *PacketTable) uint64 {
	t.Helper()
	count, err := table.NumPackets()
	if err != nil {
		t.Fatalf("num packets: %v", err)
	}
	return count
}

func TestTypedWriterFlushThreshold(t *testing.T) {
	table := newIntTable(t)
	const bufLen = 4

	w := NewTypedWriter[int32](table, hdftype.I32, bufLen)

	// One short of the threshold: nothing reaches the table.
	for i := 0; i < bufLen-1; i++ {
		if err := w.Push(int32(i)); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if got := mustCount(t, table); got != 0 {
		t.Errorf("count before threshold: got %d, want 0", got)
	}
	if w.Buffered() != bufLen-1 {
		t.Errorf("buffered: got %d, want %d", w.Buffered(), bufLen-1)
	}

	// The threshold push flushes everything in one batch.
	if err := w.Push(int32(bufLen - 1)); err != nil {
		t.Fatalf("push: %v", err)
	}
	if got := mustCount(t, table); got != bufLen {
		t.Errorf("count at threshold: got %d, want %d", got, bufLen)
	}
	if w.Buffered() != 0 {
		t.Errorf("buffered after flush: got %d, want 0", w.Buffered())
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := mustCount(t, table); got != bufLen {
		t.Errorf("count after close: got %d, want %d", got, bufLen)
	}
}

func TestTypedWriterFlushOnClose(t *testing.T) {
	table := newIntTable(t)
	const bufLen = 4

	w := NewTypedWriter[int32](table, hdftype.I32, bufLen)
	for i := 0; i < bufLen-1; i++ {
		if err := w.Push(int32(i)); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if got := mustCount(t, table); got != 0 {
		t.Fatalf("count before close: got %d, want 0", got)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := mustCount(t, table); got != bufLen-1 {
		t.Errorf("count after close: got %d, want %d", got, bufLen-1)
	}

	got, err := Read[int32](table, 0, bufLen-1)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	assertValues(t, got, []int32{0, 1, 2})
}

func TestWriterFlushEmptyIsNoop(t *testing.T) {
	table := newIntTable(t)

	w := NewTypedWriter[int32](table, hdftype.I32, 4)
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := mustCount(t, table); got != 0 {
		t.Errorf("count after empty flush: got %d, want 0", got)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: got %v, want nil", err)
	}
}

func TestWriterPushAfterClose(t *testing.T) {
	table := newIntTable(t)

	w := NewTypedWriter[int32](table, hdftype.I32, 4)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Push(1); err == nil {
		t.Error("push after close: expected an error")
	}
}

func TestUnsizedWriter(t *testing.T) {
	store := openStore(t)
	shape := unsizedShape()

	table, err := NewBuilder(store).Chunk(8).DtypeUnsized(shape).Create("records")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer table.Close()

	w := NewBufWriter(table, shape, 3)
	const total = 10
	for i := 0; i < total; i++ {
		err := w.PushWith(func(r dst.Record) {
			dst.SetHeader[uint32](r, uint32(i))
			dst.SetTail(r, []int64{int64(i), 1, 4, 5, 1, 4})
		})
		if err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if got := mustCount(t, table); got != total {
		t.Fatalf("count: got %d, want %d", got, total)
	}
	out := dst.NewFixedVec(shape, total)
	if err := table.ReadUnsized(0, total, out); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i := 0; i < total; i++ {
		if got := *dst.Header[uint32](out.Get(i)); got != uint32(i) {
			t.Errorf("record %d header: got %d, want %d", i, got, i)
		}
		if got := dst.TailSlice[int64](out.Get(i))[0]; got != int64(i) {
			t.Errorf("record %d tail[0]: got %d, want %d", i, got, i)
		}
	}
}

func TestWriterPushClone(t *testing.T) {
	store := openStore(t)
	shape := unsizedShape()

	table, err := NewBuilder(store).Chunk(8).DtypeUnsized(shape).Create("records")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer table.Close()

	src := dst.NewFixedVec(shape, 1)
	src.PushWith(func(r dst.Record) {
		dst.SetHeader[uint32](r, 9)
		dst.SetTail(r, []int64{9, 9, 9, 9, 9, 9})
	})

	w := NewBufWriter(table, shape, 2)
	for i := 0; i < 2; i++ {
		if err := w.PushClone(src.Get(0)); err != nil {
			t.Fatalf("push clone %d: %v", i, err)
		}
	}
	// Threshold reached: both clones are already in the table.
	if got := mustCount(t, table); got != 2 {
		t.Errorf("count: got %d, want 2", got)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
