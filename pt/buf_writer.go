package pt

import (
	"github.com/Berrysoft/hdf5-ext/dst"
	"github.com/Berrysoft/hdf5-ext/errors"
	"github.com/Berrysoft/hdf5-ext/hdftype"
)

// BufWriter accumulates pushed records in memory and appends them to
// the wrapped table as one batch whenever bufLen records are buffered.
//
// Go has no destructor to flush from, so release is explicit: callers
// defer Close, which flushes and reports any flush failure. Records are
// only ever dropped by abandoning the writer without Close.
type BufWriter struct {
	table  *PacketTable
	buf    *dst.FixedVec
	bufLen int
	closed bool
}

// NewBufWriter creates a writer buffering records of the given shape,
// flushing every bufLen records.
func NewBufWriter(table *PacketTable, shape dst.Shape, bufLen int) *BufWriter {
	return &BufWriter{
		table:  table,
		buf:    dst.NewFixedVec(shape, bufLen),
		bufLen: bufLen,
	}
}

// Buffered returns the number of records waiting to be flushed.
func (w *BufWriter) Buffered() int { return w.buf.Len() }

// Flush appends all buffered records to the table in one write, then
// clears the buffer. An empty buffer is a no-op, not an error.
func (w *BufWriter) Flush() error {
	if w.buf.IsEmpty() {
		return nil
	}
	if err := w.table.AppendUnsized(w.buf); err != nil {
		return err
	}
	w.buf.Clear()
	return nil
}

func (w *BufWriter) checkAndFlush() error {
	if w.buf.Len() >= w.bufLen {
		return w.Flush()
	}
	return nil
}

// PushWith buffers one record initialized by init; init must write
// every header field and tail slot.
func (w *BufWriter) PushWith(init func(dst.Record)) error {
	if w.closed {
		return errors.Closed(errors.PhaseAppend, "buffered writer")
	}
	w.buf.PushWith(init)
	return w.checkAndFlush()
}

// PushClone buffers a byte copy of an initialized record.
func (w *BufWriter) PushClone(r dst.Record) error {
	if w.closed {
		return errors.Closed(errors.PhaseAppend, "buffered writer")
	}
	w.buf.PushClone(r)
	return w.checkAndFlush()
}

// Close flushes the remaining records and retires the writer. A second
// Close is a no-op.
func (w *BufWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.Flush()
}

// TypedWriter is a BufWriter over fixed-size records of a single Go
// type.
type TypedWriter[T any] struct {
	w *BufWriter
}

// NewTypedWriter creates a buffered writer for fixed-size records. The
// descriptor is asserted against T's footprint; a mismatch panics.
func NewTypedWriter[T any](table *PacketTable, dtype hdftype.Descriptor, bufLen int) *TypedWriter[T] {
	return &TypedWriter[T]{
		w: NewBufWriter(table, dst.FixedOf[T](dtype), bufLen),
	}
}

// Push buffers one record.
func (w *TypedWriter[T]) Push(val T) error {
	return w.w.PushWith(func(r dst.Record) {
		dst.SetHeader(r, val)
	})
}

// Buffered returns the number of records waiting to be flushed.
func (w *TypedWriter[T]) Buffered() int { return w.w.Buffered() }

// Flush appends all buffered records to the table in one write.
func (w *TypedWriter[T]) Flush() error { return w.w.Flush() }

// Close flushes the remaining records and retires the writer.
func (w *TypedWriter[T]) Close() error { return w.w.Close() }
