package pt

import (
	"go.uber.org/zap"

	"github.com/Berrysoft/hdf5-ext/dst"
	"github.com/Berrysoft/hdf5-ext/engine"
	"github.com/Berrysoft/hdf5-ext/errors"
	"github.com/Berrysoft/hdf5-ext/hdftype"
)

// PacketTable is an append-only chunked table of records. Appends land
// at the table's end; reads either address an explicit range or consume
// the table through the read cursor (see ReadNext). A table must be
// released with Close exactly once.
type PacketTable struct {
	eng    engine.Engine
	h      engine.Handle
	name   string
	index  uint64
	closed bool
}

// Open opens an existing packet table by name.
func Open(eng engine.Engine, name string) (*PacketTable, error) {
	h, err := eng.OpenTable(name)
	if err != nil {
		return nil, err
	}
	return &PacketTable{eng: eng, h: h, name: name}, nil
}

// Name returns the table's name.
func (t *PacketTable) Name() string { return t.name }

func (t *PacketTable) guard(phase errors.Phase) error {
	if t.closed {
		return errors.Closed(phase, "packet table")
	}
	return nil
}

// PushRecord appends one dynamically sized record.
func (t *PacketTable) PushRecord(r dst.Record) error {
	if err := t.guard(errors.PhaseAppend); err != nil {
		return err
	}
	return t.eng.Append(t.h, 1, r.Bytes())
}

// AppendUnsized appends every record of the vector in one engine write.
func (t *PacketTable) AppendUnsized(v *dst.FixedVec) error {
	if err := t.guard(errors.PhaseAppend); err != nil {
		return err
	}
	return t.eng.Append(t.h, v.Len(), v.Bytes())
}

// ReadUnsized reads count records starting at start into the vector,
// appending after its initialized records. The read cursor is untouched.
func (t *PacketTable) ReadUnsized(start uint64, count int, v *dst.FixedVec) error {
	if err := t.guard(errors.PhaseRead); err != nil {
		return err
	}
	return v.Fill(count, func(spare []byte) error {
		return t.eng.Read(t.h, start, count, spare)
	})
}

// ReadNextUnsized reads count records at the read cursor into the
// vector and advances the cursor when the read succeeds.
func (t *PacketTable) ReadNextUnsized(count int, v *dst.FixedVec) error {
	if err := t.ReadUnsized(t.index, count, v); err != nil {
		return err
	}
	t.index += uint64(count)
	return nil
}

// NumPackets returns the table's current record count.
func (t *PacketTable) NumPackets() (uint64, error) {
	if err := t.guard(errors.PhaseRead); err != nil {
		return 0, err
	}
	return t.eng.RecordCount(t.h)
}

// Index returns the read cursor.
func (t *PacketTable) Index() uint64 { return t.index }

// SetIndex moves the read cursor.
func (t *PacketTable) SetIndex(index uint64) { t.index = index }

// ResetIndex moves the read cursor back to the first record.
func (t *PacketTable) ResetIndex() { t.index = 0 }

// Dtype returns the table's declared record type.
func (t *PacketTable) Dtype() (hdftype.Descriptor, error) {
	if err := t.guard(errors.PhaseValidate); err != nil {
		return nil, err
	}
	return t.eng.DeclaredType(t.h)
}

// Validate reports whether the handle still refers to a live table.
func (t *PacketTable) Validate() error {
	if err := t.guard(errors.PhaseValidate); err != nil {
		return err
	}
	if !t.eng.Valid(t.h) {
		return errors.InvalidHandle(errors.PhaseValidate)
	}
	return nil
}

// Close releases the engine-side handle. The release happens exactly
// once; a second Close is a no-op. A release failure is returned and
// logged, never swallowed: the handle is gone either way and the caller
// must know the engine reported a leak.
func (t *PacketTable) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	if err := t.eng.CloseTable(t.h); err != nil {
		engine.Logger().Error("packet table release failed",
			zap.String("table", t.name), zap.Error(err))
		return err
	}
	return nil
}
