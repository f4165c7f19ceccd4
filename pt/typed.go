package pt

import (
	"unsafe"

	"github.com/Berrysoft/hdf5-ext/errors"
)

// sliceBytes reinterprets a slice of fixed-size records as its byte
// image. The caller guarantees T's layout matches the table's declared
// type; the engine still rejects buffers of the wrong total size.
func sliceBytes[T any](vals []T) []byte {
	if len(vals) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*int(unsafe.Sizeof(vals[0])))
}

// Push appends one fixed-size record.
func Push[T any](t *PacketTable, val T) error {
	return Append(t, []T{val})
}

// Append appends a slice of fixed-size records in one engine write;
// either the whole slice becomes visible or the table is unchanged.
func Append[T any](t *PacketTable, vals []T) error {
	if err := t.guard(errors.PhaseAppend); err != nil {
		return err
	}
	return t.eng.Append(t.h, len(vals), sliceBytes(vals))
}

// Read returns count records starting at start. The read cursor is
// untouched.
func Read[T any](t *PacketTable, start uint64, count int) ([]T, error) {
	if err := t.guard(errors.PhaseRead); err != nil {
		return nil, err
	}
	vals := make([]T, count)
	if err := t.eng.Read(t.h, start, count, sliceBytes(vals)); err != nil {
		return nil, err
	}
	return vals, nil
}

// ReadNext returns count records at the read cursor and advances the
// cursor when the read succeeds. Repeated calls partition the table
// into consecutive, non-overlapping windows.
func ReadNext[T any](t *PacketTable, count int) ([]T, error) {
	vals, err := Read[T](t, t.index, count)
	if err != nil {
		return nil, err
	}
	t.index += uint64(count)
	return vals, nil
}
