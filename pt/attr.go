package pt

import (
	"github.com/Berrysoft/hdf5-ext/dst"
	"github.com/Berrysoft/hdf5-ext/errors"
	"github.com/Berrysoft/hdf5-ext/hdftype"
)

// Attributes are small typed blobs stored beside a table: calibration
// constants, provenance, units. They carry their declared type, and a
// read fails with a type mismatch when the caller's layout disagrees
// with the stored one.

// WriteAttrUnsized stores the vector's records as an attribute.
func (t *PacketTable) WriteAttrUnsized(name string, v *dst.FixedVec) error {
	if err := t.guard(errors.PhaseAttr); err != nil {
		return err
	}
	return t.eng.WriteAttr(t.h, name, v.Shape().Descriptor(), v.Bytes())
}

// ReadAttrUnsized loads an attribute into the vector, appending after
// its initialized records. The stored type must match the vector's
// shape exactly.
func (t *PacketTable) ReadAttrUnsized(name string, v *dst.FixedVec) error {
	if err := t.guard(errors.PhaseAttr); err != nil {
		return err
	}
	dtype, data, err := t.eng.ReadAttr(t.h, name)
	if err != nil {
		return err
	}
	want := v.Shape().Descriptor()
	if !hdftype.Equal(want, dtype) {
		return errors.TypeMismatch(errors.PhaseAttr, t.name, want.String(), dtype.String())
	}
	stride := v.Shape().Stride()
	if stride == 0 || len(data)%stride != 0 {
		return errors.InvalidData(errors.PhaseAttr, "attribute size is not a whole number of records")
	}
	return v.Fill(len(data)/stride, func(spare []byte) error {
		copy(spare, data)
		return nil
	})
}

// WriteAttr stores a slice of fixed-size values as an attribute of the
// given element type.
func WriteAttr[T any](t *PacketTable, name string, dtype hdftype.Descriptor, vals []T) error {
	if err := t.guard(errors.PhaseAttr); err != nil {
		return err
	}
	desc := hdftype.FixedArray{Elem: dtype, Len: uint(len(vals))}
	return t.eng.WriteAttr(t.h, name, desc, sliceBytes(vals))
}

// ReadAttr loads an attribute written by WriteAttr.
func ReadAttr[T any](t *PacketTable, name string, dtype hdftype.Descriptor) ([]T, error) {
	if err := t.guard(errors.PhaseAttr); err != nil {
		return nil, err
	}
	stored, data, err := t.eng.ReadAttr(t.h, name)
	if err != nil {
		return nil, err
	}
	arr, ok := stored.(hdftype.FixedArray)
	if !ok || !hdftype.Equal(arr.Elem, dtype) {
		return nil, errors.TypeMismatch(errors.PhaseAttr, t.name, dtype.String(), stored.String())
	}
	vals := make([]T, arr.Len)
	if copy(sliceBytes(vals), data) != len(data) {
		return nil, errors.InvalidData(errors.PhaseAttr, "attribute size disagrees with its declared type")
	}
	return vals, nil
}
