package hdftype

import (
	"fmt"
	"unsafe"
)

// CompoundBuilder computes a compound descriptor from an ordered field
// list. Fields must be declared in the same order as the Go struct they
// describe; Of asserts the result against the struct's true footprint.
type CompoundBuilder struct {
	fields []CompoundField
	ext    Extent
}

// NewCompound returns an empty compound builder.
func NewCompound() *CompoundBuilder {
	return &CompoundBuilder{ext: NewExtent()}
}

// Field appends a field with the descriptor's own size and alignment.
func (b *CompoundBuilder) Field(name string, d Descriptor) *CompoundBuilder {
	return b.FieldAs(name, d, d.ByteSize(), d.Alignment())
}

// FieldAs appends a field whose native footprint differs from the
// descriptor's declared one. The offset is computed from the native size
// and alignment; the descriptor is recorded unchanged.
func (b *CompoundBuilder) FieldAs(name string, d Descriptor, size, align uintptr) *CompoundBuilder {
	offset := b.ext.Extend(size, align)
	b.fields = append(b.fields, CompoundField{
		Name:   name,
		Type:   d,
		Offset: offset,
		Index:  len(b.fields),
	})
	return b
}

// Build pads the accumulated extent and returns the compound.
func (b *CompoundBuilder) Build() *Compound {
	ext := b.ext
	ext.PadToAlign()
	fields := make([]CompoundField, len(b.fields))
	copy(fields, b.fields)
	return &Compound{
		fields: fields,
		size:   ext.Size(),
		align:  ext.Align(),
	}
}

// Of builds the compound and asserts it against T's true runtime
// footprint. A mismatch means the declared field list or its order does
// not match the struct's actual memory shape; no caller can recover from
// that divergence, so it panics rather than returning an error.
func Of[T any](b *CompoundBuilder) *Compound {
	c := b.Build()
	var v T
	if c.ByteSize() != unsafe.Sizeof(v) || c.Alignment() != unsafe.Alignof(v) {
		panic(fmt.Sprintf(
			"hdftype: layout mismatch: computed size %d align %d, but %T has size %d align %d",
			c.ByteSize(), c.Alignment(), v, unsafe.Sizeof(v), unsafe.Alignof(v)))
	}
	return c
}

// Unsized describes a dynamically sized record: a fixed header followed
// by a variable-length tail of tailLen elements. The tail is always the
// last field, and tailLen is runtime metadata carried alongside every
// reference to such a record.
func Unsized(header, elem Descriptor, tailLen uint) *Compound {
	return NewCompound().
		Field("header", header).
		Field("slice", FixedArray{Elem: elem, Len: tailLen}).
		Build()
}

// UnsizedText describes a dynamically sized record whose tail is a text
// run of length bytes.
func UnsizedText(header Descriptor, length uint) *Compound {
	return NewCompound().
		Field("header", header).
		Field("str", FixedText{Len: length}).
		Build()
}
