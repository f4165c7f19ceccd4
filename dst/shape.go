package dst

import (
	"fmt"
	"unsafe"

	"github.com/Berrysoft/hdf5-ext/hdftype"
)

// Shape is the uniform dynamic shape shared by every record of one
// container: the header layout plus the runtime tail length. All records
// of a FixedVec have the same shape, fixed at construction.
type Shape struct {
	desc       hdftype.Descriptor
	headerSize uintptr
	tailOff    uintptr
	elemSize   uintptr
	tailLen    uint
	stride     uintptr
}

// Fixed describes records with no variable tail; the whole record is the
// header.
func Fixed(d hdftype.Descriptor) Shape {
	size := hdftype.AlignUp(d.ByteSize(), d.Alignment())
	return Shape{
		desc:       d,
		headerSize: d.ByteSize(),
		tailOff:    size,
		stride:     size,
	}
}

// Slice describes records with a fixed header followed by a tail of
// tailLen elements.
func Slice(header, elem hdftype.Descriptor, tailLen uint) Shape {
	desc := hdftype.Unsized(header, elem, tailLen)
	return Shape{
		desc:       desc,
		headerSize: header.ByteSize(),
		tailOff:    desc.Fields()[1].Offset,
		elemSize:   elem.ByteSize(),
		tailLen:    tailLen,
		stride:     desc.ByteSize(),
	}
}

// Text describes records with a fixed header followed by a text tail of
// length bytes.
func Text(header hdftype.Descriptor, length uint) Shape {
	desc := hdftype.UnsizedText(header, length)
	return Shape{
		desc:       desc,
		headerSize: header.ByteSize(),
		tailOff:    desc.Fields()[1].Offset,
		elemSize:   1,
		tailLen:    length,
		stride:     desc.ByteSize(),
	}
}

// FixedOf is Fixed with the descriptor asserted against the Go type the
// records will be written through. A mismatch is a layout contract
// violation and panics.
func FixedOf[T any](d hdftype.Descriptor) Shape {
	var v T
	if d.ByteSize() != unsafe.Sizeof(v) || d.Alignment() != unsafe.Alignof(v) {
		panic(fmt.Sprintf("dst: layout mismatch: descriptor %s does not fit %T", d, v))
	}
	return Fixed(d)
}

// SliceOf is Slice with the descriptors asserted against the Go types
// that will be written through the typed record accessors. A mismatch is
// a layout contract violation and panics.
func SliceOf[H, T any](header, elem hdftype.Descriptor, tailLen uint) Shape {
	var h H
	var e T
	if header.ByteSize() != unsafe.Sizeof(h) || header.Alignment() != unsafe.Alignof(h) {
		panic(fmt.Sprintf("dst: layout mismatch: header descriptor %s does not fit %T", header, h))
	}
	if elem.ByteSize() != unsafe.Sizeof(e) || elem.Alignment() != unsafe.Alignof(e) {
		panic(fmt.Sprintf("dst: layout mismatch: element descriptor %s does not fit %T", elem, e))
	}
	return Slice(header, elem, tailLen)
}

// Descriptor returns the record's full type descriptor.
func (s Shape) Descriptor() hdftype.Descriptor { return s.desc }

// Stride returns the padded per-record size in bytes.
func (s Shape) Stride() int { return int(s.stride) }

// TailLen returns the number of tail elements carried by each record.
func (s Shape) TailLen() uint { return s.tailLen }

// HeaderSize returns the unpadded header size in bytes.
func (s Shape) HeaderSize() int { return int(s.headerSize) }

// TailOffset returns the byte offset of the tail within a record.
func (s Shape) TailOffset() int { return int(s.tailOff) }

func (s Shape) String() string {
	return fmt.Sprintf("%s (stride %d)", s.desc, s.stride)
}
