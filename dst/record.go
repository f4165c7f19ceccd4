package dst

import (
	"fmt"
	"unsafe"
)

// Record is a fat reference to one dynamically sized record: the raw
// bytes together with the shape that carries the tail length. A record
// view is meaningless without its shape, so the two never travel
// separately.
type Record struct {
	buf   []byte
	shape Shape
}

// Bytes returns the record's full byte image, stride bytes long.
func (r Record) Bytes() []byte { return r.buf }

// Shape returns the record's shape.
func (r Record) Shape() Shape { return r.shape }

// HeaderBytes returns the header's byte image.
func (r Record) HeaderBytes() []byte {
	return r.buf[:r.shape.headerSize:r.shape.headerSize]
}

// TailBytes returns the tail's byte image.
func (r Record) TailBytes() []byte {
	end := r.shape.tailOff + r.shape.elemSize*uintptr(r.shape.tailLen)
	return r.buf[r.shape.tailOff:end:end]
}

// Header returns a typed pointer to the record's header. T must be the
// Go type the shape's header descriptor was asserted against.
func Header[T any](r Record) *T {
	var v T
	if unsafe.Sizeof(v) != r.shape.headerSize {
		panic(fmt.Sprintf("dst: header type %T does not fit header of %s", v, r.shape))
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(r.buf)))
}

// SetHeader writes the record's header.
func SetHeader[T any](r Record, v T) {
	*Header[T](r) = v
}

// TailSlice returns the record's tail as a typed slice of the shape's
// tail length. T must be the Go type the shape's element descriptor was
// asserted against.
func TailSlice[T any](r Record) []T {
	var v T
	if unsafe.Sizeof(v) != r.shape.elemSize {
		panic(fmt.Sprintf("dst: element type %T does not fit tail of %s", v, r.shape))
	}
	base := unsafe.Pointer(unsafe.SliceData(r.buf))
	tail := unsafe.Add(base, r.shape.tailOff)
	return unsafe.Slice((*T)(tail), r.shape.tailLen)
}

// SetTail copies vals into the record's tail. len(vals) must equal the
// shape's tail length; every tail slot is written.
func SetTail[T any](r Record, vals []T) {
	tail := TailSlice[T](r)
	if len(vals) != len(tail) {
		panic(fmt.Sprintf("dst: tail length %d does not match shape tail length %d", len(vals), len(tail)))
	}
	copy(tail, vals)
}
