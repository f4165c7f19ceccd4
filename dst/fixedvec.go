package dst

import (
	"fmt"
	"unsafe"
)

// FixedVec is a growable store of dynamically sized records of one
// uniform shape. It owns a single contiguous allocation of fixed-stride
// slots plus a valid-prefix length: bytes past the initialized prefix
// are never handed out as records. Records are appended only through
// initialization entry points that write every byte of a slot before the
// length advances, so the length can never pass the capacity.
type FixedVec struct {
	shape Shape
	buf   []byte
	len   int
	cap   int
}

// NewFixedVec allocates room for capacity records of the given shape.
// The vector starts empty.
func NewFixedVec(shape Shape, capacity int) *FixedVec {
	v := &FixedVec{shape: shape}
	v.grow(capacity)
	return v
}

// Shape returns the uniform shape shared by all records.
func (v *FixedVec) Shape() Shape { return v.shape }

// Len returns the number of initialized records.
func (v *FixedVec) Len() int { return v.len }

// Cap returns the number of records the allocation can hold.
func (v *FixedVec) Cap() int { return v.cap }

// IsEmpty reports whether the vector holds no records.
func (v *FixedVec) IsEmpty() bool { return v.len == 0 }

// Bytes returns the byte image of the initialized prefix, ready for a
// single batched engine write.
func (v *FixedVec) Bytes() []byte {
	return v.buf[:v.len*v.shape.Stride()]
}

// Reserve grows the backing storage so at least additional more records
// fit. Initialized records are preserved; the capacity never shrinks.
func (v *FixedVec) Reserve(additional int) {
	need := v.len + additional
	if need <= v.cap {
		return
	}
	newCap := v.cap * 2
	if newCap < need {
		newCap = need
	}
	v.grow(newCap)
}

func (v *FixedVec) grow(capacity int) {
	if capacity <= v.cap {
		return
	}
	buf := alignedBytes(capacity * v.shape.Stride())
	copy(buf, v.buf[:v.len*v.shape.Stride()])
	v.buf = buf
	v.cap = capacity
}

// alignedBytes allocates n zeroed bytes on an 8-byte boundary so typed
// record views stay aligned for every primitive width.
func alignedBytes(n int) []byte {
	if n == 0 {
		return nil
	}
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n)
}

// PushWith appends one record, handing init a zeroed slot view. init
// must write every header field and every tail slot it cares about;
// the slot is zero-filled first so no stale bytes leak between reuses.
// Capacity grows as needed, so the length can never pass it.
func (v *FixedVec) PushWith(init func(Record)) {
	v.Reserve(1)
	rec := v.slot(v.len)
	clear(rec.buf)
	init(rec)
	v.len++
}

// PushClone appends a byte copy of an initialized record. The record's
// stride must match this vector's shape.
func (v *FixedVec) PushClone(r Record) {
	if r.shape.Stride() != v.shape.Stride() {
		panic(fmt.Sprintf("dst: cloning record of shape %s into vector of shape %s", r.shape, v.shape))
	}
	v.Reserve(1)
	copy(v.slot(v.len).buf, r.buf)
	v.len++
}

// Get returns a view of the i-th initialized record. It panics when i is
// out of range.
func (v *FixedVec) Get(i int) Record {
	if i < 0 || i >= v.len {
		panic(fmt.Sprintf("dst: index %d out of range (len %d)", i, v.len))
	}
	return v.slot(i)
}

// slot returns the record view at index i without a bounds check; every
// caller has already established i < cap.
func (v *FixedVec) slot(i int) Record {
	stride := v.shape.Stride()
	off := i * stride
	return Record{
		buf:   v.buf[off : off+stride : off+stride],
		shape: v.shape,
	}
}

// Clear drops all records and resets the length to zero, retaining the
// allocation.
func (v *FixedVec) Clear() {
	v.len = 0
}

// SetLen declares that the first n records are initialized. It is the
// escape hatch for bulk-fill paths that write the backing buffer by
// other means; the caller must guarantee all n records genuinely hold
// valid bytes. It panics when n exceeds the capacity.
func (v *FixedVec) SetLen(n int) {
	if n < 0 || n > v.cap {
		panic(fmt.Sprintf("dst: SetLen(%d) out of range (cap %d)", n, v.cap))
	}
	v.len = n
}

// Fill appends n records filled by a single bulk write. It reserves
// room, passes the spare byte region for exactly n records to read, and
// advances the length only when read succeeds; on error the vector is
// unchanged.
func (v *FixedVec) Fill(n int, read func(spare []byte) error) error {
	v.Reserve(n)
	stride := v.shape.Stride()
	start := v.len * stride
	spare := v.buf[start : start+n*stride]
	if err := read(spare); err != nil {
		return err
	}
	v.len += n
	return nil
}
