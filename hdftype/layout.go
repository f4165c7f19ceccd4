package hdftype

// AlignUp rounds n up to the next multiple of align.
func AlignUp(n, align uintptr) uintptr {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

// Extent accumulates the footprint of a compound as fields are appended,
// reproducing the extend-and-pad rules of a systems ABI: each field lands
// at the smallest multiple of its alignment at or past the current size,
// and the compound's alignment grows to the maximum seen.
type Extent struct {
	size  uintptr
	align uintptr
}

// NewExtent returns the empty extent: size 0, alignment 1 (the unit type).
func NewExtent() Extent {
	return Extent{size: 0, align: 1}
}

// Extend appends a field of the given size and alignment and returns the
// byte offset assigned to it.
func (e *Extent) Extend(size, align uintptr) uintptr {
	if align < 1 {
		align = 1
	}
	offset := AlignUp(e.size, align)
	e.size = offset + size
	if align > e.align {
		e.align = align
	}
	return offset
}

// PadToAlign rounds the accumulated size up to the accumulated alignment.
// Call once after the last field.
func (e *Extent) PadToAlign() {
	e.size = AlignUp(e.size, e.align)
}

// Size returns the accumulated size in bytes.
func (e Extent) Size() uintptr { return e.size }

// Align returns the accumulated alignment in bytes.
func (e Extent) Align() uintptr { return e.align }
