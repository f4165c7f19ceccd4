package hdftype

import (
	"fmt"
	"strings"
)

// Descriptor describes the byte-exact in-memory layout of a stored type.
// Implementations are Integer, Unsigned, Float, Boolean, FixedArray,
// FixedText and Compound.
type Descriptor interface {
	// ByteSize returns the total size of a value of this type in bytes.
	ByteSize() uintptr
	// Alignment returns the required alignment of a value of this type.
	Alignment() uintptr
	String() string

	isDescriptor()
}

// Integer is a signed integer of Width bytes (1, 2, 4 or 8).
type Integer struct {
	Width uintptr
}

// Unsigned is an unsigned integer of Width bytes (1, 2, 4 or 8).
type Unsigned struct {
	Width uintptr
}

// Float is an IEEE 754 floating point number of Width bytes (4 or 8).
type Float struct {
	Width uintptr
}

// Boolean is a single-byte truth value.
type Boolean struct{}

// FixedArray is a contiguous run of Len elements of a uniform element type.
type FixedArray struct {
	Elem Descriptor
	Len  uint
}

// FixedText is a fixed-length run of Len bytes of text.
type FixedText struct {
	Len uint
}

// Predeclared primitive descriptors.
var (
	I8   = Integer{Width: 1}
	I16  = Integer{Width: 2}
	I32  = Integer{Width: 4}
	I64  = Integer{Width: 8}
	U8   = Unsigned{Width: 1}
	U16  = Unsigned{Width: 2}
	U32  = Unsigned{Width: 4}
	U64  = Unsigned{Width: 8}
	F32  = Float{Width: 4}
	F64  = Float{Width: 8}
	Bool = Boolean{}
)

func (d Integer) ByteSize() uintptr  { return d.Width }
func (d Integer) Alignment() uintptr { return d.Width }
func (d Integer) String() string     { return fmt.Sprintf("i%d", d.Width*8) }
func (Integer) isDescriptor()        {}

func (d Unsigned) ByteSize() uintptr  { return d.Width }
func (d Unsigned) Alignment() uintptr { return d.Width }
func (d Unsigned) String() string     { return fmt.Sprintf("u%d", d.Width*8) }
func (Unsigned) isDescriptor()        {}

func (d Float) ByteSize() uintptr  { return d.Width }
func (d Float) Alignment() uintptr { return d.Width }
func (d Float) String() string     { return fmt.Sprintf("f%d", d.Width*8) }
func (Float) isDescriptor()        {}

func (Boolean) ByteSize() uintptr  { return 1 }
func (Boolean) Alignment() uintptr { return 1 }
func (Boolean) String() string     { return "bool" }
func (Boolean) isDescriptor()      {}

func (d FixedArray) ByteSize() uintptr  { return d.Elem.ByteSize() * uintptr(d.Len) }
func (d FixedArray) Alignment() uintptr { return d.Elem.Alignment() }
func (d FixedArray) String() string     { return fmt.Sprintf("[%d]%s", d.Len, d.Elem) }
func (FixedArray) isDescriptor()        {}

func (d FixedText) ByteSize() uintptr  { return uintptr(d.Len) }
func (d FixedText) Alignment() uintptr { return 1 }
func (d FixedText) String() string     { return fmt.Sprintf("text[%d]", d.Len) }
func (FixedText) isDescriptor()        {}

// CompoundField is one member of a compound type. It is created once when
// the compound is built and immutable afterward.
type CompoundField struct {
	Name string
	Type Descriptor
	// Offset is the byte offset from the start of the compound.
	Offset uintptr
	// Index is the field's declaration position.
	Index int
}

// Compound is an ordered sequence of named fields with computed offsets.
// Its size is the padded sum of the fields' extents under the target
// alignment rules; construct one through CompoundBuilder.
type Compound struct {
	fields []CompoundField
	size   uintptr
	align  uintptr
}

func (c *Compound) ByteSize() uintptr  { return c.size }
func (c *Compound) Alignment() uintptr { return c.align }
func (*Compound) isDescriptor()        {}

// Fields returns the compound's members in declaration order.
// The returned slice must not be modified.
func (c *Compound) Fields() []CompoundField { return c.fields }

func (c *Compound) String() string {
	var b strings.Builder
	b.WriteString("compound{")
	for i, f := range c.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s:%s@%d", f.Name, f.Type, f.Offset)
	}
	fmt.Fprintf(&b, "}[%d]", c.size)
	return b.String()
}
