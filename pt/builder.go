package pt

import (
	"github.com/Berrysoft/hdf5-ext/dst"
	"github.com/Berrysoft/hdf5-ext/engine"
	"github.com/Berrysoft/hdf5-ext/errors"
	"github.com/Berrysoft/hdf5-ext/hdftype"
)

// Builder is the incomplete builder of a PacketTable. At least the chunk
// or a property list with a valid chunk must be set; when both are set,
// the chunk value overrides the property list's.
type Builder struct {
	eng   engine.Engine
	chunk uint
	props *engine.CreateProps
}

// NewBuilder starts a packet table builder against the given engine.
func NewBuilder(eng engine.Engine) *Builder {
	return &Builder{eng: eng}
}

// Chunk sets the chunk size of the packet table in records.
func (b *Builder) Chunk(n uint) *Builder {
	b.chunk = n
	return b
}

// Plist sets the creation property list.
func (b *Builder) Plist(p *engine.CreateProps) *Builder {
	b.props = p
	return b
}

// Dtype fixes the record type and completes the builder.
func (b *Builder) Dtype(d hdftype.Descriptor) *TypedBuilder {
	return &TypedBuilder{builder: b, dtype: d}
}

// DtypeUnsized fixes the record type from a dynamic record shape; the
// shape's tail length becomes part of the declared type.
func (b *Builder) DtypeUnsized(s dst.Shape) *TypedBuilder {
	return &TypedBuilder{builder: b, dtype: s.Descriptor()}
}

// TypedBuilder is a complete builder of a PacketTable.
type TypedBuilder struct {
	builder *Builder
	dtype   hdftype.Descriptor
}

// Chunk sets the chunk size of the packet table in records.
func (tb *TypedBuilder) Chunk(n uint) *TypedBuilder {
	tb.builder.Chunk(n)
	return tb
}

// Plist sets the creation property list.
func (tb *TypedBuilder) Plist(p *engine.CreateProps) *TypedBuilder {
	tb.builder.Plist(p)
	return tb
}

// Create creates the packet table. It fails with a configuration error
// before any engine resource is allocated when no chunking information
// was supplied, and with a name encoding error when the name cannot be
// represented in the engine's path encoding.
func (tb *TypedBuilder) Create(name string) (*PacketTable, error) {
	b := tb.builder
	if b.props != nil {
		if b.props.Chunk == 0 && b.chunk == 0 {
			return nil, errors.Configuration("invalid chunk")
		}
	} else if b.chunk == 0 {
		return nil, errors.Configuration("either plist or chunk need to be set")
	}
	h, err := b.eng.CreateTable(name, tb.dtype, b.chunk, b.props)
	if err != nil {
		return nil, err
	}
	return &PacketTable{eng: b.eng, h: h, name: name}, nil
}
