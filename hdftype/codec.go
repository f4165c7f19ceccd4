package hdftype

import (
	"bytes"
	"encoding/binary"

	"github.com/Berrysoft/hdf5-ext/errors"
)

// Wire tags for the persisted schema form.
const (
	tagInteger byte = iota + 1
	tagUnsigned
	tagFloat
	tagBoolean
	tagFixedArray
	tagFixedText
	tagCompound
)

// EncodeDescriptor serializes a descriptor to its portable binary schema
// form. The encoding is little-endian, tag-prefixed and self-delimiting,
// so compounds nest without an outer length.
func EncodeDescriptor(d Descriptor) []byte {
	return appendDescriptor(nil, d)
}

func appendDescriptor(buf []byte, d Descriptor) []byte {
	switch t := d.(type) {
	case Integer:
		buf = append(buf, tagInteger, byte(t.Width))
	case Unsigned:
		buf = append(buf, tagUnsigned, byte(t.Width))
	case Float:
		buf = append(buf, tagFloat, byte(t.Width))
	case Boolean:
		buf = append(buf, tagBoolean)
	case FixedArray:
		buf = append(buf, tagFixedArray)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(t.Len))
		buf = appendDescriptor(buf, t.Elem)
	case FixedText:
		buf = append(buf, tagFixedText)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(t.Len))
	case *Compound:
		buf = append(buf, tagCompound)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(t.size))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.fields)))
		for _, f := range t.fields {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(len(f.Name)))
			buf = append(buf, f.Name...)
			buf = binary.LittleEndian.AppendUint64(buf, uint64(f.Offset))
			buf = appendDescriptor(buf, f.Type)
		}
	default:
		panic("hdftype: unknown descriptor")
	}
	return buf
}

// DecodeDescriptor parses a descriptor from its binary schema form.
func DecodeDescriptor(data []byte) (Descriptor, error) {
	d, rest, err := decodeDescriptor(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errors.InvalidData(errors.PhaseDecode, "trailing bytes after schema")
	}
	return d, nil
}

func decodeDescriptor(data []byte) (Descriptor, []byte, error) {
	if len(data) < 1 {
		return nil, nil, errors.InvalidData(errors.PhaseDecode, "truncated schema")
	}
	tag, data := data[0], data[1:]
	switch tag {
	case tagInteger, tagUnsigned, tagFloat:
		if len(data) < 1 {
			return nil, nil, errors.InvalidData(errors.PhaseDecode, "truncated primitive width")
		}
		width := uintptr(data[0])
		data = data[1:]
		switch width {
		case 1, 2, 4, 8:
		default:
			return nil, nil, errors.InvalidData(errors.PhaseDecode, "invalid primitive width")
		}
		switch tag {
		case tagInteger:
			return Integer{Width: width}, data, nil
		case tagUnsigned:
			return Unsigned{Width: width}, data, nil
		default:
			if width < 4 {
				return nil, nil, errors.InvalidData(errors.PhaseDecode, "invalid float width")
			}
			return Float{Width: width}, data, nil
		}
	case tagBoolean:
		return Boolean{}, data, nil
	case tagFixedArray:
		if len(data) < 8 {
			return nil, nil, errors.InvalidData(errors.PhaseDecode, "truncated array length")
		}
		n := binary.LittleEndian.Uint64(data)
		data = data[8:]
		elem, data, err := decodeDescriptor(data)
		if err != nil {
			return nil, nil, err
		}
		return FixedArray{Elem: elem, Len: uint(n)}, data, nil
	case tagFixedText:
		if len(data) < 8 {
			return nil, nil, errors.InvalidData(errors.PhaseDecode, "truncated text length")
		}
		n := binary.LittleEndian.Uint64(data)
		return FixedText{Len: uint(n)}, data[8:], nil
	case tagCompound:
		if len(data) < 12 {
			return nil, nil, errors.InvalidData(errors.PhaseDecode, "truncated compound header")
		}
		size := uintptr(binary.LittleEndian.Uint64(data))
		nfields := binary.LittleEndian.Uint32(data[8:])
		data = data[12:]
		c := &Compound{size: size, align: 1}
		for i := 0; i < int(nfields); i++ {
			if len(data) < 2 {
				return nil, nil, errors.InvalidData(errors.PhaseDecode, "truncated field name")
			}
			nameLen := int(binary.LittleEndian.Uint16(data))
			data = data[2:]
			if len(data) < nameLen+8 {
				return nil, nil, errors.InvalidData(errors.PhaseDecode, "truncated field")
			}
			name := string(data[:nameLen])
			offset := uintptr(binary.LittleEndian.Uint64(data[nameLen:]))
			data = data[nameLen+8:]
			ft, rest, err := decodeDescriptor(data)
			if err != nil {
				return nil, nil, err
			}
			data = rest
			c.fields = append(c.fields, CompoundField{
				Name:   name,
				Type:   ft,
				Offset: offset,
				Index:  i,
			})
			if a := ft.Alignment(); a > c.align {
				c.align = a
			}
		}
		return c, data, nil
	default:
		return nil, nil, errors.InvalidData(errors.PhaseDecode, "unknown schema tag")
	}
}

// Equal reports whether two descriptors declare byte-identical layouts.
func Equal(a, b Descriptor) bool {
	return bytes.Equal(EncodeDescriptor(a), EncodeDescriptor(b))
}
