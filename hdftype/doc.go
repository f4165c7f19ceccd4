// Package hdftype provides type descriptors and layout computation for
// records stored in a typed-storage engine.
//
// A Descriptor declares the byte-exact layout of a stored type:
// primitives, fixed arrays, fixed-length text, and compounds with named
// fields at computed offsets. Layout follows the extend-and-pad rules of
// a systems ABI, so a compound built from a Go struct's fields in
// declaration order reproduces that struct's in-memory layout exactly.
//
// # Building compounds
//
// List the fields in declaration order and assert against the struct:
//
//	type Foo struct {
//		Field1 int32
//		Field2 int64
//	}
//
//	desc := hdftype.Of[Foo](hdftype.NewCompound().
//		Field("field1", hdftype.I32).
//		Field("field2", hdftype.I64))
//
// Of panics when the computed layout disagrees with the struct's true
// footprint; that divergence is a programming error, not a recoverable
// condition.
//
// # Dynamically sized records
//
// Unsized describes a fixed header followed by a variable-length tail
// whose length is fixed per descriptor at runtime:
//
//	desc := hdftype.Unsized(hdftype.U32, hdftype.I64, 6)
//
// # Schema persistence
//
// EncodeDescriptor and DecodeDescriptor convert descriptors to and from
// the portable binary schema form the storage engine persists.
package hdftype
