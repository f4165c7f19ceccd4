// Package hdf5ext provides typed packet table storage for dynamically
// sized records.
//
// A dynamically sized record is a fixed header followed by a
// variable-length tail whose length is fixed per table. Records are
// stored byte-exactly in append-only chunked tables behind a narrow
// storage-engine boundary.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	hdf5ext/          Root package (documentation only)
//	├── pt/           High-level packet table API: builder, typed access,
//	│                 cursors, iterators, buffered writers, attributes
//	├── dst/          Dynamically sized records: shapes, fat record views
//	│                 and the FixedVec record arena
//	├── hdftype/      Type descriptors, layout computation and the binary
//	│                 schema codec
//	├── engine/       Storage engine boundary and its leveldb-backed
//	│                 implementation
//	└── errors/       Structured error types for debugging
//
// # Quick Start
//
// Create a table of unsized records and append to it:
//
//	store, _ := engine.Open("data.db")
//	defer store.Close()
//
//	shape := dst.SliceOf[uint32, float64](hdftype.U32, hdftype.F64, 16)
//	table, _ := pt.NewBuilder(store).
//		Chunk(64).
//		DtypeUnsized(shape).
//		Create("frames")
//	defer table.Close()
//
//	w := pt.NewBufWriter(table, shape, 8)
//	w.PushWith(func(r dst.Record) {
//		dst.SetHeader[uint32](r, 1)
//		dst.TailSlice[float64](r)[0] = 0.5
//	})
//	w.Close()
package hdf5ext
