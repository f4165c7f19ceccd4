// Package pt implements packet tables: append-only chunked tables of
// records, fixed-size or dynamically sized, persisted through the
// engine package.
//
// A table is created through the builder, which requires a record type
// and chunking information:
//
//	table, err := pt.NewBuilder(store).
//		Chunk(16).
//		Dtype(hdftype.I32).
//		Create("data")
//
// Fixed-size records move through the generic entry points:
//
//	pt.Append(table, []int32{1, 1, 4, 5, 1, 4})
//	vals, err := pt.Read[int32](table, 0, 6)
//
// Dynamically sized records move through dst.FixedVec:
//
//	table.AppendUnsized(vec)
//	table.ReadUnsized(0, vec.Len(), out)
//
// Reads either address an explicit range (Read, ReadUnsized), which
// never touches the read cursor, or consume the table sequentially
// (ReadNext, ReadNextUnsized), which advances it. Iterate walks the
// table with its own private cursor.
//
// BufWriter batches pushes into one append per bufLen records; it must
// be Closed so the last partial batch is flushed.
package pt
