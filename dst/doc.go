// Package dst stores dynamically sized records: values made of a fixed
// header followed by a variable-length tail whose length is only known
// at construction.
//
// The tail length is metadata carried beside the value, never inside it.
// A Record is therefore a fat reference (bytes plus Shape); a FixedVec is
// an arena of fixed-stride slots all sharing one Shape, with a
// valid-prefix length that only advances through initialization entry
// points.
//
//	shape := dst.SliceOf[uint32, int64](hdftype.U32, hdftype.I64, 6)
//	vec := dst.NewFixedVec(shape, 8)
//	vec.PushWith(func(r dst.Record) {
//		dst.SetHeader[uint32](r, 114514)
//		dst.SetTail(r, []int64{1, 1, 4, 5, 1, 4})
//	})
package dst
