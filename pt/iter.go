package pt

// Iterator reads a table's records one by one with its own private
// cursor, starting at the first record. It never touches the table's
// read cursor, and it re-checks the record count on every step, so it
// observes records appended through the same handle between steps.
// Each call to Iterate yields a fresh, independent iterator.
type Iterator[T any] struct {
	t     *PacketTable
	index uint64
	val   T
	err   error
}

// Iterate creates an iterator over the table's records.
func Iterate[T any](t *PacketTable) *Iterator[T] {
	return &Iterator[T]{t: t}
}

// Next advances to the next record. It returns false at the end of the
// table or on the first error; check Err after the loop.
func (it *Iterator[T]) Next() bool {
	if it.err != nil {
		return false
	}
	count, err := it.t.NumPackets()
	if err != nil {
		it.err = err
		return false
	}
	if it.index >= count {
		return false
	}
	vals, err := Read[T](it.t, it.index, 1)
	if err != nil {
		it.err = err
		return false
	}
	it.val = vals[0]
	it.index++
	return true
}

// Value returns the record read by the last successful Next.
func (it *Iterator[T]) Value() T { return it.val }

// Err returns the first error hit by Next, if any.
func (it *Iterator[T]) Err() error { return it.err }
