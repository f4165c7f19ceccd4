package pt

import (
	stderrors "errors"
	"testing"

	"github.com/Berrysoft/hdf5-ext/dst"
	"github.com/Berrysoft/hdf5-ext/errors"
	"github.com/Berrysoft/hdf5-ext/hdftype"
)

func TestAttrRoundTrip(t *testing.T) {
	table := newIntTable(t)

	want := []float64{1.5, -2.25, 3.125}
	if err := WriteAttr(table, "calibration", hdftype.F64, want); err != nil {
		t.Fatalf("write attr: %v", err)
	}

	got, err := ReadAttr[float64](table, "calibration", hdftype.F64)
	if err != nil {
		t.Fatalf("read attr: %v", err)
	}
	assertValues(t, got, want)
}

func TestAttrTypeMismatch(t *testing.T) {
	table := newIntTable(t)

	if err := WriteAttr(table, "calibration", hdftype.F64, []float64{1}); err != nil {
		t.Fatalf("write attr: %v", err)
	}
	_, err := ReadAttr[int64](table, "calibration", hdftype.I64)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseAttr, Kind: errors.KindTypeMismatch}) {
		t.Fatalf("err: got %v, want a type mismatch", err)
	}
}

func TestAttrMissing(t *testing.T) {
	table := newIntTable(t)

	_, err := ReadAttr[float64](table, "nope", hdftype.F64)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseAttr, Kind: errors.KindNotFound}) {
		t.Fatalf("err: got %v, want not found", err)
	}
}

func TestAttrUnsizedRoundTrip(t *testing.T) {
	store := openStore(t)
	shape := unsizedShape()

	table, err := NewBuilder(store).Chunk(8).DtypeUnsized(shape).Create("records")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer table.Close()

	vec := dst.NewFixedVec(shape, 2)
	fillVec(vec, 2)
	if err := table.WriteAttrUnsized("snapshot", vec); err != nil {
		t.Fatalf("write attr: %v", err)
	}

	out := dst.NewFixedVec(shape, 2)
	if err := table.ReadAttrUnsized("snapshot", out); err != nil {
		t.Fatalf("read attr: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("length: got %d, want 2", out.Len())
	}
	for i := 0; i < 2; i++ {
		if got, want := *dst.Header[uint32](out.Get(i)), *dst.Header[uint32](vec.Get(i)); got != want {
			t.Errorf("record %d header: got %d, want %d", i, got, want)
		}
	}

	// A vector of a different tail length must refuse the attribute.
	other := dst.NewFixedVec(dst.SliceOf[uint32, int64](hdftype.U32, hdftype.I64, 3), 2)
	err = table.ReadAttrUnsized("snapshot", other)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseAttr, Kind: errors.KindTypeMismatch}) {
		t.Fatalf("err: got %v, want a type mismatch", err)
	}
}
