package dst

import (
	"errors"
	"testing"

	"github.com/Berrysoft/hdf5-ext/hdftype"
)

func testShape() Shape {
	return SliceOf[uint32, int64](hdftype.U32, hdftype.I64, 6)
}

func TestShapeStride(t *testing.T) {
	s := testShape()
	// u32 header, tail aligned to 8, six i64 elements.
	if s.Stride() != 56 {
		t.Errorf("stride: got %d, want 56", s.Stride())
	}
	if s.TailOffset() != 8 {
		t.Errorf("tail offset: got %d, want 8", s.TailOffset())
	}
	if s.TailLen() != 6 {
		t.Errorf("tail length: got %d, want 6", s.TailLen())
	}
}

func TestFixedShape(t *testing.T) {
	s := Fixed(hdftype.I32)
	if s.Stride() != 4 {
		t.Errorf("stride: got %d, want 4", s.Stride())
	}
	if s.TailLen() != 0 {
		t.Errorf("tail length: got %d, want 0", s.TailLen())
	}
}

func TestPushWithAndGet(t *testing.T) {
	vec := NewFixedVec(testShape(), 4)
	if vec.Len() != 0 {
		t.Fatalf("new vector length: got %d, want 0", vec.Len())
	}

	vec.PushWith(func(r Record) {
		SetHeader[uint32](r, 114514)
		SetTail(r, []int64{1, 1, 4, 5, 1, 4})
	})

	if vec.Len() != 1 {
		t.Fatalf("length after push: got %d, want 1", vec.Len())
	}
	r := vec.Get(0)
	if got := *Header[uint32](r); got != 114514 {
		t.Errorf("header: got %d, want 114514", got)
	}
	tail := TailSlice[int64](r)
	want := []int64{1, 1, 4, 5, 1, 4}
	for i := range want {
		if tail[i] != want[i] {
			t.Errorf("tail[%d]: got %d, want %d", i, tail[i], want[i])
		}
	}
}

func TestCapacityDiscipline(t *testing.T) {
	vec := NewFixedVec(testShape(), 2)
	for i := 0; i < 100; i++ {
		vec.PushWith(func(r Record) {
			SetHeader[uint32](r, uint32(i))
			SetTail(r, []int64{0, 1, 2, 3, 4, 5})
		})
		if vec.Len() > vec.Cap() {
			t.Fatalf("length %d exceeded capacity %d", vec.Len(), vec.Cap())
		}
	}
	if vec.Len() != 100 {
		t.Errorf("length: got %d, want 100", vec.Len())
	}
	for i := 0; i < 100; i++ {
		if got := *Header[uint32](vec.Get(i)); got != uint32(i) {
			t.Errorf("record %d header: got %d", i, got)
		}
	}
}

func TestReservePreservesRecords(t *testing.T) {
	vec := NewFixedVec(testShape(), 1)
	vec.PushWith(func(r Record) {
		SetHeader[uint32](r, 42)
		SetTail(r, []int64{9, 8, 7, 6, 5, 4})
	})

	vec.Reserve(1000)
	if vec.Cap() < 1001 {
		t.Errorf("capacity after reserve: got %d, want >= 1001", vec.Cap())
	}
	if got := *Header[uint32](vec.Get(0)); got != 42 {
		t.Errorf("header after reserve: got %d, want 42", got)
	}
	if got := TailSlice[int64](vec.Get(0))[0]; got != 9 {
		t.Errorf("tail after reserve: got %d, want 9", got)
	}
}

func TestClearRetainsCapacity(t *testing.T) {
	vec := NewFixedVec(testShape(), 8)
	for i := 0; i < 5; i++ {
		vec.PushWith(func(r Record) {
			SetHeader[uint32](r, 1)
			SetTail(r, []int64{0, 0, 0, 0, 0, 0})
		})
	}
	cap := vec.Cap()
	vec.Clear()
	if vec.Len() != 0 {
		t.Errorf("length after clear: got %d, want 0", vec.Len())
	}
	if vec.Cap() != cap {
		t.Errorf("capacity after clear: got %d, want %d", vec.Cap(), cap)
	}
}

func TestPushWithZeroesReusedSlots(t *testing.T) {
	vec := NewFixedVec(testShape(), 1)
	vec.PushWith(func(r Record) {
		SetHeader[uint32](r, 0xffffffff)
		SetTail(r, []int64{-1, -1, -1, -1, -1, -1})
	})
	vec.Clear()
	vec.PushWith(func(r Record) {})

	if got := *Header[uint32](vec.Get(0)); got != 0 {
		t.Errorf("reused slot header: got %d, want 0", got)
	}
	for i, e := range TailSlice[int64](vec.Get(0)) {
		if e != 0 {
			t.Errorf("reused slot tail[%d]: got %d, want 0", i, e)
		}
	}
}

func TestPushClone(t *testing.T) {
	vec := NewFixedVec(testShape(), 2)
	vec.PushWith(func(r Record) {
		SetHeader[uint32](r, 7)
		SetTail(r, []int64{1, 2, 3, 4, 5, 6})
	})
	vec.PushClone(vec.Get(0))

	if vec.Len() != 2 {
		t.Fatalf("length: got %d, want 2", vec.Len())
	}
	if got := *Header[uint32](vec.Get(1)); got != 7 {
		t.Errorf("cloned header: got %d, want 7", got)
	}
	if got := TailSlice[int64](vec.Get(1))[5]; got != 6 {
		t.Errorf("cloned tail[5]: got %d, want 6", got)
	}
}

func TestGetOutOfRangePanics(t *testing.T) {
	vec := NewFixedVec(testShape(), 4)
	vec.PushWith(func(r Record) {
		SetHeader[uint32](r, 1)
		SetTail(r, []int64{0, 0, 0, 0, 0, 0})
	})

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an index past the initialized prefix")
		}
	}()
	vec.Get(1)
}

func TestSetLenBeyondCapacityPanics(t *testing.T) {
	vec := NewFixedVec(testShape(), 4)
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for SetLen past the capacity")
		}
	}()
	vec.SetLen(5)
}

func TestFill(t *testing.T) {
	vec := NewFixedVec(testShape(), 1)
	vec.PushWith(func(r Record) {
		SetHeader[uint32](r, 1)
		SetTail(r, []int64{0, 0, 0, 0, 0, 0})
	})

	t.Run("error_leaves_vector_unchanged", func(t *testing.T) {
		boom := errors.New("read failed")
		err := vec.Fill(3, func(spare []byte) error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("err: got %v", err)
		}
		if vec.Len() != 1 {
			t.Errorf("length after failed fill: got %d, want 1", vec.Len())
		}
	})

	t.Run("success_advances_length", func(t *testing.T) {
		err := vec.Fill(2, func(spare []byte) error {
			if len(spare) != 2*vec.Shape().Stride() {
				t.Errorf("spare size: got %d, want %d", len(spare), 2*vec.Shape().Stride())
			}
			for i := range spare {
				spare[i] = 0xab
			}
			return nil
		})
		if err != nil {
			t.Fatalf("fill: %v", err)
		}
		if vec.Len() != 3 {
			t.Errorf("length after fill: got %d, want 3", vec.Len())
		}
		// Record 0 must be untouched by the fill.
		if got := *Header[uint32](vec.Get(0)); got != 1 {
			t.Errorf("record 0 header: got %d, want 1", got)
		}
	})
}

func TestBytesCoversInitializedPrefixOnly(t *testing.T) {
	vec := NewFixedVec(testShape(), 8)
	vec.PushWith(func(r Record) {
		SetHeader[uint32](r, 1)
		SetTail(r, []int64{0, 0, 0, 0, 0, 0})
	})
	if got := len(vec.Bytes()); got != vec.Shape().Stride() {
		t.Errorf("bytes length: got %d, want %d", got, vec.Shape().Stride())
	}
}
