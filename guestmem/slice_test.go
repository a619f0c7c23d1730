package guestmem

import "testing"

func TestArrayPointerIter(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 64))
	arr := NewArrayPointer[uint32](mem, 0, 4, U32)
	for i := uint32(0); i < 4; i++ {
		if err := NewPointer(mem, i*4, U32).Write(i * 10); err != nil {
			t.Fatalf("seed write %d: %v", i, err)
		}
	}

	var got []uint32
	arr.Iter(func(p Pointer[uint32], err error) bool {
		if err != nil {
			t.Fatalf("iter error: %v", err)
		}
		v, rerr := p.Read()
		if rerr != nil {
			t.Fatalf("read: %v", rerr)
		}
		got = append(got, v)
		return true
	})

	want := []uint32{0, 10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestArrayPointerAsRawZeroLength(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 16))
	l := NewLedger()
	arr := NewArrayPointer[uint32](mem, 0, 0, U32)
	out, err := AsRaw[uint32](arr, U32, l)
	if err != nil {
		t.Fatalf("AsRaw on empty slice: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got %v, want empty", out)
	}
}

func TestArrayPointerAsRawOverlap(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 64))
	l := NewLedger()
	a := NewArrayPointer[uint32](mem, 0, 4, U32)
	if _, err := AsRaw[uint32](a, U32, l); err != nil {
		t.Fatalf("first borrow: %v", err)
	}
	b := NewArrayPointer[uint32](mem, 4, 4, U32)
	if _, err := AsRaw[uint32](b, U32, l); err == nil {
		t.Fatalf("expected overlap error")
	}
}
