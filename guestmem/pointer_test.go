package guestmem

import "testing"

func TestPointerReadWriteRoundTrip(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 64))

	p32 := NewPointer[int32](mem, 8, I32)
	if err := p32.Write(-12345); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := p32.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != -12345 {
		t.Errorf("got %d, want -12345", got)
	}

	pf := NewPointer[float32](mem, 16, F32)
	if err := pf.Write(4.0); err != nil {
		t.Fatalf("write float: %v", err)
	}
	if f, err := pf.Read(); err != nil || f != 4.0 {
		t.Errorf("read float = %v, %v; want 4.0, nil", f, err)
	}

	pu64 := NewPointer[uint64](mem, 24, U64)
	if err := pu64.Write(0xDEADBEEFCAFE); err != nil {
		t.Fatalf("write u64: %v", err)
	}
	if v, err := pu64.Read(); err != nil || v != 0xDEADBEEFCAFE {
		t.Errorf("read u64 = %#x, %v; want 0xdeadbeefcafe, nil", v, err)
	}
}

func TestPointerAddOverflow(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 64))
	p := NewPointer[int32](mem, 0xFFFFFFF0, I32)
	if _, err := p.Add(5); err == nil {
		t.Fatalf("expected overflow advancing near u32::MAX")
	}

	p2 := NewPointer[int32](mem, 0, I32)
	if q, err := p2.Add(3); err != nil {
		t.Fatalf("add: %v", err)
	} else if q.Offset() != 12 {
		t.Errorf("offset = %d, want 12", q.Offset())
	}
}

func TestPointerOutOfBounds(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 4))
	p := NewPointer[int64](mem, 0, I64)
	if _, err := p.Read(); err == nil {
		t.Fatalf("expected out-of-bounds reading an 8-byte value from a 4-byte buffer")
	}
}
