package guestmem

import "testing"

func writeBytes(mem *SliceMemory, offset uint32, data []byte) {
	copy(mem.Bytes()[offset:], data)
}

func TestStringAsRawValid(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 64))
	word := "δοκιμή" // a Greek word, multi-byte UTF-8
	writeBytes(mem, 0, []byte(word))

	sp := NewStringPointer(mem, 0, uint32(len(word)))
	l := NewLedger()
	got, err := sp.AsRaw(l)
	if err != nil {
		t.Fatalf("AsRaw: %v", err)
	}
	if got != word {
		t.Errorf("got %q, want %q", got, word)
	}
}

func TestStringAsRawInvalidUTF8(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 64))
	word := []byte("hello world")
	word[5] = 0xFF // flip a byte in the middle to something illegal as UTF-8
	writeBytes(mem, 0, word)

	sp := NewStringPointer(mem, 0, uint32(len(word)))
	l := NewLedger()
	if _, err := sp.AsRaw(l); err == nil {
		t.Fatalf("expected InvalidUtf8 error")
	} else if e := err.(*Error); e.Kind != KindInvalidUTF8 {
		t.Errorf("expected InvalidUtf8, got %v", e.Kind)
	}
}

func TestStringAsRawEmpty(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 16))
	sp := NewStringPointer(mem, 0, 0)
	l := NewLedger()
	got, err := sp.AsRaw(l)
	if err != nil {
		t.Fatalf("AsRaw: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
