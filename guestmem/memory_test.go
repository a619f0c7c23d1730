package guestmem

import "testing"

func TestValidateSizeAlignBounds(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 16))

	if _, err := ValidateSizeAlign(mem, 0, 1, 16); err != nil {
		t.Errorf("exact-fit access: %v", err)
	}
	if _, err := ValidateSizeAlign(mem, 0, 1, 17); err == nil {
		t.Errorf("expected out-of-bounds error")
	} else if e := err.(*Error); e.Kind != KindOutOfBounds {
		t.Errorf("expected OutOfBounds, got %v", e.Kind)
	}
	if _, err := ValidateSizeAlign(mem, 12, 1, 4); err != nil {
		t.Errorf("tail access: %v", err)
	}
	if _, err := ValidateSizeAlign(mem, 13, 1, 4); err == nil {
		t.Errorf("expected out-of-bounds error past the end")
	}
}

func TestValidateSizeAlignAlignment(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 16))
	base, _ := mem.Base()

	// Find an offset that is misaligned for align=4, relative to base.
	var misaligned uint32
	for off := uint32(0); off < 4; off++ {
		if (uintptr(base)+uintptr(off))%4 != 0 {
			misaligned = off
			break
		}
	}
	if (uintptr(base)+uintptr(misaligned))%4 == 0 {
		t.Skip("could not find a misaligned offset for this allocation")
	}
	if _, err := ValidateSizeAlign(mem, misaligned, 4, 4); err == nil {
		t.Errorf("expected alignment error at offset %d", misaligned)
	} else if e := err.(*Error); e.Kind != KindNotAligned {
		t.Errorf("expected NotAligned, got %v", e.Kind)
	}
}

func TestValidateSizeAlignOverflow(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 16))
	if _, err := ValidateSizeAlign(mem, 0xFFFFFFFF, 1, 2); err == nil {
		t.Errorf("expected overflow at max offset")
	} else if e := err.(*Error); e.Kind != KindOverflow {
		t.Errorf("expected PtrOverflow, got %v", e.Kind)
	}
}
