package guestmem

import "unsafe"

// Memory is the abstract handle a VM embedder hands to host code: the
// host-side address and current length of the guest's linear memory.
//
// Implementers must guarantee that the returned pointer/length pair
// describes a contiguous, readable, writable mapping for at least the
// duration over which guest code is not re-entered, and that the
// buffer does not move or resize while any host-visible raw pointer
// obtained through Base is in use. guestmem never extends the buffer;
// it only validates against the bounds Base currently reports.
type Memory interface {
	Base() (ptr uintptr, byteLen uint32)
}

// ValidateSizeAlign is the single primitive every other operation in
// this package funnels through. It checks that [offset, offset+length)
// lies within m's current bounds and that the resulting host address is
// aligned to align, returning the host address on success.
func ValidateSizeAlign(m Memory, offset uint32, align uintptr, length uint32) (uintptr, error) {
	// Guest offsets live in a 32-bit address space: offset+length must
	// itself fit in u32 before anything is computed against the host
	// pointer, regardless of how large the host's own address space is.
	guestEnd := uint64(offset) + uint64(length)
	if guestEnd > 0xFFFFFFFF {
		return 0, ErrOverflow()
	}

	base, baseLen := m.Base()
	if guestEnd > uint64(baseLen) {
		return 0, ErrOutOfBounds(Region{Start: offset, Len: length})
	}

	start := uint64(base) + uint64(offset)
	if start < uint64(base) {
		return 0, ErrOverflow()
	}
	if align > 1 && uintptr(start)%align != 0 {
		return 0, ErrNotAligned(Region{Start: offset, Len: length}, align)
	}
	return uintptr(start), nil
}

// SliceMemory is a Memory backed directly by a Go byte slice. It is
// meant for tests and for small stand-alone demos; a real embedder
// backs Memory with the VM's own linear-memory mapping instead.
type SliceMemory struct {
	buf []byte
}

// NewSliceMemory wraps buf as a Memory. buf's length is fixed for the
// lifetime of the SliceMemory; growth is out of scope for this package.
func NewSliceMemory(buf []byte) *SliceMemory {
	return &SliceMemory{buf: buf}
}

func (s *SliceMemory) Base() (uintptr, uint32) {
	if len(s.buf) == 0 {
		return 0, 0
	}
	return uintptr(unsafe.Pointer(&s.buf[0])), uint32(len(s.buf))
}

// Bytes exposes the backing slice directly, for test setup/assertions
// only; production trampolines never call this.
func (s *SliceMemory) Bytes() []byte {
	return s.buf
}
