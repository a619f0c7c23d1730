package guestmem

import "unsafe"

// bytesAt views n bytes starting at a validated host address as a Go
// byte slice, aliasing guest memory rather than copying it.
func bytesAt(addr uintptr, n uint32) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

// unsafeBytesToString views b as a string without copying. b must not
// be mutated afterward for the lifetime of the returned string, which
// holds for guest byte ranges recorded in a Ledger for the duration of
// the borrow.
func unsafeBytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
