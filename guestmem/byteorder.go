package guestmem

import "unsafe"

// Guest memory is little-endian regardless of host byte order; these
// helpers read/write fixed-width integers directly at a validated host
// address. They assume the caller has already bounds/align-checked the
// access via ValidateSizeAlign.

func loadU8(addr uintptr) uint8   { return *(*uint8)(unsafe.Pointer(addr)) }
func storeU8(addr uintptr, v uint8) { *(*uint8)(unsafe.Pointer(addr)) = v }

func loadU16(addr uintptr) uint16 {
	var b [2]byte
	p := (*[2]byte)(unsafe.Pointer(addr))
	b = *p
	return uint16(b[0]) | uint16(b[1])<<8
}

func storeU16(addr uintptr, v uint16) {
	p := (*[2]byte)(unsafe.Pointer(addr))
	p[0] = byte(v)
	p[1] = byte(v >> 8)
}

func loadU32(addr uintptr) uint32 {
	p := (*[4]byte)(unsafe.Pointer(addr))
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
}

func storeU32(addr uintptr, v uint32) {
	p := (*[4]byte)(unsafe.Pointer(addr))
	p[0] = byte(v)
	p[1] = byte(v >> 8)
	p[2] = byte(v >> 16)
	p[3] = byte(v >> 24)
}

func loadU64(addr uintptr) uint64 {
	lo := uint64(loadU32(addr))
	hi := uint64(loadU32(addr + 4))
	return lo | hi<<32
}

func storeU64(addr uintptr, v uint64) {
	storeU32(addr, uint32(v))
	storeU32(addr+4, uint32(v>>32))
}
