package guestmem

// Built-in numeric codecs. Every bit pattern of a built-in integer or
// float type is legal, so these never fail validation themselves —
// only the bounds/align check ValidateSizeAlign performs ahead of them
// can fail. All are Transparent: their host representation is exactly
// the guest's little-endian bytes.

type i8Codec struct{}
type i16Codec struct{}
type i32Codec struct{}
type i64Codec struct{}
type u8Codec struct{}
type u16Codec struct{}
type u32Codec struct{}
type u64Codec struct{}
type f32Codec struct{}
type f64Codec struct{}

// I8, I16, ... are the shared stateless codec instances generated code
// and guestmem's own slice/string helpers use for the built-in widths.
var (
	I8  = i8Codec{}
	I16 = i16Codec{}
	I32 = i32Codec{}
	I64 = i64Codec{}
	U8  = u8Codec{}
	U16 = u16Codec{}
	U32 = u32Codec{}
	U64 = u64Codec{}
	F32 = f32Codec{}
	F64 = f64Codec{}
)

func (i8Codec) GuestSize() uint32    { return 1 }
func (i8Codec) GuestAlign() uintptr  { return 1 }
func (i8Codec) ReadGuest(m Memory, off uint32) (int8, error) {
	base, _ := m.Base()
	return int8(loadU8(base + uintptr(off))), nil
}
func (i8Codec) WriteGuest(m Memory, off uint32, v int8) error {
	base, _ := m.Base()
	storeU8(base+uintptr(off), uint8(v))
	return nil
}
func (i8Codec) ValidateTransparent(Memory, uint32) error { return nil }

func (u8Codec) GuestSize() uint32   { return 1 }
func (u8Codec) GuestAlign() uintptr { return 1 }
func (u8Codec) ReadGuest(m Memory, off uint32) (uint8, error) {
	base, _ := m.Base()
	return loadU8(base + uintptr(off)), nil
}
func (u8Codec) WriteGuest(m Memory, off uint32, v uint8) error {
	base, _ := m.Base()
	storeU8(base+uintptr(off), v)
	return nil
}
func (u8Codec) ValidateTransparent(Memory, uint32) error { return nil }

func (i16Codec) GuestSize() uint32   { return 2 }
func (i16Codec) GuestAlign() uintptr { return 2 }
func (i16Codec) ReadGuest(m Memory, off uint32) (int16, error) {
	base, _ := m.Base()
	return int16(loadU16(base + uintptr(off))), nil
}
func (i16Codec) WriteGuest(m Memory, off uint32, v int16) error {
	base, _ := m.Base()
	storeU16(base+uintptr(off), uint16(v))
	return nil
}
func (i16Codec) ValidateTransparent(Memory, uint32) error { return nil }

func (u16Codec) GuestSize() uint32   { return 2 }
func (u16Codec) GuestAlign() uintptr { return 2 }
func (u16Codec) ReadGuest(m Memory, off uint32) (uint16, error) {
	base, _ := m.Base()
	return loadU16(base + uintptr(off)), nil
}
func (u16Codec) WriteGuest(m Memory, off uint32, v uint16) error {
	base, _ := m.Base()
	storeU16(base+uintptr(off), v)
	return nil
}
func (u16Codec) ValidateTransparent(Memory, uint32) error { return nil }

func (i32Codec) GuestSize() uint32   { return 4 }
func (i32Codec) GuestAlign() uintptr { return 4 }
func (i32Codec) ReadGuest(m Memory, off uint32) (int32, error) {
	base, _ := m.Base()
	return int32(loadU32(base + uintptr(off))), nil
}
func (i32Codec) WriteGuest(m Memory, off uint32, v int32) error {
	base, _ := m.Base()
	storeU32(base+uintptr(off), uint32(v))
	return nil
}
func (i32Codec) ValidateTransparent(Memory, uint32) error { return nil }

func (u32Codec) GuestSize() uint32   { return 4 }
func (u32Codec) GuestAlign() uintptr { return 4 }
func (u32Codec) ReadGuest(m Memory, off uint32) (uint32, error) {
	base, _ := m.Base()
	return loadU32(base + uintptr(off)), nil
}
func (u32Codec) WriteGuest(m Memory, off uint32, v uint32) error {
	base, _ := m.Base()
	storeU32(base+uintptr(off), v)
	return nil
}
func (u32Codec) ValidateTransparent(Memory, uint32) error { return nil }

func (i64Codec) GuestSize() uint32   { return 8 }
func (i64Codec) GuestAlign() uintptr { return 8 }
func (i64Codec) ReadGuest(m Memory, off uint32) (int64, error) {
	base, _ := m.Base()
	return int64(loadU64(base + uintptr(off))), nil
}
func (i64Codec) WriteGuest(m Memory, off uint32, v int64) error {
	base, _ := m.Base()
	storeU64(base+uintptr(off), uint64(v))
	return nil
}
func (i64Codec) ValidateTransparent(Memory, uint32) error { return nil }

func (u64Codec) GuestSize() uint32   { return 8 }
func (u64Codec) GuestAlign() uintptr { return 8 }
func (u64Codec) ReadGuest(m Memory, off uint32) (uint64, error) {
	base, _ := m.Base()
	return loadU64(base + uintptr(off)), nil
}
func (u64Codec) WriteGuest(m Memory, off uint32, v uint64) error {
	base, _ := m.Base()
	storeU64(base+uintptr(off), v)
	return nil
}
func (u64Codec) ValidateTransparent(Memory, uint32) error { return nil }

func (f32Codec) GuestSize() uint32   { return 4 }
func (f32Codec) GuestAlign() uintptr { return 4 }
func (f32Codec) ReadGuest(m Memory, off uint32) (float32, error) {
	base, _ := m.Base()
	return float32FromBits(loadU32(base + uintptr(off))), nil
}
func (f32Codec) WriteGuest(m Memory, off uint32, v float32) error {
	base, _ := m.Base()
	storeU32(base+uintptr(off), float32Bits(v))
	return nil
}
func (f32Codec) ValidateTransparent(Memory, uint32) error { return nil }

func (f64Codec) GuestSize() uint32   { return 8 }
func (f64Codec) GuestAlign() uintptr { return 8 }
func (f64Codec) ReadGuest(m Memory, off uint32) (float64, error) {
	base, _ := m.Base()
	return float64FromBits(loadU64(base + uintptr(off))), nil
}
func (f64Codec) WriteGuest(m Memory, off uint32, v float64) error {
	base, _ := m.Base()
	storeU64(base+uintptr(off), float64Bits(v))
	return nil
}
func (f64Codec) ValidateTransparent(Memory, uint32) error { return nil }
