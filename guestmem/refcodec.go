package guestmem

// PointerCodec, ArrayCodec and StringFieldCodec let a Pointer/Array/
// string-typed value be embedded as a record or union field: reading
// one decodes the guest offset (and, for arrays/strings, the trailing
// length) into the corresponding handle, without dereferencing the
// pointee. Guest offsets are always a 32-bit quantity regardless of the
// ABI target a schema is emitted for, since they index the guest's own
// (always wasm32) linear memory — only host-side "size" scalars vary
// with the target.

// PointerCodec embeds a Pointer[T] field: four bytes holding the
// pointee's guest offset.
type PointerCodec[T any] struct {
	Elem Codec[T]
}

func (c PointerCodec[T]) GuestSize() uint32   { return 4 }
func (c PointerCodec[T]) GuestAlign() uintptr { return 4 }

func (c PointerCodec[T]) ReadGuest(m Memory, offset uint32) (Pointer[T], error) {
	off, _ := U32.ReadGuest(m, offset)
	return NewPointer(m, off, c.Elem), nil
}

func (c PointerCodec[T]) WriteGuest(m Memory, offset uint32, v Pointer[T]) error {
	return U32.WriteGuest(m, offset, v.Offset())
}

// ArrayCodec embeds an ArrayPointer[T] field: an 8-byte (base, count)
// pair.
type ArrayCodec[T any] struct {
	Elem Codec[T]
}

func (c ArrayCodec[T]) GuestSize() uint32   { return 8 }
func (c ArrayCodec[T]) GuestAlign() uintptr { return 4 }

func (c ArrayCodec[T]) ReadGuest(m Memory, offset uint32) (ArrayPointer[T], error) {
	base, _ := U32.ReadGuest(m, offset)
	count, _ := U32.ReadGuest(m, offset+4)
	return NewArrayPointer(m, base, count, c.Elem), nil
}

func (c ArrayCodec[T]) WriteGuest(m Memory, offset uint32, v ArrayPointer[T]) error {
	if err := U32.WriteGuest(m, offset, v.OffsetBase()); err != nil {
		return err
	}
	return U32.WriteGuest(m, offset+4, v.Len())
}

// StringFieldCodec embeds a StringPointer field: an 8-byte (base,
// byte-length) pair, the length-prefixed form spec.md prefers over the
// older null-terminated convention.
type StringFieldCodec struct{}

var StringField = StringFieldCodec{}

func (StringFieldCodec) GuestSize() uint32   { return 8 }
func (StringFieldCodec) GuestAlign() uintptr { return 4 }

func (StringFieldCodec) ReadGuest(m Memory, offset uint32) (StringPointer, error) {
	base, _ := U32.ReadGuest(m, offset)
	length, _ := U32.ReadGuest(m, offset+4)
	return NewStringPointer(m, base, length), nil
}

func (StringFieldCodec) WriteGuest(m Memory, offset uint32, v StringPointer) error {
	if err := U32.WriteGuest(m, offset, v.OffsetBase()); err != nil {
		return err
	}
	return U32.WriteGuest(m, offset+4, v.Len())
}
