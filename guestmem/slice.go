package guestmem

import "unsafe"

// ArrayPointer is the slice form of a typed guest pointer: a base
// offset plus an element count, rather than the single offset a sized
// Pointer carries.
type ArrayPointer[T any] struct {
	mem    Memory
	offset uint32
	count  uint32
	codec  Codec[T]
}

// NewArrayPointer constructs a slice handle without validation.
func NewArrayPointer[T any](mem Memory, offset, count uint32, codec Codec[T]) ArrayPointer[T] {
	return ArrayPointer[T]{mem: mem, offset: offset, count: count, codec: codec}
}

func (a ArrayPointer[T]) Len() uint32         { return a.count }
func (a ArrayPointer[T]) OffsetBase() uint32  { return a.offset }
func (a ArrayPointer[T]) Mem() Memory         { return a.mem }

// AsPtr returns a sized Pointer[T] at the slice's base offset.
func (a ArrayPointer[T]) AsPtr() Pointer[T] {
	return Pointer[T]{mem: a.mem, offset: a.offset, codec: a.codec}
}

// elemOffset computes the byte offset of element i, failing
// PtrOverflow on arithmetic wrap exactly as Pointer.Add does.
func (a ArrayPointer[T]) elemOffset(i uint32) (uint32, error) {
	size := uint64(a.codec.GuestSize())
	delta := size * uint64(i)
	if delta > 0xFFFFFFFF {
		return 0, ErrOverflow()
	}
	off := uint64(a.offset) + delta
	if off > 0xFFFFFFFF {
		return 0, ErrOverflow()
	}
	return uint32(off), nil
}

// Iter yields a Pointer[T] for each element in order. yield's second
// argument is non-nil only if computing that element's offset
// overflowed, in which case iteration stops there.
func (a ArrayPointer[T]) Iter(yield func(Pointer[T], error) bool) {
	for i := uint32(0); i < a.count; i++ {
		off, err := a.elemOffset(i)
		if err != nil {
			yield(Pointer[T]{}, err)
			return
		}
		if !yield(Pointer[T]{mem: a.mem, offset: off, codec: a.codec}, nil) {
			return
		}
	}
}

// AsRaw validates bounds/alignment for the whole n*sizeof(T) byte
// range, records it in ledger (failing PtrBorrowed on overlap with an
// already-held region), validates every element's transparent layout,
// and returns a raw Go slice aliasing guest memory directly.
//
// AsRaw is only defined for codecs implementing Transparent: anything
// whose host representation isn't bit-identical to the guest's (enums,
// flag sets, any record/union containing one) cannot be borrowed as a
// raw slice and must be read element-by-element instead.
func AsRaw[T any](a ArrayPointer[T], codec Transparent[T], ledger *Ledger) ([]T, error) {
	size := codec.GuestSize()
	totalLen := uint64(size) * uint64(a.count)
	if totalLen > 0xFFFFFFFF {
		return nil, ErrOverflow()
	}

	start, err := ValidateSizeAlign(a.mem, a.offset, codec.GuestAlign(), uint32(totalLen))
	if err != nil {
		return nil, err
	}

	region := Region{Start: a.offset, Len: uint32(totalLen)}
	if err := ledger.Borrow(region); err != nil {
		return nil, err
	}

	for i := uint32(0); i < a.count; i++ {
		off, err := a.elemOffset(i)
		if err != nil {
			return nil, err
		}
		if err := codec.ValidateTransparent(a.mem, off); err != nil {
			return nil, err
		}
	}

	if a.count == 0 {
		return []T{}, nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(start)), a.count), nil
}
