package guestmem

// ReadField reads one field of a record/union type at fieldOffset
// (relative to the record's own base, already folded in by the
// caller), wrapping any error in InDataField so the failure's
// structural location survives up to the trampoline.
func ReadField[T any](recordName, fieldName string, m Memory, fieldOffset uint32, codec Codec[T]) (T, error) {
	v, err := NewPointer(m, fieldOffset, codec).Read()
	if err != nil {
		return v, WrapInField(recordName, fieldName, err)
	}
	return v, nil
}

// WriteField writes one field of a record/union type, wrapping any
// error in InDataField.
func WriteField[T any](recordName, fieldName string, m Memory, fieldOffset uint32, codec Codec[T], v T) error {
	if err := NewPointer(m, fieldOffset, codec).Write(v); err != nil {
		return WrapInField(recordName, fieldName, err)
	}
	return nil
}
