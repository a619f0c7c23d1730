package guestmem

// ValidateFlagMask checks that repr contains no bit outside mask,
// returning InvalidFlagValue(typeName) if it does. Generated flag-set
// codecs call this from ReadGuest/TryFrom after loading the raw repr
// integer.
func ValidateFlagMask(repr uint64, mask uint64, typeName string) error {
	if repr&^mask != 0 {
		return ErrInvalidFlagValue(typeName)
	}
	return nil
}

// ValidateEnumOrdinal checks that ordinal is a legal variant index for
// an enum with variantCount variants, returning
// InvalidEnumValue(typeName) if it is out of range.
func ValidateEnumOrdinal(ordinal uint64, variantCount uint64, typeName string) error {
	if ordinal >= variantCount {
		return ErrInvalidEnumValue(typeName)
	}
	return nil
}
