package generate

import "strings"

// splitWords breaks a schema identifier (snake_case, kebab-case, or
// already-mixed-case) into its component words.
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '_' || r == '-':
			flush()
		case r >= 'A' && r <= 'Z':
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

// UpperCamel converts a schema identifier to UpperCamelCase, the
// spelling used for emitted type names and (with the error-code
// exception below) enum variant names.
func UpperCamel(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		if w == "" {
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}

// ShoutySnake converts a schema identifier to SHOUTY_SNAKE_CASE, the
// spelling used for emitted flag member constants.
func ShoutySnake(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, "_")
}

// LowerCamel converts a schema identifier to lowerCamelCase.
func LowerCamel(s string) string {
	u := UpperCamel(s)
	if u == "" {
		return u
	}
	return strings.ToLower(u[:1]) + u[1:]
}

// ErrnoVariant applies the one deliberate naming exception spec.md
// calls out: variants of an error-code enum are prefixed "E" and
// lowerCamelCased, both to avoid colliding with the enum type's own
// UpperCamelCase name and to mirror POSIX errno mnemonics (EINVAL,
// ENOENT, ...).
func ErrnoVariant(s string) string {
	return "E" + LowerCamel(s)
}
