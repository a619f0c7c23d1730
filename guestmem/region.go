// Package guestmem implements the host-side safe-access layer onto a
// sandboxed guest's linear memory: bounds/alignment-checked typed
// pointers, validated reads of enums, flag sets and strings, and an
// overlap ledger for raw borrows.
package guestmem

import "fmt"

// Region is a half-open byte range [Start, Start+Len) in guest address
// space. Start+Len is required not to overflow 33 bits; callers that
// construct a Region from untrusted offsets should go through
// ValidateSizeAlign rather than building one directly.
type Region struct {
	Start uint32
	Len   uint32
}

// End returns Start+Len widened to 64 bits so callers can compare
// regions without risking a wraparound.
func (r Region) End() uint64 {
	return uint64(r.Start) + uint64(r.Len)
}

func (r Region) String() string {
	return fmt.Sprintf("[%#x, %#x)", r.Start, r.End())
}

// Overlaps reports whether r and o describe intersecting half-open
// intervals. A zero-length region overlaps nothing, including itself.
func (r Region) Overlaps(o Region) bool {
	if r.Len == 0 || o.Len == 0 {
		return false
	}
	return uint64(r.Start) < o.End() && uint64(o.Start) < r.End()
}
