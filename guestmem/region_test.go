package guestmem

import "testing"

func TestRegionOverlaps(t *testing.T) {
	cases := []struct {
		a, b Region
		want bool
	}{
		{Region{0, 4}, Region{4, 4}, false},
		{Region{0, 4}, Region{3, 4}, true},
		{Region{0, 0}, Region{0, 4}, false},
		{Region{0, 4}, Region{0, 0}, false},
		{Region{10, 5}, Region{5, 5}, false},
		{Region{10, 5}, Region{5, 6}, true},
	}
	for _, c := range cases {
		if got := c.a.Overlaps(c.b); got != c.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := c.b.Overlaps(c.a); got != c.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v (not symmetric)", c.b, c.a, got, c.want)
		}
	}
}

func TestRegionEndOverflow(t *testing.T) {
	r := Region{Start: 0xFFFFFFFF, Len: 2}
	if r.End() != 0x100000001 {
		t.Errorf("End() = %#x, want widened 33-bit sum", r.End())
	}
}
