package guestmem

import "testing"

func TestLedgerBorrowOverlap(t *testing.T) {
	l := NewLedger()
	if err := l.Borrow(Region{0, 8}); err != nil {
		t.Fatalf("first borrow: %v", err)
	}
	if err := l.Borrow(Region{8, 8}); err != nil {
		t.Fatalf("adjacent non-overlapping borrow: %v", err)
	}
	if err := l.Borrow(Region{4, 4}); err == nil {
		t.Fatalf("expected overlap error, got nil")
	} else if e, ok := err.(*Error); !ok || e.Kind != KindBorrowed {
		t.Fatalf("expected PtrBorrowed, got %v", err)
	}
}

func TestLedgerBorrowSameRegionTwice(t *testing.T) {
	l := NewLedger()
	r := Region{100, 10}
	if err := l.Borrow(r); err != nil {
		t.Fatalf("first borrow: %v", err)
	}
	if err := l.Borrow(r); err == nil {
		t.Fatalf("expected the second borrow of the same region to fail")
	}
}

func TestLedgerZeroLengthAlwaysAccepted(t *testing.T) {
	l := NewLedger()
	if err := l.Borrow(Region{0, 10}); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := l.Borrow(Region{5, 0}); err != nil {
			t.Fatalf("zero-length borrow #%d: %v", i, err)
		}
	}
}
