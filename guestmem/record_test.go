package guestmem

import (
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

type point struct {
	X int32
	Y int32
}

func readPoint(m Memory, offset uint32) (point, error) {
	var p point
	var err error
	p.X, err = ReadField("point", "x", m, offset+0, I32)
	if err != nil {
		return p, err
	}
	p.Y, err = ReadField("point", "y", m, offset+4, I32)
	if err != nil {
		return p, err
	}
	return p, nil
}

func writePoint(m Memory, offset uint32, p point) error {
	if err := WriteField("point", "x", m, offset+0, I32, p.X); err != nil {
		return err
	}
	return WriteField("point", "y", m, offset+4, I32, p.Y)
}

func TestRecordRoundTrip(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 64))
	want := point{X: -7, Y: 42}
	if err := writePoint(mem, 16, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := readPoint(mem, 16)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("round trip changed value: %s", diff)
	}
}

func TestRecordFieldErrorReportsLocation(t *testing.T) {
	mem := NewSliceMemory(make([]byte, 4))
	_, err := readPoint(mem, 0)
	if err == nil {
		t.Fatal("expected error reading past end of buffer")
	}
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error %v is not a *Error", err)
	}
	if gerr.Kind != KindInField {
		t.Fatalf("kind = %v, want InField", gerr.Kind)
	}
	if gerr.RecordName != "point" || gerr.FieldName != "y" {
		t.Fatalf("location = %s.%s, want point.y", gerr.RecordName, gerr.FieldName)
	}
}
