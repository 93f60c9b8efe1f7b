package nsarchive

import (
	"errors"
	"testing"
)

func TestDecodeSizeParsesWithAndWithoutSpace(t *testing.T) {
	a := New(map[string]interface{}{}, nil)

	got, err := DecodeSize(a, "{100, 200}")
	if err != nil {
		t.Fatalf("DecodeSize: %v", err)
	}
	if got != (Size{Width: 100, Height: 200}) {
		t.Fatalf("DecodeSize = %+v", got)
	}

	got, err = DecodeSize(a, "{100,200}")
	if err != nil {
		t.Fatalf("DecodeSize (no space): %v", err)
	}
	if got != (Size{Width: 100, Height: 200}) {
		t.Fatalf("DecodeSize (no space) = %+v", got)
	}
}

func TestDecodeSizeRejectsMalformedString(t *testing.T) {
	a := New(map[string]interface{}{}, nil)
	if _, err := DecodeSize(a, "100x200"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("DecodeSize error = %v, want ErrTypeMismatch", err)
	}
}
