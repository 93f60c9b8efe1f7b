package nsarchive

import (
	"errors"
	"testing"

	"howett.net/plist"
)

func TestResolveNilSentinel(t *testing.T) {
	a := New(map[string]interface{}{}, []interface{}{"a", "b"})
	v, err := a.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve(0): %v", err)
	}
	if v != nil {
		t.Fatalf("Resolve(0) = %v, want nil", v)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	objects := []interface{}{"zero", "one", "two"}
	a := New(map[string]interface{}{}, objects)

	for i := 1; i < len(objects); i++ {
		v, err := a.Resolve(uint64(i))
		if err != nil {
			t.Fatalf("Resolve(%d): %v", i, err)
		}
		if v != objects[i] {
			t.Fatalf("Resolve(%d) = %v, want %v", i, v, objects[i])
		}
	}
}

func TestResolveOutOfRangeIsBadIndex(t *testing.T) {
	a := New(map[string]interface{}{}, []interface{}{"only"})
	if _, err := a.Resolve(5); !errors.Is(err, ErrBadIndex) {
		t.Fatalf("Resolve(5) error = %v, want ErrBadIndex", err)
	}
}

func TestGetDereferencesHandle(t *testing.T) {
	objects := []interface{}{nil, "hello"}
	top := map[string]interface{}{"greeting": plist.UID(1)}
	a := New(top, objects)

	v, err := a.Get(top, "greeting")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "hello" {
		t.Fatalf("Get(greeting) = %v, want hello", v)
	}
}

func TestGetMissingKeyReturnsNilNotError(t *testing.T) {
	a := New(map[string]interface{}{}, nil)
	v, err := a.Get(map[string]interface{}{}, "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != nil {
		t.Fatalf("Get(absent) = %v, want nil", v)
	}
}

func TestGetPassesThroughNonHandleValues(t *testing.T) {
	dict := map[string]interface{}{"n": int64(42)}
	a := New(map[string]interface{}{}, nil)

	v, err := a.Get(dict, "n")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != int64(42) {
		t.Fatalf("Get(n) = %v, want 42", v)
	}
}
