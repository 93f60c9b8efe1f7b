package nsarchive

import (
	"errors"
	"testing"

	"howett.net/plist"
)

func TestClassNameDereferencesClassDict(t *testing.T) {
	objects := []interface{}{
		nil,
		map[string]interface{}{"$classname": "SilicaLayer", "$classes": []interface{}{"SilicaLayer", "NSObject"}},
	}
	coder := map[string]interface{}{"$class": plist.UID(1)}
	a := New(map[string]interface{}{}, objects)

	name, err := ClassName(a, coder)
	if err != nil {
		t.Fatalf("ClassName: %v", err)
	}
	if name != "SilicaLayer" {
		t.Fatalf("ClassName = %q, want SilicaLayer", name)
	}
}

func TestWrappedArrayPreservesOnDiskOrder(t *testing.T) {
	objects := []interface{}{nil, "first", "second", "third"}
	dict := map[string]interface{}{
		"NS.objects": []interface{}{plist.UID(1), plist.UID(2), plist.UID(3)},
	}
	a := New(map[string]interface{}{}, objects)

	got, err := WrappedArray(DecodeString)(a, dict)
	if err != nil {
		t.Fatalf("WrappedArray: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("WrappedArray[%d] = %q, want %q (order must be on-disk, not reversed)", i, got[i], w)
		}
	}
}

func TestWrappedArrayNilHandleIsBadIndex(t *testing.T) {
	objects := []interface{}{nil, "first"}
	dict := map[string]interface{}{
		"NS.objects": []interface{}{plist.UID(0)},
	}
	a := New(map[string]interface{}{}, objects)

	if _, err := WrappedArray(DecodeString)(a, dict); !errors.Is(err, ErrBadIndex) {
		t.Fatalf("WrappedArray with nil handle error = %v, want ErrBadIndex", err)
	}
}
