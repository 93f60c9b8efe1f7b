package nsarchive

import "fmt"

// Archive is a decoded keyed-archive property list: an ordered object pool
// plus a top-level dictionary. It never mutates after construction and is
// safe to read concurrently.
type Archive struct {
	top     map[string]interface{}
	objects []interface{}
}

// New wraps a top dictionary and object pool already parsed from a plist
// value tree (as produced by howett.net/plist) into an Archive.
func New(top map[string]interface{}, objects []interface{}) *Archive {
	return &Archive{top: top, objects: objects}
}

// Top returns the archive's top-level dictionary.
func (a *Archive) Top() map[string]interface{} {
	return a.top
}

// Root resolves the handle stored under the top dictionary's "root" key.
func (a *Archive) Root() (map[string]interface{}, error) {
	v, err := a.Get(a.top, "root")
	if err != nil {
		return nil, err
	}
	dict, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: root is not a dictionary", ErrTypeMismatch)
	}
	return dict, nil
}

// Resolve dereferences a handle into the object pool. Handle 0 denotes the
// nil sentinel and resolves to (nil, nil). Any handle i >= len(objects) is
// malformed.
func (a *Archive) Resolve(handle uint64) (interface{}, error) {
	if handle == 0 {
		return nil, nil
	}
	idx := int(handle)
	if idx < 0 || idx >= len(a.objects) {
		return nil, fmt.Errorf("%w: handle %d", ErrBadIndex, handle)
	}
	return a.objects[idx], nil
}

// Get reads dict[key]. If the raw value is a uid-handle it is dereferenced
// through Resolve; otherwise the raw value is returned as-is. A missing key
// returns (nil, nil) — absence is not itself an error at this layer, the
// caller decides whether nil is acceptable for the field being decoded.
func (a *Archive) Get(dict map[string]interface{}, key string) (interface{}, error) {
	raw, present := dict[key]
	if !present {
		return nil, nil
	}
	if uid, ok := asUID(raw); ok {
		return a.Resolve(uid)
	}
	return raw, nil
}
