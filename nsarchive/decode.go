package nsarchive

import (
	"fmt"
	"math"

	"howett.net/plist"
)

// DecodeFunc is a capability: given the archive and a raw generic value
// (already resolved through a handle, or nil if absent), produce a T or an
// error. Implementations never mutate the archive and never cache state
// between calls, so a DecodeFunc is safe to invoke concurrently for
// disjoint sub-dictionaries.
type DecodeFunc[T any] func(a *Archive, v interface{}) (T, error)

// Optional adapts a DecodeFunc[T] to tolerate an absent value: a nil input
// yields a nil *T and no error; a present value delegates to decode and
// returns a pointer to the result.
func Optional[T any](decode DecodeFunc[T]) DecodeFunc[*T] {
	return func(a *Archive, v interface{}) (*T, error) {
		if v == nil {
			return nil, nil
		}
		val, err := decode(a, v)
		if err != nil {
			return nil, err
		}
		return &val, nil
	}
}

// Slice adapts a DecodeFunc[T] to decode every element of a plain array
// value (as opposed to a WrappedArray, see WrappedArray below).
func Slice[T any](decode DecodeFunc[T]) DecodeFunc[[]T] {
	return func(a *Archive, v interface{}) ([]T, error) {
		arr, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: expected array", ErrTypeMismatch)
		}
		out := make([]T, 0, len(arr))
		for _, elem := range arr {
			val, err := decode(a, elem)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	}
}

// WrappedArray adapts a DecodeFunc[T] to decode a "wrapped array": a
// dictionary containing key "NS.objects" mapping to a sequence of
// uid-handles. Each handle is dereferenced through the archive and decoded
// as T, in the order the handles appear on disk — this implementation
// preserves on-disk order rather than reversing it (see SPEC_FULL.md §10).
// Handle 0 inside a wrapped array is malformed (ErrBadIndex).
func WrappedArray[T any](decode DecodeFunc[T]) DecodeFunc[[]T] {
	return func(a *Archive, v interface{}) ([]T, error) {
		dict, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: expected wrapped array dictionary", ErrTypeMismatch)
		}
		raw, present := dict["NS.objects"]
		if !present {
			return nil, fmt.Errorf("%w: NS.objects", ErrMissingKey)
		}
		handles, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: NS.objects is not an array", ErrTypeMismatch)
		}

		out := make([]T, 0, len(handles))
		for _, h := range handles {
			uid, ok := asUID(h)
			if !ok {
				return nil, fmt.Errorf("%w: NS.objects element is not a uid", ErrTypeMismatch)
			}
			if uid == 0 {
				return nil, fmt.Errorf("%w: nil handle in wrapped array", ErrBadIndex)
			}
			resolved, err := a.Resolve(uid)
			if err != nil {
				return nil, err
			}
			val, err := decode(a, resolved)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	}
}

// Field decodes coder[key] using decode, treating a missing or nil result
// as ErrMissingKey. Use this for required fields; combine with Optional for
// fields that may legitimately be absent.
func Field[T any](a *Archive, coder map[string]interface{}, key string, decode DecodeFunc[T]) (T, error) {
	var zero T
	v, err := a.Get(coder, key)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return decode(a, v)
}

// OptionalField decodes coder[key] using decode, returning a nil pointer
// when the key is absent or resolves to nil.
func OptionalField[T any](a *Archive, coder map[string]interface{}, key string, decode DecodeFunc[T]) (*T, error) {
	v, err := a.Get(coder, key)
	if err != nil {
		return nil, err
	}
	return Optional(decode)(a, v)
}

func asUID(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case plist.UID:
		return uint64(n), true
	default:
		return 0, false
	}
}

// DecodeBool decodes a boolean value.
func DecodeBool(_ *Archive, v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool", ErrTypeMismatch)
	}
	return b, nil
}

// DecodeUint64 decodes an unsigned 64-bit integer. howett.net/plist yields
// uint64 for most plist integers but falls back to int64 for values that
// round-trip negative in a signed encoding; both are accepted here as long
// as the int64 form is non-negative.
func DecodeUint64(_ *Archive, v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("%w: negative value for unsigned field", ErrTypeMismatch)
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("%w: expected unsigned integer", ErrTypeMismatch)
	}
}

// DecodeInt64 decodes a signed 64-bit integer.
func DecodeInt64(_ *Archive, v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: unsigned value overflows int64", ErrTypeMismatch)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: expected signed integer", ErrTypeMismatch)
	}
}

// DecodeFloat64 decodes a real value.
func DecodeFloat64(_ *Archive, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: expected real", ErrTypeMismatch)
	}
}

// DecodeUint32 decodes an unsigned integer then range-checks it into 32
// bits, matching the target width.
func DecodeUint32(a *Archive, v interface{}) (uint32, error) {
	n, err := DecodeUint64(a, v)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint32 {
		return 0, fmt.Errorf("%w: value %d overflows uint32", ErrTypeMismatch, n)
	}
	return uint32(n), nil
}

// DecodeInt32 decodes a signed integer then range-checks it into 32 bits.
func DecodeInt32(a *Archive, v interface{}) (int32, error) {
	n, err := DecodeInt64(a, v)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, fmt.Errorf("%w: value %d overflows int32", ErrTypeMismatch, n)
	}
	return int32(n), nil
}

// DecodeFloat32 decodes a real value then narrows it to 32 bits.
func DecodeFloat32(a *Archive, v interface{}) (float32, error) {
	n, err := DecodeFloat64(a, v)
	if err != nil {
		return 0, err
	}
	return float32(n), nil
}

// DecodeString decodes a string value.
func DecodeString(_ *Archive, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string", ErrTypeMismatch)
	}
	return s, nil
}

// DecodeBytes decodes a bytes value.
func DecodeBytes(_ *Archive, v interface{}) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: expected bytes", ErrTypeMismatch)
	}
	return b, nil
}

// DecodeDict decodes a dictionary reference, without interpreting its
// contents further.
func DecodeDict(_ *Archive, v interface{}) (map[string]interface{}, error) {
	d, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected dictionary", ErrTypeMismatch)
	}
	return d, nil
}

// DecodeUID decodes a raw uid-handle without resolving it.
func DecodeUID(_ *Archive, v interface{}) (uint64, error) {
	uid, ok := asUID(v)
	if !ok {
		return 0, fmt.Errorf("%w: expected uid", ErrTypeMismatch)
	}
	return uid, nil
}
