package nsarchive

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

// Size is a width/height pair, as decoded from a "{W, H}" geometry string or
// computed as the residual of a tiling grid.
type Size struct {
	Width  uint32
	Height uint32
}

var sizePattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`\{(\d+), ?(\d+)\}`)
})

// DecodeSize decodes a geometry string containing a "{W, H}" or "{W,H}" (one
// optional space) substring with non-negative decimal integers, matching
// anywhere in the string rather than requiring a full-string match (see
// spec.md §6 and original_source/src/ns_archive.rs's Regex::captures use). A
// string with no such substring, or whose captured integers overflow
// uint32, is ErrTypeMismatch.
func DecodeSize(_ *Archive, v interface{}) (Size, error) {
	s, ok := v.(string)
	if !ok {
		return Size{}, fmt.Errorf("%w: expected geometry string", ErrTypeMismatch)
	}

	m := sizePattern().FindStringSubmatch(s)
	if m == nil {
		return Size{}, fmt.Errorf("%w: %q does not match geometry pattern", ErrTypeMismatch, s)
	}

	w, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return Size{}, fmt.Errorf("%w: width %q: %v", ErrTypeMismatch, m[1], err)
	}
	h, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return Size{}, fmt.Errorf("%w: height %q: %v", ErrTypeMismatch, m[2], err)
	}

	return Size{Width: uint32(w), Height: uint32(h)}, nil
}
