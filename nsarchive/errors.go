// Package nsarchive decodes a keyed-archive property list: a pool of
// values plus a root dictionary, with intra-graph references expressed as
// integer handles into the pool.
package nsarchive

import "errors"

// Sentinel errors make up the taxonomy callers can match against with
// errors.Is. Call sites wrap these with fmt.Errorf("%w: ...") for context;
// the sentinel identity survives the wrap.
var (
	// ErrBadIndex means a handle refers outside the object pool, or handle
	// 0 was encountered where a non-nil handle was required.
	ErrBadIndex = errors.New("nsarchive: handle out of range")

	// ErrMissingKey means a required dictionary key is absent or resolves
	// to nil.
	ErrMissingKey = errors.New("nsarchive: missing key")

	// ErrTypeMismatch means a value has the wrong variant, an integer is
	// out of range for the target width, a string fails a pattern, or a
	// class name is unrecognized.
	ErrTypeMismatch = errors.New("nsarchive: type mismatch")

	// ErrIO means container open or member read failed.
	ErrIO = errors.New("nsarchive: io error")

	// ErrPlist means the property-list parser rejected the archive blob.
	ErrPlist = errors.New("nsarchive: plist error")

	// ErrDecompress means tile decompression failed or produced an
	// unexpected output length.
	ErrDecompress = errors.New("nsarchive: decompress error")
)
