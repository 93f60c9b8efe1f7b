// Package tileloader locates, decompresses, and blits the tile members
// belonging to a single leaf layer. It is invoked once per leaf from Pass
// B and opens its own container reader — the container reader type from
// the klauspost/compress/zip package is not assumed to be shareable across
// concurrent callers, matching how the reference decoder reopens the
// archive for every layer it materializes.
package tileloader

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	lzo "github.com/rasky/go-lzo"

	"github.com/klauspost/compress/zip"

	"github.com/LeviSnoot/silicate/nsarchive"
	"github.com/LeviSnoot/silicate/raster"
)

var tileNamePattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`(\d+)~(\d+)`)
})

// LeafSpec is the minimal read-only description of a leaf this package
// needs, kept free of a dependency on the silicate package's Layer type so
// that silicate can import tileloader without a cycle.
type LeafSpec struct {
	UUID   string
	Width  uint32
	Height uint32
}

// Geometry is the subset of TilingMeta the tile loader needs: the
// per-tile clipped extent and destination origin for a grid position.
type Geometry interface {
	TileExtent(col, row uint32) (width, height uint32)
	TileOrigin(col, row uint32) (x, y uint32)
}

// Load opens containerPath, finds every member whose name begins with
// leaf.UUID, decompresses and blits each into a freshly allocated canvas
// sized leaf.Width x leaf.Height, and returns it. Every tile for the leaf
// is applied exactly once; order is irrelevant because the blit is
// position-addressed.
func Load(containerPath string, leaf LeafSpec, geom Geometry, logger *slog.Logger) (*raster.Canvas, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := uuid.Parse(leaf.UUID); err != nil {
		logger.Warn("leaf uuid does not parse as a standard uuid", "uuid", leaf.UUID, "err", err)
	}

	zr, err := zip.OpenReader(containerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening container for leaf %s: %v", nsarchive.ErrIO, leaf.UUID, err)
	}
	defer zr.Close()

	canvas := raster.NewCanvas(int(leaf.Width), int(leaf.Height))

	for _, f := range zr.File {
		col, row, ok, err := matchTileName(f.Name, leaf.UUID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		tileWidth, tileHeight := geom.TileExtent(col, row)
		payload, err := readTile(f, int(tileWidth)*int(tileHeight)*4)
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", f.Name, err)
		}

		x, y := geom.TileOrigin(col, row)
		if err := canvas.BlitTile(int(x), int(y), int(tileWidth), int(tileHeight), payload); err != nil {
			return nil, fmt.Errorf("tile %s: %w", f.Name, err)
		}
	}

	return canvas, nil
}

// matchTileName reports whether name belongs to uuid and, if so, its
// (col, row) grid position. The remainder between the end of the uuid
// prefix and the first '.' (or end of string) must match "(\d+)~(\d+)";
// a uuid-prefixed name that fails the pattern is malformed.
func matchTileName(name, uuid string) (col, row uint32, ok bool, err error) {
	if len(name) < len(uuid) || name[:len(uuid)] != uuid {
		return 0, 0, false, nil
	}
	rest := name[len(uuid):]
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		rest = rest[:dot]
	}

	m := tileNamePattern().FindStringSubmatch(rest)
	if m == nil {
		return 0, 0, false, fmt.Errorf("%w: member %q begins with leaf uuid but doesn't match the tile name pattern", nsarchive.ErrTypeMismatch, name)
	}

	c, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: tile column in %q: %v", nsarchive.ErrTypeMismatch, name, err)
	}
	r, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: tile row in %q: %v", nsarchive.ErrTypeMismatch, name, err)
	}
	return uint32(c), uint32(r), true, nil
}

func readTile(f *zip.File, wantLen int) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nsarchive.ErrIO, err)
	}
	defer rc.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, fmt.Errorf("%w: %v", nsarchive.ErrIO, err)
	}

	out, err := lzo.Decompress1X(bytes.NewReader(buf.Bytes()), buf.Len(), wantLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nsarchive.ErrDecompress, err)
	}
	if len(out) != wantLen {
		return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", nsarchive.ErrDecompress, len(out), wantLen)
	}
	return out, nil
}
