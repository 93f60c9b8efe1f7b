package silicate

import "github.com/LeviSnoot/silicate/nsarchive"

// TilingMeta is the per-document derived grid dimensions and edge
// residuals that the tile loader uses to clip right- and bottom-edge
// tiles. The arithmetic is the original non-ceiling-division form
// (columns = width/tileSize + (0 or 1)), not a ceil() helper, preserved
// verbatim from the reference implementation (see SPEC_FULL.md §13).
type TilingMeta struct {
	TileSize uint32
	Columns  uint32
	Rows     uint32
	Diff     nsarchive.Size
}

func newTilingMeta(size nsarchive.Size, tileSize uint32) TilingMeta {
	columns := size.Width / tileSize
	if size.Width%tileSize != 0 {
		columns++
	}
	rows := size.Height / tileSize
	if size.Height%tileSize != 0 {
		rows++
	}
	return TilingMeta{
		TileSize: tileSize,
		Columns:  columns,
		Rows:     rows,
		Diff: nsarchive.Size{
			Width:  columns*tileSize - size.Width,
			Height: rows*tileSize - size.Height,
		},
	}
}

// TileExtent returns the width and height of the tile at grid position
// (col, row), clipped against the right/bottom edge residuals.
func (m TilingMeta) TileExtent(col, row uint32) (width, height uint32) {
	width = m.TileSize
	if col == m.Columns-1 {
		width -= m.Diff.Width
	}
	height = m.TileSize
	if row == m.Rows-1 {
		height -= m.Diff.Height
	}
	return width, height
}

// TileOrigin returns the destination top-left pixel for grid position
// (col, row).
func (m TilingMeta) TileOrigin(col, row uint32) (x, y uint32) {
	return col * m.TileSize, row * m.TileSize
}
