// Package raster holds the destination canvas a leaf layer's tiles are
// blitted into: a tightly-packed RGBA8 raster, written once per pixel by
// exactly one tile.
package raster

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Canvas is a leaf's owned raster: width x height pixels of 4 bytes each
// (R, G, B, A in that byte order), zero-initialized at allocation.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a zero-initialized canvas of the given extent.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the canvas extent.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the canvas extent.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Pix returns the underlying tightly-packed RGBA8 byte slice.
func (c *Canvas) Pix() []byte { return c.img.Pix }

// Image exposes the canvas as a standard library image for callers that
// want to consume it without depending on this package.
func (c *Canvas) Image() *image.RGBA { return c.img }

// BlitTile interprets src as a tightly-packed RGBA8 image of
// (tileWidth, tileHeight) and copies it into the canvas at (x, y), the top
// left of the destination tile. The copy is a straight replace — no alpha
// blending — since a tile owns the pixels it covers outright; the blit
// must not extend past the canvas extent.
func (c *Canvas) BlitTile(x, y, tileWidth, tileHeight int, src []byte) error {
	want := tileWidth * tileHeight * 4
	if len(src) != want {
		return fmt.Errorf("raster: tile payload is %d bytes, want %d", len(src), want)
	}
	bounds := c.img.Bounds()
	if x < 0 || y < 0 || x+tileWidth > bounds.Dx() || y+tileHeight > bounds.Dy() {
		return fmt.Errorf("raster: tile at (%d,%d) size %dx%d exceeds canvas extent %dx%d",
			x, y, tileWidth, tileHeight, bounds.Dx(), bounds.Dy())
	}

	tile := &image.RGBA{
		Pix:    src,
		Stride: tileWidth * 4,
		Rect:   image.Rect(0, 0, tileWidth, tileHeight),
	}
	dstRect := image.Rect(x, y, x+tileWidth, y+tileHeight)
	draw.Draw(c.img, dstRect, tile, image.Point{}, draw.Src)
	return nil
}
