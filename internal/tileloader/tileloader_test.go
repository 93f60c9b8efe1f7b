package tileloader

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	lzo "github.com/rasky/go-lzo"
)

type fixedGeometry struct {
	tileSize           uint32
	columns, rows      uint32
	diffWidth, diffHeight uint32
}

func (g fixedGeometry) TileExtent(col, row uint32) (uint32, uint32) {
	w, h := g.tileSize, g.tileSize
	if col == g.columns-1 {
		w -= g.diffWidth
	}
	if row == g.rows-1 {
		h -= g.diffHeight
	}
	return w, h
}

func (g fixedGeometry) TileOrigin(col, row uint32) (uint32, uint32) {
	return col * g.tileSize, row * g.tileSize
}

func writeFixtureZip(t *testing.T, members map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, data := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip.Create: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip.Close: %v", err)
	}
	return path
}

func TestLoadExactFitSingleTile(t *testing.T) {
	pixels := bytes.Repeat([]byte{1, 2, 3, 4}, 64*64)
	compressed, err := lzo.Compress1X(pixels)
	if err != nil {
		t.Fatalf("Compress1X: %v", err)
	}

	path := writeFixtureZip(t, map[string][]byte{
		"leaf-uuid0~0": compressed,
	})

	geom := fixedGeometry{tileSize: 64, columns: 1, rows: 1}
	canvas, err := Load(path, LeafSpec{UUID: "leaf-uuid", Width: 64, Height: 64}, geom, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(canvas.Pix(), pixels) {
		t.Fatal("canvas pixels don't match source tile")
	}
}

func TestLoadIgnoresUnrelatedMembers(t *testing.T) {
	path := writeFixtureZip(t, map[string][]byte{
		"Document.archive": []byte("not a tile"),
	})

	geom := fixedGeometry{tileSize: 4, columns: 1, rows: 1}
	canvas, err := Load(path, LeafSpec{UUID: "leaf-uuid", Width: 4, Height: 4}, geom, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(canvas.Pix()) != 4*4*4 {
		t.Fatalf("canvas size = %d, want %d", len(canvas.Pix()), 4*4*4)
	}
}

func TestMatchTileNameRejectsMalformedSuffix(t *testing.T) {
	if _, _, _, err := matchTileName("leaf-uuid-not-a-coordinate", "leaf-uuid"); err == nil {
		t.Fatal("expected error for uuid-prefixed name with malformed suffix")
	}
}

func TestMatchTileNameParsesColRow(t *testing.T) {
	col, row, ok, err := matchTileName("leaf-uuid12~34.bin", "leaf-uuid")
	if err != nil {
		t.Fatalf("matchTileName: %v", err)
	}
	if !ok {
		t.Fatal("expected match")
	}
	if col != 12 || row != 34 {
		t.Fatalf("col,row = %d,%d, want 12,34", col, row)
	}
}
