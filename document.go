package silicate

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/LeviSnoot/silicate/nsarchive"
)

// Document is the materialized in-memory document tree: a header, a
// recursive layer hierarchy, and a flattened composite leaf. After Open
// returns, it is immutable from the caller's perspective except for each
// leaf's Image, which Pass B writes exactly once.
type Document struct {
	AuthorName       *string
	BackgroundHidden bool

	// BackgroundColor is [R, G, B, A], decoded from 16 raw bytes as four
	// consecutive little-endian 32-bit reals.
	BackgroundColor [4]float32

	Name     *string
	Size     nsarchive.Size
	TileSize uint32
	Tiling   TilingMeta

	// Layers is a synthetic top-level group: archives don't store it as a
	// class-tagged dictionary of its own, so it's assembled directly from
	// the root's unwrappedLayers wrapped array.
	Layers    *Group
	Composite *Layer
}

func decodeDocument(a *nsarchive.Archive) (*Document, error) {
	root, err := a.Root()
	if err != nil {
		return nil, err
	}

	size, err := nsarchive.Field(a, root, "size", nsarchive.DecodeSize)
	if err != nil {
		return nil, err
	}
	tileSize, err := nsarchive.Field(a, root, "tileSize", nsarchive.DecodeUint32)
	if err != nil {
		return nil, err
	}
	if tileSize < 1 {
		return nil, fmt.Errorf("%w: tileSize must be >= 1, got %d", nsarchive.ErrTypeMismatch, tileSize)
	}

	authorName, err := nsarchive.OptionalField(a, root, "authorName", nsarchive.DecodeString)
	if err != nil {
		return nil, err
	}
	backgroundHidden, err := nsarchive.Field(a, root, "backgroundHidden", nsarchive.DecodeBool)
	if err != nil {
		return nil, err
	}
	backgroundColorBytes, err := nsarchive.Field(a, root, "backgroundColor", nsarchive.DecodeBytes)
	if err != nil {
		return nil, err
	}
	backgroundColor, err := decodeBackgroundColor(backgroundColorBytes)
	if err != nil {
		return nil, err
	}

	name, err := nsarchive.OptionalField(a, root, "name", nsarchive.DecodeString)
	if err != nil {
		return nil, err
	}
	composite, err := nsarchive.Field(a, root, "composite", decodeLayerValue)
	if err != nil {
		return nil, err
	}
	children, err := nsarchive.Field(a, root, "unwrappedLayers", nsarchive.WrappedArray(decodeHierarchyNode))
	if err != nil {
		return nil, err
	}

	return &Document{
		AuthorName:       authorName,
		BackgroundHidden: backgroundHidden,
		BackgroundColor:  backgroundColor,
		Name:             name,
		Size:             size,
		TileSize:         tileSize,
		Tiling:           newTilingMeta(size, tileSize),
		Layers:           &Group{Hidden: false, Name: "", Children: children},
		Composite:        &composite,
	}, nil
}

// decodeBackgroundColor reinterprets raw bytes as 4 consecutive
// little-endian 32-bit reals. The length must be exactly 16.
func decodeBackgroundColor(raw []byte) ([4]float32, error) {
	var out [4]float32
	if len(raw) != 16 {
		return out, fmt.Errorf("%w: backgroundColor is %d bytes, want 16", nsarchive.ErrTypeMismatch, len(raw))
	}
	for i := range out {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		out[i] = math.Float32frombits(bits)
	}
	return out, nil
}

// leaves flattens every leaf reachable from the document: the top-level
// group's children, transitively, plus the composite leaf, plus each
// reached leaf's mask (see Hierarchy.leaves).
func (d *Document) leaves() []*Layer {
	out := make([]*Layer, 0)
	out = append(out, Hierarchy{Group: d.Layers}.leaves()...)
	out = append(out, Hierarchy{Leaf: d.Composite}.leaves()...)
	return out
}
