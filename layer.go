package silicate

import (
	"github.com/LeviSnoot/silicate/nsarchive"
	"github.com/LeviSnoot/silicate/raster"
)

// Layer is a pixel-bearing leaf node: blend mode, visibility, an optional
// recursive mask layer, and an extent that Pass B fills with a raster once
// every tile belonging to this layer's uuid has been located and blitted.
type Layer struct {
	Blend    uint32
	Clipped  bool
	Hidden   bool
	Mask     *Layer
	Name     *string
	Opacity  float32
	UUID     string
	Version  uint64
	Width    uint32
	Height   uint32

	// Image is nil until Pass B loads this layer's raster. It is the only
	// field any component writes after the document tree is constructed,
	// and it is written exactly once.
	Image *raster.Canvas
}

// decodeLayer reads coder as a SilicaLayer dictionary. The mask field is
// decoded as an optional, recursive leaf rather than hard-coded nil (see
// SPEC_FULL.md §10) — masks are tile-loaded in Pass B exactly like any
// other leaf.
func decodeLayer(a *nsarchive.Archive, coder map[string]interface{}) (*Layer, error) {
	l, err := decodeLayerFields(a, coder)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func decodeLayerValue(a *nsarchive.Archive, v interface{}) (Layer, error) {
	coder, err := nsarchive.DecodeDict(a, v)
	if err != nil {
		return Layer{}, err
	}
	return decodeLayerFields(a, coder)
}

func decodeLayerFields(a *nsarchive.Archive, coder map[string]interface{}) (Layer, error) {
	blend, err := nsarchive.Field(a, coder, "extendedBlend", nsarchive.DecodeUint32)
	if err != nil {
		return Layer{}, err
	}
	clipped, err := nsarchive.Field(a, coder, "clipped", nsarchive.DecodeBool)
	if err != nil {
		return Layer{}, err
	}
	hidden, err := nsarchive.Field(a, coder, "hidden", nsarchive.DecodeBool)
	if err != nil {
		return Layer{}, err
	}
	mask, err := nsarchive.OptionalField(a, coder, "mask", decodeLayerValue)
	if err != nil {
		return Layer{}, err
	}
	name, err := nsarchive.OptionalField(a, coder, "name", nsarchive.DecodeString)
	if err != nil {
		return Layer{}, err
	}
	opacity, err := nsarchive.Field(a, coder, "opacity", nsarchive.DecodeFloat32)
	if err != nil {
		return Layer{}, err
	}
	uuid, err := nsarchive.Field(a, coder, "UUID", nsarchive.DecodeString)
	if err != nil {
		return Layer{}, err
	}
	version, err := nsarchive.Field(a, coder, "version", nsarchive.DecodeUint64)
	if err != nil {
		return Layer{}, err
	}
	width, err := nsarchive.Field(a, coder, "sizeWidth", nsarchive.DecodeUint32)
	if err != nil {
		return Layer{}, err
	}
	height, err := nsarchive.Field(a, coder, "sizeHeight", nsarchive.DecodeUint32)
	if err != nil {
		return Layer{}, err
	}

	return Layer{
		Blend:   blend,
		Clipped: clipped,
		Hidden:  hidden,
		Mask:    mask,
		Name:    name,
		Opacity: opacity,
		UUID:    uuid,
		Version: version,
		Width:   width,
		Height:  height,
	}, nil
}
