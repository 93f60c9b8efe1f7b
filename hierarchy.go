package silicate

import (
	"fmt"

	"github.com/LeviSnoot/silicate/nsarchive"
)

// Hierarchy is a tagged variant of { group, leaf }: exactly one of Group or
// Leaf is non-nil.
type Hierarchy struct {
	Group *Group
	Leaf  *Layer
}

// decodeHierarchyNode reads $class from v (a dictionary resolved through a
// wrapped-array handle) and branches on the literal class name. It then
// re-enters the same dictionary — not $class — to decode fields for the
// matched branch, preserving the original decoder's field-decode order
// (see SPEC_FULL.md §13).
func decodeHierarchyNode(a *nsarchive.Archive, v interface{}) (Hierarchy, error) {
	coder, err := nsarchive.DecodeDict(a, v)
	if err != nil {
		return Hierarchy{}, err
	}

	className, err := nsarchive.ClassName(a, coder)
	if err != nil {
		return Hierarchy{}, err
	}

	switch className {
	case "SilicaGroup":
		g, err := decodeGroup(a, coder)
		if err != nil {
			return Hierarchy{}, err
		}
		return Hierarchy{Group: g}, nil
	case "SilicaLayer":
		l, err := decodeLayer(a, coder)
		if err != nil {
			return Hierarchy{}, err
		}
		return Hierarchy{Leaf: l}, nil
	default:
		return Hierarchy{}, fmt.Errorf("%w: unrecognized class %q", nsarchive.ErrTypeMismatch, className)
	}
}

// leaves returns every Layer reachable from h in depth-first archive order
// (each child in turn, recursing into a child group where it stands) — used
// by Pass B to flatten the tree into a work list. A leaf's
// mask is itself tile-loaded like any other leaf (see SPEC_FULL.md §10), so
// it's flattened in too.
func (h Hierarchy) leaves() []*Layer {
	switch {
	case h.Leaf != nil:
		out := []*Layer{h.Leaf}
		if h.Leaf.Mask != nil {
			out = append(out, (Hierarchy{Leaf: h.Leaf.Mask}).leaves()...)
		}
		return out
	case h.Group != nil:
		var out []*Layer
		for _, child := range h.Group.Children {
			out = append(out, child.leaves()...)
		}
		return out
	default:
		return nil
	}
}
