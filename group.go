package silicate

import "github.com/LeviSnoot/silicate/nsarchive"

// Group is a named, optionally-hidden container of hierarchy nodes.
// Children are appended in archive order.
type Group struct {
	Hidden   bool
	Name     string
	Children []Hierarchy
}

func decodeGroup(a *nsarchive.Archive, coder map[string]interface{}) (*Group, error) {
	hidden, err := nsarchive.Field(a, coder, "isHidden", nsarchive.DecodeBool)
	if err != nil {
		return nil, err
	}
	name, err := nsarchive.Field(a, coder, "name", nsarchive.DecodeString)
	if err != nil {
		return nil, err
	}
	children, err := nsarchive.Field(a, coder, "children", nsarchive.WrappedArray(decodeHierarchyNode))
	if err != nil {
		return nil, err
	}
	return &Group{Hidden: hidden, Name: name, Children: children}, nil
}
