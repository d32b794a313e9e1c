package permission

import "strings"

// Kind distinguishes a Store's identity semantics without requiring two
// separate concrete types (§9 design note: "single concrete holder type
// plus a kind tag").
type Kind uint8

const (
	KindUser Kind = iota
	KindGroup
)

func (k Kind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "user"
}

// LocalizedNode pairs a Node with the ObjectName of the holder it was
// sourced from. For inherited nodes this is the immediate parent, never the
// transitive root — callers use it to render "where did this come from?"
// breadcrumbs, and that only makes sense for the nearest hop.
type LocalizedNode struct {
	Node
	Origin string
}

func localize(nodes []Node, origin string) []LocalizedNode {
	out := make([]LocalizedNode, len(nodes))
	for i, n := range nodes {
		out[i] = LocalizedNode{Node: n, Origin: origin}
	}
	return out
}

// GroupLookup resolves a group name to its Store. A miss (unknown group) is
// reported by ok=false and is not an error — §7 requires it be silently
// skipped because groups may be deleted concurrently with holders that
// still reference them.
type GroupLookup func(name string) (group *Store, ok bool)

// excludedSet tracks already-visited object names (lower-cased) during
// inheritance traversal to keep the walk terminating on cyclic graphs (§4.5
// step 2, invariant 3). It is copied on every recursive call so that a
// caller's slice is never mutated out from under it (§4.5 mutation note).
type excludedSet []string

func (e excludedSet) contains(name string) bool {
	name = strings.ToLower(name)
	for _, x := range e {
		if x == name {
			return true
		}
	}
	return false
}

func (e excludedSet) with(name string) excludedSet {
	next := make(excludedSet, len(e), len(e)+1)
	copy(next, e)
	return append(next, strings.ToLower(name))
}
