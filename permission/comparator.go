package permission

import (
	"sort"
	"strings"
)

// MoreSpecific implements the §4.1 priority comparator: it reports whether a
// is strictly more specific than b, i.e. whether a should be iterated before
// b when resolving in descending-specificity order. Sorting a slice with
// sort.SliceStable(nodes, func(i, j int) bool { return MoreSpecific(nodes[i], nodes[j]) })
// yields the descending order the resolver depends on.
func MoreSpecific(a, b Node) bool {
	if a.IsTemporary() != b.IsTemporary() {
		return a.IsTemporary()
	}
	if aw, bw := a.World != "", b.World != ""; aw != bw {
		return aw
	}
	if as, bs := a.Server != "", b.Server != ""; as != bs {
		return as
	}
	if ac, bc := len(a.Context) > 0, len(b.Context) > 0; ac != bc {
		return ac
	}
	if aws, bws := wildcardSegments(a.Permission), wildcardSegments(b.Permission); aws != bws {
		return aws < bws
	}
	if a.Permission != b.Permission {
		return a.Permission < b.Permission
	}
	// Total order tie-break: nothing above distinguished the two nodes, so
	// fall back to a stable canonicalized dump so SliceStable sees a
	// consistent order across runs. For two AlmostEquals nodes that differ
	// only in Value, this order also decides which one GetPermissions'
	// first-seen-wins dedup keeps (the false-valued node sorts first).
	return a.canonical() < b.canonical()
}

// wildcardSegments counts the "."-delimited segments of permission that are
// exactly "*". Fewer wildcard segments means a more specific permission.
func wildcardSegments(permission string) int {
	n := 0
	for _, seg := range strings.Split(permission, ".") {
		if seg == "*" {
			n++
		}
	}
	return n
}

// SortBySpecificity sorts nodes in place, most specific first.
func SortBySpecificity(nodes []LocalizedNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return MoreSpecific(nodes[i].Node, nodes[j].Node)
	})
}
