package permission

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Node is an immutable permission entry, passed by value. A Builder sets
// fields on its own Node one call at a time and Build returns a copy of it.
type Node struct {
	Permission string
	Value      bool
	Server     string // "" means "any server"
	World      string // "" means "any world"
	Expiry     int64  // unix seconds; 0 means permanent
	Context    map[string]string
}

const groupPrefix = "group."

// IsGroupNode reports whether the permission is of the form "group.<name>",
// matched case-insensitively.
func (n Node) IsGroupNode() bool {
	return len(n.Permission) > len(groupPrefix) &&
		strings.EqualFold(n.Permission[:len(groupPrefix)], groupPrefix)
}

// GroupName returns the suffix of a group node's permission. Callers should
// check IsGroupNode first; GroupName returns "" for non-group nodes.
func (n Node) GroupName() string {
	if !n.IsGroupNode() {
		return ""
	}
	return n.Permission[len(groupPrefix):]
}

// IsWildcard reports whether this node is the universal wildcard permission.
func (n Node) IsWildcard() bool {
	return n.Permission == "*" || n.Permission == "'*'"
}

// IsTemporary reports whether the node carries an expiry.
func (n Node) IsTemporary() bool {
	return n.Expiry != 0
}

// IsPermanent is the inverse of IsTemporary.
func (n Node) IsPermanent() bool {
	return !n.IsTemporary()
}

// HasExpired reports whether the node's expiry is present and has passed
// relative to now.
func (n Node) HasExpired(now time.Time) bool {
	return n.Expiry != 0 && n.Expiry <= now.Unix()
}

func contextEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// Equals is structural equality: every field must match.
func (n Node) Equals(o Node) bool {
	return n.Permission == o.Permission &&
		n.Value == o.Value &&
		n.Server == o.Server &&
		n.World == o.World &&
		n.Expiry == o.Expiry &&
		contextEqual(n.Context, o.Context)
}

// AlmostEquals ignores Value but otherwise requires the same permission,
// server, world, context, and expiry-presence (not the exact expiry value).
// Used for "does the holder already have this node" checks.
func (n Node) AlmostEquals(o Node) bool {
	return n.Permission == o.Permission &&
		n.Server == o.Server &&
		n.World == o.World &&
		n.IsTemporary() == o.IsTemporary() &&
		contextEqual(n.Context, o.Context)
}

// EqualsIgnoringValueOrTemp ignores Value and expiry entirely. Used when
// merging a holder's own node set, where a permanent node subsumes an
// otherwise-identical temporary duplicate.
func (n Node) EqualsIgnoringValueOrTemp(o Node) bool {
	return n.Permission == o.Permission &&
		n.Server == o.Server &&
		n.World == o.World &&
		contextEqual(n.Context, o.Context)
}

// canonical returns a stable, deterministic dump of the node used only to
// break comparator ties that aren't resolved by any other field; it must
// never be used for equality checks.
func (n Node) canonical() string {
	keys := make([]string, 0, len(n.Context))
	for k := range n.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\x00%t\x00%s\x00%s\x00%d", n.Permission, n.Value, n.Server, n.World, n.Expiry)
	for _, k := range keys {
		fmt.Fprintf(&b, "\x00%s=%s", k, n.Context[k])
	}
	return b.String()
}

// ShouldApplyOnServer implements §4.5's server applicability rule: a node
// with no server applies iff includeGlobal; a regex server ("R=...")
// matches when allowRegex is true; otherwise the match is a case
// insensitive equality check.
func (n Node) ShouldApplyOnServer(requested string, includeGlobal, allowRegex bool) bool {
	return shouldApplyOnField(n.Server, requested, includeGlobal, allowRegex)
}

// ShouldApplyOnWorld is the world-scoped analogue of ShouldApplyOnServer.
func (n Node) ShouldApplyOnWorld(requested string, includeGlobal, allowRegex bool) bool {
	return shouldApplyOnField(n.World, requested, includeGlobal, allowRegex)
}

func shouldApplyOnField(nodeValue, requested string, includeGlobal, allowRegex bool) bool {
	if nodeValue == "" {
		return includeGlobal
	}
	if allowRegex && strings.HasPrefix(nodeValue, "R=") {
		re, err := compileFieldRegex(nodeValue[len("R="):])
		if err != nil {
			return false
		}
		return re.MatchString(requested)
	}
	return strings.EqualFold(nodeValue, requested)
}

// ShouldApplyWithContext reports whether every tag key set on the node is
// present in tags with an equal value. Extra keys in tags are ignored.
// strict is reserved for callers that want exact set equality instead of
// the default subset check; the core resolver always passes false per §4.5.
func (n Node) ShouldApplyWithContext(tags map[string]string, strict bool) bool {
	if strict && len(tags) != len(n.Context) {
		return false
	}
	for k, v := range n.Context {
		if tags[k] != v {
			return false
		}
	}
	return true
}
