package permission

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ExportNodes implements §4.7: flatten a holder's filtered node view into an
// immutable permission -> granted map, applying wildcard fan-out, shorthand,
// and wildcard expansion per flags. expansion may be NoExpansion if the
// caller has no shorthand/regex dialect.
func (s *Store) ExportNodes(ctx Context, lookup GroupLookup, flags Flags, possible []string, lower bool, expansion Expansion) map[string]bool {
	if expansion == nil {
		expansion = NoExpansion
	}

	perms := make(map[string]bool)
	normalize := func(p string) string {
		if lower {
			return strings.ToLower(p)
		}
		return p
	}

	for _, ln := range s.GetAllNodesFiltered(ctx, lookup, flags) {
		n := ln.Node

		if len(possible) > 0 && n.IsWildcard() && flags.ApplyWildcards {
			for _, p := range possible {
				// First-writer-wins: an explicit node for p, more specific
				// than this wildcard and thus already processed, must not be
				// clobbered by the fan-out.
				key := normalize(p)
				if _, exists := perms[key]; !exists {
					perms[key] = n.Value
				}
			}
		}

		// Authoritative: overwrites any wildcard fan-out above for the keys
		// it touches.
		perms[normalize(n.Permission)] = n.Value

		if flags.ApplyShorthand {
			for _, sh := range expansion.Shorthand(n.Permission) {
				key := normalize(sh)
				if _, exists := perms[key]; !exists {
					perms[key] = n.Value
				}
			}
		}

		if len(possible) > 0 && flags.ApplyWildcards {
			for _, w := range expansion.Wildcard(n.Permission, possible) {
				key := normalize(w)
				if _, exists := perms[key]; !exists {
					perms[key] = n.Value
				}
			}
		}
	}

	return perms
}

// ExportToLegacy serializes each node to its canonical string form paired
// with its value (§6). This is the one wire-compatible surface the core
// owns; see SerializeNode/FromSerializedNode for the format.
func ExportToLegacy(nodes []Node) map[string]bool {
	out := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		out[SerializeNode(n)] = n.Value
	}
	return out
}

// SerializeNode encodes a node's full contextual key (permission, server,
// world, tags, expiry) into a single string that round-trips through
// FromSerializedNode. The value itself is carried alongside, not encoded,
// matching the (string, bool) pairing §6 specifies for the legacy export.
func SerializeNode(n Node) string {
	var b strings.Builder
	b.WriteString(url.QueryEscape(n.Permission))

	if n.Server != "" {
		fmt.Fprintf(&b, "/server=%s", url.QueryEscape(n.Server))
	}
	if n.World != "" {
		fmt.Fprintf(&b, "/world=%s", url.QueryEscape(n.World))
	}
	if n.Expiry != 0 {
		fmt.Fprintf(&b, "/expiry=%d", n.Expiry)
	}
	if len(n.Context) > 0 {
		keys := make([]string, 0, len(n.Context))
		for k := range n.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("/ctx=")
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%s=%s", url.QueryEscape(k), url.QueryEscape(n.Context[k]))
		}
	}
	return b.String()
}

// FromSerializedNode decodes the output of SerializeNode back into a Node,
// pairing it with the given value.
func FromSerializedNode(s string, value bool) (Node, error) {
	parts := strings.Split(s, "/")
	if len(parts) == 0 {
		return Node{}, fmt.Errorf("permission: empty serialized node")
	}

	permission, err := url.QueryUnescape(parts[0])
	if err != nil {
		return Node{}, fmt.Errorf("permission: invalid serialized permission: %w", err)
	}
	n := Node{Permission: permission, Value: value}

	for _, part := range parts[1:] {
		key, raw, ok := strings.Cut(part, "=")
		if !ok {
			return Node{}, fmt.Errorf("permission: malformed serialized segment %q", part)
		}
		switch key {
		case "server":
			n.Server, err = url.QueryUnescape(raw)
		case "world":
			n.World, err = url.QueryUnescape(raw)
		case "expiry":
			n.Expiry, err = strconv.ParseInt(raw, 10, 64)
		case "ctx":
			err = parseSerializedContext(&n, raw)
		default:
			err = fmt.Errorf("permission: unknown serialized node segment %q", key)
		}
		if err != nil {
			return Node{}, err
		}
	}
	return n, nil
}

func parseSerializedContext(n *Node, raw string) error {
	if raw == "" {
		return nil
	}
	n.Context = make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("permission: malformed context pair %q", pair)
		}
		key, err := url.QueryUnescape(k)
		if err != nil {
			return err
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return err
		}
		n.Context[key] = val
	}
	return nil
}
