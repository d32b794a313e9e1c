package permission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lookupOf(groups map[string]*Store) GroupLookup {
	return func(name string) (*Store, bool) {
		g, ok := groups[name]
		return g, ok
	}
}

func TestGetAllNodes_InheritsFromGroup(t *testing.T) {
	g := NewStore("admin", KindGroup, nil)
	g.SetNodes([]Node{{Permission: "server.manage", Value: true}})

	u := NewStore("u1", KindUser, nil)
	u.SetNodes([]Node{{Permission: "group.admin", Value: true}})

	lookup := lookupOf(map[string]*Store{"admin": g})

	all := u.GetAllNodes(nil, AllowAll(), lookup, Flags{})
	var found bool
	for _, n := range all {
		if n.Node.Permission == "server.manage" {
			found = true
			require.Equal(t, "admin", n.Origin, "origin is the immediate parent, not the user")
		}
	}
	require.True(t, found)
}

func TestGetAllNodes_UnknownGroupSkippedSilently(t *testing.T) {
	u := NewStore("u1", KindUser, nil)
	u.SetNodes([]Node{{Permission: "group.ghost", Value: true}})

	lookup := lookupOf(map[string]*Store{})
	all := u.GetAllNodes(nil, AllowAll(), lookup, Flags{})
	require.Len(t, all, 1, "only the user's own group. node itself, no inherited nodes")
}

func TestGetAllNodes_CycleSafety(t *testing.T) {
	// S5 — Cycle. G1 inherits G2, G2 inherits G1, each has one unique node.
	g1 := NewStore("g1", KindGroup, nil)
	g2 := NewStore("g2", KindGroup, nil)
	groups := map[string]*Store{"g1": g1, "g2": g2}
	lookup := lookupOf(groups)

	g1.SetNodes([]Node{
		{Permission: "g1.unique", Value: true},
		{Permission: "group.g2", Value: true},
	})
	g2.SetNodes([]Node{
		{Permission: "g2.unique", Value: true},
		{Permission: "group.g1", Value: true},
	})

	all := g1.GetAllNodes(nil, AllowAll(), lookup, Flags{})

	var seenG1Unique, seenG2Unique int
	for _, n := range all {
		switch n.Node.Permission {
		case "g1.unique":
			seenG1Unique++
		case "g2.unique":
			seenG2Unique++
		}
	}
	require.Equal(t, 1, seenG1Unique)
	require.Equal(t, 1, seenG2Unique)
}

func TestGetAllNodes_ServerScopedGroupEdge(t *testing.T) {
	g := NewStore("vip", KindGroup, nil)
	g.SetNodes([]Node{{Permission: "vip.perk", Value: true}})

	u := NewStore("u1", KindUser, nil)
	u.SetNodes([]Node{{Permission: "group.vip", Value: true, Server: "lobby"}})

	lookup := lookupOf(map[string]*Store{"vip": g})

	// Requesting a different server with ApplyGlobalGroups=false must not
	// follow the server-scoped group edge. The edge has no world, so
	// ApplyGlobalWorldGroups lets the world check pass and leaves the server
	// check to decide.
	ctx := Context{Server: "survival", ApplyGroups: true, ApplyGlobalWorldGroups: true}
	all := u.GetAllNodes(nil, ctx, lookup, Flags{})
	for _, n := range all {
		require.NotEqual(t, "vip.perk", n.Node.Permission)
	}

	ctxMatch := Context{Server: "lobby", ApplyGroups: true, ApplyGlobalWorldGroups: true}
	all = u.GetAllNodes(nil, ctxMatch, lookup, Flags{})
	var found bool
	for _, n := range all {
		if n.Node.Permission == "vip.perk" {
			found = true
		}
	}
	require.True(t, found)
}
