package permission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasPermission_DirectMatch(t *testing.T) {
	s := NewStore("u1", KindUser, nil)
	s.SetNodes([]Node{{Permission: "a.b", Value: true}})

	require.Equal(t, True, s.HasPermission(NewBuilder("a.b").Build(), false))
	require.Equal(t, Undefined, s.HasPermission(NewBuilder("c.d").Build(), false))
}

func TestHasPermission_ExpiredNodeIsInvisible(t *testing.T) {
	withFixedClock(t, 2000)
	s := NewStore("u1", KindUser, nil)
	// The expiry is already in the past relative to the fixed clock, so
	// SetNodes' audit evicts the node at once; confirm the query reports
	// Undefined. TestAudit_ResolverHidesUnauditedExpiry covers a node that
	// expires without an audit.
	s.SetNodes([]Node{{Permission: "a.b", Value: true, Expiry: 1000}})

	require.Equal(t, Undefined, s.HasPermission(NewBuilder("a.b").Build(), false))
}

func TestHasPermissionString(t *testing.T) {
	s := NewStore("u1", KindUser, nil)
	s.SetNodes([]Node{{Permission: "a.b", Value: true}})

	require.True(t, s.HasPermissionString("a.b", true, false))
	require.False(t, s.HasPermissionString("a.b", false, false))
	require.False(t, s.HasPermissionString("c.d", true, false))
}

func TestInheritsPermissionInfo_FindsInheritedOrigin(t *testing.T) {
	g := NewStore("admin", KindGroup, nil)
	g.SetNodes([]Node{{Permission: "server.manage", Value: true}})

	u := NewStore("u1", KindUser, nil)
	u.SetNodes([]Node{{Permission: "group.admin", Value: true}})

	lookup := lookupOf(map[string]*Store{"admin": g})

	ln, ok := u.InheritsPermissionInfo(NewBuilder("server.manage").Build(), lookup, Flags{})
	require.True(t, ok)
	require.Equal(t, "admin", ln.Origin)
	require.True(t, ln.Node.Value)
}

func TestInheritsPermissionInfo_NoMatch(t *testing.T) {
	u := NewStore("u1", KindUser, nil)
	u.SetNodes([]Node{{Permission: "a.b", Value: true}})

	_, ok := u.InheritsPermissionInfo(NewBuilder("z.z").Build(), nil, Flags{})
	require.False(t, ok)
}

func TestInheritsPermission_TriState(t *testing.T) {
	g := NewStore("admin", KindGroup, nil)
	g.SetNodes([]Node{{Permission: "server.manage", Value: false}})

	u := NewStore("u1", KindUser, nil)
	u.SetNodes([]Node{{Permission: "group.admin", Value: true}})

	lookup := lookupOf(map[string]*Store{"admin": g})

	require.Equal(t, False, u.InheritsPermission(NewBuilder("server.manage").Build(), lookup, Flags{}))
	require.Equal(t, Undefined, u.InheritsPermission(NewBuilder("nope").Build(), lookup, Flags{}))
}
