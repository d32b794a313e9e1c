package permission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoreSpecific_TemporaryBeatsPermanent(t *testing.T) {
	temp := Node{Permission: "a.b", Expiry: 100}
	perm := Node{Permission: "a.b"}
	require.True(t, MoreSpecific(temp, perm))
	require.False(t, MoreSpecific(perm, temp))
}

func TestMoreSpecific_WorldThenServerThenContext(t *testing.T) {
	world := Node{Permission: "a", World: "w1"}
	server := Node{Permission: "a", Server: "s1"}
	require.True(t, MoreSpecific(world, server), "world scoping outranks server scoping")

	tagged := Node{Permission: "a", Context: map[string]string{"k": "v"}}
	untagged := Node{Permission: "a"}
	require.True(t, MoreSpecific(tagged, untagged))
	require.False(t, MoreSpecific(tagged, server), "server scoping outranks tags")
}

func TestMoreSpecific_WildcardSegments(t *testing.T) {
	fewer := Node{Permission: "a.*.c"}
	more := Node{Permission: "a.*.*"}
	require.True(t, MoreSpecific(fewer, more))
}

func TestMoreSpecific_LexicographicFallback(t *testing.T) {
	a := Node{Permission: "a.b"}
	b := Node{Permission: "a.c"}
	require.True(t, MoreSpecific(a, b))
	require.False(t, MoreSpecific(b, a))
}

func TestMoreSpecific_Deterministic(t *testing.T) {
	a := Node{Permission: "a.b", Value: true}
	b := Node{Permission: "a.b", Value: false}
	// Equal on every comparator field above the tie-break; the tie-break
	// must still produce a consistent, antisymmetric order.
	require.NotEqual(t, MoreSpecific(a, b), MoreSpecific(b, a))
}

func TestSortBySpecificity(t *testing.T) {
	nodes := []LocalizedNode{
		{Node: Node{Permission: "a", Server: ""}},
		{Node: Node{Permission: "a", Server: "s1"}},
		{Node: Node{Permission: "a", Expiry: 100}},
	}
	SortBySpecificity(nodes)
	require.True(t, nodes[0].Node.IsTemporary())
	require.Equal(t, "s1", nodes[1].Node.Server)
}
