package permission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNode_IsGroupNode(t *testing.T) {
	n := Node{Permission: "Group.Admin"}
	require.True(t, n.IsGroupNode())
	require.Equal(t, "Admin", n.GroupName())

	require.False(t, Node{Permission: "a.b"}.IsGroupNode())
	require.False(t, Node{Permission: "group."}.IsGroupNode())
}

func TestNode_IsWildcard(t *testing.T) {
	require.True(t, Node{Permission: "*"}.IsWildcard())
	require.True(t, Node{Permission: "'*'"}.IsWildcard())
	require.False(t, Node{Permission: "a.*"}.IsWildcard())
}

func TestNode_HasExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	require.True(t, Node{Expiry: 999}.HasExpired(now))
	require.True(t, Node{Expiry: 1000}.HasExpired(now))
	require.False(t, Node{Expiry: 1001}.HasExpired(now))
	require.False(t, Node{Expiry: 0}.HasExpired(now))
}

func TestNode_AlmostEquals(t *testing.T) {
	a := Node{Permission: "a.b", Value: true, Server: "s1"}
	b := Node{Permission: "a.b", Value: false, Server: "s1"}
	require.True(t, a.AlmostEquals(b), "value is ignored")

	c := Node{Permission: "a.b", Value: true, Server: "s2"}
	require.False(t, a.AlmostEquals(c), "server differs")

	d := Node{Permission: "a.b", Value: true, Server: "s1", Expiry: 123}
	require.False(t, a.AlmostEquals(d), "expiry-presence differs")
}

func TestNode_EqualsIgnoringValueOrTemp(t *testing.T) {
	a := Node{Permission: "a.b", Value: true, Server: "s1", Expiry: 50}
	b := Node{Permission: "a.b", Value: false, Server: "s1", Expiry: 999}
	require.True(t, a.EqualsIgnoringValueOrTemp(b), "value and expiry both ignored")

	c := Node{Permission: "a.b", Value: true, World: "w1"}
	require.False(t, a.EqualsIgnoringValueOrTemp(c))
}

func TestNode_ShouldApplyOnServer(t *testing.T) {
	unscoped := Node{}
	require.True(t, unscoped.ShouldApplyOnServer("s1", true, false))
	require.False(t, unscoped.ShouldApplyOnServer("s1", false, false))

	scoped := Node{Server: "S1"}
	require.True(t, scoped.ShouldApplyOnServer("s1", false, false), "case insensitive")
	require.False(t, scoped.ShouldApplyOnServer("s2", true, false), "include_global doesn't rescue a mismatched scoped node")

	regexNode := Node{Server: "R=s[0-9]+"}
	require.True(t, regexNode.ShouldApplyOnServer("s42", false, true))
	require.False(t, regexNode.ShouldApplyOnServer("prod", false, true))
	require.False(t, regexNode.ShouldApplyOnServer("s42", false, false), "regex disabled falls back to literal equality")
}

func TestNode_ShouldApplyWithContext(t *testing.T) {
	n := Node{Context: map[string]string{"region": "eu"}}
	require.True(t, n.ShouldApplyWithContext(map[string]string{"region": "eu", "extra": "x"}, false), "extra context keys are ignored")
	require.False(t, n.ShouldApplyWithContext(map[string]string{"region": "us"}, false))
	require.False(t, n.ShouldApplyWithContext(nil, false))
}
