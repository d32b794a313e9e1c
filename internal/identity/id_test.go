package identity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministic_StableAndNamespaced(t *testing.T) {
	id := Deterministic("group", "admin")
	id2 := Deterministic("group", "admin")
	require.Equal(t, id, id2)

	userID := Deterministic("user", "admin")
	require.NotEqual(t, id, userID, "same name, different kind, must not collide")
}

func TestID_JSON(t *testing.T) {
	id := Deterministic("group", "admin")
	b, err := id.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"`+id.String()+`"`, string(b))

	var id2 ID
	require.NoError(t, id2.UnmarshalJSON(b))
	require.Equal(t, id, id2)
}

func TestParse_RoundTrip(t *testing.T) {
	id := New()
	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}
