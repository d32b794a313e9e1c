// Package identity wraps google/uuid for the holder identifiers used across
// the permission core, generalizing pkg/util/uuid's Minecraft-specific
// offline-player derivation into a plain deterministic-ID helper.
package identity

import (
	"encoding/hex"
	"fmt"
	"strconv"

	guuid "github.com/google/uuid"
)

// ID is a holder identifier. Most callers never need to construct one by
// hand: a Store's objectName is an opaque string, and ID exists for the
// subset of callers (the demo CLI, persistence adapters) that want a stable,
// namespaced identifier instead of a free-form name.
type ID guuid.UUID

// Nil is the zero ID.
var Nil = ID(guuid.Nil)

func (i ID) String() string {
	return guuid.UUID(i).String()
}

// Undashed returns the hex form without separators, useful as a map or file
// key.
func (i ID) Undashed() string {
	return hex.EncodeToString(i[:])
}

func (i ID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(i.String())), nil
}

func (i *ID) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("identity: expected quoted id, got %s: %w", b, err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Parse decodes s into an ID, accepting any form google/uuid accepts.
func Parse(s string) (ID, error) {
	u, err := guuid.Parse(s)
	return ID(u), err
}

// FromBytes builds an ID from a 16-byte slice, copying it.
func FromBytes(b []byte) (ID, error) {
	u, err := guuid.FromBytes(b)
	return ID(u), err
}

// New returns a new random ID.
func New() ID { return ID(guuid.New()) }

// Deterministic derives a stable ID for a holder that has no backing account
// UUID (a synthetic group, an imported legacy record keyed only by name),
// namespaced by kind so a user named "admin" and a group named "admin" never
// collide.
func Deterministic(kind, name string) ID {
	return ID(guuid.NewMD5(guuid.NameSpaceOID, []byte(kind+":"+name)))
}
