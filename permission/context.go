package permission

// TriState is the result of a permission lookup: granted, denied, or never
// mentioned at all. Mirrors the teacher's pkg/proxy/permission.TriState,
// generalized to the resolver's three-way query surface.
type TriState uint8

const (
	Undefined TriState = iota
	False
	True
)

// Bool converts TriState to a plain bool, with Undefined treated as false.
func (t TriState) Bool() bool {
	return t == True
}

// FromBool lifts a plain bool into a TriState.
func FromBool(v bool) TriState {
	if v {
		return True
	}
	return False
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undefined"
	}
}

// Context is the query-time evaluation environment (§3.4).
type Context struct {
	Server string
	World  string
	// Tags holds free-form key/value dimensions beyond Server/World.
	Tags map[string]string

	// ApplyGroups controls whether inheritance is followed at all.
	ApplyGroups bool

	// IncludeGlobal/IncludeGlobalWorld: whether a node with no
	// server/world still applies when one is requested, used by the final
	// context filter (§4.6).
	IncludeGlobal      bool
	IncludeGlobalWorld bool

	// ApplyGlobalGroups/ApplyGlobalWorldGroups: the same rule, but
	// restricted to group-inheritance edges during the walk (§4.5). Kept
	// independent of IncludeGlobal/IncludeGlobalWorld per §9's
	// "apply rules asymmetry" open question — this is intentional, not an
	// oversight.
	ApplyGlobalGroups      bool
	ApplyGlobalWorldGroups bool
}

// AllowAll is the permissive context used by queries that want every node
// regardless of server/world/tag scoping, e.g. InheritsPermissionInfo.
func AllowAll() Context {
	return Context{
		ApplyGroups:            true,
		IncludeGlobal:          true,
		IncludeGlobalWorld:     true,
		ApplyGlobalGroups:      true,
		ApplyGlobalWorldGroups: true,
	}
}
