package permission

// The methods in this file are not named in spec.md's component list but
// are present on the original PermissionHolder and cost nothing extra once
// GetPermissions and the applicability predicates exist; see DESIGN.md's
// permission/supplements.go entry.

// GetTemporaryNodes returns the holder's own (non-inherited) temporary
// nodes, deduplicated the same way GetPermissions(false) is.
func (s *Store) GetTemporaryNodes() []LocalizedNode {
	var out []LocalizedNode
	for _, ln := range s.GetPermissions(false) {
		if ln.Node.IsTemporary() {
			out = append(out, ln)
		}
	}
	return out
}

// GetPermanentNodes is the IsPermanent counterpart of GetTemporaryNodes.
func (s *Store) GetPermanentNodes() []LocalizedNode {
	var out []LocalizedNode
	for _, ln := range s.GetPermissions(false) {
		if ln.Node.IsPermanent() {
			out = append(out, ln)
		}
	}
	return out
}

// GetGroupNames returns every group this holder directly references via a
// group node, on any server/world.
func (s *Store) GetGroupNames() []string {
	var names []string
	for _, n := range s.GetNodes() {
		if n.IsGroupNode() {
			names = append(names, n.GroupName())
		}
	}
	return names
}

// GetLocalGroups returns the group names this holder inherits through group
// nodes scoped to the given server (and, if world is non-empty, scoped to
// that world too); group nodes with no server, or with no world when world
// is non-empty, are not included. Unlike
// GetAllNodesFiltered this only looks at the holder's own nodes, not
// inherited ones, mirroring the original's non-recursive getLocalGroups.
func (s *Store) GetLocalGroups(server, world string) []string {
	var names []string
	for _, n := range s.GetNodes() {
		if !n.IsGroupNode() {
			continue
		}
		if !n.ShouldApplyOnServer(server, false, true) {
			continue
		}
		if world != "" && !n.ShouldApplyOnWorld(world, false, true) {
			continue
		}
		names = append(names, n.GroupName())
	}
	return names
}
