package permission

// GetAllNodes implements §4.5: a holder's own resolved nodes plus everything
// inherited transitively through group nodes, with cycle protection via the
// excluded name accumulator. excluded may be nil on the initial call.
func (s *Store) GetAllNodes(excluded []string, ctx Context, lookup GroupLookup, flags Flags) []LocalizedNode {
	all := s.GetPermissions(true)

	ex := excludedSet(excluded).with(s.objectName)

	parents := filterGroupParents(all, ctx, flags)

	for _, parent := range parents {
		group, ok := lookup(parent.GroupName())
		if !ok {
			continue // unknown group: not an error, per §7
		}
		if ex.contains(group.objectName) {
			continue // cycle break, invariant 3
		}

		inherited := group.GetAllNodes(ex, ctx, lookup, flags)
		for _, in := range inherited {
			if !containsAlmostEqual(all, in.Node) {
				all = append(all, in)
			}
		}
	}

	// The Java original keeps `all` as a TreeSet ordered by the priority
	// comparator throughout; a plain slice needs an explicit re-sort after
	// appending inherited nodes to preserve the same "iterate in priority
	// order" guarantee relied on by GetAllNodesFiltered (§4.6 step 3).
	SortBySpecificity(all)
	return all
}

// filterGroupParents returns the subset of all's group nodes that apply to
// ctx's server/world/tags, using the group-inheritance-specific
// ApplyGlobalGroups/ApplyGlobalWorldGroups flags (§4.5 step 4, §9's
// intentional asymmetry with the final filter's IncludeGlobal flags).
func filterGroupParents(all []LocalizedNode, ctx Context, flags Flags) []LocalizedNode {
	var parents []LocalizedNode
	for _, n := range all {
		if !n.Node.IsGroupNode() {
			continue
		}
		if !n.Node.ShouldApplyOnServer(ctx.Server, ctx.ApplyGlobalGroups, flags.ApplyingRegex) {
			continue
		}
		if !n.Node.ShouldApplyOnWorld(ctx.World, ctx.ApplyGlobalWorldGroups, flags.ApplyingRegex) {
			continue
		}
		if !n.Node.ShouldApplyWithContext(ctx.Tags, false) {
			continue
		}
		parents = append(parents, n)
	}
	return parents
}

func containsAlmostEqual(nodes []LocalizedNode, target Node) bool {
	for _, n := range nodes {
		if n.Node.AlmostEquals(target) {
			return true
		}
	}
	return false
}
