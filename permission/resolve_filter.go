package permission

// GetAllNodesFiltered implements §4.6: context-scope a holder's (and its
// groups') nodes down to one entry per permission string, highest priority
// wins. The result keeps the priority order of its input, most specific
// first; ExportNodes' first-writer-wins wildcard fan-out depends on that.
func (s *Store) GetAllNodesFiltered(ctx Context, lookup GroupLookup, flags Flags) []LocalizedNode {
	var all []LocalizedNode
	if ctx.ApplyGroups {
		all = s.GetAllNodes(nil, ctx, lookup, flags)
	} else {
		all = s.GetPermissions(true)
	}

	kept := make([]LocalizedNode, 0, len(all))
	seenPermissions := make(map[string]struct{}, len(all))

	for _, n := range all {
		if !n.Node.ShouldApplyOnServer(ctx.Server, ctx.IncludeGlobal, flags.ApplyingRegex) {
			continue
		}
		if !n.Node.ShouldApplyOnWorld(ctx.World, ctx.IncludeGlobalWorld, flags.ApplyingRegex) {
			continue
		}
		if !n.Node.ShouldApplyWithContext(ctx.Tags, false) {
			continue
		}
		if _, dup := seenPermissions[n.Node.Permission]; dup {
			continue
		}
		seenPermissions[n.Node.Permission] = struct{}{}
		kept = append(kept, n)
	}
	return kept
}
