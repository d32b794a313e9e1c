package permission

// GetPermissions implements §4.4: the ordered, deduplicated union of a
// holder's own permanent and transient nodes. Expired nodes are treated as
// absent even if AuditTemporaryPermissions hasn't run yet (§4.3 "the
// resolver treats expired nodes as absent even if auditing has not run").
func (s *Store) GetPermissions(mergeTemp bool) []LocalizedNode {
	snap := s.snapshot()
	now := nowFunc()

	combined := make([]LocalizedNode, 0, len(snap.nodes)+len(snap.transientNodes))
	for _, n := range snap.nodes {
		if !n.HasExpired(now) {
			combined = append(combined, LocalizedNode{Node: n, Origin: s.objectName})
		}
	}
	for _, n := range snap.transientNodes {
		if !n.HasExpired(now) {
			combined = append(combined, LocalizedNode{Node: n, Origin: s.objectName})
		}
	}
	SortBySpecificity(combined)

	out := make([]LocalizedNode, 0, len(combined))
candidate:
	for _, c := range combined {
		for _, accepted := range out {
			if mergeTemp {
				if c.Node.EqualsIgnoringValueOrTemp(accepted.Node) {
					continue candidate
				}
			} else if c.Node.AlmostEquals(accepted.Node) {
				continue candidate
			}
		}
		out = append(out, c)
	}
	return out
}
