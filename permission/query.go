package permission

// HasPermission implements §4.8: a non-recursive scan of the chosen set
// (permanent or transient), returning the TriState of the first
// AlmostEquals match, or Undefined.
func (s *Store) HasPermission(node Node, transient bool) TriState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasPermissionLocked(node, transient)
}

// hasPermissionLocked is HasPermission's logic without its own locking, so
// callers that already hold s.mu (for either read or write) can scan and
// then mutate without a gap between the two in which another writer could
// interleave. Callers must hold at least s.mu.RLock().
func (s *Store) hasPermissionLocked(node Node, transient bool) TriState {
	set := s.nodes
	if transient {
		set = s.transientNodes
	}
	now := nowFunc()
	for _, n := range set {
		if n.HasExpired(now) {
			continue // invariant 2: expired nodes are transparently invisible
		}
		if n.AlmostEquals(node) {
			return FromBool(n.Value)
		}
	}
	return Undefined
}

// HasPermissionString is a convenience that builds an ephemeral Node from a
// permission string and value and delegates to HasPermission.
func (s *Store) HasPermissionString(permission string, value bool, transient bool) bool {
	node := NewBuilder(permission).Value(value).Build()
	return s.HasPermission(node, transient).Bool() == value
}

// InheritsPermissionInfo implements §4.8: a scan of GetAllNodes(nil,
// AllowAll()) for the first AlmostEquals match, returning its LocalizedNode
// (carrying the origin holder) and whether a match was found.
func (s *Store) InheritsPermissionInfo(node Node, lookup GroupLookup, flags Flags) (LocalizedNode, bool) {
	for _, ln := range s.GetAllNodes(nil, AllowAll(), lookup, flags) {
		if ln.Node.AlmostEquals(node) {
			return ln, true
		}
	}
	return LocalizedNode{}, false
}

// InheritsPermission is the TriState-returning variant of
// InheritsPermissionInfo.
func (s *Store) InheritsPermission(node Node, lookup GroupLookup, flags Flags) TriState {
	ln, ok := s.InheritsPermissionInfo(node, lookup, flags)
	if !ok {
		return Undefined
	}
	return FromBool(ln.Node.Value)
}
