package permission

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/lattice-run/permix/internal/identity"
	"github.com/lattice-run/permix/permission/event"
)

// Store owns one holder's permanent and transient node sets (§3.2, §4.2).
// A Store is also a PermissionHolder in the spec's sense: users and groups
// are both represented by Store, distinguished by Kind, per the §9 design
// note preferring a single concrete type with a kind tag over two
// parallel hierarchies.
type Store struct {
	objectName string
	id         identity.ID
	kind       Kind
	sink       event.Sink

	mu             sync.RWMutex
	nodes          []Node
	transientNodes []Node

	// generation is bumped on every SetNodes/SetTransientNodes bulk
	// replace. It isn't part of spec.md; it's the supplemented cache
	// invalidation hook noted in SPEC_FULL.md, letting an external cache
	// (outside this core, per §1) key off "has this holder changed".
	generation atomic.Uint64
}

// NewStore creates an empty Store for the given identity. sink may be
// event.Nop if the caller doesn't want lifecycle events. The Store's ID is
// derived deterministically from kind and objectName (§3.2: holders have no
// backing account system in this core, so there is no real account UUID to
// carry), namespaced by kind so a user and a group sharing a name never
// collide.
func NewStore(objectName string, kind Kind, sink event.Sink) *Store {
	if sink == nil {
		sink = event.Nop
	}
	return &Store{
		objectName: objectName,
		id:         identity.Deterministic(kind.String(), objectName),
		kind:       kind,
		sink:       sink,
	}
}

func (s *Store) ObjectName() string { return s.objectName }
func (s *Store) ID() identity.ID    { return s.id }
func (s *Store) Kind() Kind         { return s.kind }
func (s *Store) Generation() uint64 { return s.generation.Load() }

// GetNodes returns a read-only snapshot of the permanent node set.
func (s *Store) GetNodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNodes(s.nodes)
}

// GetTransientNodes returns a read-only snapshot of the transient node set.
func (s *Store) GetTransientNodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNodes(s.transientNodes)
}

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

// snapshot takes a single consistent view of both sets for resolution, per
// §4.2's "resolution takes a consistent snapshot of both sets before
// iterating".
type snapshot struct {
	nodes, transientNodes []Node
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		nodes:          cloneNodes(s.nodes),
		transientNodes: cloneNodes(s.transientNodes),
	}
}

// SetNodes atomically replaces the permanent node set, then runs the expiry
// auditor. Per §4.2 this is a migration primitive: no per-node set events
// are fired for the replace itself (only expiry events from the audit).
func (s *Store) SetNodes(nodes []Node) {
	s.mu.Lock()
	s.nodes = cloneNodes(nodes)
	s.generation.Inc()
	s.mu.Unlock()
	s.AuditTemporaryPermissions()
}

// SetTransientNodes is the transient-set analogue of SetNodes.
func (s *Store) SetTransientNodes(nodes []Node) {
	s.mu.Lock()
	s.transientNodes = cloneNodes(nodes)
	s.generation.Inc()
	s.mu.Unlock()
	s.AuditTemporaryPermissions()
}

// SetPermission adds node to the permanent set. It fails with *AlreadyHas if
// an AlmostEquals-equivalent node is already present.
func (s *Store) SetPermission(node Node) error {
	return s.setPermission(node, false)
}

// SetTransientPermission is the transient-set analogue of SetPermission.
func (s *Store) SetTransientPermission(node Node) error {
	return s.setPermission(node, true)
}

func (s *Store) setPermission(node Node, transient bool) error {
	s.mu.Lock()
	// Scan and mutate under the one held write lock (§4.2, §5): checking
	// hasPermissionLocked via the public RLock-based HasPermission and then
	// re-acquiring the lock to append would leave a gap where two concurrent
	// SetPermission calls for the same node could both pass the check before
	// either appends, letting both succeed instead of the second returning
	// *AlreadyHas.
	if s.hasPermissionLocked(node, transient) != Undefined {
		s.mu.Unlock()
		return &AlreadyHas{Holder: s.objectName, Node: node}
	}
	if transient {
		s.transientNodes = append(s.transientNodes, node)
	} else {
		s.nodes = append(s.nodes, node)
	}
	s.mu.Unlock()

	s.sink.EmitAsync(event.PermissionNodeSet{
		Holder:     s.objectName,
		Permission: node.Permission,
		Value:      node.Value,
	})
	return nil
}

// UnsetPermission removes every AlmostEquals-matching node from the
// permanent set. It fails with *Lacks if none match.
func (s *Store) UnsetPermission(node Node) error {
	return s.unsetPermission(node, false)
}

// UnsetTransientPermission is the transient-set analogue of UnsetPermission.
func (s *Store) UnsetTransientPermission(node Node) error {
	return s.unsetPermission(node, true)
}

func (s *Store) unsetPermission(node Node, transient bool) error {
	s.mu.Lock()
	if s.hasPermissionLocked(node, transient) == Undefined {
		s.mu.Unlock()
		return &Lacks{Holder: s.objectName, Node: node}
	}
	if transient {
		s.transientNodes = removeAlmostEqual(s.transientNodes, node)
	} else {
		s.nodes = removeAlmostEqual(s.nodes, node)
	}
	s.mu.Unlock()

	if node.IsGroupNode() {
		s.sink.EmitAsync(event.GroupRemove{
			Holder:    s.objectName,
			Group:     node.GroupName(),
			Server:    node.Server,
			World:     node.World,
			Temporary: node.IsTemporary(),
		})
	} else {
		s.sink.EmitAsync(event.PermissionNodeUnset{
			Holder:     s.objectName,
			Permission: node.Permission,
		})
	}
	return nil
}

// removeAlmostEqual is defensive per §4.2: there should be at most one
// AlmostEquals match in a well-formed set, but storage permits duplicates
// under AlmostEquals, so every match is removed.
func removeAlmostEqual(nodes []Node, target Node) []Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if !n.AlmostEquals(target) {
			out = append(out, n)
		}
	}
	return out
}
