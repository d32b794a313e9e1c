package permission

import (
	"time"

	"github.com/lattice-run/permix/permission/event"
)

// AuditTemporaryPermissions removes every expired temporary node from both
// the permanent and transient sets, emitting PermissionNodeExpire for each
// one. It returns whether any removal occurred (§4.3, §8 property 4:
// audit();audit() ≡ audit(), second call returns false).
func (s *Store) AuditTemporaryPermissions() bool {
	now := nowFunc()

	s.mu.Lock()
	expiredNodes, keptNodes := partitionExpired(s.nodes, now)
	s.nodes = keptNodes
	expiredTransient, keptTransient := partitionExpired(s.transientNodes, now)
	s.transientNodes = keptTransient
	s.mu.Unlock()

	for _, n := range expiredNodes {
		s.sink.EmitAsync(event.PermissionNodeExpire{Holder: s.objectName, Permission: n.Permission})
	}
	for _, n := range expiredTransient {
		s.sink.EmitAsync(event.PermissionNodeExpire{Holder: s.objectName, Permission: n.Permission})
	}

	return len(expiredNodes) > 0 || len(expiredTransient) > 0
}

func partitionExpired(nodes []Node, now time.Time) (expired, kept []Node) {
	for _, n := range nodes {
		if n.Expiry != 0 && n.Expiry <= now.Unix() {
			expired = append(expired, n)
		} else {
			kept = append(kept, n)
		}
	}
	return expired, kept
}
