package permission

import "fmt"

// AlreadyHas is returned by the setters in §4.2 when the target node is
// already present (under AlmostEquals) in the selected set.
type AlreadyHas struct {
	Holder string
	Node   Node
}

func (e *AlreadyHas) Error() string {
	return fmt.Sprintf("permission: %s already has node %q", e.Holder, e.Node.Permission)
}

// Lacks is returned by the unsetters in §4.2 when no matching node is
// present.
type Lacks struct {
	Holder string
	Node   Node
}

func (e *Lacks) Error() string {
	return fmt.Sprintf("permission: %s lacks node %q", e.Holder, e.Node.Permission)
}
