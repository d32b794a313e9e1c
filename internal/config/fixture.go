package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lattice-run/permix/permission"
)

// Fixture is a small YAML document describing a set of groups and a single
// holder to resolve, used by cmd/permcheck to drive ExportNodes without a
// live backing store.
type Fixture struct {
	Groups  map[string][]NodeSpec `yaml:"groups"`
	Holder  []NodeSpec            `yaml:"holder"`
	Context ContextSpec           `yaml:"context"`
}

// NodeSpec is the YAML shape of a single node.
type NodeSpec struct {
	Permission string            `yaml:"permission"`
	Value      bool              `yaml:"value"`
	Server     string            `yaml:"server"`
	World      string            `yaml:"world"`
	Expiry     int64             `yaml:"expiry"`
	Context    map[string]string `yaml:"context"`
}

// ContextSpec is the YAML shape of the query-time context.
type ContextSpec struct {
	Server                 string `yaml:"server"`
	World                  string `yaml:"world"`
	ApplyGroups            bool   `yaml:"applyGroups"`
	IncludeGlobal          bool   `yaml:"includeGlobal"`
	IncludeGlobalWorld     bool   `yaml:"includeGlobalWorld"`
	ApplyGlobalGroups      bool   `yaml:"applyGlobalGroups"`
	ApplyGlobalWorldGroups bool   `yaml:"applyGlobalWorldGroups"`
}

func (n NodeSpec) toNode() permission.Node {
	return permission.Node{
		Permission: n.Permission,
		Value:      n.Value,
		Server:     n.Server,
		World:      n.World,
		Expiry:     n.Expiry,
		Context:    n.Context,
	}
}

func (c ContextSpec) toContext() permission.Context {
	return permission.Context{
		Server:                 c.Server,
		World:                  c.World,
		ApplyGroups:            c.ApplyGroups,
		IncludeGlobal:          c.IncludeGlobal,
		IncludeGlobalWorld:     c.IncludeGlobalWorld,
		ApplyGlobalGroups:      c.ApplyGlobalGroups,
		ApplyGlobalWorldGroups: c.ApplyGlobalWorldGroups,
	}
}

// LoadFixture reads and parses a fixture file from path.
func LoadFixture(path string) (Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("config: read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("config: parse fixture: %w", err)
	}
	return f, nil
}

// Build materializes the fixture into a holder Store, a set of group Stores,
// and the resolved query Context.
func (f Fixture) Build() (holder *permission.Store, groups map[string]*permission.Store, ctx permission.Context) {
	groups = make(map[string]*permission.Store, len(f.Groups))
	for name, specs := range f.Groups {
		g := permission.NewStore(name, permission.KindGroup, nil)
		nodes := make([]permission.Node, len(specs))
		for i, s := range specs {
			nodes[i] = s.toNode()
		}
		g.SetNodes(nodes)
		groups[name] = g
	}

	holder = permission.NewStore("holder", permission.KindUser, nil)
	nodes := make([]permission.Node, len(f.Holder))
	for i, s := range f.Holder {
		nodes[i] = s.toNode()
	}
	holder.SetNodes(nodes)

	return holder, groups, f.Context.toContext()
}

// Lookup adapts a group map into a permission.GroupLookup.
func Lookup(groups map[string]*permission.Store) permission.GroupLookup {
	return func(name string) (*permission.Store, bool) {
		g, ok := groups[name]
		return g, ok
	}
}
