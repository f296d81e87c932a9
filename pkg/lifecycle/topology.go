package lifecycle

import (
	"fmt"

	"github.com/DeBrosOfficial/giab/pkg/nodedir"
)

// NodeSpec defines one node of the grid
type NodeSpec struct {
	Role          nodedir.Role
	CreateCommand string // tool subcommand that provisions the node directory
}

// Topology is the fixed set of nodes a grid is made of. Nodes are listed in
// the order every lifecycle command visits them.
type Topology struct {
	Nodes []NodeSpec
}

// DefaultTopology returns the two-node grid: one introducer, one storage node.
func DefaultTopology() *Topology {
	return &Topology{
		Nodes: []NodeSpec{
			{
				Role:          nodedir.RoleIntroducer,
				CreateCommand: "create-introducer",
			},
			{
				Role:          nodedir.RoleStorage,
				CreateCommand: "create-node",
			},
		},
	}
}

// Spec returns the node spec for role.
func (t *Topology) Spec(role nodedir.Role) (NodeSpec, error) {
	for _, spec := range t.Nodes {
		if spec.Role == role {
			return spec, nil
		}
	}
	return NodeSpec{}, fmt.Errorf("unknown node role %q", role)
}

// Roles returns the roles in visiting order.
func (t *Topology) Roles() []nodedir.Role {
	roles := make([]nodedir.Role, 0, len(t.Nodes))
	for _, spec := range t.Nodes {
		roles = append(roles, spec.Role)
	}
	return roles
}
