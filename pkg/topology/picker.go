package topology

import (
	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
	"github.com/espalier-dev/espalier/pkg/registry"
)

// Choice is the outcome of picking a branch for an automatic rewire:
// either a specific branch of the node, or its default continuation.
type Choice struct {
	IsBranch bool
	BranchID string
}

// Picker decides which outgoing slot of a node an automatic rewire
// should use when bridging connections after an insert or delete. The
// decision is a guess at user intent, so it is a replaceable strategy
// rather than fixed logic.
type Picker interface {
	Pick(node, target *domain.Node, reg *registry.Registry, g *graph.Graph) Choice
}

// HeuristicPicker is the default strategy. In order:
//
//  1. If the node's plugin declares branches: if/else always prefers
//     "yes"; split-flow picks "path2" when the target sits to the right
//     of the node, "path1" otherwise; any other branching type picks its
//     first declared branch.
//  2. Otherwise, reuse the label of the node's first existing branch
//     edge in the graph.
//  3. Otherwise, report a default connection.
//
// The spatial rules encode UI-level assumptions about two-way splits and
// do not generalize to non-spatial branch semantics.
type HeuristicPicker struct{}

func (HeuristicPicker) Pick(node, target *domain.Node, reg *registry.Registry, g *graph.Graph) Choice {
	declared := Branches(node, reg)
	if len(declared) > 0 {
		switch node.Type {
		case domain.NodeTypeIfElse:
			return Choice{IsBranch: true, BranchID: registry.BranchYes}
		case domain.NodeTypeSplitFlow:
			if target != nil && target.Position.X > node.Position.X {
				return Choice{IsBranch: true, BranchID: "path2"}
			}
			return Choice{IsBranch: true, BranchID: "path1"}
		default:
			return Choice{IsBranch: true, BranchID: declared[0].ID}
		}
	}

	if edges := g.BranchOutgoingEdges(node.ID); len(edges) > 0 {
		return Choice{IsBranch: true, BranchID: edges[0].Label}
	}

	return Choice{}
}
