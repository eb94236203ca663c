package topology

import (
	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/registry"
)

// Layout carries the spacing constants the editor uses when positioning
// nodes and branch endpoints.
type Layout struct {
	// VerticalSpacing is the fixed distance nodes are shifted down by
	// when a new node is inserted above them.
	VerticalSpacing float64

	// IfElseOffsetX is the horizontal distance of the yes/no endpoints
	// from an if/else node's center.
	IfElseOffsetX float64

	// SplitPairOffsetX is the horizontal offset used when a split-flow
	// node has exactly two branches, so a two-way split lines up with an
	// if/else node.
	SplitPairOffsetX float64

	// SplitSpacingX is the horizontal distance between adjacent split
	// branch endpoints when there are more than two.
	SplitSpacingX float64

	// BranchOffsetY is the vertical distance of every branch endpoint
	// below the node's center.
	BranchOffsetY float64
}

// DefaultLayout returns the spacing constants of the standard canvas.
func DefaultLayout() Layout {
	return Layout{
		VerticalSpacing:  150,
		IfElseOffsetX:    120,
		SplitPairOffsetX: 120,
		SplitSpacingX:    100,
		BranchOffsetY:    80,
	}
}

// Branches returns the branch descriptors of a node, delegating to its
// type plugin. It returns nil when the plugin is absent or the type does
// not branch.
//
// Special case: a split-flow node whose plugin declares no branches
// (incomplete metadata) falls back to a hard-coded two-path split so the
// editor stays usable. This fallback is deliberate and applies to
// split-flow only.
func Branches(node *domain.Node, reg *registry.Registry) []registry.Branch {
	var branches []registry.Branch
	if plugin, ok := reg.Get(node.Type); ok {
		branches = plugin.Branches(node.Properties)
	}
	if len(branches) == 0 && node.Type == domain.NodeTypeSplitFlow {
		return []registry.Branch{
			{ID: "path1", Label: "Path 1"},
			{ID: "path2", Label: "Path 2"},
		}
	}
	return branches
}

// BranchEndpoint computes the canvas coordinate a branch connector
// starts from. For if/else nodes only "yes" and "no" are valid and map
// to symmetric offsets left and right of center; unknown branch ids
// return nil. For split-flow nodes the x offsets are distributed evenly
// around center. Any other node type gets a single centered endpoint
// regardless of branch id.
func BranchEndpoint(node *domain.Node, branchID string, reg *registry.Registry, layout Layout) *domain.Position {
	switch node.Type {
	case domain.NodeTypeIfElse:
		switch branchID {
		case registry.BranchYes:
			return &domain.Position{
				X: node.Position.X - layout.IfElseOffsetX,
				Y: node.Position.Y + layout.BranchOffsetY,
			}
		case registry.BranchNo:
			return &domain.Position{
				X: node.Position.X + layout.IfElseOffsetX,
				Y: node.Position.Y + layout.BranchOffsetY,
			}
		}
		return nil

	case domain.NodeTypeSplitFlow:
		branches := Branches(node, reg)
		idx := -1
		for i, b := range branches {
			if b.ID == branchID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		spacing := layout.SplitSpacingX
		if len(branches) == 2 {
			// Two-way splits mirror the if/else geometry.
			spacing = 2 * layout.SplitPairOffsetX
		}
		offset := (float64(idx) - float64(len(branches)-1)/2) * spacing
		return &domain.Position{
			X: node.Position.X + offset,
			Y: node.Position.Y + layout.BranchOffsetY,
		}

	default:
		return &domain.Position{
			X: node.Position.X,
			Y: node.Position.Y + layout.BranchOffsetY,
		}
	}
}
