package command

import (
	"errors"
	"fmt"

	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
	"github.com/espalier-dev/espalier/pkg/registry"
	"github.com/espalier-dev/espalier/pkg/topology"
)

// DeleteNode removes a node and every edge touching it, then
// auto-bridges: each predecessor is reconnected directly to the deleted
// node's default successor, with the picker deciding branch versus
// default for branch-capable predecessors. This is the bridging policy
// of this implementation; deletion never leaves a predecessor silently
// disconnected when the deleted node had a default continuation.
//
// Execute snapshots the whole graph first. Undo is a full graph replace
// from that snapshot, which keeps the restore exact even when bridging
// rewired edges far from the deleted node.
type DeleteNode struct {
	g      *graph.Graph
	reg    *registry.Registry
	picker topology.Picker
	nodeID string

	snapshot *graph.Graph

	// Removed edges are kept for diagnostics and observer inspection.
	removedIncoming []*domain.Edge
	removedOutgoing []*domain.Edge
}

// NewDeleteNode builds the command.
func NewDeleteNode(g *graph.Graph, reg *registry.Registry, picker topology.Picker, nodeID string) *DeleteNode {
	return &DeleteNode{g: g, reg: reg, picker: picker, nodeID: nodeID}
}

func (c *DeleteNode) Name() string { return "delete_node" }

func (c *DeleteNode) Execute() error {
	if _, ok := c.g.Node(c.nodeID); !ok {
		return fmt.Errorf("delete_node: %w: %s", domain.ErrNodeNotFound, c.nodeID)
	}

	// Safety net: snapshot everything before mutating.
	c.snapshot = c.g.Clone()

	c.removedIncoming = cloneEdges(c.g.IncomingEdges(c.nodeID))
	c.removedOutgoing = cloneEdges(c.g.OutgoingEdges(c.nodeID))

	var bridgeTargetID string
	if d := c.g.DefaultOutgoingEdge(c.nodeID); d != nil {
		bridgeTargetID = d.TargetID
	}

	c.g.RemoveNode(c.nodeID)

	if bridgeTargetID == "" {
		return nil
	}
	target, ok := c.g.Node(bridgeTargetID)
	if !ok {
		return nil
	}
	for _, in := range c.removedIncoming {
		if in.SourceID == bridgeTargetID {
			continue
		}
		src, ok := c.g.Node(in.SourceID)
		if !ok {
			continue
		}
		choice := c.picker.Pick(src, target, c.reg, c.g)
		if choice.IsBranch {
			if c.g.BranchOutgoingEdge(src.ID, choice.BranchID) == nil {
				c.g.Connect(src.ID, bridgeTargetID, domain.EdgeBranch, choice.BranchID)
			}
			continue
		}
		// Bridge on the default slot only if it is free, keeping the
		// one-default-edge-per-source invariant intact.
		if c.g.DefaultOutgoingEdge(src.ID) == nil {
			c.g.Connect(src.ID, bridgeTargetID, domain.EdgeDefault, "")
		}
	}
	return nil
}

func (c *DeleteNode) Undo() error {
	if c.snapshot == nil {
		return errors.New("delete_node: undo called before execute")
	}
	c.g.Restore(c.snapshot)
	return nil
}

// RemovedIncoming returns the incoming edges of the deleted node as they
// were at execution time.
func (c *DeleteNode) RemovedIncoming() []*domain.Edge { return c.removedIncoming }

// RemovedOutgoing returns the outgoing edges of the deleted node as they
// were at execution time.
func (c *DeleteNode) RemovedOutgoing() []*domain.Edge { return c.removedOutgoing }

func cloneEdges(edges []*domain.Edge) []*domain.Edge {
	out := make([]*domain.Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Clone()
	}
	return out
}
