package command

import (
	"fmt"

	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
)

// UpdateNode shallow-merges a partial update into a node. Only the keys
// present in the patch are snapshotted for undo, not the whole node.
type UpdateNode struct {
	g      *graph.Graph
	nodeID string
	patch  domain.NodePatch

	prev        domain.NodePatch
	missingKeys []string // property keys the patch introduced
}

// NewUpdateNode builds the command.
func NewUpdateNode(g *graph.Graph, nodeID string, patch domain.NodePatch) *UpdateNode {
	return &UpdateNode{g: g, nodeID: nodeID, patch: patch}
}

func (c *UpdateNode) Name() string { return "update_node" }

func (c *UpdateNode) Execute() error {
	n, ok := c.g.Node(c.nodeID)
	if !ok {
		return fmt.Errorf("update_node: %w: %s", domain.ErrNodeNotFound, c.nodeID)
	}

	c.prev = domain.NodePatch{}
	c.missingKeys = nil
	if c.patch.Position != nil {
		p := n.Position
		c.prev.Position = &p
	}
	if c.patch.Height != nil {
		h := n.Height
		c.prev.Height = &h
	}
	if c.patch.Title != nil {
		t := n.Title
		c.prev.Title = &t
	}
	if c.patch.Subtitle != nil {
		s := n.Subtitle
		c.prev.Subtitle = &s
	}
	if len(c.patch.Properties) > 0 {
		c.prev.Properties = make(map[string]any)
		for k := range c.patch.Properties {
			if old, exists := n.Properties[k]; exists {
				c.prev.Properties[k] = domain.CopyValue(old)
			} else {
				c.missingKeys = append(c.missingKeys, k)
			}
		}
	}

	c.g.UpdateNode(c.nodeID, c.patch)
	return nil
}

func (c *UpdateNode) Undo() error {
	n, ok := c.g.Node(c.nodeID)
	if !ok {
		return fmt.Errorf("update_node undo: %w: %s", domain.ErrNodeNotFound, c.nodeID)
	}
	c.g.UpdateNode(c.nodeID, c.prev)
	// Keys the patch introduced have no old value to merge back; drop them.
	for _, k := range c.missingKeys {
		delete(n.Properties, k)
	}
	if len(n.Properties) == 0 {
		n.Properties = nil
	}
	return nil
}

// UpdateEdge shallow-merges a partial update into an edge, snapshotting
// only the touched fields.
type UpdateEdge struct {
	g      *graph.Graph
	edgeID string
	patch  domain.EdgePatch

	prev domain.EdgePatch
}

// NewUpdateEdge builds the command.
func NewUpdateEdge(g *graph.Graph, edgeID string, patch domain.EdgePatch) *UpdateEdge {
	return &UpdateEdge{g: g, edgeID: edgeID, patch: patch}
}

func (c *UpdateEdge) Name() string { return "update_edge" }

func (c *UpdateEdge) Execute() error {
	e, ok := c.g.Edge(c.edgeID)
	if !ok {
		return fmt.Errorf("update_edge: %w: %s", domain.ErrEdgeNotFound, c.edgeID)
	}

	c.prev = domain.EdgePatch{}
	if c.patch.TargetID != nil {
		t := e.TargetID
		c.prev.TargetID = &t
	}
	if c.patch.Type != nil {
		ty := e.Type
		c.prev.Type = &ty
	}
	if c.patch.Label != nil {
		l := e.Label
		c.prev.Label = &l
	}

	c.g.UpdateEdge(c.edgeID, c.patch)
	return nil
}

func (c *UpdateEdge) Undo() error {
	if !c.g.UpdateEdge(c.edgeID, c.prev) {
		return fmt.Errorf("update_edge undo: %w: %s", domain.ErrEdgeNotFound, c.edgeID)
	}
	return nil
}
