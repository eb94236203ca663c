package command

import (
	"fmt"

	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
)

// MoveNode repositions a node. Both positions are captured by value at
// construction time, so the command never aliases live drag state held
// by the UI.
type MoveNode struct {
	g      *graph.Graph
	nodeID string
	oldPos domain.Position
	newPos domain.Position
}

// NewMoveNode builds the command.
func NewMoveNode(g *graph.Graph, nodeID string, oldPos, newPos domain.Position) *MoveNode {
	return &MoveNode{g: g, nodeID: nodeID, oldPos: oldPos, newPos: newPos}
}

func (c *MoveNode) Name() string { return "move_node" }

func (c *MoveNode) Execute() error {
	return c.set(c.newPos)
}

func (c *MoveNode) Undo() error {
	return c.set(c.oldPos)
}

func (c *MoveNode) set(pos domain.Position) error {
	n, ok := c.g.Node(c.nodeID)
	if !ok {
		return fmt.Errorf("move_node: %w: %s", domain.ErrNodeNotFound, c.nodeID)
	}
	n.Position = pos
	return nil
}
