package command_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/espalier-dev/espalier/pkg/command"
	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
	"github.com/espalier-dev/espalier/pkg/registry"
	"github.com/espalier-dev/espalier/pkg/topology"
)

func newDelete(g *graph.Graph, nodeID string) *command.DeleteNode {
	return command.NewDeleteNode(g, registry.Default(), topology.HeuristicPicker{}, nodeID)
}

// Deleting a node in the middle of a chain bridges its predecessor
// straight to its default successor.
func TestDeleteNode_BridgesChain(t *testing.T) {
	g := graph.New()
	g.AddNode(&domain.Node{ID: "t", Type: domain.NodeTypeTrigger, Position: domain.Position{Y: 0}})
	g.AddNode(&domain.Node{ID: "a", Type: domain.NodeTypeAction, Position: domain.Position{Y: 150}})
	g.AddNode(&domain.Node{ID: "b", Type: domain.NodeTypeAction, Position: domain.Position{Y: 300}})
	g.Connect("t", "a", domain.EdgeDefault, "")
	g.Connect("a", "b", domain.EdgeDefault, "")
	before := g.ToSteps()

	cmd := newDelete(g, "a")
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, ok := g.Node("a"); ok {
		t.Fatal("node a still present after delete")
	}
	if e := g.DefaultOutgoingEdge("t"); e == nil || e.TargetID != "b" {
		t.Errorf("bridge edge = %+v, want t --default--> b", e)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if len(cmd.RemovedIncoming()) != 1 || len(cmd.RemovedOutgoing()) != 1 {
		t.Errorf("removed edges = %d in / %d out, want 1 / 1",
			len(cmd.RemovedIncoming()), len(cmd.RemovedOutgoing()))
	}

	if err := cmd.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := g.ToSteps(); !reflect.DeepEqual(got, before) {
		t.Errorf("undo did not restore the graph:\ngot:  %+v\nwant: %+v", got, before)
	}
}

// A branch-capable predecessor is rebridged on the branch the picker
// chooses, not on the default slot.
func TestDeleteNode_BranchPredecessor(t *testing.T) {
	g := graph.New()
	g.AddNode(&domain.Node{ID: "i", Type: domain.NodeTypeIfElse, Position: domain.Position{Y: 0}})
	g.AddNode(&domain.Node{ID: "a", Type: domain.NodeTypeAction, Position: domain.Position{X: -120, Y: 150}})
	g.AddNode(&domain.Node{ID: "b", Type: domain.NodeTypeAction, Position: domain.Position{X: -120, Y: 300}})
	g.Connect("i", "a", domain.EdgeBranch, "yes")
	g.Connect("a", "b", domain.EdgeDefault, "")

	cmd := newDelete(g, "a")
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if e := g.BranchOutgoingEdge("i", "yes"); e == nil || e.TargetID != "b" {
		t.Errorf("bridge edge = %+v, want i --yes--> b", e)
	}
	if e := g.DefaultOutgoingEdge("i"); e != nil {
		t.Errorf("unexpected default edge %+v on branch-capable predecessor", e)
	}
}

// With no default successor the predecessors are simply left unconnected.
func TestDeleteNode_NoDefaultSuccessor(t *testing.T) {
	g := graph.New()
	g.AddNode(&domain.Node{ID: "t", Type: domain.NodeTypeTrigger})
	g.AddNode(&domain.Node{ID: "s", Type: domain.NodeTypeSplitFlow})
	g.AddNode(&domain.Node{ID: "x", Type: domain.NodeTypeAction})
	g.Connect("t", "s", domain.EdgeDefault, "")
	g.Connect("s", "x", domain.EdgeBranch, "path1")

	cmd := newDelete(g, "s")
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0 (no default successor to bridge to)", g.EdgeCount())
	}
}

// Bridging never creates a self-loop when the successor is also a
// predecessor.
func TestDeleteNode_SkipsSelfBridge(t *testing.T) {
	g := graph.New()
	g.AddNode(&domain.Node{ID: "a", Type: domain.NodeTypeAction})
	g.AddNode(&domain.Node{ID: "b", Type: domain.NodeTypeAction})
	g.Connect("b", "a", domain.EdgeDefault, "")
	g.Connect("a", "b", domain.EdgeDefault, "")

	cmd := newDelete(g, "a")
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0 (b must not be bridged to itself)", g.EdgeCount())
	}
}

// An occupied default slot on the predecessor is never overwritten by the
// bridge.
func TestDeleteNode_RespectsOccupiedSlot(t *testing.T) {
	g := graph.New()
	g.AddNode(&domain.Node{ID: "p", Type: "gateway"}) // unregistered type, no declared branches
	g.AddNode(&domain.Node{ID: "a", Type: domain.NodeTypeAction})
	g.AddNode(&domain.Node{ID: "b", Type: domain.NodeTypeAction})
	g.AddNode(&domain.Node{ID: "other", Type: domain.NodeTypeAction})
	g.Connect("p", "a", domain.EdgeBranch, "alt")
	g.Connect("p", "other", domain.EdgeDefault, "")
	g.Connect("a", "b", domain.EdgeDefault, "")

	cmd := newDelete(g, "a")
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// After removing p's branch edge to a, the picker sees no branch
	// evidence on p and chooses default, which is occupied.
	if e := g.DefaultOutgoingEdge("p"); e == nil || e.TargetID != "other" {
		t.Errorf("default edge = %+v, want untouched p --default--> other", e)
	}
	if in := g.IncomingEdges("b"); len(in) != 0 {
		t.Errorf("b gained an unexpected bridge: %+v", in)
	}
}

func TestDeleteNode_MissingNode(t *testing.T) {
	cmd := newDelete(graph.New(), "ghost")
	if err := cmd.Execute(); !errors.Is(err, domain.ErrNodeNotFound) {
		t.Errorf("Execute error = %v, want ErrNodeNotFound", err)
	}
}
