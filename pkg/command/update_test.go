package command_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/espalier-dev/espalier/pkg/command"
	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
)

func TestMoveNode_RoundTrip(t *testing.T) {
	g := chainGraph()

	cmd := command.NewMoveNode(g, "a", domain.Position{Y: 150}, domain.Position{X: 300, Y: 450})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	n, _ := g.Node("a")
	if n.Position != (domain.Position{X: 300, Y: 450}) {
		t.Errorf("position after execute = %+v", n.Position)
	}

	if err := cmd.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if n.Position != (domain.Position{Y: 150}) {
		t.Errorf("position after undo = %+v", n.Position)
	}

	missing := command.NewMoveNode(g, "ghost", domain.Position{}, domain.Position{})
	if err := missing.Execute(); !errors.Is(err, domain.ErrNodeNotFound) {
		t.Errorf("Execute error = %v, want ErrNodeNotFound", err)
	}
}

func TestUpdateNode_UndoRestoresOnlyTouchedKeys(t *testing.T) {
	g := graph.New()
	g.AddNode(&domain.Node{
		ID:         "a",
		Type:       domain.NodeTypeAction,
		Title:      "Send",
		Properties: map[string]any{"action": "mail", "retries": 3},
	})
	beforeProps := domain.CopyProperties(mustNode(t, g, "a").Properties)

	title := "Send v2"
	cmd := command.NewUpdateNode(g, "a", domain.NodePatch{
		Title:      &title,
		Properties: map[string]any{"retries": 5, "timeout": "30s"},
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	n := mustNode(t, g, "a")
	if n.Title != "Send v2" || n.Properties["retries"] != 5 || n.Properties["timeout"] != "30s" {
		t.Errorf("patch not applied: %+v", n)
	}

	// Concurrent-style edit of an untouched key must survive the undo.
	n.Properties["note"] = "keep me"

	if err := cmd.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if n.Title != "Send" {
		t.Errorf("title after undo = %q, want Send", n.Title)
	}
	if _, exists := n.Properties["timeout"]; exists {
		t.Error("key introduced by the patch must be deleted on undo")
	}
	if n.Properties["note"] != "keep me" {
		t.Error("undo must not clobber keys the patch never touched")
	}
	delete(n.Properties, "note")
	if !reflect.DeepEqual(n.Properties, beforeProps) {
		t.Errorf("properties after undo = %v, want %v", n.Properties, beforeProps)
	}

	missing := command.NewUpdateNode(g, "ghost", domain.NodePatch{Title: &title})
	if err := missing.Execute(); !errors.Is(err, domain.ErrNodeNotFound) {
		t.Errorf("Execute error = %v, want ErrNodeNotFound", err)
	}
}

func TestUpdateEdge_RoundTrip(t *testing.T) {
	g := graph.New()
	g.AddNode(&domain.Node{ID: "a", Type: domain.NodeTypeAction})
	g.AddNode(&domain.Node{ID: "b", Type: domain.NodeTypeAction})
	g.AddNode(&domain.Node{ID: "c", Type: domain.NodeTypeAction})
	e := g.Connect("a", "b", domain.EdgeDefault, "")

	target := "c"
	cmd := command.NewUpdateEdge(g, e.ID, domain.EdgePatch{TargetID: &target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got, _ := g.Edge(e.ID); got.TargetID != "c" {
		t.Errorf("target after execute = %s, want c", got.TargetID)
	}

	if err := cmd.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got, _ := g.Edge(e.ID); got.TargetID != "b" {
		t.Errorf("target after undo = %s, want b", got.TargetID)
	}

	missing := command.NewUpdateEdge(g, "ghost", domain.EdgePatch{TargetID: &target})
	if err := missing.Execute(); !errors.Is(err, domain.ErrEdgeNotFound) {
		t.Errorf("Execute error = %v, want ErrEdgeNotFound", err)
	}
}

func mustNode(t *testing.T, g *graph.Graph, id string) *domain.Node {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %s not found", id)
	}
	return n
}
