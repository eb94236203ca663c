package graph_test

import (
	"reflect"
	"testing"

	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
)

func TestClone_IsolatedFromMutation(t *testing.T) {
	g := graph.FromSteps(sampleSteps())
	snapshot := g.Clone()
	want := snapshot.ToSteps()

	// Mutate the live graph in every dimension.
	g.RemoveNode("remind")
	title := "changed"
	g.UpdateNode("check", domain.NodePatch{Title: &title, Properties: map[string]any{"x": 1}})
	g.AddNode(&domain.Node{ID: "extra", Type: domain.NodeTypeAction})
	g.Connect("check", "extra", domain.EdgeDefault, "")

	if got := snapshot.ToSteps(); !reflect.DeepEqual(got, want) {
		t.Errorf("snapshot changed after mutating the source graph:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestRestore(t *testing.T) {
	g := graph.FromSteps(sampleSteps())
	snapshot := g.Clone()
	want := snapshot.ToSteps()

	g.RemoveNode("check")
	g.AddNode(&domain.Node{ID: "noise", Type: domain.NodeTypeAction})

	g.Restore(snapshot)
	if got := g.ToSteps(); !reflect.DeepEqual(got, want) {
		t.Errorf("Restore did not reproduce the snapshot:\ngot:  %+v\nwant: %+v", got, want)
	}

	// The snapshot stays usable after a restore.
	g.RemoveNode("start")
	g.Restore(snapshot)
	if got := g.ToSteps(); !reflect.DeepEqual(got, want) {
		t.Error("snapshot must survive being restored twice")
	}
}

func TestValidate(t *testing.T) {
	t.Run("clean graph", func(t *testing.T) {
		g := graph.FromSteps(sampleSteps())
		if issues := g.Validate(); len(issues) != 0 {
			t.Errorf("expected no issues, got %v", issues)
		}
	})

	t.Run("duplicate branch label", func(t *testing.T) {
		g := graph.New()
		g.AddNode(&domain.Node{ID: "i", Type: domain.NodeTypeIfElse})
		g.AddNode(&domain.Node{ID: "a", Type: domain.NodeTypeAction})
		g.AddNode(&domain.Node{ID: "b", Type: domain.NodeTypeAction})
		g.Connect("i", "a", domain.EdgeBranch, "yes")
		g.Connect("i", "b", domain.EdgeBranch, "yes")

		if !hasIssue(g.Validate(), graph.IssueDuplicateBranch) {
			t.Errorf("expected %s, got %v", graph.IssueDuplicateBranch, g.Validate())
		}
	})

	t.Run("duplicate default edge", func(t *testing.T) {
		g := graph.New()
		g.AddNode(&domain.Node{ID: "s", Type: domain.NodeTypeAction})
		g.AddNode(&domain.Node{ID: "a", Type: domain.NodeTypeAction})
		g.AddNode(&domain.Node{ID: "b", Type: domain.NodeTypeAction})
		g.Connect("s", "a", domain.EdgeDefault, "")
		g.Connect("s", "b", domain.EdgeDefault, "")

		if !hasIssue(g.Validate(), graph.IssueDuplicateDefault) {
			t.Errorf("expected %s, got %v", graph.IssueDuplicateDefault, g.Validate())
		}
	})

	t.Run("cycle", func(t *testing.T) {
		g := graph.New()
		g.AddNode(&domain.Node{ID: "a", Type: domain.NodeTypeAction})
		g.AddNode(&domain.Node{ID: "b", Type: domain.NodeTypeAction})
		g.Connect("a", "b", domain.EdgeDefault, "")
		g.Connect("b", "a", domain.EdgeDefault, "")

		if !hasIssue(g.Validate(), graph.IssueCycle) {
			t.Errorf("expected %s, got %v", graph.IssueCycle, g.Validate())
		}
	})
}

func hasIssue(issues []graph.Issue, code string) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}
