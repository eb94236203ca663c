package topology_test

import (
	"testing"

	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/registry"
	"github.com/espalier-dev/espalier/pkg/topology"
)

func TestBranches(t *testing.T) {
	reg := registry.Default()

	t.Run("ifelse", func(t *testing.T) {
		branches := topology.Branches(&domain.Node{ID: "i", Type: domain.NodeTypeIfElse}, reg)
		if len(branches) != 2 || branches[0].ID != registry.BranchYes || branches[1].ID != registry.BranchNo {
			t.Errorf("ifelse branches = %v, want [yes no]", branches)
		}
	})

	t.Run("splitflow with path count", func(t *testing.T) {
		n := &domain.Node{
			ID:         "s",
			Type:       domain.NodeTypeSplitFlow,
			Properties: map[string]any{"pathCount": 3},
		}
		branches := topology.Branches(n, reg)
		if len(branches) != 3 {
			t.Fatalf("branches = %v, want 3 paths", branches)
		}
		if branches[2].ID != "path3" {
			t.Errorf("third branch id = %s, want path3", branches[2].ID)
		}
	})

	t.Run("splitflow with explicit labels", func(t *testing.T) {
		n := &domain.Node{
			ID:         "s",
			Type:       domain.NodeTypeSplitFlow,
			Properties: map[string]any{"paths": []any{"Fast", "Slow"}},
		}
		branches := topology.Branches(n, reg)
		if len(branches) != 2 || branches[0].Label != "Fast" || branches[1].Label != "Slow" {
			t.Errorf("branches = %v, want labels [Fast Slow]", branches)
		}
	})

	t.Run("splitflow without metadata falls back to two paths", func(t *testing.T) {
		branches := topology.Branches(&domain.Node{ID: "s", Type: domain.NodeTypeSplitFlow}, reg)
		if len(branches) != 2 || branches[0].ID != "path1" || branches[1].ID != "path2" {
			t.Errorf("fallback branches = %v, want [path1 path2]", branches)
		}
	})

	t.Run("non-branching type", func(t *testing.T) {
		if branches := topology.Branches(&domain.Node{ID: "a", Type: domain.NodeTypeAction}, reg); branches != nil {
			t.Errorf("action branches = %v, want nil", branches)
		}
	})
}

func TestBranchEndpoint(t *testing.T) {
	reg := registry.Default()
	layout := topology.DefaultLayout()

	at := func(x, y float64) domain.Position { return domain.Position{X: x, Y: y} }

	t.Run("ifelse yes goes left, no goes right", func(t *testing.T) {
		n := &domain.Node{ID: "i", Type: domain.NodeTypeIfElse, Position: at(200, 100)}

		yes := topology.BranchEndpoint(n, registry.BranchYes, reg, layout)
		no := topology.BranchEndpoint(n, registry.BranchNo, reg, layout)
		if yes == nil || *yes != at(80, 180) {
			t.Errorf("yes endpoint = %+v, want {80 180}", yes)
		}
		if no == nil || *no != at(320, 180) {
			t.Errorf("no endpoint = %+v, want {320 180}", no)
		}
		if ep := topology.BranchEndpoint(n, "maybe", reg, layout); ep != nil {
			t.Errorf("unknown ifelse branch endpoint = %+v, want nil", ep)
		}
	})

	t.Run("two-way split mirrors ifelse spacing", func(t *testing.T) {
		n := &domain.Node{ID: "s", Type: domain.NodeTypeSplitFlow, Position: at(0, 0)}

		p1 := topology.BranchEndpoint(n, "path1", reg, layout)
		p2 := topology.BranchEndpoint(n, "path2", reg, layout)
		if p1 == nil || *p1 != at(-120, 80) {
			t.Errorf("path1 endpoint = %+v, want {-120 80}", p1)
		}
		if p2 == nil || *p2 != at(120, 80) {
			t.Errorf("path2 endpoint = %+v, want {120 80}", p2)
		}
	})

	t.Run("three-way split distributes evenly", func(t *testing.T) {
		n := &domain.Node{
			ID:         "s",
			Type:       domain.NodeTypeSplitFlow,
			Position:   at(0, 0),
			Properties: map[string]any{"pathCount": 3},
		}

		want := map[string]domain.Position{
			"path1": at(-100, 80),
			"path2": at(0, 80),
			"path3": at(100, 80),
		}
		for id, pos := range want {
			got := topology.BranchEndpoint(n, id, reg, layout)
			if got == nil || *got != pos {
				t.Errorf("%s endpoint = %+v, want %+v", id, got, pos)
			}
		}
		if ep := topology.BranchEndpoint(n, "path4", reg, layout); ep != nil {
			t.Errorf("out-of-range split endpoint = %+v, want nil", ep)
		}
	})

	t.Run("other types center below the node", func(t *testing.T) {
		n := &domain.Node{ID: "a", Type: domain.NodeTypeAction, Position: at(50, 50)}
		if ep := topology.BranchEndpoint(n, "anything", reg, layout); ep == nil || *ep != at(50, 130) {
			t.Errorf("endpoint = %+v, want {50 130}", ep)
		}
	})
}
