package domain

import "fmt"

// EdgeType distinguishes the single default continuation of a node from
// its labeled branch continuations.
type EdgeType string

const (
	// EdgeDefault is the unconditional continuation. At most one per
	// source node (enforced by the command layer, not the graph).
	EdgeDefault EdgeType = "default"
	// EdgeBranch is a labeled alternative path ("yes", "no", "path1"...).
	// At most one per (source, label) pair.
	EdgeBranch EdgeType = "branch"
)

// Edge is a directed connection between two nodes.
type Edge struct {
	ID       string   `json:"id" yaml:"id"`
	SourceID string   `json:"sourceId" yaml:"sourceId"`
	TargetID string   `json:"targetId" yaml:"targetId"`
	Type     EdgeType `json:"type" yaml:"type"`

	// Label names the branch when Type == EdgeBranch; empty otherwise.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// EdgeID derives the deterministic identity of an edge from its endpoints,
// type and label. Re-creating the same logical connection yields the same
// id, which keeps undo/redo idempotent.
func EdgeID(sourceID, targetID string, typ EdgeType, label string) string {
	if typ == EdgeBranch {
		return fmt.Sprintf("%s--%s:%s-->%s", sourceID, typ, label, targetID)
	}
	return fmt.Sprintf("%s--%s-->%s", sourceID, typ, targetID)
}

// Clone returns a copy of the edge.
func (e *Edge) Clone() *Edge {
	c := *e
	return &c
}

// EdgePatch describes a shallow partial update of an edge.
type EdgePatch struct {
	TargetID *string   `json:"targetId,omitempty"`
	Type     *EdgeType `json:"type,omitempty"`
	Label    *string   `json:"label,omitempty"`
}
