package graph

import (
	"sort"

	"github.com/espalier-dev/espalier/pkg/domain"
)

// Graph holds the authoritative node and edge sets of one workflow.
// It is not safe for concurrent use; callers serialize mutation through
// a single command manager.
type Graph struct {
	nodes map[string]*domain.Node
	edges map[string]*domain.Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*domain.Node),
		edges: make(map[string]*domain.Edge),
	}
}

// AddNode inserts the node and returns it. The caller is responsible for
// avoiding id collisions; an existing node with the same id is replaced.
func (g *Graph) AddNode(n *domain.Node) *domain.Node {
	g.nodes[n.ID] = n
	return n
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*domain.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// RemoveNode deletes the node and every edge where it is source or
// target. Returns false if the node did not exist.
func (g *Graph) RemoveNode(id string) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	delete(g.nodes, id)
	for edgeID, e := range g.edges {
		if e.SourceID == id || e.TargetID == id {
			delete(g.edges, edgeID)
		}
	}
	return true
}

// UpdateNode shallow-merges the patch into the node. Property entries are
// merged key by key; other fields replace wholesale when set.
// Returns false if the node is missing.
func (g *Graph) UpdateNode(id string, patch domain.NodePatch) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	if patch.Position != nil {
		n.Position = *patch.Position
	}
	if patch.Height != nil {
		n.Height = *patch.Height
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		n.Subtitle = *patch.Subtitle
	}
	if len(patch.Properties) > 0 {
		if n.Properties == nil {
			n.Properties = make(map[string]any, len(patch.Properties))
		}
		for k, v := range patch.Properties {
			n.Properties[k] = v
		}
	}
	return true
}

// Nodes returns all nodes sorted by id for deterministic iteration.
func (g *Graph) Nodes() []*domain.Node {
	out := make([]*domain.Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NodeCount reports the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Connect creates an edge with the deterministic id scheme and inserts
// it. It does NOT check for an existing default edge from the same
// source; callers that replace a connection must remove the old edge
// first.
func (g *Graph) Connect(sourceID, targetID string, typ domain.EdgeType, label string) *domain.Edge {
	e := &domain.Edge{
		ID:       domain.EdgeID(sourceID, targetID, typ, label),
		SourceID: sourceID,
		TargetID: targetID,
		Type:     typ,
		Label:    label,
	}
	g.edges[e.ID] = e
	return e
}

// AddEdge inserts a pre-built edge, keyed by its id.
func (g *Graph) AddEdge(e *domain.Edge) *domain.Edge {
	g.edges[e.ID] = e
	return e
}

// Edge looks up an edge by id.
func (g *Graph) Edge(id string) (*domain.Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// RemoveEdge deletes an edge by id. Returns false if it did not exist.
func (g *Graph) RemoveEdge(id string) bool {
	if _, ok := g.edges[id]; !ok {
		return false
	}
	delete(g.edges, id)
	return true
}

// UpdateEdge shallow-merges the patch into the edge. The edge keeps its
// original id even when endpoints or label change.
// Returns false if the edge is missing.
func (g *Graph) UpdateEdge(id string, patch domain.EdgePatch) bool {
	e, ok := g.edges[id]
	if !ok {
		return false
	}
	if patch.TargetID != nil {
		e.TargetID = *patch.TargetID
	}
	if patch.Type != nil {
		e.Type = *patch.Type
	}
	if patch.Label != nil {
		e.Label = *patch.Label
	}
	return true
}

// Edges returns all edges sorted by id.
func (g *Graph) Edges() []*domain.Edge {
	out := make([]*domain.Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EdgeCount reports the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// OutgoingEdges returns all edges whose source is nodeID, sorted by id.
func (g *Graph) OutgoingEdges(nodeID string) []*domain.Edge {
	var out []*domain.Edge
	for _, e := range g.edges {
		if e.SourceID == nodeID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IncomingEdges returns all edges whose target is nodeID, sorted by id.
func (g *Graph) IncomingEdges(nodeID string) []*domain.Edge {
	var out []*domain.Edge
	for _, e := range g.edges {
		if e.TargetID == nodeID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DefaultOutgoingEdge returns the node's default continuation, or nil.
func (g *Graph) DefaultOutgoingEdge(nodeID string) *domain.Edge {
	for _, e := range g.OutgoingEdges(nodeID) {
		if e.Type == domain.EdgeDefault {
			return e
		}
	}
	return nil
}

// BranchOutgoingEdges returns the node's branch continuations, sorted by id.
func (g *Graph) BranchOutgoingEdges(nodeID string) []*domain.Edge {
	var out []*domain.Edge
	for _, e := range g.OutgoingEdges(nodeID) {
		if e.Type == domain.EdgeBranch {
			out = append(out, e)
		}
	}
	return out
}

// BranchOutgoingEdge returns the node's branch continuation with the
// given label, or nil.
func (g *Graph) BranchOutgoingEdge(nodeID, label string) *domain.Edge {
	for _, e := range g.BranchOutgoingEdges(nodeID) {
		if e.Label == label {
			return e
		}
	}
	return nil
}

// WouldCreateCycle reports whether connecting sourceID -> targetID would
// close a cycle, i.e. whether sourceID is already reachable from
// targetID (including the trivial sourceID == targetID case). It is a
// query only; Connect never calls it.
func (g *Graph) WouldCreateCycle(sourceID, targetID string) bool {
	if sourceID == targetID {
		return true
	}
	return g.Reachable(targetID)[sourceID]
}

// Reachable returns the set of node ids reachable from fromID by
// following edges forward, excluding fromID itself unless a cycle leads
// back to it.
func (g *Graph) Reachable(fromID string) map[string]bool {
	visited := make(map[string]bool)
	stack := []string{fromID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.edges {
			if e.SourceID != id || visited[e.TargetID] {
				continue
			}
			visited[e.TargetID] = true
			stack = append(stack, e.TargetID)
		}
	}
	return visited
}
