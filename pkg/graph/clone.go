package graph

// Clone returns a structural deep copy of the graph. No node, edge or
// property map is shared with the original, so later mutation of the
// live graph cannot corrupt a snapshot taken earlier.
func (g *Graph) Clone() *Graph {
	c := New()
	for id, n := range g.nodes {
		c.nodes[id] = n.Clone()
	}
	for id, e := range g.edges {
		c.edges[id] = e.Clone()
	}
	return c
}

// Restore wipes the graph and repopulates it from the snapshot. Edges
// whose endpoints no longer resolve within the snapshot are skipped.
// The snapshot itself is copied again, so it stays reusable.
func (g *Graph) Restore(snapshot *Graph) {
	restored := snapshot.Clone()
	g.nodes = restored.nodes
	g.edges = restored.edges
	for id, e := range g.edges {
		_, srcOK := g.nodes[e.SourceID]
		_, dstOK := g.nodes[e.TargetID]
		if !srcOK || !dstOK {
			delete(g.edges, id)
		}
	}
}
