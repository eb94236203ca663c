package domain

// Connection points at the target of an outgoing step connection in the
// flat persisted representation.
type Connection struct {
	TargetNodeID string `json:"targetNodeId" yaml:"targetNodeId"`
}

// OutgoingConnections holds the optional default continuation of a step.
type OutgoingConnections struct {
	Default *Connection `json:"default,omitempty" yaml:"default,omitempty"`
}

// Step is the flat persisted form of a node plus its outgoing connections.
// It is the interchange format at the persistence boundary; the editor
// works on the Graph form and converts at the edges.
type Step struct {
	ID                  string                `json:"id" yaml:"id"`
	Type                string                `json:"type" yaml:"type"`
	Position            Position              `json:"position" yaml:"position"`
	Height              float64               `json:"height,omitempty" yaml:"height,omitempty"`
	Title               string                `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle            string                `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Properties          map[string]any        `json:"properties,omitempty" yaml:"properties,omitempty"`
	OutgoingConnections OutgoingConnections   `json:"outgoingConnections,omitempty" yaml:"outgoingConnections,omitempty"`
	BranchConnections   map[string]Connection `json:"branchConnections,omitempty" yaml:"branchConnections,omitempty"`
}

// Workflow is a named flat document of steps, the unit of persistence.
type Workflow struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Steps []Step `json:"steps" yaml:"steps"`
}
