package domain

import "github.com/google/uuid"

// NodeType constants define the built-in step kinds.
// The set is open: plugins may register additional types at runtime,
// but a node's type is fixed for its lifetime.
const (
	NodeTypeTrigger   = "trigger"
	NodeTypeControl   = "control"
	NodeTypeAction    = "action"
	NodeTypeIfElse    = "ifelse"
	NodeTypeSplitFlow = "splitflow"
)

// Position is a point on the editor canvas. Positive Y grows downward.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node represents a single workflow step on the canvas.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Type     string   `json:"type" yaml:"type"`
	Position Position `json:"position" yaml:"position"`

	// Height is a layout hint maintained by the rendering layer.
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`

	// Properties is an opaque blob whose schema is owned by the node's
	// type plugin. The engine shallow-merges it but never interprets it.
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Clone returns a deep copy of the node, including its properties.
func (n *Node) Clone() *Node {
	c := *n
	c.Properties = CopyProperties(n.Properties)
	return &c
}

// NodePatch describes a shallow partial update of a node.
// Nil fields are left untouched; Properties entries are merged key by key.
type NodePatch struct {
	Position   *Position      `json:"position,omitempty"`
	Height     *float64       `json:"height,omitempty"`
	Title      *string        `json:"title,omitempty"`
	Subtitle   *string        `json:"subtitle,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewNodeID returns a fresh unique node identifier.
func NewNodeID() string {
	return uuid.NewString()
}

// CopyProperties deep-copies an opaque property blob. Nested maps and
// slices are copied structurally; scalar values are shared as-is.
func CopyProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = CopyValue(v)
	}
	return out
}

// CopyValue deep-copies a single property value.
func CopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CopyProperties(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CopyValue(e)
		}
		return out
	default:
		return v
	}
}
