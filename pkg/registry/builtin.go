package registry

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/espalier-dev/espalier/pkg/domain"
)

// Default returns a registry with all built-in node types registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(domain.NodeTypeTrigger, &simpleType{
		schema:  map[string]string{"event": "string"},
		initial: map[string]any{"event": ""},
	})
	r.Register(domain.NodeTypeAction, &simpleType{
		schema:  map[string]string{"action": "string", "params": "map"},
		initial: map[string]any{"action": ""},
	})
	r.Register(domain.NodeTypeControl, &simpleType{
		schema:  map[string]string{"delay": "string"},
		initial: map[string]any{},
	})
	r.Register(domain.NodeTypeIfElse, &ifElseType{})
	r.Register(domain.NodeTypeSplitFlow, &splitFlowType{})
	return r
}

// simpleType covers non-branching node types: it only carries schema and
// initial property metadata.
type simpleType struct {
	schema  map[string]string
	initial map[string]any
}

func (t *simpleType) Branches(map[string]any) []Branch { return nil }

func (t *simpleType) PropertySchema() map[string]string { return t.schema }

func (t *simpleType) InitialProperties() map[string]any {
	return domain.CopyProperties(t.initial)
}

// Branch ids used by the if/else type.
const (
	BranchYes = "yes"
	BranchNo  = "no"
)

// ifElseType always exposes exactly the "yes" and "no" branches.
type ifElseType struct{}

func (t *ifElseType) Branches(map[string]any) []Branch {
	return []Branch{
		{ID: BranchYes, Label: "Yes"},
		{ID: BranchNo, Label: "No"},
	}
}

func (t *ifElseType) PropertySchema() map[string]string {
	return map[string]string{"condition": "string"}
}

func (t *ifElseType) InitialProperties() map[string]any {
	return map[string]any{"condition": ""}
}

// splitFlowProperties is the typed view of a split-flow node's opaque
// property blob.
type splitFlowProperties struct {
	PathCount int      `mapstructure:"pathCount"`
	Paths     []string `mapstructure:"paths"`
}

// splitFlowType derives its branches from node properties: either an
// explicit list of path labels or a bare path count. With neither
// present it declares no branches and leaves the fallback to the
// topology layer.
type splitFlowType struct{}

func (t *splitFlowType) Branches(properties map[string]any) []Branch {
	var props splitFlowProperties
	if err := mapstructure.WeakDecode(properties, &props); err != nil {
		return nil
	}
	if len(props.Paths) > 0 {
		branches := make([]Branch, len(props.Paths))
		for i, label := range props.Paths {
			branches[i] = Branch{ID: fmt.Sprintf("path%d", i+1), Label: label}
		}
		return branches
	}
	if props.PathCount > 0 {
		branches := make([]Branch, props.PathCount)
		for i := range branches {
			branches[i] = Branch{
				ID:    fmt.Sprintf("path%d", i+1),
				Label: fmt.Sprintf("Path %d", i+1),
			}
		}
		return branches
	}
	return nil
}

func (t *splitFlowType) PropertySchema() map[string]string {
	return map[string]string{"pathCount": "int", "paths": "[string]"}
}

func (t *splitFlowType) InitialProperties() map[string]any {
	return map[string]any{"pathCount": 2}
}
