// Package registry maps node type names to their plugins. Plugins own
// everything the engine refuses to interpret itself: branch descriptors,
// property schemas and initial property values.
package registry

import "sync"

// Branch describes one named alternative outgoing path of a node type.
type Branch struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NodeType is the plugin contract for a node type. The engine only calls
// these read-only accessors; it never mutates plugin state.
type NodeType interface {
	// Branches returns the branch descriptors for a node with the given
	// properties. Non-branching types return nil.
	Branches(properties map[string]any) []Branch

	// PropertySchema maps property names to type names. The engine treats
	// it as opaque metadata for external consumers.
	PropertySchema() map[string]string

	// InitialProperties returns the property blob a freshly created node
	// of this type starts with.
	InitialProperties() map[string]any
}

// Registry manages the available node type plugins.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]NodeType
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]NodeType),
	}
}

// Register adds a plugin for the given type name.
// If a plugin with the same name exists, it is overwritten.
func (r *Registry) Register(name string, nt NodeType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = nt
}

// Get looks up the plugin for a type name.
func (r *Registry) Get(name string) (NodeType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nt, ok := r.types[name]
	return nt, ok
}
