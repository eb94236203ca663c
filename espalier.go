package espalier

import (
	"log/slog"

	"github.com/espalier-dev/espalier/pkg/command"
	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
	"github.com/espalier-dev/espalier/pkg/registry"
	"github.com/espalier-dev/espalier/pkg/topology"
)

// Editor is the high-level entry point: one workflow graph plus the
// command manager that owns all mutation of it. It is not safe for
// concurrent use; hosts serialize calls, typically on a single
// event-processing goroutine.
type Editor struct {
	graph    *graph.Graph
	manager  *command.Manager
	registry *registry.Registry
	picker   topology.Picker
	layout   topology.Layout
	logger   *slog.Logger

	observers []command.Observer
}

// Option configures an Editor.
type Option func(*Editor)

// WithRegistry injects a custom plugin registry.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Editor) { e.registry = r }
}

// WithPicker replaces the branch-picking strategy used for automatic
// rewires.
func WithPicker(p topology.Picker) Option {
	return func(e *Editor) { e.picker = p }
}

// WithLayout overrides the canvas spacing constants.
func WithLayout(l topology.Layout) Option {
	return func(e *Editor) { e.layout = l }
}

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// WithObserver registers a command lifecycle observer.
func WithObserver(o command.Observer) Option {
	return func(e *Editor) {
		e.observers = append(e.observers, o)
	}
}

// New creates an editor over an empty graph.
func New(opts ...Option) *Editor {
	e := &Editor{
		graph:    graph.New(),
		registry: registry.Default(),
		picker:   topology.HeuristicPicker{},
		layout:   topology.DefaultLayout(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	mgrOpts := []command.ManagerOption{command.WithLogger(e.logger)}
	for _, o := range e.observers {
		mgrOpts = append(mgrOpts, command.WithObserver(o))
	}
	e.manager = command.NewManager(mgrOpts...)
	return e
}

// Load creates an editor hydrated from a flat step list. Connections to
// missing targets are dropped, matching the persistence contract.
func Load(steps []domain.Step, opts ...Option) *Editor {
	e := New(opts...)
	e.graph = graph.FromSteps(steps)
	return e
}

// Graph exposes the live graph for read-only queries. Mutation must go
// through the editor's command methods.
func (e *Editor) Graph() *graph.Graph { return e.graph }

// Registry exposes the plugin registry.
func (e *Editor) Registry() *registry.Registry { return e.registry }

// Layout returns the canvas spacing constants.
func (e *Editor) Layout() topology.Layout { return e.layout }

// InsertNode adds a node, optionally splicing it into the connection of
// the given type (and branch label) leaving sourceID.
func (e *Editor) InsertNode(node *domain.Node, sourceID string, connType domain.EdgeType, branchID string) error {
	return e.manager.Execute(command.NewAddNode(
		e.graph, e.registry, e.picker, e.layout, node, sourceID, connType, branchID))
}

// MoveNode repositions a node, reading its current position as the undo
// point.
func (e *Editor) MoveNode(nodeID string, to domain.Position) error {
	n, ok := e.graph.Node(nodeID)
	if !ok {
		return domain.ErrNodeNotFound
	}
	return e.manager.Execute(command.NewMoveNode(e.graph, nodeID, n.Position, to))
}

// DeleteNode removes a node, bridging its predecessors to its default
// successor.
func (e *Editor) DeleteNode(nodeID string) error {
	return e.manager.Execute(command.NewDeleteNode(e.graph, e.registry, e.picker, nodeID))
}

// UpdateNode applies a partial update to a node.
func (e *Editor) UpdateNode(nodeID string, patch domain.NodePatch) error {
	return e.manager.Execute(command.NewUpdateNode(e.graph, nodeID, patch))
}

// UpdateEdge applies a partial update to an edge.
func (e *Editor) UpdateEdge(edgeID string, patch domain.EdgePatch) error {
	return e.manager.Execute(command.NewUpdateEdge(e.graph, edgeID, patch))
}

// Undo reverts the most recent command.
func (e *Editor) Undo() error { return e.manager.Undo() }

// Redo re-applies the most recently undone command.
func (e *Editor) Redo() error { return e.manager.Redo() }

// CanUndo reports whether any command can be undone.
func (e *Editor) CanUndo() bool { return e.manager.CanUndo() }

// CanRedo reports whether any command can be redone.
func (e *Editor) CanRedo() bool { return e.manager.CanRedo() }

// Steps flattens the graph into the persisted step format.
func (e *Editor) Steps() []domain.Step { return e.graph.ToSteps() }

// Workflow wraps the current steps into a named document.
func (e *Editor) Workflow(id, name string) *domain.Workflow {
	return &domain.Workflow{ID: id, Name: name, Steps: e.Steps()}
}

// Validate checks the structural integrity of the graph.
func (e *Editor) Validate() []graph.Issue { return e.graph.Validate() }
