package command

import (
	"errors"
	"log/slog"
)

// ErrNothingToUndo is returned by Undo when the undo stack is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is returned by Redo when the redo stack is empty.
var ErrNothingToRedo = errors.New("nothing to redo")

// Manager owns the undo and redo stacks and is the sole mutation gateway
// for a graph. It is not safe for concurrent use; callers serialize
// dispatch (typically on a single event-processing goroutine).
//
// Invariant: the undo stack concatenated with the reversed redo stack is
// the full action history; a single Undo or Redo call moves exactly one
// command between the stacks.
type Manager struct {
	undoStack []Command
	redoStack []Command
	observers []Observer
	logger    *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithObserver registers a lifecycle observer.
func WithObserver(o Observer) ManagerOption {
	return func(m *Manager) {
		m.observers = append(m.observers, o)
	}
}

// WithLogger sets a structured logger for command dispatch.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute runs the command. On success it is pushed onto the undo stack
// and the redo stack is cleared: history branches are not supported, any
// new action after an undo discards the abandoned redo branch. On
// failure nothing is pushed and the error is returned to the caller.
func (m *Manager) Execute(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		m.logger.Warn("command failed", "command", cmd.Name(), "err", err)
		return err
	}
	m.undoStack = append(m.undoStack, cmd)
	m.redoStack = m.redoStack[:0]
	m.logger.Debug("command executed", "command", cmd.Name(), "undo_depth", len(m.undoStack))
	for _, o := range m.observers {
		o.CommandExecuted(cmd.Name())
		o.GraphMutated()
	}
	return nil
}

// Undo reverts the most recent command and moves it to the redo stack.
// Returns ErrNothingToUndo when the stack is empty. If the command's
// Undo fails it stays on the undo stack and the error is returned.
func (m *Manager) Undo() error {
	if len(m.undoStack) == 0 {
		return ErrNothingToUndo
	}
	cmd := m.undoStack[len(m.undoStack)-1]
	if err := cmd.Undo(); err != nil {
		m.logger.Warn("undo failed", "command", cmd.Name(), "err", err)
		return err
	}
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, cmd)
	for _, o := range m.observers {
		o.CommandUndone(cmd.Name())
		o.GraphMutated()
	}
	return nil
}

// Redo re-executes the most recently undone command and moves it back to
// the undo stack. Returns ErrNothingToRedo when the stack is empty.
func (m *Manager) Redo() error {
	if len(m.redoStack) == 0 {
		return ErrNothingToRedo
	}
	cmd := m.redoStack[len(m.redoStack)-1]
	if err := cmd.Execute(); err != nil {
		m.logger.Warn("redo failed", "command", cmd.Name(), "err", err)
		return err
	}
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, cmd)
	for _, o := range m.observers {
		o.CommandRedone(cmd.Name())
		o.GraphMutated()
	}
	return nil
}

// CanUndo reports whether the undo stack is non-empty.
func (m *Manager) CanUndo() bool { return len(m.undoStack) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (m *Manager) CanRedo() bool { return len(m.redoStack) > 0 }

// UndoDepth returns the number of undoable commands.
func (m *Manager) UndoDepth() int { return len(m.undoStack) }

// RedoDepth returns the number of redoable commands.
func (m *Manager) RedoDepth() int { return len(m.redoStack) }
