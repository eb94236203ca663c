package command

// Command is a reversible unit of graph mutation. Execute is called
// exactly once by the Manager; Undo and Redo cycles then replay the same
// object. Commands are not designed for execute-execute or undo-undo
// repetition outside the Manager's stack discipline.
//
// Missing-entity conditions are reported as wrapped sentinel errors
// (domain.ErrNodeNotFound, domain.ErrEdgeNotFound) and never panic, so a
// stale UI reference cannot crash the engine.
type Command interface {
	// Name identifies the command kind for observers and logs.
	Name() string
	Execute() error
	Undo() error
}

// Observer receives notifications about command lifecycle events. It
// replaces ambient debug globals: inject one into the Manager instead of
// attaching inspectors to shared state.
type Observer interface {
	CommandExecuted(name string)
	CommandUndone(name string)
	CommandRedone(name string)
	GraphMutated()
}
