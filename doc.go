// Package espalier is a graph and command engine for visual workflow
// editors. It models a branching automation workflow (trigger, actions,
// conditional splits) as a mutable directed graph and routes every
// mutation through a command-pattern undo/redo stack, keeping node
// positions and branch topology consistent across cascading edits.
//
// The engine renders nothing and performs no I/O of its own: rendering,
// drag capture and persistence are external collaborators that consume
// the Editor API.
package espalier
