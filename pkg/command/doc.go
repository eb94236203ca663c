// Package command implements reversible graph mutations and the
// undo/redo stack that coordinates them. Every mutation of a workflow
// graph goes through a Command executed by the Manager; each command
// captures enough prior state at execution time to make its undo exact.
package command
