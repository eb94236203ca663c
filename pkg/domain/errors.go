package domain

import "errors"

// ErrNodeNotFound is returned when an operation references a node id that
// is not present in the graph.
var ErrNodeNotFound = errors.New("node not found")

// ErrEdgeNotFound is returned when an operation references an edge id that
// is not present in the graph.
var ErrEdgeNotFound = errors.New("edge not found")

// ErrWorkflowNotFound is returned by workflow stores when the requested
// document does not exist.
var ErrWorkflowNotFound = errors.New("workflow not found")
