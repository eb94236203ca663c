// Package graph implements the mutable directed graph that backs the
// workflow editor: node and edge CRUD, traversal queries, cycle checks
// and conversion to and from the flat persisted step format.
//
// The graph owns its nodes and edges. It performs no invariant
// enforcement beyond key uniqueness; replacing a node's default edge or
// keeping the graph acyclic is the command layer's job.
package graph
