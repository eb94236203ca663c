// Package topology interprets the branch structure of nodes: which
// branches a node exposes, where their endpoints sit on the canvas, and
// which branch an automatic rewire should pick. All functions are pure
// and read-only over the graph and the plugin registry.
package topology
