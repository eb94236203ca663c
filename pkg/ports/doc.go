// Package ports declares the boundary interfaces between the graph
// engine and its external collaborators, along with reusable contract
// test suites for adapter implementations.
package ports
