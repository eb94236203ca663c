// Package domain contains the core entities of the workflow editor:
// nodes, edges and the flat workflow document exchanged with external
// persistence. It has no dependencies on other espalier packages.
package domain
