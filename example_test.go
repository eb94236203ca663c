package espalier_test

import (
	"fmt"

	"github.com/espalier-dev/espalier"
	"github.com/espalier-dev/espalier/pkg/domain"
)

// ExampleLoad demonstrates loading a workflow, splicing a new step into an
// existing connection and undoing the edit.
func ExampleLoad() {
	// 1. A minimal two-step workflow: a trigger connected to an action.
	ed := espalier.Load([]domain.Step{
		{
			ID:                  "signup",
			Type:                domain.NodeTypeTrigger,
			Position:            domain.Position{X: 0, Y: 0},
			OutgoingConnections: domain.OutgoingConnections{Default: &domain.Connection{TargetNodeID: "welcome"}},
		},
		{
			ID:       "welcome",
			Type:     domain.NodeTypeAction,
			Position: domain.Position{X: 0, Y: 150},
		},
	})

	// 2. Insert a wait step on the trigger's default connection. The old
	// successor is rewired behind the new node and pushed down one row.
	err := ed.InsertNode(&domain.Node{
		ID:       "wait",
		Type:     domain.NodeTypeControl,
		Position: domain.Position{X: 0, Y: 150},
	}, "signup", domain.EdgeDefault, "")
	if err != nil {
		panic(err)
	}

	g := ed.Graph()
	fmt.Printf("signup -> %s\n", g.DefaultOutgoingEdge("signup").TargetID)
	fmt.Printf("wait -> %s\n", g.DefaultOutgoingEdge("wait").TargetID)

	// 3. Every edit is a command; one Undo puts the old connection back.
	if err := ed.Undo(); err != nil {
		panic(err)
	}
	fmt.Printf("after undo: signup -> %s\n", g.DefaultOutgoingEdge("signup").TargetID)
	fmt.Printf("can redo: %v\n", ed.CanRedo())
	// Output:
	// signup -> wait
	// wait -> welcome
	// after undo: signup -> welcome
	// can redo: true
}
