package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	presentation "github.com/espalier-dev/espalier/internal/presentation/graph"
	enginegraph "github.com/espalier-dev/espalier/pkg/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <workflow.yaml>",
	Short: "Export the workflow graph visualization",
	Long:  `Loads a flat workflow document and outputs a Mermaid diagram (graph TD) representing its nodes and connections.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wf, err := readWorkflow(args[0])
		if err != nil {
			fmt.Printf("Error reading workflow: %v\n", err)
			os.Exit(1)
		}

		g := enginegraph.FromSteps(wf.Steps)

		var overlay *presentation.Overlay
		if selected, _ := cmd.Flags().GetString("selected"); selected != "" {
			overlay = &presentation.Overlay{SelectedNode: selected}
		}
		fmt.Print(presentation.GenerateMermaid(g, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("selected", "", "Node id to highlight")
}
