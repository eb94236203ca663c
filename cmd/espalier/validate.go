package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/espalier-dev/espalier/internal/presentation/tui"
	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate <workflow.yaml>",
	Short: "Check the structural integrity of a workflow file",
	Long:  `Loads a flat workflow document and reports dangling edges, duplicate default edges, duplicate branch labels and cycles.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wf, err := readWorkflow(args[0])
		if err != nil {
			fmt.Printf("Error reading workflow: %v\n", err)
			os.Exit(1)
		}

		g := graph.FromSteps(wf.Steps)
		issues := g.Validate()

		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			render := tui.NewRenderer()
			report := tui.ValidationReport(wf.Name, g.NodeCount(), g.EdgeCount(), issues)
			if out, err := render(report); err == nil {
				fmt.Print(out)
			} else {
				fmt.Print(report)
			}
			if len(issues) > 0 {
				os.Exit(1)
			}
			return
		}

		if len(issues) == 0 {
			fmt.Printf("OK: %d nodes, %d edges\n", g.NodeCount(), g.EdgeCount())
			return
		}
		for _, issue := range issues {
			fmt.Println(issue)
		}
		os.Exit(1)
	},
}

func readWorkflow(path string) (*domain.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wf domain.Workflow
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &wf, nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("pretty", false, "Render the report as styled markdown")
}
