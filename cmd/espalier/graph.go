package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/tree"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the process graph visualization",
	Long:  `Builds the process tree and outputs a Mermaid diagram (graph TD) representing the pipeline.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := gatherOptions(cmd, args)

		engine, err := cli.NewEngine(opts, cli.CreateLogger(opts.Debug))
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		root, err := engine.BuildTree(cmd.Context())
		if err != nil {
			fmt.Printf("Error building tree: %v\n", err)
			os.Exit(1)
		}

		// Generate and print Mermaid graph
		output := graph.GenerateMermaid(root, moduleOverlay(engine, root))
		fmt.Print(output)
	},
}

// moduleOverlay flags processes whose module tag has no registered template,
// so the diagram highlights them before a generate run fails.
func moduleOverlay(engine *espalier.Engine, root *domain.Node) *graph.Overlay {
	var unknown []string
	for node := range tree.LevelOrder(root) {
		if node.Module != "" && !engine.Registry().Has(node.Module) {
			unknown = append(unknown, node.Name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return &graph.Overlay{UnknownModules: unknown}
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
