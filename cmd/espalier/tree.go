package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/pkg/tree"
	"github.com/spf13/cobra"
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Render the process hierarchy",
	Long:  `Builds the process tree from the input table and prints it as an ASCII hierarchy.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := gatherOptions(cmd, args)
		attr, _ := cmd.Flags().GetString("attr")
		details, _ := cmd.Flags().GetBool("details")

		engine, err := cli.NewEngine(opts, cli.CreateLogger(opts.Debug))
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		if details {
			root, err := engine.BuildTree(cmd.Context())
			if err != nil {
				fmt.Printf("Error building tree: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(tree.RenderDetails(root))
			return
		}

		hierarchy, err := engine.Hierarchy(cmd.Context(), attr)
		if err != nil {
			fmt.Printf("Error building tree: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hierarchy)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().String("attr", "label", "Node attribute to print (name, label, module, params)")
	treeCmd.Flags().Bool("details", false, "Show each process with its module and parameters")
}
