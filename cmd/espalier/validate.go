package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the process table for consistency",
	Long: `Parses every relation, builds the tree, and reports malformed rows,
root problems, unknown modules and missing template parameters in one pass.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Table is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts := gatherOptions(cmd, args)

	eng, err := cli.NewEngine(opts, cli.CreateLogger(opts.Debug))
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	return eng.Validate(cmd.Context())
}
