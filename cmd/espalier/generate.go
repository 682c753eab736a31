package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the Nextflow pipeline from a process table",
	Long: `Builds the process tree from the input table and writes workflow.nf plus
workflow.config into the output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.GenerateOptions{Options: gatherOptions(cmd, args)}
		opts.OutDir, _ = cmd.Flags().GetString("out")
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.Watch, _ = cmd.Flags().GetBool("watch")

		run := cli.RunGenerate
		if opts.Watch {
			run = cli.RunGenerateWatch
		}
		if err := run(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("out", "o", ".", "Directory to write the generated files into")
	generateCmd.Flags().Bool("dry-run", false, "Print the generated files instead of writing them")
	generateCmd.Flags().BoolP("watch", "w", false, "Regenerate whenever the table or config changes")

	// Make 'generate' the default if no command is provided
	rootCmd.Run = generateCmd.Run
}
