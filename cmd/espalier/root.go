package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier grows Nextflow pipelines from flat process tables",
	Long: `Espalier turns a flat CSV table of "parent -> child" process relations
into a single-rooted process tree and renders it as a runnable Nextflow
pipeline.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("input", "i", "", "Path to the process table (CSV)")
	rootCmd.PersistentFlags().String("config", "", "Path to the project config (espalier.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// gatherOptions collects the persistent flag values shared by the
// table-driven commands. A positional argument may stand in for --input.
func gatherOptions(cmd *cobra.Command, args []string) cli.Options {
	var opts cli.Options
	opts.InputPath, _ = cmd.Flags().GetString("input")
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	if !cmd.Flags().Changed("input") && len(args) > 0 {
		opts.InputPath = args[0]
	}
	return opts
}
