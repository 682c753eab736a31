package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// starterTable works out of the box with the builtin echo and join modules.
const starterTable = `process,module,label,params
-> fastqc,echo,QC,word=qc
fastqc -> trim_galore,join,Trim,word=trim
fastqc -> bwa_mem,join,Align,word=align
bwa_mem -> gatk_haplotype,join,Variants,word=call
`

const starterConfig = `# Espalier project configuration.
manifest:
  description: Starter pipeline grown by Espalier
  nextflow_version: ">= 20.04.1"
profiles:
  - local
version: "1.0"

# Declare custom module templates here, or import them from another file:
# modules:
#   - name: align
#     requires: [index]
#     template: |
#       process {{.child}} {
#           """
#           bwa mem {{.index}}
#           """
#       }
#   - ./more-modules.yaml
`

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold a starter project",
	Long: `Creates a sample process table (flow.csv) and a project config
(espalier.yaml) to grow a pipeline from.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		targetDir := "."
		if len(args) > 0 {
			targetDir = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		if err := runInit(targetDir, force); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite existing files")
}

func runInit(targetDir string, force bool) error {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return err
	}

	fmt.Printf("Growing a starter project in: %s\n", targetDir)

	files := []struct {
		name    string
		content string
	}{
		{"flow.csv", starterTable},
		{"espalier.yaml", starterConfig},
	}
	for _, f := range files {
		path := filepath.Join(targetDir, f.name)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", f.name)
	}

	fmt.Println("Done. Try: espalier tree -i " + filepath.Join(targetDir, "flow.csv"))
	return nil
}
