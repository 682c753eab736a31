package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/spf13/cobra"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the generated pipeline in the terminal",
	Long: `Generates the pipeline in memory and renders a markdown summary showing
the hierarchy and every generated file. Output is styled when stdout is a
terminal and left as plain markdown otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := gatherOptions(cmd, args)

		engine, err := cli.NewEngine(opts, cli.CreateLogger(opts.Debug))
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		artifact, err := engine.Generate(cmd.Context())
		if err != nil {
			fmt.Printf("Error generating pipeline: %v\n", err)
			os.Exit(1)
		}

		markdown := previewMarkdown(artifact)
		if tui.IsInteractive() {
			if rendered, err := tui.NewRenderer()(markdown); err == nil {
				markdown = rendered
			}
		}
		fmt.Println(strings.TrimRight(markdown, "\n"))
	},
}

// previewMarkdown lays the artifact out as a markdown document: the
// hierarchy first, then each generated file in a fenced code block.
func previewMarkdown(artifact *domain.Artifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", artifact.Name)
	fmt.Fprintf(&b, "Artifact `%s`\n\n", artifact.ID)
	b.WriteString("```\n")
	b.WriteString(artifact.Hierarchy)
	b.WriteString("\n```\n")
	for _, name := range artifact.FileNames() {
		fmt.Fprintf(&b, "\n## %s\n\n", name)
		b.WriteString("```groovy\n")
		b.WriteString(strings.TrimRight(artifact.Files[name], "\n"))
		b.WriteString("\n```\n")
	}
	return b.String()
}
