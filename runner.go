package espalier

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/nextflow"
)

// Runner executes a full generation pass of the Espalier engine using
// provided IO. This allows for easy testing and integration with different
// frontends (CLI, TUI, etc).
type Runner struct {
	Output   io.Writer
	OutDir   string
	DryRun   bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the summary before outputting
// it. This allows for TUI rendering (markdown to ANSI) without coupling the
// core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner that writes generated files into outDir.
// Set Output to direct the summary somewhere (use os.Stdout).
func NewRunner(outDir string) *Runner {
	return &Runner{
		OutDir: outDir,
	}
}

// Run generates the pipeline and, unless DryRun is set, exports it to OutDir.
// The printed summary shows the process hierarchy and the written files; in
// dry-run mode the file contents are printed instead of written.
func (r *Runner) Run(ctx context.Context, engine *Engine) (*domain.Artifact, error) {
	writer := r.Output
	if writer == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	artifact, err := engine.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("generation error: %w", err)
	}

	summary := r.summarize(artifact)
	if r.Renderer != nil {
		if rendered, err := r.Renderer(summary); err == nil {
			summary = rendered
		}
	}
	fmt.Fprintln(writer, strings.TrimRight(summary, "\n"))

	if r.DryRun {
		for _, name := range artifact.FileNames() {
			fmt.Fprintf(writer, "\n--- %s ---\n%s", name, artifact.Files[name])
		}
		return artifact, nil
	}

	if err := nextflow.Export(artifact, r.OutDir); err != nil {
		return nil, fmt.Errorf("export error: %w", err)
	}
	fmt.Fprintf(writer, "\nWrote %d files to %s\n", len(artifact.Files), r.OutDir)

	return artifact, nil
}

// summarize renders the artifact as a small markdown document so a
// ContentRenderer can style it.
func (r *Runner) summarize(artifact *domain.Artifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", artifact.Name)
	fmt.Fprintf(&b, "Artifact `%s`\n\n", artifact.ID)
	b.WriteString("```\n")
	b.WriteString(artifact.Hierarchy)
	b.WriteString("\n```\n")
	return b.String()
}
