package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/tui"
)

// GenerateOptions contains all the configuration for the generate command.
type GenerateOptions struct {
	Options
	OutDir string
	DryRun bool
	Watch  bool
}

// RunGenerate executes a single generation pass: build the tree, render the
// pipeline, export the files (or print them in dry-run mode).
func RunGenerate(opts GenerateOptions) error {
	logger := CreateLogger(opts.Debug)

	interactive := tui.IsInteractive() && !opts.DryRun
	if interactive {
		tui.PrintBanner(espalier.Version)
	}

	return runGeneratePass(context.Background(), opts, logger, interactive)
}

// runGeneratePass performs one build-and-export cycle. The engine is
// constructed fresh each call so that watch iterations pick up table and
// config edits.
func runGeneratePass(ctx context.Context, opts GenerateOptions, logger *slog.Logger, interactive bool) error {
	engine, err := NewEngine(opts.Options, logger)
	if err != nil {
		return err
	}

	// Bare invocations route through the root command, which carries no
	// --out flag; treat that as the current directory.
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	r := espalier.NewRunner(opts.OutDir)
	r.Output = os.Stdout
	r.DryRun = opts.DryRun
	if interactive {
		r.Renderer = tui.NewRenderer()
	}

	artifact, err := r.Run(ctx, engine)
	if err != nil {
		return err
	}

	logger.Info("Generation finished", "artifact", artifact.ID, "files", len(artifact.Files))
	return nil
}
