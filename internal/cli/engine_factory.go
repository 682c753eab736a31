package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/nextflow"
)

// Options carries the flag values shared by the table-driven commands.
type Options struct {
	InputPath  string
	ConfigPath string
	Debug      bool
}

// NewEngine initializes an Espalier engine with standard CLI conventions.
func NewEngine(opts Options, logger *slog.Logger) (*espalier.Engine, error) {
	if opts.InputPath == "" {
		return nil, fmt.Errorf("no input table provided (use --input)")
	}

	engineOpts := []espalier.Option{espalier.WithLogger(logger)}

	// Smart Convention: Project Config
	// If espalier.yaml (or .yml/.json) sits next to the input table, pick it
	// up without requiring --config. An explicit --config always wins.
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = findProjectConfig(opts.InputPath)
	}
	if configPath != "" {
		cfg, err := nextflow.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("error loading project config: %w", err)
		}
		engineOpts = append(engineOpts, espalier.WithConfig(cfg))
	}

	engine, err := espalier.New(opts.InputPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return engine, nil
}

// NewServerEngine initializes an engine for the stateless surfaces (HTTP,
// MCP), where every request carries its own table. --input stays optional
// and only serves to pick up a project config by convention.
func NewServerEngine(opts Options, logger *slog.Logger) (*espalier.Engine, error) {
	if opts.InputPath != "" {
		return NewEngine(opts, logger)
	}

	engineOpts := []espalier.Option{
		espalier.WithLogger(logger),
		espalier.WithLoader(memory.NewFromRows()),
	}
	if opts.ConfigPath != "" {
		cfg, err := nextflow.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("error loading project config: %w", err)
		}
		engineOpts = append(engineOpts, espalier.WithConfig(cfg))
	}

	engine, err := espalier.New("", engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// findProjectConfig checks whether a project config file exists next to the
// input table.
// Note: This is an optimization for the factory to avoid over-configuring
// engines for projects that carry no config file.
func findProjectConfig(inputPath string) string {
	dir := filepath.Dir(inputPath)
	for _, name := range []string{"espalier.yaml", "espalier.yml", "espalier.json"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
