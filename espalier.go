package espalier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/espalier/internal/validator"
	"github.com/aretw0/espalier/pkg/adapters/csvfile"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/nextflow"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/tree"
)

// Engine is the high-level entry point for the Espalier library.
// It ties a row source to the tree builder and the pipeline generator and
// provides a simplified API for consumers.
type Engine struct {
	loader    ports.RowLoader
	generator *nextflow.Generator
	config    *nextflow.Config
	modules   []nextflow.ModuleConfig
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom RowLoader, bypassing the default CSV file
// initialization.
func WithLoader(l ports.RowLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithConfig sets the pipeline configuration. When omitted, the engine uses
// nextflow.DefaultConfig.
func WithConfig(cfg *nextflow.Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithModules registers additional module templates. They are applied after
// the builtins and the configured modules, so they win on name clashes.
func WithModules(modules ...nextflow.ModuleConfig) Option {
	return func(e *Engine) {
		e.modules = append(e.modules, modules...)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Espalier Engine.
// By default, it reads the process table from the CSV file at inputPath.
// If the WithLoader option is provided, inputPath can be empty and the file
// lookup is skipped.
func New(inputPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply Options first to check if a loader is provided
	for _, opt := range opts {
		opt(eng)
	}

	// If no loader was injected, initialize the default CSV adapter
	if eng.loader == nil {
		if inputPath == "" {
			return nil, fmt.Errorf("inputPath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(inputPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		eng.Name = workflowName(absPath)
		eng.loader = csvfile.New(absPath)
	} else {
		// If a custom loader is provided, inputPath still serves as a descriptive label.
		if inputPath != "" {
			eng.Name = workflowName(inputPath)
		}
	}

	// Ensure logger is initialized (so surfaces can rely on it being non-nil)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Enrich logger with the workflow name if available
	if eng.Name != "" {
		eng.logger = eng.logger.With("workflow", eng.Name)
	}

	if eng.config == nil {
		eng.config = nextflow.DefaultConfig()
	}

	gen, err := nextflow.NewGenerator(eng.config, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}
	if err := gen.Registry().RegisterModules(eng.modules); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	eng.generator = gen

	return eng, nil
}

// BuildTree loads the process table and assembles it into a tree, returning
// the root node.
func (e *Engine) BuildTree(ctx context.Context) (*domain.Node, error) {
	rows, err := e.loader.LoadRows(ctx)
	if err != nil {
		return nil, err
	}
	return e.BuildTreeFrom(ctx, rows)
}

// BuildTreeFrom assembles a tree from an already loaded table. It does not
// touch the engine's loader, so surfaces can feed it ad hoc rows.
func (e *Engine) BuildTreeFrom(ctx context.Context, rows []domain.Row) (*domain.Node, error) {
	e.logger.DebugContext(ctx, "building process tree", "rows", len(rows))
	return tree.Build(rows)
}

// Generate loads the table, builds the tree and renders the pipeline
// artifact.
func (e *Engine) Generate(ctx context.Context) (*domain.Artifact, error) {
	rows, err := e.loader.LoadRows(ctx)
	if err != nil {
		return nil, err
	}
	return e.GenerateFrom(ctx, rows)
}

// GenerateFrom renders the pipeline artifact for an already loaded table.
func (e *Engine) GenerateFrom(ctx context.Context, rows []domain.Row) (*domain.Artifact, error) {
	root, err := e.BuildTreeFrom(ctx, rows)
	if err != nil {
		return nil, err
	}
	return e.GenerateTree(ctx, "", root)
}

// GenerateTree renders the pipeline artifact for an already built tree under
// the given name. An empty name falls back to the engine's workflow name.
func (e *Engine) GenerateTree(ctx context.Context, name string, root *domain.Node) (*domain.Artifact, error) {
	if name == "" {
		name = e.Name
	}

	artifact, err := e.generator.Generate(name, root)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "pipeline generated", "artifact", artifact.ID, "files", len(artifact.Files))
	return artifact, nil
}

// Hierarchy loads the table and renders the tree as an ascii hierarchy of the
// given attribute. An empty attr renders labels.
func (e *Engine) Hierarchy(ctx context.Context, attr string) (string, error) {
	root, err := e.BuildTree(ctx)
	if err != nil {
		return "", err
	}
	if attr == "" {
		attr = "label"
	}
	return tree.RenderHierarchy(root, attr), nil
}

// Validate loads the table and checks it against the configured modules.
func (e *Engine) Validate(ctx context.Context) error {
	rows, err := e.loader.LoadRows(ctx)
	if err != nil {
		return err
	}
	return e.ValidateFrom(ctx, rows)
}

// ValidateFrom checks an already loaded table against the configured modules.
func (e *Engine) ValidateFrom(ctx context.Context, rows []domain.Row) error {
	return validator.ValidateRows(rows, e.generator.Registry())
}

// Loader returns the underlying RowLoader used by the engine.
func (e *Engine) Loader() ports.RowLoader {
	return e.loader
}

// Registry exposes the module registry for introspection surfaces.
func (e *Engine) Registry() *nextflow.Registry {
	return e.generator.Registry()
}

// Config returns the pipeline configuration in effect.
func (e *Engine) Config() *nextflow.Config {
	return e.config
}

// workflowName derives a workflow name from an input path: the file name
// without its extension.
func workflowName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
