package nextflow

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/aretw0/espalier/pkg/domain"
)

// Builtin module templates. Kwargs feed the placeholders; "child" is always
// injected by the tree builder, "parent" on non-root nodes.
const (
	echoTemplate = `
    process {{.child}} {
        output:
        stdout into {{.child}}

        """
        printf {{.word}}
        """
    }
    `

	joinTemplate = `
    process {{.child}} {
        input:
        val x from {{.parent}}

        output:
        stdout into {{.child}}

        """
        printf "${x}_{{.word}}"
        """
    }
    `
)

// Registry manages the module templates available to the generator.
// Module tags from the table's "module" column are resolved here.
type Registry struct {
	templates map[string]*moduleTemplate
	names     []string
}

type moduleTemplate struct {
	tmpl     *template.Template
	requires []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*moduleTemplate)}
}

// DefaultRegistry creates a registry preloaded with the builtin modules
// "echo" (a source process printing its word into its own channel) and
// "join" (a process consuming the parent channel and appending its word).
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Builtin templates parse by construction.
	if err := r.Register("echo", echoTemplate, "word"); err != nil {
		panic(err)
	}
	if err := r.Register("join", joinTemplate, "word"); err != nil {
		panic(err)
	}
	return r
}

// Register adds a module template under the given name, overwriting any
// existing module with the same name. The text is dedented before parsing;
// requires lists the kwargs keys the template needs beyond the injected
// ones.
func (r *Registry) Register(name, text string, requires ...string) error {
	if name == "" {
		return fmt.Errorf("module name must not be empty")
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(Dedent(text))
	if err != nil {
		return fmt.Errorf("failed to parse module template %q: %w", name, err)
	}
	if _, exists := r.templates[name]; !exists {
		r.names = append(r.names, name)
	}
	r.templates[name] = &moduleTemplate{tmpl: tmpl, requires: requires}
	return nil
}

// RegisterModules adds every configured module, typically from LoadConfig.
func (r *Registry) RegisterModules(modules []ModuleConfig) error {
	for _, m := range modules {
		if err := r.Register(m.Name, m.Template, m.Requires...); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the registered module names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Has reports whether a module is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Requires returns the declared required kwargs of a module.
func (r *Registry) Requires(name string) []string {
	mt, ok := r.templates[name]
	if !ok {
		return nil
	}
	return mt.requires
}

// Render produces the process block for one node by executing its module's
// template with the node's kwargs. Unknown modules fail with a
// *domain.UnknownModuleError, missing declared kwargs with a
// *domain.MissingParameterError.
func (r *Registry) Render(node *domain.Node) (string, error) {
	mt, ok := r.templates[node.Module]
	if !ok {
		return "", &domain.UnknownModuleError{Module: node.Module, Node: node.Name}
	}
	for _, key := range mt.requires {
		if _, ok := node.Kwargs[key]; !ok {
			return "", &domain.MissingParameterError{Module: node.Module, Node: node.Name, Key: key}
		}
	}

	var b strings.Builder
	if err := mt.tmpl.Execute(&b, node.Kwargs); err != nil {
		return "", fmt.Errorf("rendering module %q for process %q: %w", node.Module, node.Name, err)
	}
	return b.String(), nil
}
