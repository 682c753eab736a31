package nextflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ManifestConfig fills the manifest block of workflow.config.
type ManifestConfig struct {
	Description     string `yaml:"description" json:"description"`
	NextflowVersion string `yaml:"nextflow_version" json:"nextflow_version"`
}

// ModuleConfig declares one custom module template. Template text is passed
// through Dedent before registration, so indented YAML blocks work as-is.
type ModuleConfig struct {
	Name     string   `yaml:"name" json:"name" mapstructure:"name"`
	Template string   `yaml:"template" json:"template" mapstructure:"template"`
	Requires []string `yaml:"requires" json:"requires" mapstructure:"requires"`
}

// Config controls the boilerplate around a generated pipeline.
type Config struct {
	Manifest ManifestConfig
	Profiles []string
	Params   map[string]string
	Version  string
	Mail     *bool
	Modules  []ModuleConfig
}

// MailEnabled reports whether the onComplete mail block is included.
// It defaults to on; only an explicit "mail: false" disables it.
func (c *Config) MailEnabled() bool {
	return c.Mail == nil || *c.Mail
}

// DefaultConfig returns the configuration used when no project file exists.
func DefaultConfig() *Config {
	return &Config{
		Manifest: ManifestConfig{
			Description:     "Proof of concept for generative workflows in Nextflow",
			NextflowVersion: ">= 20.04.1",
		},
		Profiles: []string{"local", "sge", "aws"},
		Version:  "1.0",
	}
}

// configFile is the on-disk shape of espalier.yaml. Modules entries are
// polymorphic: a string imports another module file, a map declares a
// template inline.
type configFile struct {
	Manifest ManifestConfig    `yaml:"manifest" json:"manifest"`
	Profiles []string          `yaml:"profiles" json:"profiles"`
	Params   map[string]string `yaml:"params" json:"params"`
	Version  string            `yaml:"version" json:"version"`
	Mail     *bool             `yaml:"mail" json:"mail"`
	Modules  []any             `yaml:"modules" json:"modules"`
}

type moduleFile struct {
	Modules []any `yaml:"modules" json:"modules"`
}

// LoadConfig reads a project configuration file (YAML or JSON). A missing
// file is not an error; it yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	var raw configFile
	if err := unmarshalByExt(path, data, &raw); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if raw.Manifest.Description != "" {
		cfg.Manifest.Description = raw.Manifest.Description
	}
	if raw.Manifest.NextflowVersion != "" {
		cfg.Manifest.NextflowVersion = raw.Manifest.NextflowVersion
	}
	if len(raw.Profiles) > 0 {
		cfg.Profiles = raw.Profiles
	}
	if len(raw.Params) > 0 {
		cfg.Params = raw.Params
	}
	if raw.Version != "" {
		cfg.Version = raw.Version
	}
	cfg.Mail = raw.Mail

	modules, err := resolveModules(filepath.Dir(path), raw.Modules, nil)
	if err != nil {
		return nil, fmt.Errorf("resolving modules of %s: %w", path, err)
	}
	cfg.Modules = modules

	return cfg, nil
}

func unmarshalByExt(path string, data []byte, v any) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}
	// Default to YAML
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// resolveModules recursively resolves polymorphic module definitions
// (inline maps or import strings).
func resolveModules(dir string, items []any, visited map[string]bool) ([]ModuleConfig, error) {
	if visited == nil {
		visited = make(map[string]bool)
	}

	// Later values override earlier ones in the map, so local definitions
	// listed after an import shadow the imported ones.
	moduleMap := make(map[string]ModuleConfig)
	var order []string

	merge := func(m ModuleConfig) {
		if _, exists := moduleMap[m.Name]; !exists {
			order = append(order, m.Name)
		}
		moduleMap[m.Name] = m
	}

	for _, item := range items {
		switch v := item.(type) {
		case string:
			// Import reference, relative to the importing file.
			ref := v
			if !filepath.IsAbs(ref) {
				ref = filepath.Join(dir, ref)
			}
			if visited[ref] {
				return nil, fmt.Errorf("cycle detected in module imports: %s", v)
			}
			visited[ref] = true

			imported, err := loadModuleFile(ref, visited)

			delete(visited, ref)

			if err != nil {
				return nil, err
			}
			for _, m := range imported {
				merge(m)
			}

		case map[string]any, map[any]any:
			var module ModuleConfig
			if err := mapstructure.Decode(v, &module); err != nil {
				return nil, fmt.Errorf("failed to decode inline module: %w", err)
			}
			if module.Name == "" {
				return nil, fmt.Errorf("inline module missing name")
			}
			merge(module)

		default:
			return nil, fmt.Errorf("invalid module definition type: %T", v)
		}
	}

	result := make([]ModuleConfig, 0, len(order))
	for _, name := range order {
		result = append(result, moduleMap[name])
	}
	return result, nil
}

func loadModuleFile(path string, visited map[string]bool) ([]ModuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load imported module file %q: %w", path, err)
	}
	var raw moduleFile
	if err := unmarshalByExt(path, data, &raw); err != nil {
		return nil, err
	}
	return resolveModules(filepath.Dir(path), raw.Modules, visited)
}
