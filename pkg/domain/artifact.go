package domain

import (
	"sort"
	"time"
)

// Artifact is the rendered output of one generation run.
//
// Files maps output file names (for example "workflow.nf") to their full text.
// Hierarchy is the rendered label tree that also appears in the workflow
// header, kept separately so surfaces can show it without re-parsing.
type Artifact struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
	Hierarchy string            `json:"hierarchy" yaml:"hierarchy"`
	Files     map[string]string `json:"files" yaml:"files"`
}

// FileNames returns the artifact's file names sorted alphabetically, so
// listings and exports are deterministic.
func (a *Artifact) FileNames() []string {
	names := make([]string, 0, len(a.Files))
	for name := range a.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
