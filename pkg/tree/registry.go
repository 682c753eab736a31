// Package tree assembles flat process rows into a single-rooted pipeline
// tree and provides traversal and rendering over it.
package tree

import "github.com/aretw0/espalier/pkg/domain"

// Registry resolves process names to unique nodes during one build run.
// Every name maps to exactly one *domain.Node; lookups for a name that was
// never seen create a bare node on the fly. The registry remembers
// first-seen order so root reporting is deterministic.
//
// A Registry is local to a single build and is not safe for concurrent use.
type Registry struct {
	nodes map[string]*domain.Node
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]*domain.Node)}
}

// GetOrCreate returns the node registered under name, creating a bare node
// if the name was never seen.
func (r *Registry) GetOrCreate(name string) *domain.Node {
	if node, ok := r.nodes[name]; ok {
		return node
	}
	node := &domain.Node{Name: name}
	r.nodes[name] = node
	r.order = append(r.order, name)
	return node
}

// Replace unconditionally binds name to a fresh bare node, discarding any
// node previously registered under it together with its links. Root
// declarations use this: a later "-> A" row restarts A from scratch.
func (r *Registry) Replace(name string) *domain.Node {
	if _, ok := r.nodes[name]; !ok {
		r.order = append(r.order, name)
	}
	node := &domain.Node{Name: name}
	r.nodes[name] = node
	return node
}

// Get returns the node registered under name, if any.
func (r *Registry) Get(name string) (*domain.Node, bool) {
	node, ok := r.nodes[name]
	return node, ok
}

// Roots returns the registered nodes without a parent, in first-seen order.
func (r *Registry) Roots() []*domain.Node {
	var roots []*domain.Node
	for _, name := range r.order {
		if node := r.nodes[name]; node.IsRoot() {
			roots = append(roots, node)
		}
	}
	return roots
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.nodes)
}
