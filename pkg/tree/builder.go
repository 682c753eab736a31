package tree

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/relation"
)

// Build assembles the rows into a tree and returns its root.
//
// The build runs in two passes. The first pass only links: it resolves each
// relation and attaches children to parents, skipping rows whose process
// cell is empty or carries no "->" delimiter. The second pass decorates: it
// revisits every row, parses its params and overwrites the child node's
// attributes wholesale, so the last row describing a node wins. Since every
// node has exactly one parent, edge parameters live on the child.
//
// After both passes exactly one node must be parentless. Zero roots fail
// with domain.ErrNoRoot, several with a *domain.MultipleRootsError. Any
// malformed relation or parameter aborts the build; there are no partial
// results.
func Build(rows []domain.Row) (*domain.Node, error) {
	reg := NewRegistry()

	for _, row := range rows {
		if row.Process == "" || !relation.HasDelimiter(row.Process) {
			continue
		}
		parent, child, err := relation.Parse(row.Process)
		if err != nil {
			return nil, fmt.Errorf("linking %q: %w", row.Process, err)
		}
		if parent == "" {
			reg.Replace(child)
			continue
		}
		parentNode := reg.GetOrCreate(parent)
		childNode := reg.GetOrCreate(child)
		childNode.SetParent(parentNode)
	}

	for _, row := range rows {
		_, child, err := relation.Parse(row.Process)
		if err != nil {
			return nil, fmt.Errorf("describing %q: %w", row.Process, err)
		}
		node, ok := reg.Get(child)
		if !ok {
			return nil, fmt.Errorf("describing %q: process %q was never linked", row.Process, child)
		}

		kwargs, err := relation.ParseParams(row.Params)
		if err != nil {
			return nil, fmt.Errorf("parameters of %q: %w", row.Process, err)
		}
		kwargs["child"] = node.Name
		if !node.IsRoot() {
			kwargs["parent"] = node.Parent.Name
		}

		node.Label = row.Label
		node.Module = row.Module
		node.Params = row.Params
		node.Kwargs = kwargs
	}

	roots := reg.Roots()
	switch len(roots) {
	case 0:
		return nil, domain.ErrNoRoot
	case 1:
		return roots[0], nil
	default:
		names := make([]string, len(roots))
		for i, root := range roots {
			names[i] = root.Name
		}
		return nil, &domain.MultipleRootsError{Roots: names}
	}
}
