package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/nextflow"
	"github.com/aretw0/espalier/pkg/relation"
	"github.com/aretw0/espalier/pkg/tree"
)

// ValidateRows checks a process table for everything that would abort a
// generation run: rows without a relation, malformed relations or parameters,
// root conflicts, unknown modules and missing required parameters.
//
// Findings are collected instead of failing fast, so a single run reports
// every problem in the table.
func ValidateRows(rows []domain.Row, registry *nextflow.Registry) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to validate")
	}

	var problems []string

	// 1. Row-level checks
	for i, row := range rows {
		if !relation.HasDelimiter(row.Process) {
			problems = append(problems, fmt.Sprintf("row %d: process %q has no %q relation", i+1, row.Process, relation.Delimiter))
			continue
		}
		if _, _, err := relation.Parse(row.Process); err != nil {
			problems = append(problems, fmt.Sprintf("row %d: %v", i+1, err))
		}
		if _, err := relation.ParseParams(row.Params); err != nil {
			problems = append(problems, fmt.Sprintf("row %d: %v", i+1, err))
		}
	}

	// 2. Structural checks
	// These need a full build, so they only run once the rows themselves parse.
	if len(problems) == 0 {
		root, err := tree.Build(rows)
		if err != nil {
			problems = append(problems, err.Error())
		} else if registry != nil {
			for node := range tree.LevelOrder(root) {
				problems = append(problems, checkModule(node, registry)...)
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}

	return nil
}

// checkModule verifies that a node's module is renderable: the module must be
// registered and every parameter it requires must be present in the kwargs.
func checkModule(node *domain.Node, registry *nextflow.Registry) []string {
	if node.Module == "" {
		return []string{fmt.Sprintf("process %q has no module assigned", node.Name)}
	}
	if !registry.Has(node.Module) {
		return []string{fmt.Sprintf("process %q references unknown module %q", node.Name, node.Module)}
	}

	var problems []string
	for _, key := range registry.Requires(node.Module) {
		if _, ok := node.Kwargs[key]; !ok {
			problems = append(problems, fmt.Sprintf("process %q is missing parameter %q required by module %q", node.Name, key, node.Module))
		}
	}
	return problems
}
