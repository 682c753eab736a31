package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/relation"
)

// Builder manages the construction of a process table.
// Rows keep their declaration order, exactly like lines in a CSV file.
type Builder struct {
	rows []*RowBuilder
}

// New creates a new table builder.
func New() *Builder {
	return &Builder{}
}

// Root declares a root process ("-> name").
func (b *Builder) Root(name string) *RowBuilder {
	return b.add(relation.Delimiter+" "+name, name)
}

// Process declares a parent -> child relation.
func (b *Builder) Process(parent, child string) *RowBuilder {
	return b.add(parent+" "+relation.Delimiter+" "+child, child)
}

func (b *Builder) add(process, child string) *RowBuilder {
	rb := &RowBuilder{process: process, label: child}
	b.rows = append(b.rows, rb)
	return rb
}

// Rows compiles the table into domain rows.
func (b *Builder) Rows() ([]domain.Row, error) {
	rows := make([]domain.Row, 0, len(b.rows))
	for _, rb := range b.rows {
		row, err := rb.row()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Build compiles the table into a MemoryLoader.
func (b *Builder) Build() (*memory.Loader, error) {
	rows, err := b.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return memory.NewFromRows(rows...), nil
}

func validateParamPart(part string) error {
	if part == "" {
		return fmt.Errorf("param key/value must not be empty")
	}
	if strings.Contains(part, "=") || strings.Contains(part, relation.ParamSeparator) {
		return fmt.Errorf("param key/value %q must not contain %q or %q", part, "=", relation.ParamSeparator)
	}
	return nil
}
