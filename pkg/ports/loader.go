package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// RowLoader defines how the generator retrieves the flat process table.
// This allows the input source (CSV file, memory, HTTP payload) to be decoupled.
type RowLoader interface {
	// LoadRows returns every row of the table in declaration order.
	// Loaders normalize optional columns: a missing label defaults to the
	// child segment of the process cell, a missing params column to "".
	LoadRows(ctx context.Context) ([]domain.Row, error)
}
