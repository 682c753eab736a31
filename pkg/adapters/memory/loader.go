// Package memory provides in-memory implementations of the Espalier ports,
// mainly for tests and embedding.
package memory

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// Loader implements ports.RowLoader from an in-memory row slice.
type Loader struct {
	rows []domain.Row
}

// NewFromRows creates a Loader that serves the given rows in order.
// This avoids touching the filesystem, improving DX for tests.
func NewFromRows(rows ...domain.Row) *Loader {
	copied := make([]domain.Row, len(rows))
	copy(copied, rows)
	return &Loader{rows: copied}
}

// LoadRows returns a copy of the configured rows.
func (l *Loader) LoadRows(ctx context.Context) ([]domain.Row, error) {
	out := make([]domain.Row, len(l.rows))
	copy(out, l.rows)
	return out, nil
}
