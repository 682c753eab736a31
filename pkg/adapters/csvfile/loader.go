// Package csvfile adapts a CSV process table on disk to the Espalier
// RowLoader interface.
//
// The first record is the header. The "process" and "module" columns are
// required; "label" and "params" are optional and are defaulted per row when
// their column is absent. Any other columns are ignored.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/relation"
)

// Loader reads the flat process table from a CSV file.
type Loader struct {
	path  string
	comma rune
}

// Option configures the Loader.
type Option func(*Loader)

// WithComma sets the field separator. The default is ',';
// pass '\t' for tab-separated tables.
func WithComma(comma rune) Option {
	return func(l *Loader) {
		l.comma = comma
	}
}

// New creates a CSV loader for the given file path.
func New(path string, opts ...Option) *Loader {
	l := &Loader{path: path, comma: ','}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadRows implements ports.RowLoader.
func (l *Loader) LoadRows(ctx context.Context) ([]domain.Row, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening process table: %w", err)
	}
	defer f.Close()

	rows, err := ReadRows(f, l.comma)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", l.path, err)
	}
	return rows, nil
}

// ReadRows parses a CSV process table from r using the given separator.
// It applies the same header checks and per-row defaulting as LoadRows.
func ReadRows(r io.Reader, comma rune) ([]domain.Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &domain.SchemaError{Missing: []string{"process", "module"}}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	var missing []string
	for _, required := range []string{"process", "module"} {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Missing: missing}
	}

	labelIdx, hasLabel := cols["label"]
	paramsIdx, hasParams := cols["params"]

	var rows []domain.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		row := domain.Row{
			Process: record[cols["process"]],
			Module:  record[cols["module"]],
		}
		if hasLabel {
			row.Label = record[labelIdx]
		} else {
			row.Label = defaultLabel(row.Process)
		}
		if hasParams {
			row.Params = record[paramsIdx]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// defaultLabel derives a label from the process cell when the table has no
// label column: the child segment of the relation with leading whitespace
// removed, or the whole trimmed cell when there is no relation.
func defaultLabel(process string) string {
	if relation.HasDelimiter(process) {
		segments := strings.Split(process, relation.Delimiter)
		return strings.TrimLeftFunc(segments[1], unicode.IsSpace)
	}
	return strings.TrimSpace(process)
}
