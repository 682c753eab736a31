// Package testutils provides shared fixtures for Espalier tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TableHeader is the standard header prepended by WriteTable.
const TableHeader = "process,module,label,params"

// SetupTestTable creates a temporary directory containing a process table
// with the given rows. It returns the directory and the table path.
// It fails the test immediately on error.
func SetupTestTable(t *testing.T, rows ...string) (dir, path string) {
	t.Helper()

	dir = t.TempDir()
	path = filepath.Join(dir, "flow.csv")
	WriteTable(t, path, rows...)
	return dir, path
}

// WriteTable writes (or rewrites) a process table at path, prepending the
// standard header.
func WriteTable(t *testing.T, path string, rows ...string) {
	t.Helper()

	content := TableHeader + "\n"
	for _, row := range rows {
		content += row + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write process table")
}
