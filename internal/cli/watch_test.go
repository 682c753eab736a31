package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/espalier/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathWatcher(t *testing.T) {
	t.Run("Detects a table edit", func(t *testing.T) {
		_, table := testutils.SetupTestTable(t, "-> fastqc,echo,QC,word=hi")

		w := newPathWatcher(table)
		w.interval = 10 * time.Millisecond

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		done := make(chan string, 1)
		go func() {
			changed, ok := w.Wait(ctx)
			if !ok {
				changed = ""
			}
			done <- changed
		}()

		testutils.WriteTable(t, table,
			"-> fastqc,echo,QC,word=hi",
			"fastqc -> multiqc,echo,Report,word=ok",
		)

		select {
		case changed := <-done:
			assert.Equal(t, table, changed)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not report the edit")
		}
	})

	t.Run("Stops when the context is cancelled", func(t *testing.T) {
		_, table := testutils.SetupTestTable(t, "-> fastqc,echo,QC,word=hi")

		w := newPathWatcher(table)
		w.interval = 10 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		changed, ok := w.Wait(ctx)
		assert.False(t, ok)
		assert.Empty(t, changed)
	})
}

func TestWatchPaths(t *testing.T) {
	t.Run("Includes the discovered project config", func(t *testing.T) {
		dir, table := testutils.SetupTestTable(t, "-> fastqc,echo,QC,word=hi")
		cfg := filepath.Join(dir, "espalier.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("version: \"2.0\"\n"), 0644))

		assert.Equal(t, []string{table, cfg}, watchPaths(Options{InputPath: table}))
	})

	t.Run("Explicit config wins", func(t *testing.T) {
		_, table := testutils.SetupTestTable(t, "-> fastqc,echo,QC,word=hi")

		paths := watchPaths(Options{InputPath: table, ConfigPath: "custom.yaml"})
		assert.Equal(t, []string{table, "custom.yaml"}, paths)
	})

	t.Run("Table alone when no config exists", func(t *testing.T) {
		_, table := testutils.SetupTestTable(t, "-> fastqc,echo,QC,word=hi")

		assert.Equal(t, []string{table}, watchPaths(Options{InputPath: table}))
	})
}

func TestFingerprint(t *testing.T) {
	dir, table := testutils.SetupTestTable(t, "-> fastqc,echo,QC,word=hi")

	first := fingerprint(table)
	assert.NotEmpty(t, first)

	testutils.WriteTable(t, table, "-> fastqc,echo,QC,word=bye")
	assert.NotEqual(t, first, fingerprint(table))

	assert.Empty(t, fingerprint(filepath.Join(dir, "missing.csv")))
}
