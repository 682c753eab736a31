package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectConfig(t *testing.T) {
	// Helper to create a temp dir with specific files
	createDir := func(t *testing.T, files []string) string {
		dir := t.TempDir()
		for _, f := range files {
			err := os.WriteFile(filepath.Join(dir, f), []byte("version: \"2.0\"\n"), 0644)
			require.NoError(t, err)
		}
		return dir
	}

	t.Run("Picks espalier.yaml next to the input", func(t *testing.T) {
		dir := createDir(t, []string{"espalier.yaml", "espalier.json"})
		input := filepath.Join(dir, "flow.csv")
		assert.Equal(t, filepath.Join(dir, "espalier.yaml"), findProjectConfig(input))
	})

	t.Run("Falls back to json", func(t *testing.T) {
		dir := createDir(t, []string{"espalier.json"})
		input := filepath.Join(dir, "flow.csv")
		assert.Equal(t, filepath.Join(dir, "espalier.json"), findProjectConfig(input))
	})

	t.Run("Empty when nothing matches", func(t *testing.T) {
		dir := createDir(t, []string{"other.yaml"})
		input := filepath.Join(dir, "flow.csv")
		assert.Equal(t, "", findProjectConfig(input))
	})
}

func TestNewEngine(t *testing.T) {
	t.Run("Requires an input path", func(t *testing.T) {
		_, err := NewEngine(Options{}, logging.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no input table")
	})

	t.Run("Picks up the config next to the input", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "flow.csv")
		table := "process,label,module,params\n-> fastqc,QC,echo,word=hi\n"
		require.NoError(t, os.WriteFile(input, []byte(table), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "espalier.yaml"), []byte("version: \"9.9\"\n"), 0644))

		engine, err := NewEngine(Options{InputPath: input}, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "9.9", engine.Config().Version)
	})

	t.Run("Server engine needs no input path", func(t *testing.T) {
		engine, err := NewServerEngine(Options{}, logging.NewNop())
		require.NoError(t, err)

		// Stateless surfaces feed rows per request; the engine still carries
		// a usable registry and config.
		assert.True(t, engine.Registry().Has("echo"))
		assert.NotNil(t, engine.Config())
	})

	t.Run("Server engine honors an explicit config", func(t *testing.T) {
		dir := t.TempDir()
		cfg := filepath.Join(dir, "espalier.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("version: \"3.3\"\n"), 0644))

		engine, err := NewServerEngine(Options{ConfigPath: cfg}, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "3.3", engine.Config().Version)
	})

	t.Run("Explicit config wins over the convention", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "flow.csv")
		table := "process,label,module,params\n-> fastqc,QC,echo,word=hi\n"
		require.NoError(t, os.WriteFile(input, []byte(table), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "espalier.yaml"), []byte("version: \"1.1\"\n"), 0644))

		explicit := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(explicit, []byte("version: \"7.7\"\n"), 0644))

		engine, err := NewEngine(Options{InputPath: input, ConfigPath: explicit}, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "7.7", engine.Config().Version)
	})
}
