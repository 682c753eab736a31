package nextflow

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/espalier/pkg/domain"
)

// Export writes the artifact's files into dir, creating the directory if
// needed. Existing files are overwritten.
func Export(artifact *domain.Artifact, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	for name, content := range artifact.Files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
