package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// Store implements ports.ArtifactStore using the local filesystem.
// It stores artifacts as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".espalier/artifacts".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".espalier", "artifacts")
	}
	return &Store{BasePath: basePath}
}

// Save persists the artifact to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it
// to the destination.
func (s *Store) Save(ctx context.Context, artifact *domain.Artifact) error {
	if artifact.ID == "" {
		return fmt.Errorf("artifact ID cannot be empty")
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure artifact directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, artifact.ID+".json")

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	// 1. Create Temp File
	// Same directory, so the rename below stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+artifact.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Remove the temp file if anything below fails; after a successful
	// rename both calls are harmless no-ops.
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 5. Atomic Rename
	// On Windows, os.Rename fails if dest exists, so remove it first. The
	// delete+rename window is acceptable for CLI usage compared to a partial
	// file from a plain write.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing artifact file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to artifact: %w", err)
	}

	return nil
}

// Load retrieves an artifact from its JSON file.
func (s *Store) Load(ctx context.Context, id string) (*domain.Artifact, error) {
	if id == "" {
		return nil, fmt.Errorf("artifact ID cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, id+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to read artifact file: %w", err)
	}

	var artifact domain.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artifact: %w", err)
	}

	return &artifact, nil
}

// Delete removes the artifact file.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("artifact ID cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, id+".json")

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete artifact file: %w", err)
	}

	return nil
}

// List returns all stored artifacts, most recent first.
func (s *Store) List(ctx context.Context) ([]*domain.Artifact, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Artifact{}, nil
		}
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	artifacts := make([]*domain.Artifact, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		// Leftover temp files from a crashed Save are not artifacts.
		if strings.HasPrefix(name, "tmp-") {
			continue
		}

		id := name[:len(name)-len(".json")]
		artifact, err := s.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	sort.Slice(artifacts, func(i, j int) bool {
		if !artifacts[i].CreatedAt.Equal(artifacts[j].CreatedAt) {
			return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
		}
		return artifacts[i].ID < artifacts[j].ID
	})

	return artifacts, nil
}
