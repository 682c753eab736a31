package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
)

// Store implements ports.ArtifactStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Artifact
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Artifact),
	}
}

// Save persists the artifact in memory.
func (s *Store) Save(ctx context.Context, artifact *domain.Artifact) error {
	copied := cloneArtifact(artifact)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[artifact.ID] = copied
	return nil
}

// Load retrieves an artifact from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.data[id]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	// Copy on read so the caller can't mutate store state by pointer.
	return cloneArtifact(artifact), nil
}

// Delete removes an artifact. Missing IDs are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored artifacts, most recent first.
func (s *Store) List(ctx context.Context) ([]*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifacts := make([]*domain.Artifact, 0, len(s.data))
	for _, artifact := range s.data {
		artifacts = append(artifacts, cloneArtifact(artifact))
	}
	sort.Slice(artifacts, func(i, j int) bool {
		if !artifacts[i].CreatedAt.Equal(artifacts[j].CreatedAt) {
			return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
		}
		return artifacts[i].ID < artifacts[j].ID
	})
	return artifacts, nil
}

func cloneArtifact(a *domain.Artifact) *domain.Artifact {
	copied := *a
	copied.Files = make(map[string]string, len(a.Files))
	for name, content := range a.Files {
		copied.Files[name] = content
	}
	return &copied
}
