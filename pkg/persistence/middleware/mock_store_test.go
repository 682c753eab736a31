package middleware_test

import (
	"context"
	"sort"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data map[string]*domain.Artifact
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Artifact),
	}
}

func (s *MockStore) Save(ctx context.Context, artifact *domain.Artifact) error {
	s.data[artifact.ID] = artifact
	return nil
}

func (s *MockStore) Load(ctx context.Context, id string) (*domain.Artifact, error) {
	artifact, ok := s.data[id]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	return artifact, nil
}

func (s *MockStore) Delete(ctx context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]*domain.Artifact, error) {
	artifacts := make([]*domain.Artifact, 0, len(s.data))
	for _, a := range s.data {
		artifacts = append(artifacts, a)
	}
	sort.Slice(artifacts, func(i, j int) bool {
		if !artifacts[i].CreatedAt.Equal(artifacts[j].CreatedAt) {
			return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
		}
		return artifacts[i].ID < artifacts[j].ID
	})
	return artifacts, nil
}

var _ ports.ArtifactStore = (*MockStore)(nil)
