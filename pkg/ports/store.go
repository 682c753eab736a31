package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// ArtifactStore defines the interface for persisting generated artifacts.
// This lets surfaces hand out stable artifact IDs and fetch results later.
type ArtifactStore interface {
	// Save persists the artifact under its ID, overwriting any previous
	// artifact with the same ID.
	Save(ctx context.Context, artifact *domain.Artifact) error

	// Load retrieves an artifact by ID.
	// Returns domain.ErrArtifactNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Artifact, error)

	// Delete removes an artifact by ID. Deleting a missing artifact is not
	// an error.
	Delete(ctx context.Context, id string) error

	// List returns the stored artifacts, most recent first.
	List(ctx context.Context) ([]*domain.Artifact, error)
}
