package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/espalier/internal/adapters/redis"
	"github.com/aretw0/espalier/pkg/domain"
	contract "github.com/aretw0/espalier/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()

	// Setup miniredis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	// Initialize client
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	contract.ArtifactStoreContractTest(t, store)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	artifact := &domain.Artifact{
		ID:        "short-lived",
		Name:      "demo",
		CreatedAt: time.Now().UTC(),
		Files:     map[string]string{"workflow.nf": "// demo"},
	}
	if err := store.Save(ctx, artifact); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Let the TTL fire
	mr.FastForward(2 * time.Minute)

	if _, err := store.Load(ctx, artifact.ID); err != domain.ErrArtifactNotFound {
		t.Errorf("expected ErrArtifactNotFound after expiry, got %v", err)
	}

	artifacts, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(artifacts) != 0 {
		t.Errorf("expected expired artifact to vanish from List, got %d entries", len(artifacts))
	}
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newTestStore(t, redis.WithPrefix("other:"))
	ctx := context.Background()

	artifact := &domain.Artifact{
		ID:        "prefixed",
		Name:      "demo",
		CreatedAt: time.Now().UTC(),
		Files:     map[string]string{"workflow.nf": "// demo"},
	}
	if err := store.Save(ctx, artifact); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !mr.Exists("other:prefixed") {
		t.Error("expected artifact under the custom prefix")
	}
	if mr.Exists("espalier:artifact:prefixed") {
		t.Error("expected no key under the default prefix")
	}
}
