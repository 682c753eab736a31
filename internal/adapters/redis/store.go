package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ArtifactStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for artifacts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for artifacts.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "espalier:artifact:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the artifact to Redis.
func (s *Store) Save(ctx context.Context, artifact *domain.Artifact) error {
	data, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	pipe := s.client.Pipeline()

	// 1. Save JSON with TTL
	// Use 0 for no expiration if ttl is not set.
	pipe.Set(ctx, s.key(artifact.ID), data, s.ttl)

	// 2. Add to Index (ZSET)
	// Score = creation time, so the index doubles as a recency ranking.
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(artifact.CreatedAt.Unix()),
		Member: artifact.ID,
	})

	// Execute pipeline
	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves an artifact from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Artifact, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var artifact domain.Artifact
	if err := json.Unmarshal([]byte(val), &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artifact: %w", err)
	}

	return &artifact, nil
}

// Delete removes an artifact and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored artifacts, most recent first.
// Uses ZSET lazy cleanup: index entries older than the TTL are pruned before
// reading, since their value keys have already expired.
func (s *Store) List(ctx context.Context) ([]*domain.Artifact, error) {
	if s.ttl > 0 {
		cutoff := float64(time.Now().Add(-s.ttl).Unix())
		// ZREMRANGEBYSCORE key -inf (cutoff)
		err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", cutoff)).Err()
		if err != nil {
			return nil, fmt.Errorf("failed to prune expired artifacts: %w", err)
		}
	}

	// Get remaining IDs, newest score first
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	artifacts := make([]*domain.Artifact, 0, len(ids))
	for _, id := range ids {
		artifact, err := s.Load(ctx, id)
		if err != nil {
			// The value can expire between the prune and the read; skip it.
			if err == domain.ErrArtifactNotFound {
				continue
			}
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	return artifacts, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
