// Package tests provides reusable contract suites for ports implementations.
package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// RowLoaderContractTest is a reusable test suite that verifies if an adapter
// complies with ports.RowLoader.
func RowLoaderContractTest(t *testing.T, loader ports.RowLoader, expected []domain.Row) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadRows_Order", func(t *testing.T) {
		rows, err := loader.LoadRows(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading rows: %v", err)
		}
		if len(rows) != len(expected) {
			t.Fatalf("expected %d rows, got %d", len(expected), len(rows))
		}
		for i, row := range rows {
			if row != expected[i] {
				t.Errorf("row %d mismatch. got %+v, want %+v", i, row, expected[i])
			}
		}
	})

	t.Run("LoadRows_Repeatable", func(t *testing.T) {
		first, err := loader.LoadRows(ctx)
		if err != nil {
			t.Fatalf("first load failed: %v", err)
		}
		second, err := loader.LoadRows(ctx)
		if err != nil {
			t.Fatalf("second load failed: %v", err)
		}
		if len(first) != len(second) {
			t.Errorf("loads disagree: %d vs %d rows", len(first), len(second))
		}
	})
}

// ArtifactStoreContractTest is a reusable test suite that verifies if an
// adapter complies with ports.ArtifactStore. The store must start empty.
func ArtifactStoreContractTest(t *testing.T, store ports.ArtifactStore) {
	t.Helper()
	ctx := context.Background()

	older := &domain.Artifact{
		ID:        "artifact-older",
		Name:      "older",
		CreatedAt: time.Now().Add(-time.Minute).UTC().Truncate(time.Second),
		Hierarchy: "QC\n+-- Align",
		Files:     map[string]string{"workflow.nf": "// older"},
	}
	newer := &domain.Artifact{
		ID:        "artifact-newer",
		Name:      "newer",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Hierarchy: "QC",
		Files:     map[string]string{"workflow.nf": "// newer", "workflow.config": "manifest {}"},
	}

	t.Run("Save_And_Load", func(t *testing.T) {
		if err := store.Save(ctx, older); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, err := store.Load(ctx, older.ID)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got.Name != older.Name || got.Hierarchy != older.Hierarchy {
			t.Errorf("loaded artifact mismatch. got %+v, want %+v", got, older)
		}
		if got.Files["workflow.nf"] != older.Files["workflow.nf"] {
			t.Errorf("file content mismatch. got %q", got.Files["workflow.nf"])
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-artifact")
		if !errors.Is(err, domain.ErrArtifactNotFound) {
			t.Errorf("expected domain.ErrArtifactNotFound, got %v", err)
		}
	})

	t.Run("List_MostRecentFirst", func(t *testing.T) {
		if err := store.Save(ctx, newer); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		artifacts, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(artifacts) != 2 {
			t.Fatalf("expected 2 artifacts, got %d", len(artifacts))
		}
		if artifacts[0].ID != newer.ID {
			t.Errorf("expected %q first, got %q", newer.ID, artifacts[0].ID)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, older.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, older.ID); !errors.Is(err, domain.ErrArtifactNotFound) {
			t.Errorf("expected domain.ErrArtifactNotFound after delete, got %v", err)
		}
		// Deleting again must not fail.
		if err := store.Delete(ctx, older.ID); err != nil {
			t.Errorf("second delete failed: %v", err)
		}
	})
}
