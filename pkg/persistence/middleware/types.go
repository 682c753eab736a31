// Package middleware provides composable wrappers around artifact stores.
package middleware

import "github.com/aretw0/espalier/pkg/ports"

// Middleware allows wrapping an ArtifactStore to add behavior.
type Middleware func(ports.ArtifactStore) ports.ArtifactStore
