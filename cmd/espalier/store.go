package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/adapters/file"
	redisstore "github.com/aretw0/espalier/internal/adapters/redis"
	"github.com/aretw0/espalier/pkg/persistence/middleware"
	"github.com/aretw0/espalier/pkg/ports"
)

const (
	// storeKeyEnv optionally carries hex-encoded AES-256 keys for artifact
	// encryption at rest: the active key first, rotation fallbacks after
	// commas.
	storeKeyEnv = "ESPALIER_STORE_KEY"

	// redisPasswordEnv supplies the Redis password, kept out of argv.
	redisPasswordEnv = "ESPALIER_REDIS_PASSWORD"
)

// openStore builds the artifact store shared by serve and the artifact
// commands: Redis when an address is given, the local file store otherwise.
// When ESPALIER_STORE_KEY is set, the store is wrapped with encryption
// middleware so artifacts are opaque at rest.
func openStore(redisAddr, dir string) (ports.ArtifactStore, func(), string, error) {
	var store ports.ArtifactStore
	closeFn := func() {}
	desc := ""

	if redisAddr != "" {
		rs := redisstore.New(redisAddr, os.Getenv(redisPasswordEnv), 0)
		store = rs
		closeFn = func() { _ = rs.Close() }
		desc = "redis at " + redisAddr
	} else {
		fs := file.New(dir)
		store = fs
		desc = "files in " + fs.BasePath
	}

	if keys := os.Getenv(storeKeyEnv); keys != "" {
		cfg, err := middleware.ParseKeys(keys)
		if err != nil {
			closeFn()
			return nil, nil, "", fmt.Errorf("invalid %s: %w", storeKeyEnv, err)
		}
		store = middleware.NewEncryptionMiddleware(cfg)(store)
		desc += " (encrypted)"
	}

	return store, closeFn, desc, nil
}
