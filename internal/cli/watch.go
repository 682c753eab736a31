package cli

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/tui"
)

// watchInterval is how often the watcher re-fingerprints the watched files.
// Polling behaves the same across platforms and network mounts.
const watchInterval = 500 * time.Millisecond

// RunGenerateWatch runs generate in development mode, regenerating the
// pipeline whenever the input table or the project config changes on disk.
func RunGenerateWatch(opts GenerateOptions) error {
	logger := CreateLogger(opts.Debug)

	interactive := tui.IsInteractive() && !opts.DryRun
	if interactive {
		tui.PrintBanner(espalier.Version)
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	paths := watchPaths(opts.Options)
	logger.Info("Starting watcher", "paths", paths)
	PrintSystemMessage("Watching '%s' for changes.", opts.InputPath)

	w := newPathWatcher(paths...)
	for {
		if err := runGeneratePass(sigCtx, opts, logger, interactive); err != nil {
			// A broken table mid-edit is normal in watch mode. Report and
			// keep waiting for the next save.
			logger.Error("Generation failed", "err", err)
			PrintSystemMessage("Generation failed: %v", err)
		}
		PrintSystemMessage("Waiting for changes...")

		changed, ok := w.Wait(sigCtx)
		if !ok {
			logger.Info("Stopping watcher (signal received)", "signal", sigCtx.Signal())
			PrintSystemMessage("Watcher stopped.")
			return nil
		}

		logger.Info("Change detected, regenerating", "path", changed)
		PrintSystemMessage("Change detected in '%s'.", changed)
		// Delay slightly to ensure the file system is stable.
		time.Sleep(100 * time.Millisecond)
	}
}

// watchPaths lists the files whose edits trigger a regeneration: the input
// table plus the project config, whether passed explicitly or discovered
// next to the table.
func watchPaths(opts Options) []string {
	paths := []string{opts.InputPath}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = findProjectConfig(opts.InputPath)
	}
	if configPath != "" {
		paths = append(paths, configPath)
	}
	return paths
}

// pathWatcher polls a fixed set of paths and reports content changes. Files
// are compared by content hash rather than mtime so editors that rewrite
// files in place are still caught.
type pathWatcher struct {
	paths    []string
	seen     map[string]string
	interval time.Duration
}

func newPathWatcher(paths ...string) *pathWatcher {
	w := &pathWatcher{
		paths:    paths,
		seen:     make(map[string]string, len(paths)),
		interval: watchInterval,
	}
	for _, p := range w.paths {
		w.seen[p] = fingerprint(p)
	}
	return w
}

// Wait blocks until one of the watched paths changes or the context is
// cancelled. It returns the changed path, and false once the context ended.
func (w *pathWatcher) Wait(ctx context.Context) (string, bool) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", false
		case <-ticker.C:
			for _, p := range w.paths {
				fp := fingerprint(p)
				if fp != w.seen[p] {
					w.seen[p] = fp
					return p, true
				}
			}
		}
	}
}

// fingerprint hashes a file's contents. A missing or unreadable file maps to
// the empty fingerprint, so deleting and later recreating a table both
// register as changes.
func fingerprint(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}
