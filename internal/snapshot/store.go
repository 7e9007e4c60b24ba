package snapshot

import (
	"context"
	"fmt"
	"log/slog"

	"glasscat/internal/config"
)

// Store persists snapshots keyed by the absolute path of their source.
type Store interface {
	// Load returns the snapshot for source, or ErrCacheMiss when none can be
	// read.
	Load(ctx context.Context, source string) (*Snapshot, error)
	// Save stores snap under snap.Source, replacing any previous snapshot.
	Save(ctx context.Context, snap *Snapshot) error
	// Remove deletes the snapshot for source. Removing a missing snapshot is
	// not an error.
	Remove(ctx context.Context, source string) error
	// List summarizes the stored snapshots ordered by source.
	List(ctx context.Context) ([]Entry, error)
	// LockPath names the file used to serialize rebuilds of source.
	LockPath(source string) string
	Close() error
}

// Open returns the store selected by cfg.Cache. It returns nil when caching
// is disabled.
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg == nil || !cfg.Cache.Enabled {
		return nil, nil
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	switch cfg.Cache.Backend {
	case config.BackendSQLite:
		store, err := OpenSQLite(cfg.SnapshotDatabasePath(), logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendJSON, "":
		known := make([]string, 0, len(cfg.Catalog.Sources))
		for _, src := range cfg.Catalog.Sources {
			known = append(known, src.Path)
		}
		return NewJSONStore(cfg.Cache.Dir, known, logger), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
