package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"glasscat/internal/catalog"
	"glasscat/internal/logging"
)

const lockRetryDelay = 50 * time.Millisecond

// Loader returns catalogs from a Store when possible and parses the source
// otherwise. A nil Store always parses.
type Loader struct {
	Store Store
	// VerifySource rejects snapshots whose source size or modification time
	// has changed since they were written.
	VerifySource bool
	Logger       *slog.Logger
}

// Result describes how a catalog was obtained.
type Result struct {
	Catalog *catalog.Catalog
	// Report is set when the source was parsed.
	Report *catalog.Report
	// FromCache is true when the catalog came from a snapshot.
	FromCache bool
	// Rebuilt is true when an existing snapshot was replaced.
	Rebuilt bool
}

// Load implements cache-or-parse for one source file. Snapshot problems are
// logged and recovered by parsing; only an unreadable source with no usable
// snapshot is an error.
func (l *Loader) Load(ctx context.Context, source string) (Result, error) {
	base := logging.WithContext(ctx, l.Logger)
	logger := logging.NewComponentLogger(base, "snapshot").With(logging.String(logging.FieldSource, source))

	stamp, statErr := StatSource(source)
	if l.Store == nil {
		if statErr != nil {
			return Result{}, fmt.Errorf("%w: %w", catalog.ErrSourceUnavailable, statErr)
		}
		return l.parse(source, base, logger)
	}

	snap, err := l.Store.Load(ctx, source)
	if err != nil {
		logger.Debug("snapshot unavailable", logging.Error(err))
		snap = nil
	}
	if snap != nil {
		switch {
		case statErr != nil:
			if result, ok := l.fromSnapshot(snap, logger); ok {
				logging.WarnWithContext(logger, "catalog source missing; using snapshot", "snapshot_source_missing",
					logging.Error(statErr),
					logging.String(logging.FieldErrorHint, "restore the catalog file or remove it from the config"),
					logging.String(logging.FieldImpact, "catalog contents may be out of date"))
				return result, nil
			}
		case !l.VerifySource || snap.Fresh(stamp):
			if result, ok := l.fromSnapshot(snap, logger); ok {
				return result, nil
			}
		default:
			logger.Info("snapshot stale, reparsing",
				logging.String(logging.FieldEventType, "snapshot_stale"),
				logging.Error(ErrStale))
		}
	}
	if statErr != nil {
		return Result{}, fmt.Errorf("%w: %w", catalog.ErrSourceUnavailable, statErr)
	}

	return l.rebuild(ctx, source, snap != nil, base, logger)
}

// rebuild parses source and stores a snapshot while holding the source lock.
// Another process may have rebuilt the snapshot while this one waited, so the
// store is consulted again once the lock is held.
func (l *Loader) rebuild(ctx context.Context, source string, replacing bool, base, logger *slog.Logger) (Result, error) {
	lockPath := l.Store.LockPath(source)
	lock := flock.New(lockPath)
	err := os.MkdirAll(filepath.Dir(lockPath), 0o755)
	locked := false
	if err == nil {
		locked, err = lock.TryLockContext(ctx, lockRetryDelay)
	}
	if err != nil || !locked {
		logging.WarnWithContext(logger, "snapshot lock unavailable; parsing without cache", "snapshot_lock_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on "+lock.Path()),
			logging.String(logging.FieldImpact, "snapshot will not be refreshed"))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return l.parse(source, base, logger)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug("release snapshot lock", logging.Error(err))
		}
	}()

	// Restat under the lock so the stored stamp matches what is parsed.
	stamp, err := StatSource(source)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", catalog.ErrSourceUnavailable, err)
	}
	if snap, err := l.Store.Load(ctx, source); err == nil && (!l.VerifySource || snap.Fresh(stamp)) {
		if result, ok := l.fromSnapshot(snap, logger); ok {
			return result, nil
		}
	}

	result, err := l.parse(source, base, logger)
	if err != nil {
		return Result{}, err
	}
	result.Rebuilt = replacing

	if err := l.Store.Save(ctx, New(result.Catalog, stamp)); err != nil {
		logging.WarnWithContext(logger, "snapshot write failed", "snapshot_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the cache directory is writable"),
			logging.String(logging.FieldImpact, "the source will be parsed again on next load"))
	}
	return result, nil
}

func (l *Loader) parse(source string, base, logger *slog.Logger) (Result, error) {
	cat, report, err := catalog.ParseFile(source, base)
	if err != nil {
		return Result{}, err
	}
	if len(report.Skipped) > 0 {
		logger.Info("catalog parsed with skipped lines",
			logging.String(logging.FieldEventType, "catalog_parsed"),
			logging.String(logging.FieldCatalog, cat.Name),
			logging.Int("material_count", cat.Len()),
			logging.Int("skipped_count", len(report.Skipped)))
	}
	return Result{Catalog: cat, Report: &report}, nil
}

// fromSnapshot rebuilds the catalog; a snapshot that cannot be decoded is
// treated as a miss.
func (l *Loader) fromSnapshot(snap *Snapshot, logger *slog.Logger) (Result, bool) {
	cat, err := snap.ToCatalog()
	if err != nil {
		logger.Debug("snapshot undecodable", logging.Error(err))
		return Result{}, false
	}
	return Result{Catalog: cat, FromCache: true}, true
}
