package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"glasscat/internal/catalog"
	"glasscat/internal/config"
	"glasscat/internal/logging"
	"glasscat/internal/material"
	"glasscat/internal/snapshot"
)

// mergedName is the name given to the combined catalog.
const mergedName = "all"

// Source reports how one configured source was loaded.
type Source struct {
	Name string
	Path string
	// Catalog is the per-source catalog before merging; nil when Err is set.
	Catalog   *catalog.Catalog
	Report    *catalog.Report
	FromCache bool
	Rebuilt   bool
	Duration  time.Duration
	Err       error
}

// Library is the merged result of one load.
type Library struct {
	LoadID  string
	Catalog *catalog.Catalog
	// Sources follows configuration order.
	Sources []Source
}

// Option adjusts Load.
type Option func(*options)

type options struct {
	allowMissing bool
	store        snapshot.Store
	storeSet     bool
}

// AllowMissing keeps loading when a source cannot be read. The failure is
// recorded in the matching Source entry instead of failing the load.
func AllowMissing() Option {
	return func(o *options) { o.allowMissing = true }
}

// WithStore overrides the snapshot store opened from the configuration. A
// nil store disables snapshots. The caller keeps ownership of the store.
func WithStore(store snapshot.Store) Option {
	return func(o *options) {
		o.store = store
		o.storeSet = true
	}
}

// Load reads every configured source and merges them.
func Load(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Library, error) {
	if cfg == nil {
		return nil, errors.New("library requires a config")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	loadID := uuid.NewString()
	ctx = logging.WithLoadID(ctx, loadID)
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logging.NewComponentLogger(logging.WithContext(ctx, logger), "library")

	store := o.store
	if !o.storeSet {
		opened, err := snapshot.Open(cfg, logger)
		if err != nil {
			logging.WarnWithContext(log, "snapshot store unavailable; parsing every source", "snapshot_store_unavailable",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check [cache] settings and cache directory permissions"),
				logging.String(logging.FieldImpact, "catalogs are parsed on every load"))
		} else if opened != nil {
			store = opened
			defer func() {
				if err := opened.Close(); err != nil {
					log.Debug("close snapshot store", logging.Error(err))
				}
			}()
		}
	}

	loader := &snapshot.Loader{
		Store:        store,
		VerifySource: cfg.Cache.VerifySource,
		Logger:       logger,
	}

	start := time.Now()
	sources := loadSources(ctx, loader, cfg.Catalog.Sources)

	merged := catalog.New(mergedName)
	var errs []error
	for i := range sources {
		src := &sources[i]
		if src.Err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			errs = append(errs, fmt.Errorf("source %s: %w", src.Name, src.Err))
			logging.WarnWithContext(log, "catalog source unavailable", "catalog_source_unavailable",
				logging.String(logging.FieldSource, src.Path),
				logging.String(logging.FieldCatalog, src.Name),
				logging.Error(src.Err),
				logging.String(logging.FieldErrorHint, "fix the path in [[catalog.sources]] or remove the entry"),
				logging.String(logging.FieldImpact, "materials from this catalog are missing"))
			continue
		}
		merged.Merge(src.Catalog)
	}
	if len(errs) > 0 && !o.allowMissing {
		return nil, errors.Join(errs...)
	}

	if cfg.Catalog.Bootstrap {
		for _, m := range material.Bootstrap() {
			merged.Add(m)
		}
	}

	log.Info("catalogs loaded",
		logging.String(logging.FieldEventType, "catalogs_loaded"),
		logging.Int("source_count", len(sources)),
		logging.Int("failed_count", len(errs)),
		logging.Int("material_count", merged.Len()),
		logging.Duration("duration", time.Since(start)))

	return &Library{LoadID: loadID, Catalog: merged, Sources: sources}, nil
}

// loadSources loads each source on its own goroutine. Results keep the
// configured order regardless of completion order.
func loadSources(ctx context.Context, loader *snapshot.Loader, configured []config.Source) []Source {
	sources := make([]Source, len(configured))
	var wg sync.WaitGroup
	for i, src := range configured {
		sources[i] = Source{Name: src.Name, Path: src.Path}
		wg.Add(1)
		go func(out *Source) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				out.Err = err
				return
			}
			began := time.Now()
			result, err := loader.Load(ctx, out.Path)
			out.Duration = time.Since(began)
			if err != nil {
				out.Err = err
				return
			}
			out.Catalog = result.Catalog
			out.Report = result.Report
			out.FromCache = result.FromCache
			out.Rebuilt = result.Rebuilt
		}(&sources[i])
	}
	wg.Wait()
	return sources
}

// Resolve finds a material in the merged catalog by exact or case-folded name.
func (l *Library) Resolve(name string) (*material.Material, error) {
	return l.Catalog.Resolve(name)
}

// Skipped returns the total number of skipped lines over all parsed sources.
func (l *Library) Skipped() int {
	total := 0
	for _, src := range l.Sources {
		if src.Report != nil {
			total += len(src.Report.Skipped)
		}
	}
	return total
}
