package testsupport

import (
	"path/filepath"
	"testing"

	"glasscat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Catalog.Dir = filepath.Join(base, "glass")
	cfgVal.Cache.Dir = filepath.Join(base, "cache")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSource writes an AGF file into the catalog directory and appends it to
// the source list.
func WithSource(name, content string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.cfg.Catalog.Dir, name+".agf")
		WriteFile(b.t, path, content)
		b.cfg.Catalog.Sources = append(b.cfg.Catalog.Sources, config.Source{Name: name, Path: path})
	}
}

// WithMissingSource appends a source whose file does not exist.
func WithMissingSource(name string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.cfg.Catalog.Dir, name+".agf")
		b.cfg.Catalog.Sources = append(b.cfg.Catalog.Sources, config.Source{Name: name, Path: path})
	}
}

// WithCacheBackend selects the snapshot backend.
func WithCacheBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Backend = backend
	}
}

// WithoutCache disables snapshots.
func WithoutCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Catalog.Dir)
}
