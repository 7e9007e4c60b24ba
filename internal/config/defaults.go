package config

const (
	defaultConfigPath    = "~/.config/glasscat/config.toml"
	defaultCatalogDir    = "~/.local/share/glasscat/glass"
	defaultCacheBackend  = BackendJSON
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	snapshotDatabaseName = "catalogs.db"
	sourceExtension      = ".agf"
)

// Cache backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			Dir:       defaultCatalogDir,
			Bootstrap: true,
		},
		Cache: Cache{
			Enabled:      true,
			Backend:      defaultCacheBackend,
			VerifySource: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
