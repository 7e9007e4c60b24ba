package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"glasscat/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Source names one vendor catalog file.
type Source struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Catalog contains the catalog source list. Sources are merged in the order
// listed; a later source wins when two define the same material.
type Catalog struct {
	Dir       string   `toml:"dir"`
	Sources   []Source `toml:"sources"`
	Bootstrap bool     `toml:"bootstrap"` // append vacuum, air and their mirrors
}

// Cache contains configuration for parsed-catalog snapshots.
type Cache struct {
	Enabled      bool   `toml:"enabled"`
	Backend      string `toml:"backend"` // "json" or "sqlite"
	Dir          string `toml:"dir"`     // empty: JSON snapshots sit next to their source
	VerifySource bool   `toml:"verify_source"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for glasscat.
type Config struct {
	Catalog Catalog `toml:"catalog"`
	Cache   Cache   `toml:"cache"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("glasscat.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the snapshot cache directory when one is configured.
func (c *Config) EnsureDirectories() error {
	if !c.Cache.Enabled || strings.TrimSpace(c.Cache.Dir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Cache.Dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory %q: %w", c.Cache.Dir, err)
	}
	return nil
}

// SnapshotDatabasePath returns the SQLite database used by the sqlite cache backend.
func (c *Config) SnapshotDatabasePath() string {
	return filepath.Join(c.Cache.Dir, snapshotDatabaseName)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "glasscat")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/glasscat"
	}
	return filepath.Join(home, ".cache", "glasscat")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	return writeSample(path, sampleConfig)
}

// CreateSampleForDir writes a sample configuration whose [catalog] section
// points at catalogDir and lists every .agf file found there, sorted by name.
// It returns the discovered source names.
func CreateSampleForDir(path, catalogDir string) ([]string, error) {
	dir, err := expandPath(catalogDir)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog dir: %w", err)
	}
	names, err := discoverSources(dir)
	if err != nil {
		return nil, err
	}
	content, err := renderSample(dir, names)
	if err != nil {
		return nil, err
	}
	return names, writeSample(path, content)
}

func discoverSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), sourceExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// renderSample swaps the catalog dir and source list of the embedded sample,
// keeping its comments.
func renderSample(dir string, files []string) (string, error) {
	const (
		dirLine      = `dir = "~/.local/share/glasscat/glass"`
		sourcesStart = "[[catalog.sources]]"
		sourcesEnd   = "[cache]"
	)
	start := strings.Index(sampleConfig, sourcesStart)
	end := strings.Index(sampleConfig, sourcesEnd)
	if !strings.Contains(sampleConfig, dirLine) || start < 0 || end < start {
		return "", errors.New("embedded sample config has unexpected layout")
	}

	var b strings.Builder
	for _, file := range files {
		name := strings.ToLower(strings.TrimSuffix(file, filepath.Ext(file)))
		fmt.Fprintf(&b, "%s\nname = %q\npath = %q\n\n", sourcesStart, name, file)
	}
	head := strings.Replace(sampleConfig[:start], dirLine, fmt.Sprintf("dir = %q", dir), 1)
	return head + b.String() + sampleConfig[end:], nil
}

func writeSample(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
