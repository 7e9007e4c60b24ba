package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeCatalog() error {
	if value, ok := os.LookupEnv("GLASSCAT_CATALOG_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Catalog.Dir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Catalog.Dir) == "" {
		c.Catalog.Dir = defaultCatalogDir
	}
	var err error
	if c.Catalog.Dir, err = expandPath(c.Catalog.Dir); err != nil {
		return fmt.Errorf("catalog.dir: %w", err)
	}

	for i := range c.Catalog.Sources {
		src := &c.Catalog.Sources[i]
		src.Name = strings.TrimSpace(src.Name)
		src.Path = strings.TrimSpace(src.Path)
		if src.Path == "" && src.Name != "" {
			src.Path = src.Name + sourceExtension
		}
		if src.Path == "" {
			continue
		}
		if !filepath.IsAbs(src.Path) && !strings.HasPrefix(src.Path, "~") {
			src.Path = filepath.Join(c.Catalog.Dir, src.Path)
		}
		if src.Path, err = expandPath(src.Path); err != nil {
			return fmt.Errorf("catalog.sources[%d].path: %w", i, err)
		}
		if src.Name == "" {
			src.Name = strings.TrimSuffix(filepath.Base(src.Path), filepath.Ext(src.Path))
		}
	}
	return nil
}

func (c *Config) normalizeCache() error {
	if value, ok := os.LookupEnv("GLASSCAT_CACHE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Cache.Dir = strings.TrimSpace(value)
	}
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = defaultCacheBackend
	}
	c.Cache.Dir = strings.TrimSpace(c.Cache.Dir)
	if c.Cache.Dir == "" && c.Cache.Backend == BackendSQLite {
		c.Cache.Dir = defaultCacheDir()
	}
	var err error
	if c.Cache.Dir, err = expandPath(c.Cache.Dir); err != nil {
		return fmt.Errorf("cache.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
