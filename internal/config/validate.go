package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	seen := make(map[string]int, len(c.Catalog.Sources))
	for i, src := range c.Catalog.Sources {
		if src.Path == "" {
			return fmt.Errorf("catalog.sources[%d]: name or path must be set", i)
		}
		if prev, ok := seen[src.Name]; ok {
			return fmt.Errorf("catalog.sources[%d]: name %q already used by catalog.sources[%d]", i, src.Name, prev)
		}
		seen[src.Name] = i
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("cache.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Cache.Backend)
	}
	if c.Cache.Backend == BackendSQLite && c.Cache.Dir == "" {
		return errors.New("cache.dir must be set for the sqlite backend")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
