// Package config loads, normalizes, and validates glasscat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// GLASSCAT_CATALOG_DIR. The Config type lists the vendor catalog files to
// load, in merge order, and how parsed catalogs are cached between runs.
//
// Always obtain settings through this package so downstream code receives
// absolute source paths, a canonical cache backend, and clear validation errors.
package config
