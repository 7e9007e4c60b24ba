// Package library is the catalog-loading entry point.
//
// Load takes an explicit configuration (the ordered source list and the
// snapshot settings), loads each source concurrently into its own catalog
// through snapshot.Loader, and merges the results in configuration order so a
// later source wins on a duplicate name. The built-in vacuum and air
// materials are added last when enabled. The merged catalog is read-only
// once Load returns.
package library
