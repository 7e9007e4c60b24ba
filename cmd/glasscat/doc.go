// Package main hosts the glasscat CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the structured
// logger, and loads the merged glass catalog through internal/library. Each
// subcommand then only formats what the library returns: material listings,
// a single record, refractive indices at chosen wavelengths, snapshot cache
// maintenance, and configuration scaffolding.
//
// Keep this package lean: new behavior belongs in the internal packages and
// is surfaced here through dedicated commands or flags.
package main
