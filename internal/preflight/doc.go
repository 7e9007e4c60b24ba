// Package preflight provides readiness checks for the filesystem paths that
// glasscat depends on.
//
// The CLI "glasscat config validate" command runs RunAll after the
// configuration parses, so a missing catalog file or an unwritable cache
// directory is reported before a load is attempted. Checks that do not apply
// (caching disabled, no cache directory) are skipped.
package preflight
