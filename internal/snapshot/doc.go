// Package snapshot persists parsed glass catalogs so repeat loads can skip
// the AGF parser.
//
// A Snapshot is a self-describing copy of one catalog plus the size and
// modification time of the source file it came from. Two Store backends are
// provided: JSONStore writes one file per source (next to the source or in a
// cache directory) and SQLiteStore keeps every snapshot in a single database.
//
// Loader implements cache-or-parse: it returns the stored snapshot when it is
// present and fresh, and otherwise parses the source under a file lock and
// writes a new snapshot. Snapshots never change catalog contents; every
// material field, NaN placeholders and empty term lists included, survives a
// round trip.
package snapshot
