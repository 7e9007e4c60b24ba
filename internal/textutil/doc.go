// Package textutil holds small string helpers shared by the snapshot store
// and the CLI.
//
// SanitizeToken turns catalog file names into filesystem-safe tokens for
// snapshot file names; Ternary keeps table-cell formatting on one line.
package textutil
