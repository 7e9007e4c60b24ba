// Package catalog parses Zemax AGF glass catalogs and serves material lookups.
//
// An AGF file is a sequence of tagged lines ("NM N-BK7 2 517642 1.5168 64.17",
// "CD 1.0396 0.0060 ..."). NM opens a new material; every following line up
// to the next NM fills in fields of that material. Parsing is best effort:
// each line is applied independently, and a line that cannot be applied is
// recorded in the Report and logged, never aborting the load.
//
// Catalogs from several vendors are combined with Merge, where the catalog
// merged last wins on duplicate material names.
package catalog
