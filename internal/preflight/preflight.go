package preflight

import (
	"path/filepath"
	"sort"
	"strings"

	"glasscat/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for cfg: each catalog source must be
// readable and, when caching is enabled, the directories receiving snapshots
// must be writable.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, src := range cfg.Catalog.Sources {
		results = append(results, CheckSourceFile("Catalog "+src.Name, src.Path))
	}

	if !cfg.Cache.Enabled {
		return results
	}
	if strings.TrimSpace(cfg.Cache.Dir) != "" {
		return append(results, CheckDirectoryAccess("Cache directory", cfg.Cache.Dir, true))
	}

	// Adjacent JSON snapshots are written beside their sources.
	for _, dir := range sourceDirs(cfg.Catalog.Sources) {
		results = append(results, CheckDirectoryAccess("Snapshot directory", dir, true))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

func sourceDirs(sources []config.Source) []string {
	seen := make(map[string]struct{}, len(sources))
	var dirs []string
	for _, src := range sources {
		dir := filepath.Dir(src.Path)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
