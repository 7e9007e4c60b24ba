package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"glasscat/internal/config"
	"glasscat/internal/library"
	"glasscat/internal/snapshot"
)

const stampLayout = "2006-01-02 15:04"

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage parsed-catalog snapshots",
	}

	cacheCmd.AddCommand(newCacheWarmCommand(ctx))
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheWarmCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Load every configured catalog, writing missing or stale snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.loadLibrary(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(lib.Sources))
			for _, src := range lib.Sources {
				rows = append(rows, []string{
					src.Name,
					sourceStatus(src),
					materialCount(src),
					skippedCount(src),
					src.Duration.Round(time.Millisecond).String(),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Catalog", "Status", "Materials", "Skipped lines", "Took"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Merged catalog: %d materials (load %s)\n", lib.Catalog.Len(), lib.LoadID)
			return nil
		},
	}
}

func sourceStatus(src library.Source) string {
	switch {
	case src.Err != nil:
		return "error: " + src.Err.Error()
	case src.FromCache:
		return "cached"
	case src.Rebuilt:
		return "rebuilt"
	default:
		return "parsed"
	}
}

func materialCount(src library.Source) string {
	if src.Catalog == nil {
		return "-"
	}
	return fmt.Sprintf("%d", src.Catalog.Len())
}

func skippedCount(src library.Source) string {
	if src.Report == nil {
		return "-"
	}
	return fmt.Sprintf("%d", len(src.Report.Skipped))
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, warn, err := snapshotStore(ctx)
			out := cmd.OutOrStdout()
			if warn != "" {
				fmt.Fprintln(out, warn)
			}
			if err != nil || store == nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "Snapshots: none")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					filepath.Base(entry.Source),
					entry.Catalog,
					fmt.Sprintf("%d", entry.Materials),
					entry.CreatedAt.Local().Format(stampLayout),
					freshness(entry),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Source", "Catalog", "Materials", "Written", "State"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func freshness(entry snapshot.Entry) string {
	current, err := snapshot.StatSource(entry.Source)
	switch {
	case err != nil:
		return "source missing"
	case entry.Stamp.Matches(current):
		return "fresh"
	default:
		return "stale"
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, warn, err := snapshotStore(ctx)
			out := cmd.OutOrStdout()
			if warn != "" {
				fmt.Fprintln(out, warn)
			}
			if err != nil || store == nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, entry := range entries {
				if err := store.Remove(cmd.Context(), entry.Source); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Removed %d snapshots\n", len(entries))
			return nil
		},
	}
}

func snapshotStore(ctx *commandContext) (snapshot.Store, string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	if cfg == nil || !cfg.Cache.Enabled {
		return nil, "Snapshot cache is disabled (set [cache] enabled = true in config.toml)", nil
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, "", err
	}
	store, err := snapshot.Open(cfg, logger)
	if err != nil {
		return nil, "", fmt.Errorf("open snapshot store: %w", err)
	}
	return store, backendNote(cfg), nil
}

func backendNote(cfg *config.Config) string {
	if cfg.Cache.Backend == config.BackendSQLite {
		return "Snapshot database: " + cfg.SnapshotDatabasePath()
	}
	if cfg.Cache.Dir == "" {
		return "Snapshots: next to each catalog source"
	}
	return "Snapshot directory: " + cfg.Cache.Dir
}
