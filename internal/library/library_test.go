package library_test

import (
	"context"
	"errors"
	"testing"

	"glasscat/internal/catalog"
	"glasscat/internal/config"
	"glasscat/internal/library"
	"glasscat/internal/material"
	"glasscat/internal/testsupport"
)

func TestLoadMergesInConfiguredOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithSource("schott", testsupport.SchottAGF),
		testsupport.WithSource("ohara", testsupport.OharaAGF),
	)

	lib, err := library.Load(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	bk7, err := lib.Catalog.Lookup("N-BK7")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if bk7.ND != 1.5170 {
		t.Fatalf("nd = %v, want ohara's 1.5170 (listed last)", bk7.ND)
	}

	cfg.Catalog.Sources[0], cfg.Catalog.Sources[1] = cfg.Catalog.Sources[1], cfg.Catalog.Sources[0]
	lib, err = library.Load(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Load reversed: %v", err)
	}
	bk7, _ = lib.Catalog.Lookup("N-BK7")
	if bk7.ND != 1.5168 {
		t.Fatalf("nd = %v, want schott's 1.5168 (listed last)", bk7.ND)
	}
	if lib.Sources[0].Name != "ohara" || lib.Sources[1].Name != "schott" {
		t.Fatalf("sources out of order: %+v", lib.Sources)
	}
}

func TestLoadAppendsBootstrapMaterials(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSource("schott", testsupport.SchottAGF))

	lib, err := library.Load(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lib.Catalog.Len() != 6 {
		t.Fatalf("materials = %v", lib.Catalog.Names())
	}
	for _, name := range []string{material.NameAir, material.NameVacuum, material.NameAirMirror, material.NameVacuumMirror} {
		if _, err := lib.Catalog.Lookup(name); err != nil {
			t.Fatalf("bootstrap material %s missing: %v", name, err)
		}
	}
	if lib.LoadID == "" {
		t.Fatal("expected a load id")
	}

	cfg.Catalog.Bootstrap = false
	lib, err = library.Load(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lib.Catalog.Len() != 2 {
		t.Fatalf("bootstrap disabled but got %v", lib.Catalog.Names())
	}
}

func TestLoadUsesSnapshotsOnSecondRun(t *testing.T) {
	for _, backend := range []string{config.BackendJSON, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := testsupport.NewConfig(t,
				testsupport.WithSource("schott", testsupport.SchottAGF),
				testsupport.WithCacheBackend(backend),
			)

			first, err := library.Load(context.Background(), cfg, nil)
			if err != nil {
				t.Fatalf("first Load: %v", err)
			}
			if first.Sources[0].FromCache {
				t.Fatal("first load cannot be cached")
			}
			second, err := library.Load(context.Background(), cfg, nil)
			if err != nil {
				t.Fatalf("second Load: %v", err)
			}
			if !second.Sources[0].FromCache {
				t.Fatal("second load should be served from the snapshot")
			}
			if first.LoadID == second.LoadID {
				t.Fatal("each load should get its own id")
			}
			a, _ := first.Catalog.Lookup("N-BK7")
			b, _ := second.Catalog.Lookup("N-BK7")
			testsupport.AssertSameMaterial(t, a, b)
		})
	}
}

func TestLoadWithoutCacheAlwaysParses(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithSource("schott", testsupport.SchottAGF),
		testsupport.WithoutCache(),
	)
	for i := 0; i < 2; i++ {
		lib, err := library.Load(context.Background(), cfg, nil)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if lib.Sources[0].FromCache || lib.Sources[0].Report == nil {
			t.Fatalf("run %d: expected a parse, got %+v", i, lib.Sources[0])
		}
	}
}

func TestLoadMissingSource(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithSource("schott", testsupport.SchottAGF),
		testsupport.WithMissingSource("hoya"),
	)

	if _, err := library.Load(context.Background(), cfg, nil); !errors.Is(err, catalog.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}

	lib, err := library.Load(context.Background(), cfg, nil, library.AllowMissing())
	if err != nil {
		t.Fatalf("Load with AllowMissing: %v", err)
	}
	if !errors.Is(lib.Sources[1].Err, catalog.ErrSourceUnavailable) {
		t.Fatalf("hoya source error = %v", lib.Sources[1].Err)
	}
	if _, err := lib.Resolve("n-bk7"); err != nil {
		t.Fatalf("schott materials should still load: %v", err)
	}
}

func TestLoadWithExplicitStore(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSource("schott", testsupport.SchottAGF))

	lib, err := library.Load(context.Background(), cfg, nil, library.WithStore(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lib, err = library.Load(context.Background(), cfg, nil, library.WithStore(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lib.Sources[0].FromCache {
		t.Fatal("nil store should disable snapshots")
	}
	if lib.Skipped() != 0 {
		t.Fatalf("skipped = %d", lib.Skipped())
	}
}

func TestLoadCancelled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSource("schott", testsupport.SchottAGF))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := library.Load(ctx, cfg, nil, library.AllowMissing()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
