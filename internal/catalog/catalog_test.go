package catalog

import (
	"errors"
	"testing"

	"glasscat/internal/material"
	"glasscat/internal/testsupport"
)

func TestMergeLastWriterWins(t *testing.T) {
	schott, _ := mustParse(t, testsupport.SchottAGF)
	ohara, _ := mustParse(t, testsupport.OharaAGF)

	merged := New("merged")
	merged.Merge(schott, ohara)

	if merged.Len() != 3 {
		t.Fatalf("merged len = %d, want 3 (%v)", merged.Len(), merged.Names())
	}
	bk7, err := merged.Lookup("N-BK7")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if bk7.ND != 1.5170 {
		t.Fatalf("nd = %v, want the later catalog's 1.5170", bk7.ND)
	}

	reversed := New("reversed")
	reversed.Merge(ohara, schott)
	bk7, _ = reversed.Lookup("N-BK7")
	if bk7.ND != 1.5168 {
		t.Fatalf("nd = %v, want the later catalog's 1.5168", bk7.ND)
	}
	if _, err := reversed.Lookup("F2"); err != nil {
		t.Fatalf("F2 lost in merge: %v", err)
	}
}

func TestMergeSkipsNilAndLeavesInputsAlone(t *testing.T) {
	schott, _ := mustParse(t, testsupport.SchottAGF)
	var merged Catalog
	merged.Merge(nil, schott)
	merged.Add(material.Air())

	if merged.Len() != 3 {
		t.Fatalf("merged len = %d, want 3", merged.Len())
	}
	if schott.Len() != 2 {
		t.Fatalf("source catalog modified: len %d", schott.Len())
	}
}

func TestLookupNotFound(t *testing.T) {
	cat := New("empty")
	if _, err := cat.Lookup("N-BK7"); !errors.Is(err, ErrMaterialNotFound) {
		t.Fatalf("expected ErrMaterialNotFound, got %v", err)
	}
}

func TestResolveFoldsCase(t *testing.T) {
	cat, _ := mustParse(t, testsupport.SchottAGF)

	m, err := cat.Resolve(" n-bk7 ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Name != "N-BK7" {
		t.Fatalf("resolved %q", m.Name)
	}
	if _, err := cat.Resolve("SF11"); !errors.Is(err, ErrMaterialNotFound) {
		t.Fatalf("expected ErrMaterialNotFound, got %v", err)
	}
}

func TestResolveAmbiguous(t *testing.T) {
	cat := New("mixed")
	cat.Add(material.NewFictional("Glass", 1.5, 50))
	cat.Add(material.NewFictional("GLASS", 1.6, 40))

	if m, err := cat.Resolve("GLASS"); err != nil || m.ND != 1.6 {
		t.Fatalf("exact match should win: %v, %v", m, err)
	}
	if _, err := cat.Resolve("glass"); !errors.Is(err, ErrAmbiguousName) {
		t.Fatalf("expected ErrAmbiguousName, got %v", err)
	}
}

func TestMaterialsSortedByName(t *testing.T) {
	cat := New("bootstrap")
	for _, m := range material.Bootstrap() {
		cat.Add(m)
	}
	got := cat.Materials()
	want := []string{"air", "air_mirror", "vacuum", "vacuum_mirror"}
	if len(got) != len(want) {
		t.Fatalf("materials = %d, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.Name != want[i] {
			t.Fatalf("materials[%d] = %q, want %q", i, m.Name, want[i])
		}
	}
}

func TestLineErrorUnwraps(t *testing.T) {
	err := &LineError{Line: 4, Command: "CD", Args: "1", Err: malformed("odd count")}
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("LineError should unwrap to ErrMalformedRecord: %v", err)
	}
	if err.Error() == "" {
		t.Fatal("empty error text")
	}
}
