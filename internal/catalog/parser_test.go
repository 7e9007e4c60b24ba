package catalog

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	xunicode "golang.org/x/text/encoding/unicode"

	"glasscat/internal/material"
	"glasscat/internal/testsupport"
)

func mustParse(t *testing.T, src string) (*Catalog, Report) {
	t.Helper()
	cat, report, err := Parse(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cat, report
}

func TestParseSchottCatalog(t *testing.T) {
	cat, report := mustParse(t, testsupport.SchottAGF)

	if cat.Name != "Schott test catalog" {
		t.Fatalf("catalog name = %q", cat.Name)
	}
	if got := cat.Names(); len(got) != 2 || got[0] != "F2" || got[1] != "N-BK7" {
		t.Fatalf("names = %v", got)
	}
	if len(report.Skipped) != 0 {
		t.Fatalf("unexpected skipped lines: %v", report.Skipped)
	}
	if report.Ignored != 1 {
		t.Fatalf("ignored = %d, want 1 (LD)", report.Ignored)
	}
	if report.Applied+report.Ignored != report.Lines {
		t.Fatalf("line accounting off: %+v", report)
	}

	bk7, err := cat.Lookup("N-BK7")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if bk7.Comment != "borosilicate crown" {
		t.Fatalf("comment = %q", bk7.Comment)
	}
	if bk7.GlassCode != 517642.251 || bk7.ND != 1.5168 || bk7.VD != 64.17 {
		t.Fatalf("NM fields = %v %v %v", bk7.GlassCode, bk7.ND, bk7.VD)
	}
	if bk7.AlphaM3070 != 7.1 || bk7.Alpha20300 != 8.3 || bk7.Density != 2.51 {
		t.Fatalf("ED fields = %v %v %v", bk7.AlphaM3070, bk7.Alpha20300, bk7.Density)
	}
	if len(bk7.Sellmeier) != 3 {
		t.Fatalf("expected zero rows dropped, got %v", bk7.Sellmeier)
	}
	if len(bk7.Thermal) != 7 || bk7.Thermal[5] != 20 {
		t.Fatalf("thermal = %v", bk7.Thermal)
	}
	if bk7.Price == nil || *bk7.Price != 1.0 {
		t.Fatalf("price = %v", bk7.Price)
	}
	if want := []float64{2, 0, 1, 2.3, 0, 0}; len(bk7.Chemical) != len(want) || bk7.Chemical[3] != 2.3 {
		t.Fatalf("chemical = %v, want %v", bk7.Chemical, want)
	}
	if got := bk7.Transmission[material.TransmissionKey{Wavelength: 0.3, Thickness: 25}]; got != 0.05 {
		t.Fatalf("transmission(0.3, 25) = %v", got)
	}
	if len(bk7.Transmission) != 2 {
		t.Fatalf("transmission entries = %d", len(bk7.Transmission))
	}
	if !bk7.Solid || bk7.Mirror || bk7.Kind != material.KindSellmeier {
		t.Fatalf("unexpected flags %+v", bk7)
	}

	if got := bk7.Dispersion(material.LambdaF, material.LambdaD, material.LambdaC); math.Abs(got-bk7.VD) > 0.05 {
		t.Fatalf("dispersion from Sellmeier = %.3f, published vd %.2f", got, bk7.VD)
	}
	f2, err := cat.Lookup("F2")
	if err != nil {
		t.Fatalf("Lookup F2: %v", err)
	}
	if got := f2.Dispersion(material.LambdaF, material.LambdaD, material.LambdaC); math.Abs(got-f2.VD) > 0.05 {
		t.Fatalf("F2 dispersion = %.3f, published vd %.2f", got, f2.VD)
	}
	if got := f2.RefractiveIndex(material.LambdaD); math.Abs(got-f2.ND) > 1e-4 {
		t.Fatalf("F2 index at d = %.5f, published nd %.5f", got, f2.ND)
	}
}

func TestParseRecoversFromMalformedName(t *testing.T) {
	src := `NM BAD 2 not-a-number 1.5 60 0 1 0
GC orphaned comment
CD 1.0 0.01
NM GOOD 2 500600 1.5 60 0 1 0
CD 1.0 0.01
`
	cat, report := mustParse(t, src)

	if _, err := cat.Lookup("BAD"); !errors.Is(err, ErrMaterialNotFound) {
		t.Fatalf("expected BAD absent, got %v", err)
	}
	good, err := cat.Lookup("GOOD")
	if err != nil {
		t.Fatalf("Lookup GOOD: %v", err)
	}
	if len(good.Sellmeier) != 1 || good.Comment != "" {
		t.Fatalf("GOOD picked up orphaned lines: %+v", good)
	}
	if len(report.Skipped) != 3 {
		t.Fatalf("skipped = %v, want 3", report.Skipped)
	}
	if !errors.Is(report.Skipped[0], ErrMalformedRecord) || report.Skipped[0].Line != 1 {
		t.Fatalf("first skip = %v", report.Skipped[0])
	}
	for _, skipped := range report.Skipped[1:] {
		if !errors.Is(skipped, ErrNoCurrentMaterial) {
			t.Fatalf("expected no-current-material skip, got %v", skipped)
		}
	}
}

func TestParseMalformedLinesKeepMaterial(t *testing.T) {
	src := `NM G1 2 500600 1.5 60
CD 1.0 0.01 2.0
ED 1 2
TD 1 x 3
OD cheap 1 2
IT 0.4 0.9
ZZ something new
LD 0.3 abc
`
	cat, report := mustParse(t, src)

	g, err := cat.Lookup("G1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if g.Sellmeier != nil || g.Thermal != nil || g.Price != nil || len(g.Transmission) != 0 {
		t.Fatalf("malformed lines leaked into material: %+v", g)
	}

	var malformed, unrecognized int
	for _, skipped := range report.Skipped {
		switch {
		case errors.Is(skipped, ErrMalformedRecord):
			malformed++
		case errors.Is(skipped, ErrUnrecognizedCommand):
			unrecognized++
		default:
			t.Fatalf("unexpected skip %v", skipped)
		}
	}
	if malformed != 6 || unrecognized != 1 {
		t.Fatalf("malformed=%d unrecognized=%d, want 6 and 1", malformed, unrecognized)
	}
}

func TestParseAllZeroCoefficients(t *testing.T) {
	cat, _ := mustParse(t, "NM Z 2 0 1 0\nCD 0 1.5 0 2.5 0 0\n")

	z, err := cat.Lookup("Z")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if z.Sellmeier == nil || len(z.Sellmeier) != 0 {
		t.Fatalf("sellmeier = %#v, want empty", z.Sellmeier)
	}
	for _, w := range []float64{400e-9, material.LambdaD, 1.5e-6} {
		if got := z.RefractiveIndex(w); got != 1 {
			t.Fatalf("index = %v, want 1", got)
		}
	}
}

func TestParseUnknownPriceAndChemistry(t *testing.T) {
	cat, _ := mustParse(t, "NM X 2 0 1.5 50\nOD - 1 - 2\n")

	x, err := cat.Lookup("X")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if x.Price != nil {
		t.Fatalf("price = %v, want unknown", *x.Price)
	}
	if len(x.Chemical) != 3 || x.Chemical[0] != 1 || !math.IsNaN(x.Chemical[1]) || x.Chemical[2] != 2 {
		t.Fatalf("chemical = %v", x.Chemical)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	first, _ := mustParse(t, testsupport.SchottAGF)
	second, _ := mustParse(t, testsupport.SchottAGF)

	if first.Name != second.Name || first.Len() != second.Len() {
		t.Fatalf("catalogs differ: %q/%d vs %q/%d", first.Name, first.Len(), second.Name, second.Len())
	}
	for _, name := range first.Names() {
		a, _ := first.Lookup(name)
		b, err := second.Lookup(name)
		if err != nil {
			t.Fatalf("second parse missing %s", name)
		}
		if a == b {
			t.Fatalf("parses share material %s", name)
		}
		testsupport.AssertSameMaterial(t, a, b)
	}
}

func TestParseUTF16WithBOMAndCRLF(t *testing.T) {
	crlf := strings.ReplaceAll(testsupport.SchottAGF, "\n", "\r\n")
	encoded, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewEncoder().String(crlf)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	cat, report := mustParse(t, encoded)
	if cat.Len() != 2 || len(report.Skipped) != 0 {
		t.Fatalf("utf-16 parse: %d materials, skipped %v", cat.Len(), report.Skipped)
	}
	if cat.Name != "Schott test catalog" {
		t.Fatalf("catalog name = %q", cat.Name)
	}
	bk7, err := cat.Lookup("N-BK7")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if bk7.Comment != "borosilicate crown" {
		t.Fatalf("comment = %q", bk7.Comment)
	}
}

func TestParseEmptySource(t *testing.T) {
	cat, report := mustParse(t, "\n\n   \n")
	if cat.Len() != 0 || report.Lines != 0 {
		t.Fatalf("expected empty catalog, got %d materials, %d lines", cat.Len(), report.Lines)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, _, err := ParseFile(filepath.Join(t.TempDir(), "absent.agf"), nil)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestParseFileRecordsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schott.agf")
	testsupport.WriteFile(t, path, testsupport.SchottAGF)

	cat, report, err := ParseFile(path, nil)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if cat.Source != path || report.Source != path {
		t.Fatalf("source = %q / %q, want %q", cat.Source, report.Source, path)
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line       string
		code, args string
		ok         bool
	}{
		{"NM N-BK7 2 1 2 3", "NM", "N-BK7 2 1 2 3", true},
		{"CC\tTabbed  comment ", "CC", "Tabbed  comment", true},
		{"LD", "LD", "", true},
		{"   ", "", "", false},
	}
	for _, tc := range tests {
		code, args, ok := splitLine(tc.line)
		if code != tc.code || args != tc.args || ok != tc.ok {
			t.Errorf("splitLine(%q) = %q, %q, %v", tc.line, code, args, ok)
		}
	}
}
