package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderTableKeepsHeaderCase(t *testing.T) {
	var out bytes.Buffer
	rendered := renderTable(&out,
		[]string{"Wavelength (um)", "n @ 40 C"},
		[][]string{{"0.5876", "1.516800"}, {"0.6563"}},
		[]columnAlignment{alignRight, alignRight},
	)

	requireContains(t, rendered, "Wavelength (um)")
	requireContains(t, rendered, "n @ 40 C")
	if strings.Contains(rendered, "WAVELENGTH") {
		t.Fatalf("headers should not be upper-cased: %s", rendered)
	}
	requireContains(t, rendered, "1.516800")
}

func TestRenderTableWithoutHeaders(t *testing.T) {
	if got := renderTable(&bytes.Buffer{}, nil, [][]string{{"x"}}, nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
