package testsupport

import (
	"math"
	"testing"

	"glasscat/internal/material"
)

// AssertSameMaterial fails the test unless got carries exactly the field
// values of want. Floats are compared bitwise so NaN placeholders match.
func AssertSameMaterial(t testing.TB, want, got *material.Material) {
	t.Helper()

	if want == nil || got == nil {
		if want != got {
			t.Fatalf("material mismatch: want %v, got %v", want, got)
		}
		return
	}
	if want.Name != got.Name || want.Comment != got.Comment || want.Kind != got.Kind ||
		want.Solid != got.Solid || want.Mirror != got.Mirror {
		t.Fatalf("%s: identity mismatch: want %+v, got %+v", want.Name, want, got)
	}
	scalars := []struct {
		field     string
		want, got float64
	}{
		{"glasscode", want.GlassCode, got.GlassCode},
		{"nd", want.ND, got.ND},
		{"vd", want.VD, got.VD},
		{"density", want.Density, got.Density},
		{"alpham3070", want.AlphaM3070, got.AlphaM3070},
		{"alpha20300", want.Alpha20300, got.Alpha20300},
	}
	for _, s := range scalars {
		if !sameFloat(s.want, s.got) {
			t.Fatalf("%s: %s = %v, want %v", want.Name, s.field, s.got, s.want)
		}
	}
	if !sameFloats(want.Chemical, got.Chemical) {
		t.Fatalf("%s: chemical = %v, want %v", want.Name, got.Chemical, want.Chemical)
	}
	if !sameFloats(want.Thermal, got.Thermal) {
		t.Fatalf("%s: thermal = %v, want %v", want.Name, got.Thermal, want.Thermal)
	}
	if (want.Price == nil) != (got.Price == nil) || (want.Price != nil && !sameFloat(*want.Price, *got.Price)) {
		t.Fatalf("%s: price mismatch", want.Name)
	}
	if len(want.Sellmeier) != len(got.Sellmeier) {
		t.Fatalf("%s: sellmeier = %v, want %v", want.Name, got.Sellmeier, want.Sellmeier)
	}
	for i := range want.Sellmeier {
		if !sameFloat(want.Sellmeier[i].Coefficient, got.Sellmeier[i].Coefficient) ||
			!sameFloat(want.Sellmeier[i].Pole, got.Sellmeier[i].Pole) {
			t.Fatalf("%s: sellmeier[%d] = %v, want %v", want.Name, i, got.Sellmeier[i], want.Sellmeier[i])
		}
	}
	if len(want.Transmission) != len(got.Transmission) {
		t.Fatalf("%s: transmission = %v, want %v", want.Name, got.Transmission, want.Transmission)
	}
	for key, value := range want.Transmission {
		other, ok := got.Transmission[key]
		if !ok || !sameFloat(value, other) {
			t.Fatalf("%s: transmission[%v] = %v, want %v", want.Name, key, other, value)
		}
	}
}

func sameFloat(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b) || (math.IsNaN(a) && math.IsNaN(b))
}

func sameFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameFloat(a[i], b[i]) {
			return false
		}
	}
	return true
}
