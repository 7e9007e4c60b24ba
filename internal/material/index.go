package material

import (
	"errors"
	"fmt"
	"math"
)

// ErrShapeMismatch reports wavelength slices of different lengths.
var ErrShapeMismatch = errors.New("wavelength slices differ in length")

const micrometer = 1e-6

// RefractiveIndex returns the index at wavelength (meters). A wavelength that
// coincides with a pole yields ±Inf or NaN. The sign always follows Mirror,
// for fictional materials too, whatever the sign of the stored nd.
func (m *Material) RefractiveIndex(wavelength float64) float64 {
	var n float64
	switch m.Kind {
	case KindFictional:
		n = math.Abs(m.ND)
	case KindAir:
		n = airIndex(m.Sellmeier, wavelength)
	default:
		n = sellmeierIndex(m.Sellmeier, wavelength)
	}
	if m.Mirror {
		n = -n
	}
	return n
}

// Indices evaluates RefractiveIndex at each wavelength.
func (m *Material) Indices(wavelengths []float64) []float64 {
	out := make([]float64, len(wavelengths))
	for i, w := range wavelengths {
		out[i] = m.RefractiveIndex(w)
	}
	return out
}

// Dispersion returns the generalized Abbe number
// (n(mid) - 1) / (n(short) - n(long)). Fictional materials return vd.
func (m *Material) Dispersion(short, mid, long float64) float64 {
	if m.Kind == KindFictional {
		return m.VD
	}
	return (m.RefractiveIndex(mid) - 1) / (m.RefractiveIndex(short) - m.RefractiveIndex(long))
}

// DeltaN returns n(short) - n(long). Fictional materials return (nd - 1)/vd.
func (m *Material) DeltaN(short, long float64) float64 {
	if m.Kind == KindFictional {
		return (m.ND - 1) / m.VD
	}
	return m.RefractiveIndex(short) - m.RefractiveIndex(long)
}

// Dispersions evaluates Dispersion element-wise.
func (m *Material) Dispersions(short, mid, long []float64) ([]float64, error) {
	if len(short) != len(mid) || len(mid) != len(long) {
		return nil, fmt.Errorf("dispersion: %w (%d, %d, %d)", ErrShapeMismatch, len(short), len(mid), len(long))
	}
	out := make([]float64, len(mid))
	for i := range mid {
		out[i] = m.Dispersion(short[i], mid[i], long[i])
	}
	return out, nil
}

// DeltaNs evaluates DeltaN element-wise.
func (m *Material) DeltaNs(short, long []float64) ([]float64, error) {
	if len(short) != len(long) {
		return nil, fmt.Errorf("delta n: %w (%d, %d)", ErrShapeMismatch, len(short), len(long))
	}
	out := make([]float64, len(short))
	for i := range short {
		out[i] = m.DeltaN(short[i], long[i])
	}
	return out, nil
}

func sellmeierIndex(terms []Term, wavelength float64) float64 {
	w := wavelength / micrometer
	w2 := w * w
	n2 := 1.0
	for _, t := range terms {
		n2 += t.Coefficient * w2 / (w2 - t.Pole)
	}
	return math.Sqrt(n2)
}

func airIndex(terms []Term, wavelength float64) float64 {
	w := wavelength / micrometer
	w2 := w * w
	n := 1.0
	for _, t := range terms {
		n += t.Coefficient / (t.Pole - w2)
	}
	return n
}
