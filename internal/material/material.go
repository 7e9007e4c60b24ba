package material

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Kind selects the dispersion model used to evaluate a material.
type Kind int

const (
	// KindSellmeier evaluates the Sellmeier equation over the material's terms.
	KindSellmeier Kind = iota
	// KindFictional returns the nominal index nd at every wavelength.
	KindFictional
	// KindAir evaluates the inverted-sign air approximation over the terms.
	KindAir
)

func (k Kind) String() string {
	switch k {
	case KindSellmeier:
		return "sellmeier"
	case KindFictional:
		return "fictional"
	case KindAir:
		return "air"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts the String form of a Kind back to its value.
func ParseKind(value string) (Kind, error) {
	switch value {
	case "sellmeier", "":
		return KindSellmeier, nil
	case "fictional":
		return KindFictional, nil
	case "air":
		return KindAir, nil
	default:
		return 0, fmt.Errorf("unknown material kind %q", value)
	}
}

// Term is one (coefficient, pole) row of a Sellmeier-type dispersion formula.
// The pole is in squared micrometers.
type Term struct {
	Coefficient float64
	Pole        float64
}

// TransmissionKey identifies one internal transmittance sample.
type TransmissionKey struct {
	Wavelength float64
	Thickness  float64
}

// Material holds the catalog constants for one glass or fictional material.
type Material struct {
	Name    string
	Comment string
	Kind    Kind

	Solid bool
	// Mirror negates every evaluated index. Mirrored also negates ND so the
	// stored value matches; evaluation does not rely on that.
	Mirror bool

	GlassCode  float64
	ND         float64
	VD         float64
	Density    float64
	AlphaM3070 float64
	Alpha20300 float64

	// Chemical holds the resistance figures from the OD record; unknown
	// entries are NaN.
	Chemical []float64
	// Thermal holds D0, D1, D2, E0, E1, reference temperature and reference
	// wavelength, or nothing when the catalog has no thermal data.
	Thermal []float64
	// Price is nil when the catalog lists the price as unknown.
	Price        *float64
	Transmission map[TransmissionKey]float64
	Sellmeier    []Term
}

// NewSellmeier builds a solid glass from Sellmeier terms. Terms with a zero
// coefficient are dropped, and nd/vd are derived from the terms.
func NewSellmeier(name string, terms []Term) *Material {
	m := &Material{
		Name:      name,
		Kind:      KindSellmeier,
		Solid:     true,
		Sellmeier: FilterTerms(terms),
	}
	m.FillDefaults()
	return m
}

// NewFictional builds a constant-index material from its nominal nd and vd.
func NewFictional(name string, nd, vd float64) *Material {
	return &Material{
		Name:  name,
		Kind:  KindFictional,
		Solid: true,
		ND:    nd,
		VD:    vd,
	}
}

// NewAir builds a gas evaluated with the inverted air formula.
func NewAir(name string, terms []Term) *Material {
	m := &Material{
		Name:      name,
		Kind:      KindAir,
		Solid:     false,
		VD:        math.Inf(1),
		Sellmeier: FilterTerms(terms),
	}
	m.FillDefaults()
	return m
}

// FilterTerms returns a copy of terms without the rows whose coefficient is
// zero. The result is never nil.
func FilterTerms(terms []Term) []Term {
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.Coefficient == 0 {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FillDefaults derives nd and vd when they are unset (zero).
func (m *Material) FillDefaults() {
	if m.Kind == KindFictional {
		return
	}
	if m.ND == 0 {
		m.ND = DefaultND(m)
	}
	if m.VD == 0 {
		m.VD = DefaultVD(m)
	}
}

// DefaultND evaluates the refractive index at the d line.
func DefaultND(m *Material) float64 {
	return m.RefractiveIndex(LambdaD)
}

// DefaultVD computes the Abbe number from nd and the F/C index difference.
func DefaultVD(m *Material) float64 {
	return (m.ND - 1) / (m.RefractiveIndex(LambdaF) - m.RefractiveIndex(LambdaC))
}

// Mirrored returns a copy of m that represents a reflecting surface. The
// copy's nd is negated so it stays the index at the d line.
func (m *Material) Mirrored(name string) *Material {
	c := m.Clone()
	c.Name = name
	c.Mirror = !m.Mirror
	c.ND = -m.ND
	return c
}

// HasThermal reports whether the material carries thermal coefficients.
func (m *Material) HasThermal() bool {
	return len(m.Thermal) > 0
}

// Clone returns a deep copy of m.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	c := *m
	c.Chemical = slices.Clone(m.Chemical)
	c.Thermal = slices.Clone(m.Thermal)
	c.Sellmeier = slices.Clone(m.Sellmeier)
	if m.Price != nil {
		price := *m.Price
		c.Price = &price
	}
	if m.Transmission != nil {
		c.Transmission = maps.Clone(m.Transmission)
	}
	return &c
}

func (m *Material) String() string {
	return m.Name
}
