package material

import (
	"errors"
	"fmt"
)

// ErrNoThermalData is returned when thermal coefficients are requested from a
// material that has none, or has a malformed set.
var ErrNoThermalData = errors.New("material has no thermal coefficients")

// ThermalCoefficients are the constants of the thermal dispersion equation.
type ThermalCoefficients struct {
	D0, D1, D2 float64
	E0, E1     float64
	TRef       float64
	LambdaRef  float64 // micrometers
}

// ThermalCoefficients unpacks the 7-element thermal record.
func (m *Material) ThermalCoefficients() (ThermalCoefficients, error) {
	if len(m.Thermal) == 0 {
		return ThermalCoefficients{}, fmt.Errorf("%s: %w", m.Name, ErrNoThermalData)
	}
	if len(m.Thermal) != 7 {
		return ThermalCoefficients{}, fmt.Errorf("%s: %w: want 7 values, got %d", m.Name, ErrNoThermalData, len(m.Thermal))
	}
	t := m.Thermal
	return ThermalCoefficients{
		D0: t[0], D1: t[1], D2: t[2],
		E0: t[3], E1: t[4],
		TRef:      t[5],
		LambdaRef: t[6],
	}, nil
}

// DnThermal returns the index change at temperature t for a material whose
// index at wavelength (meters) is n. t must use the unit of the catalog's
// reference temperature.
func (m *Material) DnThermal(t, n, wavelength float64) (float64, error) {
	c, err := m.ThermalCoefficients()
	if err != nil {
		return 0, err
	}
	return c.Dn(t, n, wavelength), nil
}

// Dn evaluates the thermal dispersion equation.
func (c ThermalCoefficients) Dn(t, n, wavelength float64) float64 {
	dt := t - c.TRef
	w := wavelength / micrometer
	return (n*n - 1) / (2 * n) * (c.D0*dt + c.D1*dt*dt + c.D2*dt*dt*dt +
		(c.E0*dt+c.E1*dt*dt)/(w*w-c.LambdaRef*c.LambdaRef))
}
