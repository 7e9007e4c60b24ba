package material

import "math"

// Names of the built-in materials.
const (
	NameVacuum       = "vacuum"
	NameVacuumMirror = "vacuum_mirror"
	NameAir          = "air"
	NameAirMirror    = "air_mirror"
)

// AirTerms are the coefficients of the standard-air approximation
// (refractiveindex.info).
var AirTerms = []Term{
	{Coefficient: 5792105e-8, Pole: 238.0185},
	{Coefficient: 167917e-8, Pole: 57.362},
}

// Vacuum returns the fictional n = 1 gas.
func Vacuum() *Material {
	m := NewFictional(NameVacuum, 1, math.Inf(1))
	m.Solid = false
	return m
}

// VacuumMirror returns the reflecting twin of Vacuum.
func VacuumMirror() *Material {
	return Vacuum().Mirrored(NameVacuumMirror)
}

// Air returns standard air.
func Air() *Material {
	return NewAir(NameAir, AirTerms)
}

// AirMirror returns the reflecting twin of Air.
func AirMirror() *Material {
	return Air().Mirrored(NameAirMirror)
}

// Bootstrap returns fresh copies of the built-in materials in the order they
// are added to a merged catalog.
func Bootstrap() []*Material {
	return []*Material{Air(), Vacuum(), AirMirror(), VacuumMirror()}
}
