package material

import "strings"

// SpectralLine is a named reference wavelength.
type SpectralLine struct {
	Name       string
	Wavelength float64 // meters
	Element    string
	Color      string
}

// Fraunhofer lists the standard spectral lines in order of increasing wavelength.
var Fraunhofer = []SpectralLine{
	{Name: "i", Wavelength: 365.01e-9, Element: "Hg", Color: "UV"},
	{Name: "h", Wavelength: 404.66e-9, Element: "Hg", Color: "violet"},
	{Name: "g", Wavelength: 435.84e-9, Element: "Hg", Color: "blue"},
	{Name: "F'", Wavelength: 479.99e-9, Element: "Cd", Color: "blue"},
	{Name: "F", Wavelength: 486.13e-9, Element: "H", Color: "blue"},
	{Name: "e", Wavelength: 546.07e-9, Element: "Hg", Color: "green"},
	{Name: "d", Wavelength: 587.56e-9, Element: "He", Color: "yellow"},
	{Name: "D", Wavelength: 589.30e-9, Element: "Na", Color: "yellow"},
	{Name: "C'", Wavelength: 643.85e-9, Element: "Cd", Color: "red"},
	{Name: "C", Wavelength: 656.27e-9, Element: "H", Color: "red"},
	{Name: "r", Wavelength: 706.52e-9, Element: "He", Color: "red"},
	{Name: "A'", Wavelength: 768.20e-9, Element: "K", Color: "IR"},
	{Name: "s", Wavelength: 852.11e-9, Element: "Cs", Color: "IR"},
	{Name: "t", Wavelength: 1013.98e-9, Element: "Hg", Color: "IR"},
}

const (
	// LambdaF is the hydrogen F line.
	LambdaF = 486.13e-9
	// LambdaD is the helium d line at which nd is specified.
	LambdaD = 587.56e-9
	// LambdaC is the hydrogen C line.
	LambdaC = 656.27e-9
)

// Line returns the spectral line with the given name. Names are case
// sensitive ("d" and "D" are different lines); a trailing "p" is accepted
// in place of the prime, so "Fp" resolves to F'.
func Line(name string) (SpectralLine, bool) {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, "p") && len(name) > 1 {
		name = strings.TrimSuffix(name, "p") + "'"
	}
	for _, line := range Fraunhofer {
		if line.Name == name {
			return line, true
		}
	}
	return SpectralLine{}, false
}
