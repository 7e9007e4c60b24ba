// Package material models a single optical material and evaluates its
// wavelength-dependent refractive index.
//
// A Material carries the constants published in a vendor glass catalog:
// Sellmeier terms, thermal dispersion coefficients and physical properties.
// Its Kind selects the dispersion model at construction time:
//
//   - KindSellmeier: n² = 1 + Σ K·λ²/(λ² − L), the standard glass model.
//   - KindFictional: a wavelength-independent index equal to nd.
//   - KindAir: n = 1 + Σ K/(L − λ²), the Edlén-type approximation for air.
//
// Wavelengths are always given in meters. Coefficients follow the catalog
// convention of micrometers, and the conversion happens inside the model.
//
// Materials are plain values. Once a constructor or the catalog parser has
// returned one, nothing in the module mutates it again, so a Material may be
// shared between goroutines without locking.
package material
