package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"glasscat/internal/material"
)

func formatFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func formatShort(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatList(values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			parts[i] = "-"
			continue
		}
		parts[i] = formatShort(v)
	}
	return strings.Join(parts, " ")
}

func formatPrice(price *float64) string {
	if price == nil {
		return "unknown"
	}
	return formatShort(*price)
}

// parseWavelength accepts a wavelength in nanometers or a Fraunhofer line
// name and returns meters.
func parseWavelength(arg string) (float64, string, error) {
	arg = strings.TrimSpace(arg)
	if line, ok := material.Line(arg); ok {
		return line.Wavelength, line.Name, nil
	}
	nm, err := strconv.ParseFloat(arg, 64)
	if err != nil || nm <= 0 || math.IsInf(nm, 0) {
		return 0, "", fmt.Errorf("invalid wavelength %q: give nanometers or a Fraunhofer line name", arg)
	}
	return nm * 1e-9, "", nil
}
