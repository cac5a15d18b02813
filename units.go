package main

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// Strokes, distances and tolerances are all carried in millimetres; only
// G-code emission converts to the requested output unit.
const workingUnitsPerMM = 1.0

const pxToMM = 25.4 / 96.0

var unitToMM = map[string]float64{
	"mm": 1.0,
	"cm": 10.0,
	"m":  1000.0,
	"in": 25.4,
	"pt": 25.4 / 72.0,
	"pc": 25.4 / 6.0,
	"px": pxToMM,
	"":   pxToMM,
}

// parseLength converts an SVG length such as "210mm" or "8.5in" to
// millimetres. Unknown units are read as pixels. Percentages and values
// without a leading number report ok == false.
func parseLength(s string) (mm float64, ok bool) {
	b := []byte(strings.TrimSpace(s))
	v, n := strconv.ParseFloat(b)
	if n == 0 {
		return 0, false
	}
	unit := strings.ToLower(strings.TrimSpace(string(b[n:])))
	if unit == "%" {
		return 0, false
	}
	f, known := unitToMM[unit]
	if !known {
		f = pxToMM
	}
	return v * f, true
}

// outputScale returns the divisor turning millimetres into unit.
func outputScale(unit string) (float64, error) {
	f, ok := unitToMM[strings.ToLower(unit)]
	if !ok || unit == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return f * workingUnitsPerMM, nil
}

func unitsDirective(unit string) string {
	switch strings.ToLower(unit) {
	case "mm":
		return "G21 ; Set units to millimeters"
	case "in":
		return "G20 ; Set units to inches"
	default:
		return fmt.Sprintf("G21 ; Set units to millimeters (output in %s)", unit)
	}
}
