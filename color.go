package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
)

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

var black = RGB{}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Grayscale returns the luminance of c in [0, 1], 0 being black.
func (c RGB) Grayscale() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

// grayscaleOf treats a missing color as mid-gray.
func grayscaleOf(c *RGB) float64 {
	if c == nil {
		return neutralGrayscale
	}
	return c.Grayscale()
}

func rgbFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{n.R, n.G, n.B}
}

// parseColor parses an SVG paint value. "none" and empty values report
// ok == false; anything oksvg cannot read falls back to black.
func parseColor(s string) (c RGB, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return RGB{}, false
	}
	// oksvg only accepts rgb() and hsl() without inner padding.
	if strings.HasPrefix(s, "rgb") || strings.HasPrefix(s, "hsl") {
		s = strings.Join(strings.Fields(s), "")
		if strings.Contains(s, ",,") || strings.Contains(s, "(,") || strings.Contains(s, ",)") {
			return black, true
		}
	}
	parsed, err := oksvg.ParseSVGColor(s)
	if err != nil || parsed == nil {
		Logger().Debug("unparseable color, using black", "value", s, "err", err)
		return black, true
	}
	return rgbFromColor(parsed), true
}
