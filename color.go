package mtlximport

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGB color parameter.
type Color struct {
	R float64 `json:"r" yaml:"r"` // Red channel component
	G float64 `json:"g" yaml:"g"` // Green channel component
	B float64 `json:"b" yaml:"b"` // Blue channel component
}

// SetColorRGB creates a Color from RGB values.
func SetColorRGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ToArray converts color to float array.
func (c Color) ToArray() []float64 {
	return []float64{c.R, c.G, c.B}
}

// String renders the color the way MaterialX writes color3 values.
func (c Color) String() string {
	return formatFloat(c.R) + ", " + formatFloat(c.G) + ", " + formatFloat(c.B)
}

// ParseColor parses a "r, g, b" color3 string.
func ParseColor(s string) (Color, error) {
	parts := splitCSV(s)
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: color3 needs 3 components, got %q", ErrParse, s)
	}

	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: color3 component %q", ErrParse, p)
		}
		vals[i] = v
	}

	return Color{R: vals[0], G: vals[1], B: vals[2]}, nil
}

// splitCSV splits a CSV string into a slice of trimmed strings.
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}

	return out
}

// formatFloat formats a float64 value to a string.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
