package geo

import (
	"fmt"
	"math"
)

// Axis tells coordinate formatters which hemisphere letters to use.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

func hemisphere(v float64, axis Axis) string {
	switch {
	case axis == Latitude && v < 0:
		return "S"
	case axis == Latitude:
		return "N"
	case v < 0:
		return "W"
	default:
		return "E"
	}
}

// FormatDD renders a decimal-degree coordinate, e.g. 12.50°N.
func FormatDD(v float64, axis Axis, decimals int) string {
	return fmt.Sprintf("%.*f°%s", decimals, math.Abs(v), hemisphere(v, axis))
}

// FormatDMS renders a degree-minute-second coordinate, e.g. 12°30'00"N.
// Seconds are rounded to whole values before splitting so 59.9999" never
// shows up.
func FormatDMS(v float64, axis Axis) string {
	total := int64(math.Round(math.Abs(v) * 3600))
	d := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d°%02d'%02d\"%s", d, m, s, hemisphere(v, axis))
}
