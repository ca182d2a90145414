package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Viewport is an axis-aligned geographic box in degrees.
type Viewport struct {
	North float64
	South float64
	East  float64
	West  float64
}

// NewViewport converts an orb bound (lon/lat) into a Viewport.
func NewViewport(b orb.Bound) Viewport {
	return Viewport{
		North: b.Top(),
		South: b.Bottom(),
		East:  b.Right(),
		West:  b.Left(),
	}
}

// Pad grows the box on every side by ratio times its height (north/south)
// and width (east/west).
func (v Viewport) Pad(ratio float64) Viewport {
	h := math.Abs(v.North-v.South) * ratio
	w := math.Abs(v.East-v.West) * ratio
	return Viewport{
		North: v.North + h,
		South: v.South - h,
		East:  v.East + w,
		West:  v.West - w,
	}
}

// Valid reports whether every edge is finite and the box is not inverted.
func (v Viewport) Valid() bool {
	for _, f := range []float64{v.North, v.South, v.East, v.West} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return v.North >= v.South && v.East >= v.West
}

func (v Viewport) Center() orb.Point {
	return orb.Point{(v.East + v.West) / 2, (v.North + v.South) / 2}
}

func (v Viewport) NorthWest() orb.Point { return orb.Point{v.West, v.North} }
func (v Viewport) NorthEast() orb.Point { return orb.Point{v.East, v.North} }
func (v Viewport) SouthWest() orb.Point { return orb.Point{v.West, v.South} }
func (v Viewport) SouthEast() orb.Point { return orb.Point{v.East, v.South} }

// Bound returns the box as an orb bound.
func (v Viewport) Bound() orb.Bound {
	return orb.Bound{Min: v.SouthWest(), Max: v.NorthEast()}
}
