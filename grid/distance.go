package grid

import (
	"math"
	"slices"

	"github.com/paulmach/orb"

	"gridmap/geo"
)

// distanceHighLatitude is the centre latitude past which distance grids use
// the next finer table entry.
const distanceHighLatitude = 55.0

// distanceGrid draws lines a fixed ground distance apart, stepped in
// spherical Mercator metres outward from the map centre.
type distanceGrid struct {
	system System
}

func (d distanceGrid) Spacing(t Table, req Request) Spacing {
	zoom := req.Zoom
	if math.Abs(req.Center.Lat()) > distanceHighLatitude {
		zoom++
	}
	return t.At(zoom)
}

func (d distanceGrid) Generate(st *State, opts Options) ([]Line, error) {
	if err := checkInterval(d.system, st.Spacing.Interval); err != nil {
		return nil, err
	}
	zoom := ClampZoom(st.Zoom)
	scale := geo.MetersPerPixel(0, zoom) / geo.MetersPerPixel(st.Center.Lat(), zoom)
	size := st.Spacing.Interval * scale
	st.Spacing.Projected = size
	if err := checkInterval(d.system, size); err != nil {
		return nil, err
	}

	b := st.Bounds
	c := geo.ToSphericalMercator(st.Center)
	sw := geo.ToSphericalMercator(b.SouthWest())
	ne := geo.ToSphericalMercator(b.NorthEast())

	xs, err := outward(d.system, c.X(), sw.X(), ne.X(), size)
	if err != nil {
		return nil, err
	}
	ys, err := outward(d.system, c.Y(), sw.Y(), ne.Y(), size)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(xs)+len(ys))
	for _, x := range xs {
		lines = append(lines, newLine(
			geo.FromSphericalMercator(orb.Point{x, ne.Y()}),
			geo.FromSphericalMercator(orb.Point{x, sw.Y()}),
			KindLine, opts.LineStyle))
	}
	for _, y := range ys {
		lines = append(lines, newLine(
			geo.FromSphericalMercator(orb.Point{sw.X(), y}),
			geo.FromSphericalMercator(orb.Point{ne.X(), y}),
			KindLine, opts.LineStyle))
	}

	slices.Sort(xs)
	slices.Sort(ys)
	st.LatCoords, st.LngCoords = ys, xs
	return lines, nil
}
