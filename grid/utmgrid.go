package grid

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"gridmap/utm"
)

// utmMinZoom is the last zoom at which the UTM grid is still too dense to draw.
const utmMinZoom = 8

// utmGrid draws easting/northing lines of the zones under the viewport
// corners. Northings step up from the south-east corner; eastings grow
// outwards from the map centre so one line always crosses it.
type utmGrid struct{}

func (utmGrid) Spacing(t Table, req Request) Spacing {
	return t.At(req.Zoom)
}

func (u utmGrid) Generate(st *State, opts Options) ([]Line, error) {
	if st.Zoom <= utmMinZoom {
		return nil, nil
	}
	size := st.Spacing.Interval
	if err := checkInterval(UTM, size); err != nil {
		return nil, err
	}

	tr := opts.Transform
	se, err := tr.Forward(utmCorner(st.Bounds.SouthEast()))
	if err != nil {
		return nil, fmt.Errorf("utm grid: south-east corner: %w", err)
	}
	nw, err := tr.Forward(utmCorner(st.Bounds.NorthWest()))
	if err != nil {
		return nil, fmt.Errorf("utm grid: north-west corner: %w", err)
	}
	center, err := tr.Forward(utmCorner(st.Center))
	if err != nil {
		return nil, fmt.Errorf("utm grid: map centre: %w", err)
	}
	se, center = se.InHemisphereOf(nw), center.InHemisphereOf(nw)

	var (
		lines []Line
		errs  error
	)
	add := func(a, b utm.Point) {
		l, err := projectedLine(tr, a, b, opts.LineStyle)
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		lines = append(lines, l)
	}

	northings, err := northingSteps(UTM, se.Northing, nw.Northing, size)
	if err != nil {
		return nil, err
	}
	for _, n := range northings {
		add(
			utm.Point{Northing: n, Easting: nw.Easting, ZoneNumber: nw.ZoneNumber, ZoneLetter: nw.ZoneLetter},
			utm.Point{Northing: n, Easting: se.Easting, ZoneNumber: se.ZoneNumber, ZoneLetter: se.ZoneLetter},
		)
	}

	c0 := floorIndex(center.Easting, size) * size
	eastings, err := outward(UTM, c0, nw.Easting, se.Easting, size)
	if err != nil {
		return nil, err
	}
	for _, e := range eastings {
		add(
			utm.Point{Northing: se.Northing, Easting: e, ZoneNumber: center.ZoneNumber, ZoneLetter: center.ZoneLetter},
			utm.Point{Northing: nw.Northing, Easting: e, ZoneNumber: center.ZoneNumber, ZoneLetter: center.ZoneLetter},
		)
	}

	st.LatCoords, st.LngCoords = northings, eastings
	return lines, errs
}

func projectedLine(tr Transform, a, b utm.Point, style Style) (Line, error) {
	pa, err := tr.Inverse(a)
	if err != nil {
		return Line{}, err
	}
	pb, err := tr.Inverse(b)
	if err != nil {
		return Line{}, err
	}
	return newLine(pa, pb, KindLine, style), nil
}

// northingSteps yields snap(from)+size, snap(from)+2*size, ... for as long
// as the previous step was still below to.
func northingSteps(system System, from, to, size float64) ([]float64, error) {
	k0 := floorIndex(from, size)
	if n := math.Ceil((to - k0*size) / size); n > MaxLinesPerAxis {
		return nil, &DegenerateSpacingError{System: system, Interval: size, Reason: "too many lines for viewport"}
	}
	var values []float64
	for k := k0; k*size < to; k++ {
		values = append(values, (k+1)*size)
	}
	return values, nil
}

// outward returns center followed by pairs stepping left and right by size
// until both low and high are passed.
func outward(system System, center, low, high, size float64) ([]float64, error) {
	values := []float64{center}
	left, right := center, center
	for k := 1; right < high || left > low; k++ {
		if 2*k+1 > MaxLinesPerAxis {
			return nil, &DegenerateSpacingError{System: system, Interval: size, Reason: "too many lines for viewport"}
		}
		left = center - float64(k)*size
		right = center + float64(k)*size
		values = append(values, left, right)
	}
	return values, nil
}
