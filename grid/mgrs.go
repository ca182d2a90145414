package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"go.uber.org/multierr"

	"gridmap/geo"
	"gridmap/utm"
)

const (
	zoneBandHeight = 8.0
	zoneBandWidth  = 6.0

	// mgrsMinZoom is the first zoom at which the fine grid is drawn.
	mgrsMinZoom = 8

	// zoneInset keeps strip sample points inside their own zone.
	zoneInset = 0.0001
)

// mgrsGrid draws the 6°x8° grid zone designations and, from mgrsMinZoom,
// the UTM grid inside every zone strip clipped to the strip's edges.
type mgrsGrid struct{}

func (mgrsGrid) Spacing(t Table, req Request) Spacing {
	return t.At(req.Zoom)
}

func (m mgrsGrid) Generate(st *State, opts Options) ([]Line, error) {
	b := st.Bounds

	lats, err := axisValues(MGRS, b.South, b.North, zoneBandHeight)
	if err != nil {
		return nil, err
	}
	lngs, err := axisValues(MGRS, b.West, b.East, zoneBandWidth)
	if err != nil {
		return nil, err
	}
	st.LatCoords, st.LngCoords = lats, lngs

	lines := make([]Line, 0, len(lats)+len(lngs))
	for _, lat := range lats {
		lines = append(lines, horizontalLine(b, lat, KindZone, opts.ZoneStyle))
	}
	for _, lng := range lngs {
		lines = append(lines, verticalLine(b, lng, KindZone, opts.ZoneStyle))
	}

	if st.Zoom < mgrsMinZoom {
		return lines, nil
	}
	if err := checkInterval(MGRS, st.Spacing.Interval); err != nil {
		return lines, err
	}

	var errs error
	breaks := zoneBreaks(b.West, b.East, lngs)
	for i := 0; i+1 < len(breaks); i++ {
		fine, err := m.strip(b, breaks[i], breaks[i+1], st.Spacing.Interval, opts)
		lines = append(lines, fine...)
		errs = multierr.Append(errs, err)
	}
	return lines, errs
}

// zoneBreaks returns west, every zone meridian strictly inside (west, east),
// then east.
func zoneBreaks(west, east float64, meridians []float64) []float64 {
	breaks := []float64{west}
	for _, m := range meridians {
		if m > west && m < east {
			breaks = append(breaks, m)
		}
	}
	return append(breaks, east)
}

// strip runs the UTM fine grid for the part of the viewport between left
// and right and clips every line to that strip.
func (mgrsGrid) strip(b geo.Viewport, left, right, size float64, opts Options) ([]Line, error) {
	tr := opts.Transform
	nwLL := utmCorner(orb.Point{left + zoneInset, b.North})
	seLL := utmCorner(orb.Point{right - zoneInset, b.South})

	nw, err := tr.Forward(nwLL)
	if err != nil {
		return nil, fmt.Errorf("mgrs strip [%v, %v]: %w", left, right, err)
	}
	se, err := tr.Forward(seLL)
	if err != nil {
		return nil, fmt.Errorf("mgrs strip [%v, %v]: %w", left, right, err)
	}
	se = se.InHemisphereOf(nw)

	var (
		lines []Line
		errs  error
	)
	northings, err := northingSteps(MGRS, se.Northing, nw.Northing, size)
	if err != nil {
		return nil, err
	}
	for _, n := range northings {
		l, err := projectedLine(tr,
			utm.Point{Northing: n, Easting: nw.Easting, ZoneNumber: nw.ZoneNumber, ZoneLetter: nw.ZoneLetter},
			utm.Point{Northing: n, Easting: se.Easting, ZoneNumber: se.ZoneNumber, ZoneLetter: se.ZoneLetter},
			opts.LineStyle)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if l, ok := ClipHorizontal(l, left, right); ok {
			lines = append(lines, l)
		}
	}

	eastings, err := northingSteps(MGRS, nw.Easting-size, se.Easting, size)
	if err != nil {
		return nil, err
	}
	for _, e := range eastings {
		l, err := projectedLine(tr,
			utm.Point{Northing: se.Northing, Easting: e, ZoneNumber: se.ZoneNumber, ZoneLetter: se.ZoneLetter},
			utm.Point{Northing: nw.Northing, Easting: e, ZoneNumber: nw.ZoneNumber, ZoneLetter: nw.ZoneLetter},
			opts.LineStyle)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if l, ok := ClipVertical(l, left, right); ok {
			lines = append(lines, l)
		}
	}
	return lines, errs
}

// utmCorner pulls a sample point's latitude into UTM coverage.
func utmCorner(p orb.Point) orb.Point {
	return orb.Point{p.Lon(), math.Max(utm.MinLatitude, math.Min(utm.MaxLatitude, p.Lat()))}
}
