package grid

import (
	"math"

	"github.com/paulmach/orb"

	"gridmap/geo"
)

// labelInset is the fraction of the visible extent between a label and the
// map edge it is anchored to.
const labelInset = 0.005

// Label is a text anchor for one grid line.
type Label struct {
	Point orb.Point
	Text  string
	Axis  geo.Axis
}

// labelsFor anchors longitude labels along the visible north edge and
// latitude labels along the visible west edge. Only graticule systems carry
// coordinate labels.
func labelsFor(system System, st State) []Label {
	var format func(v float64, axis geo.Axis) string
	switch system {
	case DecimalDegree:
		decimals := ddDecimals(st.Spacing.Interval)
		format = func(v float64, axis geo.Axis) string { return geo.FormatDD(v, axis, decimals) }
	case DegreeMinuteSecond:
		format = geo.FormatDMS
	default:
		return nil
	}

	v := st.Visible
	top := v.North - (v.North-v.South)*labelInset
	left := v.West + (v.East-v.West)*labelInset

	var labels []Label
	for _, lng := range st.LngCoords {
		if lng < v.West || lng > v.East {
			continue
		}
		labels = append(labels, Label{Point: geo.LatLng(top, lng), Text: format(lng, geo.Longitude), Axis: geo.Longitude})
	}
	for _, lat := range st.LatCoords {
		if lat < v.South || lat > v.North {
			continue
		}
		labels = append(labels, Label{Point: geo.LatLng(lat, left), Text: format(lat, geo.Latitude), Axis: geo.Latitude})
	}
	return labels
}

// ddDecimals is the fewest decimals (at most 6) that show interval exactly.
func ddDecimals(interval float64) int {
	for d := 0; d < 6; d++ {
		scaled := interval * math.Pow10(d)
		if math.Abs(scaled-math.Round(scaled)) < 1e-9*math.Max(1, scaled) {
			return d
		}
	}
	return 6
}
