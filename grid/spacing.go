package grid

import (
	"fmt"
	"math"
)

// MaxZoom is the highest zoom index every spacing table must cover.
const MaxZoom = 18

// Table holds one interval per zoom level, and for distance grids a parallel
// human readable label.
type Table struct {
	Intervals []float64
	Labels    []string
}

// Spacing is the interval chosen for one redraw.
type Spacing struct {
	Index    int
	Interval float64
	Label    string

	// Projected is the interval actually stepped in the generator's working
	// space. It differs from Interval only for distance grids, where it is
	// stretched by the Mercator scale factor at the map centre.
	Projected float64
}

// ClampZoom limits zoom to [0, MaxZoom].
func ClampZoom(zoom int) int {
	return max(0, min(MaxZoom, zoom))
}

// At returns the spacing for zoom after clamping it.
func (t Table) At(zoom int) Spacing {
	i := ClampZoom(zoom)
	s := Spacing{Index: i, Interval: math.NaN()}
	if i < len(t.Intervals) {
		s.Interval = t.Intervals[i]
	}
	if i < len(t.Labels) {
		s.Label = t.Labels[i]
	}
	s.Projected = s.Interval
	return s
}

// Validate checks that the table can be indexed for every zoom level.
// Values are not checked for ordering.
func (t Table) Validate(system System) error {
	if len(t.Intervals) < MaxZoom+1 {
		return &ConfigurationError{
			System: system.String(),
			Reason: fmt.Sprintf("spacing table has %d entries, need %d", len(t.Intervals), MaxZoom+1),
		}
	}
	if len(t.Labels) > 0 && len(t.Labels) < MaxZoom+1 {
		return &ConfigurationError{
			System: system.String(),
			Reason: fmt.Sprintf("label table has %d entries, need %d", len(t.Labels), MaxZoom+1),
		}
	}
	return nil
}

// Tables maps each system to its spacing table.
type Tables map[System]Table

// Validate checks every table present.
func (ts Tables) Validate() error {
	for _, s := range Systems() {
		t, ok := ts[s]
		if !ok {
			continue
		}
		if err := t.Validate(s); err != nil {
			return err
		}
	}
	return nil
}

const (
	feetPerMeter = 3.28
	feetPerMile  = 5280.0
)

func miles(n float64) float64 { return n * feetPerMile / feetPerMeter }
func feet(n float64) float64  { return n / feetPerMeter }

// DefaultTables returns a fresh copy of the built-in spacing tables.
func DefaultTables() Tables {
	return Tables{
		DecimalDegree: {Intervals: []float64{
			20.0, 20.0, 20.0, 10.0, 5.0, 5.0, 2.0, 1.0, 1.0, 0.5,
			0.25, 0.10, 0.05, 0.05, 0.01, 0.01, 0.01, 0.01, 0.01,
		}},
		DegreeMinuteSecond: {Intervals: []float64{
			20.0, 20.0, 20.0, 10.0, 5.0, 5.0, 2.0, 1.0, 1.0, 0.5, 0.25,
			5.0 / 60.0, 3.0 / 60.0, 2.0 / 60.0, 1.0 / 60.0,
			1.0 / 120.0, 1.0 / 120.0, 1.0 / 240.0, 1.0 / 240.0,
		}},
		UTM: {Intervals: []float64{
			1000000, 1000000, 1000000, 1000000, 1000000, 1000000, 1000000,
			100000, 100000, 100000,
			10000, 10000, 10000, 10000,
			1000, 1000, 1000, 1000,
			100,
		}},
		// 100 km below zoom 10, 10 km below 15, 1 km from 15 up. Zooms past
		// MaxZoom clamp onto the 1 km entry.
		MGRS: {Intervals: []float64{
			100000, 100000, 100000, 100000, 100000, 100000, 100000, 100000, 100000, 100000,
			10000, 10000, 10000, 10000, 10000,
			1000, 1000, 1000, 1000,
		}},
		DistanceMetric: {
			Intervals: []float64{
				25000000, 10000000, 5000000, 2500000, 1000000, 500000, 250000,
				100000, 50000, 25000, 10000, 5000, 2500, 1000, 500, 250, 100, 50, 25,
			},
			Labels: []string{
				"25,000 km", "10,000 km", "5000 km", "2500 km", "1000 km", "500 km", "250 km",
				"100 km", "50 km", "25 km", "10 km", "5 km", "2.5 km", "1 km",
				"500 m", "250 m", "100 m", "50 m", "25 m",
			},
		},
		DistanceImperial: {
			Intervals: []float64{
				miles(10000), miles(5000), miles(2500), miles(1000), miles(500), miles(250),
				miles(100), miles(50), miles(25), miles(10), miles(5), miles(2.5), miles(1),
				feet(2500), feet(1000), feet(500), feet(250), feet(100), feet(50),
			},
			Labels: []string{
				"10000 mi", "5000 mi", "2500 mi", "1000 mi", "500 mi", "250 mi",
				"100 mi", "50 mi", "25 mi", "10 mi", "5 mi", "2.5 mi", "1 mi",
				"2500 ft", "1000 ft", "500 ft", "250 ft", "100 ft", "50 ft",
			},
		},
	}
}
