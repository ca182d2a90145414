// Package grid computes coordinate-grid overlay geometry: spacing selection
// per zoom, snapping, line generation for each reference system and the
// clipping of MGRS lines at UTM zone boundaries.
package grid

import "strings"

// System identifies a coordinate reference grid.
type System int

const (
	DecimalDegree System = iota
	DegreeMinuteSecond
	UTM
	MGRS
	DistanceMetric
	DistanceImperial
)

var systemNames = [...]string{
	DecimalDegree:      "dd",
	DegreeMinuteSecond: "dms",
	UTM:                "utm",
	MGRS:               "mgrs",
	DistanceMetric:     "metric",
	DistanceImperial:   "imperial",
}

var systemTitles = [...]string{
	DecimalDegree:      "Decimal degrees",
	DegreeMinuteSecond: "Deg/min/sec",
	UTM:                "UTM",
	MGRS:               "MGRS",
	DistanceMetric:     "Metric",
	DistanceImperial:   "Imperial",
}

// Systems lists every grid system in display order.
func Systems() []System {
	return []System{DecimalDegree, DegreeMinuteSecond, UTM, MGRS, DistanceMetric, DistanceImperial}
}

func (s System) valid() bool {
	return s >= DecimalDegree && s <= DistanceImperial
}

// String returns the configuration name of the system.
func (s System) String() string {
	if !s.valid() {
		return "unknown"
	}
	return systemNames[s]
}

// Title is the human readable name.
func (s System) Title() string {
	if !s.valid() {
		return "Unknown"
	}
	return systemTitles[s]
}

// Distance reports whether the system is a ground-distance grid.
func (s System) Distance() bool {
	return s == DistanceMetric || s == DistanceImperial
}

// ParseSystem resolves a configuration name such as "mgrs".
func ParseSystem(name string) (System, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Systems() {
		if systemNames[s] == name {
			return s, nil
		}
	}
	return 0, &ConfigurationError{System: name, Reason: "unknown grid system"}
}
