package grid

import "math"

// MaxLinesPerAxis caps how many lines one axis of one redraw may produce.
const MaxLinesPerAxis = 2000

// indexEpsilon absorbs the representation error of value/interval when value
// is already a multiple of interval.
const indexEpsilon = 1e-9

func usableInterval(interval float64) bool {
	return interval > 0 && !math.IsNaN(interval) && !math.IsInf(interval, 0)
}

func checkInterval(system System, interval float64) error {
	if !usableInterval(interval) {
		return &DegenerateSpacingError{System: system, Interval: interval, Reason: "interval must be a positive finite number"}
	}
	return nil
}

// floorIndex returns floor(value/interval), treating quotients within
// indexEpsilon of an integer as that integer.
func floorIndex(value, interval float64) float64 {
	q := value / interval
	if r := math.Round(q); math.Abs(q-r) <= indexEpsilon*math.Max(1, math.Abs(r)) {
		return r
	}
	return math.Floor(q)
}

// Snap rounds value down to the nearest multiple of interval. ok is false
// when interval cannot be used for stepping.
func Snap(value, interval float64) (snapped float64, ok bool) {
	if !usableInterval(interval) {
		return math.NaN(), false
	}
	return floorIndex(value, interval) * interval, true
}

// axisValues returns every multiple of interval in [Snap(from), to). Values
// are computed as index*interval so each is an exact multiple regardless of
// how many steps precede it.
func axisValues(system System, from, to, interval float64) ([]float64, error) {
	if err := checkInterval(system, interval); err != nil {
		return nil, err
	}
	k0 := floorIndex(from, interval)
	if n := math.Ceil((to - k0*interval) / interval); n > MaxLinesPerAxis {
		return nil, &DegenerateSpacingError{System: system, Interval: interval, Reason: "too many lines for viewport"}
	}
	var values []float64
	for k := k0; k*interval < to; k++ {
		values = append(values, k*interval)
	}
	return values, nil
}
