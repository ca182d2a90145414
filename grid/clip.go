package grid

import "github.com/paulmach/orb"

// ClipHorizontal re-terminates a roughly east-west line exactly on the
// left and right longitudes, interpolating latitude along the line's slope.
// ok is false for a line with no longitude extent.
func ClipHorizontal(l Line, left, right float64) (Line, bool) {
	a, b := l.Start(), l.End()
	dx := b.Lon() - a.Lon()
	if dx == 0 {
		return Line{}, false
	}
	slope := (b.Lat() - a.Lat()) / dx
	at := func(lng float64) orb.Point {
		return orb.Point{lng, a.Lat() + slope*(lng-a.Lon())}
	}
	return newLine(at(left), at(right), l.Kind, l.Style), true
}

// ClipVertical moves any endpoint of a roughly north-south line that lies
// outside [left, right] onto the nearest bound. Endpoints already inside
// are kept. ok is false when the line never enters the strip.
func ClipVertical(l Line, left, right float64) (Line, bool) {
	a, b := l.Start(), l.End()
	boundA, outA := nearestBound(a.Lon(), left, right)
	boundB, outB := nearestBound(b.Lon(), left, right)
	if !outA && !outB {
		return l, true
	}
	if outA && outB && boundA == boundB {
		return Line{}, false
	}
	dx := b.Lon() - a.Lon()
	if dx == 0 {
		return Line{}, false
	}
	slope := (b.Lat() - a.Lat()) / dx
	at := func(lng float64) orb.Point {
		return orb.Point{lng, a.Lat() + slope*(lng-a.Lon())}
	}
	if outA {
		a = at(boundA)
	}
	if outB {
		b = at(boundB)
	}
	return newLine(a, b, l.Kind, l.Style), true
}

func nearestBound(lng, left, right float64) (float64, bool) {
	switch {
	case lng < left:
		return left, true
	case lng > right:
		return right, true
	}
	return lng, false
}
