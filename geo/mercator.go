// Package geo holds the stateless projection helpers shared by the grid
// generators and the map view: spherical Mercator in metres, web-map pixel
// coordinates and ground resolution per pixel.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// EarthRadius is the mean Earth radius in metres used by the distance grids.
	EarthRadius = 6371000.0

	// MaxLatitude is the latitude at which the square web-map world ends.
	MaxLatitude = 85.0511287798

	// TileSize is the pixel size of the world at zoom 0.
	TileSize = 256.0
)

const deg = math.Pi / 180

// LatLng builds a point from latitude/longitude order. orb stores lon first.
func LatLng(lat, lon float64) orb.Point {
	return orb.Point{lon, lat}
}

func clampLat(lat float64) float64 {
	return math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
}

// ToSphericalMercator projects a geographic point to spherical Mercator metres.
func ToSphericalMercator(p orb.Point) orb.Point {
	lat := clampLat(p.Lat()) * deg
	return orb.Point{
		EarthRadius * p.Lon() * deg,
		EarthRadius * math.Log(math.Tan(math.Pi/4+lat/2)),
	}
}

// FromSphericalMercator is the inverse of ToSphericalMercator.
func FromSphericalMercator(p orb.Point) orb.Point {
	lon := p.X() / EarthRadius / deg
	lat := (2*math.Atan(math.Exp(p.Y()/EarthRadius)) - math.Pi/2) / deg
	return orb.Point{lon, lat}
}

// MetersPerPixel returns the ground distance covered by one screen pixel at
// the given latitude and zoom level.
func MetersPerPixel(lat float64, zoom int) float64 {
	return EarthRadius * math.Abs(math.Cos(lat*deg)) / math.Ldexp(1, zoom+8)
}

// WorldSize is the width in pixels of the whole world at zoom.
func WorldSize(zoom int) float64 {
	return math.Ldexp(TileSize, zoom)
}

// ToPixel converts a geographic point to absolute web-map pixel coordinates
// at zoom, origin top-left.
func ToPixel(p orb.Point, zoom int) orb.Point {
	size := WorldSize(zoom)
	lat := clampLat(p.Lat()) * deg
	x := (p.Lon() + 180) / 360 * size
	y := (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * size
	return orb.Point{x, y}
}

// FromPixel is the inverse of ToPixel.
func FromPixel(p orb.Point, zoom int) orb.Point {
	size := WorldSize(zoom)
	lon := p.X()/size*360 - 180
	n := math.Pi * (1 - 2*p.Y()/size)
	lat := math.Atan(math.Sinh(n)) / deg
	return orb.Point{lon, lat}
}
