package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphericalMercatorRoundTrip(t *testing.T) {
	for _, p := range []orb.Point{
		{0, 0},
		{-1.6, 10.6},
		{179.9, -60},
		{12.5, 84},
	} {
		sm := ToSphericalMercator(p)
		back := FromSphericalMercator(sm)
		assert.InDelta(t, p.Lon(), back.Lon(), 1e-9)
		assert.InDelta(t, p.Lat(), back.Lat(), 1e-9)
	}

	origin := ToSphericalMercator(orb.Point{0, 0})
	assert.InDelta(t, 0, origin.X(), 1e-9)
	assert.InDelta(t, 0, origin.Y(), 1e-9)

	edge := ToSphericalMercator(orb.Point{180, 0})
	assert.InDelta(t, EarthRadius*math.Pi, edge.X(), 1e-6)
}

func TestSphericalMercatorClampsPoles(t *testing.T) {
	p := ToSphericalMercator(orb.Point{0, 90})
	assert.False(t, math.IsInf(p.Y(), 0))
	assert.InDelta(t, MaxLatitude, FromSphericalMercator(p).Lat(), 1e-9)
}

func TestMetersPerPixel(t *testing.T) {
	assert.InDelta(t, EarthRadius/256, MetersPerPixel(0, 0), 1e-9)
	assert.InDelta(t, MetersPerPixel(0, 10)/2, MetersPerPixel(60, 10), 1e-9)
	assert.InDelta(t, MetersPerPixel(0, 10), 2*MetersPerPixel(0, 11), 1e-12)
	assert.InDelta(t, MetersPerPixel(45, 3), MetersPerPixel(-45, 3), 1e-12)
}

func TestPixelProjection(t *testing.T) {
	c := ToPixel(orb.Point{0, 0}, 0)
	assert.InDelta(t, 128, c.X(), 1e-9)
	assert.InDelta(t, 128, c.Y(), 1e-9)

	for _, zoom := range []int{0, 5, 12, 18} {
		p := orb.Point{-81.125, 41.48}
		back := FromPixel(ToPixel(p, zoom), zoom)
		assert.InDelta(t, p.Lon(), back.Lon(), 1e-9)
		assert.InDelta(t, p.Lat(), back.Lat(), 1e-9)
	}
}

func TestViewportPad(t *testing.T) {
	v := Viewport{North: 10.6, South: 9.4, East: -0.4, West: -1.6}
	p := v.Pad(0.5)
	assert.InDelta(t, 11.2, p.North, 1e-9)
	assert.InDelta(t, 8.8, p.South, 1e-9)
	assert.InDelta(t, 0.2, p.East, 1e-9)
	assert.InDelta(t, -2.2, p.West, 1e-9)

	c := v.Center()
	assert.InDelta(t, 10.0, c.Lat(), 1e-9)
	assert.InDelta(t, -1.0, c.Lon(), 1e-9)

	assert.Equal(t, v, NewViewport(v.Bound()))
}

func TestViewportValid(t *testing.T) {
	assert.True(t, Viewport{North: 1, South: 0, East: 1, West: 0}.Valid())
	assert.False(t, Viewport{North: 0, South: 1, East: 1, West: 0}.Valid())
	assert.False(t, Viewport{North: math.NaN(), South: 0, East: 1, West: 0}.Valid())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, `12°30'00"N`, FormatDMS(12.5, Latitude))
	assert.Equal(t, `0°15'00"W`, FormatDMS(-0.25, Longitude))
	assert.Equal(t, `1°00'00"S`, FormatDMS(-0.99999999, Latitude))
	assert.Equal(t, "77.50°W", FormatDD(-77.5, Longitude, 2))
	assert.Equal(t, "9°N", FormatDD(9, Latitude, 0))
}

func TestGridSquareCenter(t *testing.T) {
	p, err := GridSquareCenter("EN91")
	require.NoError(t, err)
	assert.InDelta(t, -81.0, p.Lon(), 1e-9)
	assert.InDelta(t, 41.5, p.Lat(), 1e-9)

	p, err = GridSquareCenter("en91kl")
	require.NoError(t, err)
	assert.InDelta(t, -81.125, p.Lon(), 1e-9)
	assert.InDelta(t, 41.0+11.5/24.0, p.Lat(), 1e-9)

	for _, bad := range []string{"EN9", "EN91k", "ZZ99", "ENA1", "EN91zz"} {
		_, err := GridSquareCenter(bad)
		assert.Error(t, err, bad)
	}
}
