package grid

import (
	"github.com/paulmach/orb"

	"gridmap/geo"
)

// Kind separates fine grid lines from zone boundaries.
type Kind int

const (
	KindLine Kind = iota
	KindZone
)

func (k Kind) String() string {
	if k == KindZone {
		return "zone"
	}
	return "line"
}

// Style is the stroke record handed to the renderer with every line.
type Style struct {
	Stroke  bool    `toml:"stroke"`
	Color   string  `toml:"color"`
	Opacity float64 `toml:"opacity"`
	Weight  float64 `toml:"weight"`
}

var (
	DefaultLineStyle = Style{Stroke: true, Color: "#111", Opacity: 0.6, Weight: 1}
	DefaultZoneStyle = Style{Stroke: true, Color: "#333", Opacity: 0.6, Weight: 3}
)

// Line is one grid line between two geographic endpoints.
type Line struct {
	Path  orb.LineString
	Kind  Kind
	Style Style
}

func (l Line) Start() orb.Point { return l.Path[0] }
func (l Line) End() orb.Point   { return l.Path[len(l.Path)-1] }

func newLine(a, b orb.Point, kind Kind, style Style) Line {
	return Line{Path: orb.LineString{a, b}, Kind: kind, Style: style}
}

func verticalLine(b geo.Viewport, lng float64, kind Kind, style Style) Line {
	return newLine(geo.LatLng(b.North, lng), geo.LatLng(b.South, lng), kind, style)
}

func horizontalLine(b geo.Viewport, lat float64, kind Kind, style Style) Line {
	return newLine(geo.LatLng(lat, b.West), geo.LatLng(lat, b.East), kind, style)
}
