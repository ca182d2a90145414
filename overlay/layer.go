package overlay

import (
	"github.com/paulmach/orb"

	"gridmap/grid"
)

// Layer is a drawable handed to the viewer. Viewers remove layers by
// identity, so layers are always passed around as pointers.
type Layer interface {
	Bound() orb.Bound
	isLayer()
}

// Polyline is a stroked line in geographic coordinates.
type Polyline struct {
	Path  orb.LineString
	Style grid.Style
	Kind  grid.Kind
}

func (p *Polyline) Bound() orb.Bound { return p.Path.Bound() }
func (*Polyline) isLayer()           {}

// Marker is a text anchor for a grid label.
type Marker struct {
	Point orb.Point
	Text  string
}

func (m *Marker) Bound() orb.Bound { return m.Point.Bound() }
func (*Marker) isLayer()           {}

func layersFor(res grid.Result) []Layer {
	layers := make([]Layer, 0, len(res.Lines)+len(res.Labels))
	for _, l := range res.Lines {
		layers = append(layers, &Polyline{Path: l.Path, Style: l.Style, Kind: l.Kind})
	}
	for _, l := range res.Labels {
		layers = append(layers, &Marker{Point: l.Point, Text: l.Text})
	}
	return layers
}
