package mapview

import (
	"math"

	"github.com/paulmach/orb"

	"gridmap/geo"
	"gridmap/grid"
	"gridmap/overlay"
)

// A terminal cell stands in for this many web-map pixels.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// Host is the slippy map the grid is drawn on. It keeps web-map zoom
// levels, so the grid sees the same bounds a browser map of the same pixel
// size would report.
type Host struct {
	cols, rows int
	zoom       int
	center     orb.Point

	layers   []overlay.Layer
	handlers map[overlay.Event][]func()
}

// NewHost creates a host of cols x rows cells centred on center.
func NewHost(cols, rows int, center orb.Point, zoom int) *Host {
	h := &Host{handlers: make(map[overlay.Event][]func())}
	h.cols, h.rows = max(cols, 1), max(rows, 1)
	h.zoom = grid.ClampZoom(zoom)
	h.center = clampCenter(center)
	return h
}

func clampCenter(p orb.Point) orb.Point {
	lon := p.Lon() - 360*math.Floor((p.Lon()+180)/360)
	lat := math.Max(-geo.MaxLatitude, math.Min(geo.MaxLatitude, p.Lat()))
	return orb.Point{lon, lat}
}

// origin is the pixel position of the top-left corner of the view.
func (h *Host) origin() orb.Point {
	c := geo.ToPixel(h.center, h.zoom)
	return orb.Point{
		c.X() - float64(h.cols)*cellWidth/2,
		c.Y() - float64(h.rows)*cellHeight/2,
	}
}

func (h *Host) Bounds() geo.Viewport {
	o := h.origin()
	nw := geo.FromPixel(o, h.zoom)
	se := geo.FromPixel(orb.Point{o.X() + float64(h.cols)*cellWidth, o.Y() + float64(h.rows)*cellHeight}, h.zoom)
	return geo.Viewport{North: nw.Lat(), South: se.Lat(), East: se.Lon(), West: nw.Lon()}
}

func (h *Host) Zoom() int         { return h.zoom }
func (h *Host) Center() orb.Point { return h.center }
func (h *Host) Size() (cols, rows int) {
	return h.cols, h.rows
}

func (h *Host) AddLayer(l overlay.Layer) {
	h.layers = append(h.layers, l)
}

func (h *Host) RemoveLayer(l overlay.Layer) {
	for i, have := range h.layers {
		if have == l {
			h.layers = append(h.layers[:i], h.layers[i+1:]...)
			return
		}
	}
}

func (h *Host) Layers() []overlay.Layer { return h.layers }

func (h *Host) On(e overlay.Event, fn func()) {
	h.handlers[e] = append(h.handlers[e], fn)
}

func (h *Host) fire(e overlay.Event) {
	for _, fn := range h.handlers[e] {
		fn()
	}
}

// Pan moves the view by a fraction of its width (dx, east positive) and
// height (dy, north positive).
func (h *Host) Pan(dx, dy float64) {
	c := geo.ToPixel(h.center, h.zoom)
	c = orb.Point{
		c.X() + dx*float64(h.cols)*cellWidth,
		c.Y() - dy*float64(h.rows)*cellHeight,
	}
	h.center = clampCenter(geo.FromPixel(c, h.zoom))
	h.fire(overlay.EventMove)
}

// SetZoom changes the zoom level around the current centre.
func (h *Host) SetZoom(zoom int) {
	zoom = grid.ClampZoom(zoom)
	if zoom == h.zoom {
		return
	}
	h.zoom = zoom
	h.fire(overlay.EventViewReset)
}

// SetView jumps to center at zoom.
func (h *Host) SetView(center orb.Point, zoom int) {
	h.center = clampCenter(center)
	h.zoom = grid.ClampZoom(zoom)
	h.fire(overlay.EventViewReset)
}

// Resize sets the map area in cells.
func (h *Host) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == h.cols && rows == h.rows {
		return
	}
	h.cols, h.rows = cols, rows
	h.fire(overlay.EventViewReset)
}

// Project converts a geographic point to fractional cell coordinates,
// origin top-left.
func (h *Host) Project(p orb.Point) orb.Point {
	px := geo.ToPixel(p, h.zoom)
	o := h.origin()
	return orb.Point{(px.X() - o.X()) / cellWidth, (px.Y() - o.Y()) / cellHeight}
}
