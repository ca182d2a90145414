// Package overlay keeps a coordinate grid drawn on a host map viewer.
package overlay

import (
	"fmt"

	"github.com/paulmach/orb"

	"gridmap/geo"
	"gridmap/grid"
)

// Event names a view change the viewer can notify about.
type Event string

const (
	// EventMove fires after every pan or zoom.
	EventMove Event = "move"
	// EventViewReset fires when the view is rebuilt, e.g. after a zoom
	// level change or a resize.
	EventViewReset Event = "viewreset"
)

// ParseEvent resolves a configured redraw trigger.
func ParseEvent(name string) (Event, error) {
	switch e := Event(name); e {
	case EventMove, EventViewReset:
		return e, nil
	}
	return "", &grid.ConfigurationError{Reason: fmt.Sprintf("unknown redraw trigger %q", name)}
}

// Viewer is the host map the controller draws on. Notifications are
// delivered synchronously on the viewer's own goroutine.
type Viewer interface {
	Bounds() geo.Viewport
	Zoom() int
	Center() orb.Point

	AddLayer(l Layer)
	RemoveLayer(l Layer)

	On(e Event, fn func())
}
