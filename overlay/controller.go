package overlay

import (
	"errors"
	"log"

	"go.uber.org/multierr"

	"gridmap/grid"
)

// Controller owns the grid drawn on one viewer. Every redraw builds the
// full layer set first and only then swaps it for the previous one.
type Controller struct {
	opts    grid.Options
	trigger Event
	grid    *grid.Grid

	viewer     Viewer
	subscribed map[subscription]bool
	layers     []Layer
	result     grid.Result
}

// New builds a controller for system. trigger is the extra event, besides
// viewreset, that causes a redraw.
func New(system grid.System, opts grid.Options, trigger Event) (*Controller, error) {
	if _, err := ParseEvent(string(trigger)); err != nil {
		return nil, err
	}
	g, err := grid.New(system, opts)
	if err != nil {
		return nil, err
	}
	return &Controller{
		opts:       opts,
		trigger:    trigger,
		grid:       g,
		subscribed: make(map[subscription]bool),
	}, nil
}

// subscription records a callback already registered on a viewer. Viewers
// have no way to unsubscribe, so callbacks are registered once per viewer
// and event and check that their viewer is still the attached one.
type subscription struct {
	viewer Viewer
	event  Event
}

// Attach draws the grid on v and keeps it current as v changes.
func (c *Controller) Attach(v Viewer) error {
	if c.viewer != nil && c.viewer != v {
		c.Detach()
	}
	c.viewer = v
	err := c.Redraw()

	for _, e := range []Event{EventViewReset, c.trigger} {
		sub := subscription{viewer: v, event: e}
		if c.subscribed[sub] {
			continue
		}
		c.subscribed[sub] = true
		v.On(e, func() {
			if c.viewer != v {
				return
			}
			c.Redraw()
		})
	}
	return err
}

// Detach removes the grid from its viewer. Later notifications from that
// viewer are ignored.
func (c *Controller) Detach() {
	if c.viewer == nil {
		return
	}
	for _, l := range c.layers {
		c.viewer.RemoveLayer(l)
	}
	c.viewer = nil
	c.layers = nil
	c.result = grid.Result{}
}

// Redraw recomputes the grid for the viewer's current view. The returned
// error lists lines that were skipped; the rest of the grid is drawn
// regardless.
func (c *Controller) Redraw() error {
	v := c.viewer
	if v == nil {
		return errors.New("overlay: no viewer attached")
	}

	req := grid.Request{Visible: v.Bounds(), Zoom: v.Zoom(), Center: v.Center()}
	res, err := c.grid.Compute(req)
	next := layersFor(res)

	for _, l := range c.layers {
		v.RemoveLayer(l)
	}
	for _, l := range next {
		v.AddLayer(l)
	}
	c.layers = next
	c.result = res

	log.Printf("grid %s: zoom %d, spacing %v, %d lines", c.grid.System(), req.Zoom, res.State.Spacing.Interval, len(res.Lines))
	for _, e := range multierr.Errors(err) {
		log.Printf("grid %s: skipped: %v", c.grid.System(), e)
	}
	return err
}

// SetSystem switches the grid to another reference system and redraws if
// a viewer is attached.
func (c *Controller) SetSystem(system grid.System) error {
	g, err := grid.New(system, c.opts)
	if err != nil {
		return err
	}
	c.grid = g
	if c.viewer == nil {
		return nil
	}
	return c.Redraw()
}

func (c *Controller) System() grid.System { return c.grid.System() }

// Result is the outcome of the latest redraw.
func (c *Controller) Result() grid.Result { return c.result }

// Layers are the drawables currently on the viewer.
func (c *Controller) Layers() []Layer { return c.layers }
