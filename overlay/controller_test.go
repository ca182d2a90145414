package overlay

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridmap/geo"
	"gridmap/grid"
	"gridmap/utm"
)

type fakeViewer struct {
	bounds   geo.Viewport
	zoom     int
	layers   []Layer
	handlers map[Event][]func()
	removed  int
}

func newFakeViewer(bounds geo.Viewport, zoom int) *fakeViewer {
	return &fakeViewer{bounds: bounds, zoom: zoom, handlers: make(map[Event][]func())}
}

func (f *fakeViewer) Bounds() geo.Viewport { return f.bounds }
func (f *fakeViewer) Zoom() int            { return f.zoom }
func (f *fakeViewer) Center() orb.Point    { return f.bounds.Center() }

func (f *fakeViewer) AddLayer(l Layer) { f.layers = append(f.layers, l) }

func (f *fakeViewer) RemoveLayer(l Layer) {
	for i, have := range f.layers {
		if have == l {
			f.layers = append(f.layers[:i], f.layers[i+1:]...)
			f.removed++
			return
		}
	}
}

func (f *fakeViewer) On(e Event, fn func()) { f.handlers[e] = append(f.handlers[e], fn) }

func (f *fakeViewer) fire(e Event) {
	for _, fn := range f.handlers[e] {
		fn()
	}
}

func (f *fakeViewer) pan(d float64) {
	f.bounds.North += d
	f.bounds.South += d
	f.bounds.East += d
	f.bounds.West += d
}

func example() geo.Viewport {
	return geo.Viewport{North: 10.6, South: 9.4, East: -0.4, West: -1.6}
}

func polylines(layers []Layer) []*Polyline {
	var out []*Polyline
	for _, l := range layers {
		if p, ok := l.(*Polyline); ok {
			out = append(out, p)
		}
	}
	return out
}

func TestAttachDrawsAndSubscribes(t *testing.T) {
	c, err := New(grid.DecimalDegree, grid.DefaultOptions(), EventMove)
	require.NoError(t, err)

	v := newFakeViewer(example(), 7)
	require.NoError(t, c.Attach(v))

	assert.Len(t, v.layers, 8)
	assert.Len(t, v.handlers[EventViewReset], 1)
	assert.Len(t, v.handlers[EventMove], 1)
	assert.Equal(t, []float64{8, 9, 10, 11}, c.Result().State.LatCoords)

	require.NoError(t, c.Attach(v))
	assert.Len(t, v.handlers[EventViewReset], 1, "re-attaching must not subscribe twice")
	assert.Len(t, v.layers, 8)
}

func TestViewResetOnlyTrigger(t *testing.T) {
	c, err := New(grid.DecimalDegree, grid.DefaultOptions(), EventViewReset)
	require.NoError(t, err)

	v := newFakeViewer(example(), 7)
	require.NoError(t, c.Attach(v))
	assert.Len(t, v.handlers[EventViewReset], 1)
	assert.Empty(t, v.handlers[EventMove])
}

func TestRedrawReplacesLayers(t *testing.T) {
	c, err := New(grid.DecimalDegree, grid.DefaultOptions(), EventMove)
	require.NoError(t, err)
	v := newFakeViewer(example(), 7)
	require.NoError(t, c.Attach(v))
	before := append([]Layer(nil), v.layers...)

	v.pan(3)
	v.fire(EventMove)

	assert.Equal(t, 8, v.removed)
	assert.Len(t, v.layers, 8)
	for _, l := range before {
		assert.NotContains(t, v.layers, l)
	}
	assert.Equal(t, []float64{11, 12, 13, 14}, c.Result().State.LatCoords)
}

func TestRedrawIsIdempotent(t *testing.T) {
	c, err := New(grid.MGRS, grid.DefaultOptions(), EventMove)
	require.NoError(t, err)
	v := newFakeViewer(geo.Viewport{North: 40.3, South: 39.7, East: 6.4, West: 5.6}, 12)
	require.NoError(t, c.Attach(v))

	first := polylines(v.layers)
	require.NoError(t, c.Redraw())
	second := polylines(v.layers)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, *first[i], *second[i])
	}
}

func TestEmptyGridIsNotAnError(t *testing.T) {
	c, err := New(grid.UTM, grid.DefaultOptions(), EventMove)
	require.NoError(t, err)
	v := newFakeViewer(example(), 6)
	require.NoError(t, c.Attach(v))
	assert.Empty(t, v.layers)
}

func TestSetSystem(t *testing.T) {
	c, err := New(grid.DecimalDegree, grid.DefaultOptions(), EventMove)
	require.NoError(t, err)
	require.NoError(t, c.SetSystem(grid.MGRS))
	assert.Equal(t, grid.MGRS, c.System())

	v := newFakeViewer(geo.Viewport{North: 50, South: 30, East: 20, West: -10}, 5)
	require.NoError(t, c.Attach(v))
	for _, p := range polylines(v.layers) {
		assert.Equal(t, grid.KindZone, p.Kind)
	}

	require.NoError(t, c.SetSystem(grid.DistanceMetric))
	for _, p := range polylines(v.layers) {
		assert.Equal(t, grid.KindLine, p.Kind)
	}
	assert.NotEmpty(t, c.Result().State.Spacing.Label)
}

func TestLabelsBecomeMarkers(t *testing.T) {
	opts := grid.DefaultOptions()
	opts.Labels = true
	c, err := New(grid.DecimalDegree, opts, EventMove)
	require.NoError(t, err)
	v := newFakeViewer(example(), 7)
	require.NoError(t, c.Attach(v))

	var texts []string
	for _, l := range v.layers {
		if m, ok := l.(*Marker); ok {
			texts = append(texts, m.Text)
		}
	}
	assert.Equal(t, []string{"1°W", "10°N"}, texts)
}

func TestDegenerateSpacingDrawsNothing(t *testing.T) {
	opts := grid.DefaultOptions()
	dd := opts.Tables[grid.DecimalDegree]
	dd.Intervals[7] = 0
	opts.Tables[grid.DecimalDegree] = dd

	c, err := New(grid.DecimalDegree, opts, EventMove)
	require.NoError(t, err)
	v := newFakeViewer(example(), 7)
	err = c.Attach(v)
	var derr *grid.DegenerateSpacingError
	assert.True(t, errors.As(err, &derr))
	assert.Empty(t, v.layers)

	v.zoom = 8
	v.fire(EventViewReset)
	assert.Len(t, v.layers, 8)
}

// brokenInverse fails the first inverse projection and passes the rest on.
type brokenInverse struct {
	utm.Transformer
	failed bool
}

func (b *brokenInverse) Inverse(u utm.Point) (orb.Point, error) {
	if !b.failed {
		b.failed = true
		return orb.Point{}, &utm.ProjectionError{Zone: "18S", Reason: "unresolvable"}
	}
	return b.Transformer.Inverse(u)
}

func TestProjectionErrorKeepsOtherLines(t *testing.T) {
	v := newFakeViewer(geo.Viewport{North: 39.0, South: 38.8, East: -76.9, West: -77.1}, 12)

	full, err := New(grid.UTM, grid.DefaultOptions(), EventMove)
	require.NoError(t, err)
	require.NoError(t, full.Attach(v))
	want := len(v.layers)
	full.Detach()
	require.Empty(t, v.layers)

	opts := grid.DefaultOptions()
	opts.Transform = &brokenInverse{}
	c, err := New(grid.UTM, opts, EventMove)
	require.NoError(t, err)

	err = c.Attach(v)
	var perr *utm.ProjectionError
	assert.True(t, errors.As(err, &perr))
	assert.Len(t, v.layers, want-1)
	assert.Len(t, c.Result().Lines, want-1)
}

func TestDetach(t *testing.T) {
	c, err := New(grid.DecimalDegree, grid.DefaultOptions(), EventMove)
	require.NoError(t, err)
	v := newFakeViewer(example(), 7)
	require.NoError(t, c.Attach(v))

	c.Detach()
	assert.Empty(t, v.layers)
	v.fire(EventMove)
	assert.Empty(t, v.layers)
	assert.Error(t, c.Redraw())
}

func TestNewRejectsBadConfiguration(t *testing.T) {
	var cerr *grid.ConfigurationError

	_, err := New(grid.DecimalDegree, grid.DefaultOptions(), Event("zoomend"))
	assert.True(t, errors.As(err, &cerr))

	opts := grid.DefaultOptions()
	opts.Tables = grid.Tables{grid.UTM: {Intervals: []float64{1}}}
	_, err = New(grid.UTM, opts, EventMove)
	assert.True(t, errors.As(err, &cerr))

	_, err = ParseEvent("viewreset")
	assert.NoError(t, err)
}
