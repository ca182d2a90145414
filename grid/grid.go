package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"gridmap/geo"
	"gridmap/utm"
)

// Transform converts between geographic and UTM coordinates.
type Transform interface {
	Forward(p orb.Point) (utm.Point, error)
	Inverse(u utm.Point) (orb.Point, error)
}

// Options configure a Grid. Nil tables or transform and zero styles fall
// back to DefaultOptions; a zero Pad means no padding.
type Options struct {
	Tables    Tables
	LineStyle Style
	ZoneStyle Style
	Pad       float64
	Labels    bool
	Transform Transform
}

// DefaultOptions returns the built-in tables and styles with a 0.5 pad.
func DefaultOptions() Options {
	return Options{
		Tables:    DefaultTables(),
		LineStyle: DefaultLineStyle,
		ZoneStyle: DefaultZoneStyle,
		Pad:       0.5,
		Transform: utm.Transformer{},
	}
}

// Request is the host view at the start of one redraw.
type Request struct {
	Visible geo.Viewport
	Zoom    int
	Center  orb.Point
}

// State is everything derived from one Request. It is rebuilt from scratch
// on every Compute call.
type State struct {
	Visible geo.Viewport
	Bounds  geo.Viewport // Visible padded by Options.Pad
	Zoom    int
	Center  orb.Point
	Spacing Spacing

	// Axis values used to build lines, in the generator's own units:
	// degrees for dd/dms and the mgrs zone grid, metres for utm (northing,
	// easting) and distance grids (spherical Mercator y, x).
	LatCoords []float64
	LngCoords []float64
}

// Result is the drawable output of one redraw.
type Result struct {
	State  State
	Lines  []Line
	Labels []Label
}

// Generator is the per-system half of a grid: how it picks spacing and how
// it turns a State into lines.
type Generator interface {
	Spacing(t Table, req Request) Spacing
	Generate(st *State, opts Options) ([]Line, error)
}

var generators = map[System]Generator{
	DecimalDegree:      graticule{system: DecimalDegree},
	DegreeMinuteSecond: graticule{system: DegreeMinuteSecond},
	UTM:                utmGrid{},
	MGRS:               mgrsGrid{},
	DistanceMetric:     distanceGrid{system: DistanceMetric},
	DistanceImperial:   distanceGrid{system: DistanceImperial},
}

// Grid computes overlays for one system.
type Grid struct {
	system System
	gen    Generator
	table  Table
	opts   Options
}

// New validates the system's spacing table and returns a ready Grid.
func New(system System, opts Options) (*Grid, error) {
	gen, ok := generators[system]
	if !ok {
		return nil, &ConfigurationError{System: system.String(), Reason: "unknown grid system"}
	}

	defaults := DefaultOptions()
	if opts.Tables == nil {
		opts.Tables = defaults.Tables
	}
	if opts.Transform == nil {
		opts.Transform = defaults.Transform
	}
	if opts.LineStyle == (Style{}) {
		opts.LineStyle = defaults.LineStyle
	}
	if opts.ZoneStyle == (Style{}) {
		opts.ZoneStyle = defaults.ZoneStyle
	}
	if opts.Pad < 0 || math.IsNaN(opts.Pad) {
		return nil, &ConfigurationError{System: system.String(), Reason: fmt.Sprintf("pad %v must be >= 0", opts.Pad)}
	}

	table, ok := opts.Tables[system]
	if !ok {
		table = defaults.Tables[system]
	}
	if err := table.Validate(system); err != nil {
		return nil, err
	}

	return &Grid{system: system, gen: gen, table: table, opts: opts}, nil
}

func (g *Grid) System() System { return g.system }

// SpacingFor returns the spacing the grid would use for req.
func (g *Grid) SpacingFor(req Request) Spacing {
	return g.gen.Spacing(g.table, req)
}

// Compute builds the lines for one view. A non-nil error alongside a Result
// reports lines that were skipped or a degenerate spacing; whatever could be
// built is still in the Result.
func (g *Grid) Compute(req Request) (Result, error) {
	if !req.Visible.Valid() {
		return Result{}, fmt.Errorf("%s grid: invalid viewport %+v", g.system, req.Visible)
	}

	bounds := req.Visible.Pad(g.opts.Pad)
	bounds.North = math.Min(bounds.North, 90)
	bounds.South = math.Max(bounds.South, -90)

	st := State{
		Visible: req.Visible,
		Bounds:  bounds,
		Zoom:    req.Zoom,
		Center:  req.Center,
		Spacing: g.gen.Spacing(g.table, req),
	}

	lines, err := g.gen.Generate(&st, g.opts)
	res := Result{State: st, Lines: lines}
	if g.opts.Labels {
		res.Labels = labelsFor(g.system, st)
	}
	return res, err
}
