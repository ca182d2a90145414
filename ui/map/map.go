package mapview

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"gridmap/config"
	"gridmap/fix"
	"gridmap/geo"
	"gridmap/overlay"
)

// Constants for Panning
const (
	panFactor = 0.1
)

var (
	basemapStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	stationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	fixStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
)

// Model is the bubbletea component around the Host. The Host is shared by
// every copy of the Model, so the grid controller can hold on to it.
type Model struct {
	width  int
	height int

	host     *Host
	home     orb.Point
	homeZoom int

	mapPolygons []*shp.Polygon

	station       orb.Point
	stationExists bool

	lastFix *fix.Fix
}

// loadMapData reads the polygons of a shapefile
func loadMapData(path string) ([]*shp.Polygon, error) {
	shapeFile, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shapeFile.Close()

	var polygons []*shp.Polygon
	for shapeFile.Next() {
		_, shape := shapeFile.Shape()
		if polygon, ok := shape.(*shp.Polygon); ok {
			polygons = append(polygons, polygon)
		}
	}
	if len(polygons) == 0 {
		return nil, fmt.Errorf("no polygons found in shapefile %s", path)
	}
	return polygons, nil
}

// New creates a new map model
func New(conf config.Config) (Model, error) {
	m := Model{width: 80, height: 23}

	if conf.Map.Shapefile != "" {
		polygons, err := loadMapData(conf.Map.Shapefile)
		if err != nil {
			return Model{}, err
		}
		m.mapPolygons = polygons
	}

	if lat, lon, ok := conf.Center(); ok {
		m.home = orb.Point{lon, lat}
	}
	if conf.Station.GridSquare != "" {
		p, err := geo.GridSquareCenter(conf.Station.GridSquare)
		if err != nil {
			log.Printf("Warning: Could not parse station gridsquare '%s': %v", conf.Station.GridSquare, err)
		} else {
			m.station = p
			m.stationExists = true
		}
	}
	m.homeZoom = conf.Map.DefaultZoom
	m.host = NewHost(m.width-2, m.height-2, m.home, m.homeZoom)
	return m, nil
}

// Host is the viewer the grid overlay attaches to.
func (m Model) Host() *Host { return m.host }

func (m Model) Init() tea.Cmd { return nil }

// Update handles resizing, navigation keys and GPS fixes. Host methods
// fire the view-change events synchronously.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case *fix.Fix:
		m.lastFix = msg

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.host.Resize(m.width-2, m.height-2)

	case tea.KeyMsg:
		switch msg.String() {
		case "k", "up":
			m.host.Pan(0, panFactor)
		case "l", "down":
			m.host.Pan(0, -panFactor)
		case "j", "left":
			m.host.Pan(-panFactor, 0)
		case ";", "right":
			m.host.Pan(panFactor, 0)
		case "K", "+", "=":
			m.host.SetZoom(m.host.Zoom() + 1)
		case "L", "-":
			m.host.SetZoom(m.host.Zoom() - 1)
		case "r":
			m.host.SetView(m.home, m.homeZoom)
		case "c":
			if m.lastFix != nil {
				m.host.SetView(m.lastFix.Point(), m.host.Zoom())
			} else {
				log.Println("No GPS fix to centre on")
			}
		}
	}
	return m, nil
}

func (m Model) LastFix() *fix.Fix { return m.lastFix }

// render draws the base map, the overlay layers and the position markers
func (m Model) render(cols, rows int) string {
	c := newCanvas(cols, rows)
	h := m.host
	view := h.Bounds().Bound()

	// 1. Base map outlines as dots
	for _, polygon := range m.mapPolygons {
		box := polygon.BBox()
		b := orb.Bound{Min: orb.Point{box.MinX, box.MinY}, Max: orb.Point{box.MaxX, box.MaxY}}
		if !b.Intersects(view) {
			continue
		}
		for _, point := range polygon.Points {
			x, y := cellAt(h.Project(orb.Point{point.X, point.Y}))
			c.set(x, y, '.', basemapStyle)
		}
	}

	// 2. Grid lines, then labels on top
	var markers []*overlay.Marker
	for _, l := range h.Layers() {
		switch l := l.(type) {
		case *overlay.Polyline:
			c.polyline(l, h.Project)
		case *overlay.Marker:
			markers = append(markers, l)
		}
	}
	for _, mk := range markers {
		x, y := cellAt(h.Project(mk.Point))
		c.text(x, y, mk.Text, labelStyle)
	}

	// 3. Home station and GPS position
	if m.stationExists {
		x, y := cellAt(h.Project(m.station))
		c.set(x, y, 'H', stationStyle)
	}
	if m.lastFix != nil {
		x, y := cellAt(h.Project(m.lastFix.Point()))
		c.set(x, y, '@', fixStyle)
	}
	return c.String()
}

// View function
func (m Model) View() string {
	mapStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(m.width - 2).
		Height(m.height - 2)

	cols, rows := m.host.Size()
	return mapStyle.Render(m.render(cols, rows))
}
