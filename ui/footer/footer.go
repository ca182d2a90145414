package footer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"gridmap/geo"
	"gridmap/utm"
)

// Model holds the footer's state
type Model struct {
	width  int
	center orb.Point
	zoom   int
}

// New creates a new footer model
func New() Model {
	return Model{width: 80}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetView records the map centre and zoom to display.
func (m *Model) SetView(center orb.Point, zoom int) {
	m.center = center
	m.zoom = zoom
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// Text is the centre position in every reference system, most precise
// last so truncation drops it first.
func (m Model) Text() string {
	lat, lon := m.center.Lat(), m.center.Lon()
	parts := []string{
		fmt.Sprintf("z%d", m.zoom),
		geo.FormatDD(lat, geo.Latitude, 5) + " " + geo.FormatDD(lon, geo.Longitude, 5),
		geo.FormatDMS(lat, geo.Latitude) + " " + geo.FormatDMS(lon, geo.Longitude),
	}
	if u, err := utm.FromLatLon(m.center); err == nil {
		parts = append(parts, u.String(), utm.MGRS(u, 5))
	} else {
		parts = append(parts, "outside UTM")
	}
	return strings.Join(parts, " | ")
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color("236")). // Dark grey bar
		Foreground(lipgloss.Color("252")). // Light text
		Width(m.width).                    // Full terminal width
		MaxWidth(m.width)                  // Truncate instead of wrapping

	return style.Render(m.Text())
}
