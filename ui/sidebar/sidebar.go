package sidebar

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridmap/grid"
)

// Model holds the sidebar's state
type Model struct {
	width  int
	height int

	active  grid.System
	spacing string
	lines   int
	zones   int
}

// New creates a new sidebar model
func New(active grid.System) Model {
	return Model{
		width:  20, // Default
		height: 24, // Default
		active: active,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetResult shows the outcome of the latest redraw.
func (m *Model) SetResult(system grid.System, res grid.Result) {
	m.active = system
	m.spacing = SpacingText(system, res.State.Spacing)
	m.lines, m.zones = 0, 0
	for _, l := range res.Lines {
		if l.Kind == grid.KindZone {
			m.zones++
		} else {
			m.lines++
		}
	}
}

// SystemForKey maps the number keys 1..6 onto grid systems.
func SystemForKey(key string) (grid.System, bool) {
	systems := grid.Systems()
	if len(key) != 1 || key[0] < '1' || int(key[0]-'1') >= len(systems) {
		return 0, false
	}
	return systems[key[0]-'1'], true
}

// SpacingText renders an interval in the units of its system.
func SpacingText(system grid.System, s grid.Spacing) string {
	if s.Label != "" {
		return s.Label
	}
	v := s.Interval
	switch system {
	case grid.DecimalDegree:
		return fmt.Sprintf("%g°", v)
	case grid.DegreeMinuteSecond:
		switch {
		case v >= 1:
			return fmt.Sprintf("%g°", v)
		case v*60 >= 1:
			return fmt.Sprintf("%g'", round6(v*60))
		default:
			return fmt.Sprintf("%g\"", round6(v*3600))
		}
	case grid.UTM, grid.MGRS:
		if v >= 1000 {
			return fmt.Sprintf("%g km", v/1000)
		}
		return fmt.Sprintf("%g m", v)
	}
	return fmt.Sprintf("%g", v)
}

// round6 hides the float noise of minute and second fractions.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")). // Purple
		Width(m.width - 2).                     // -2 for border
		Height(m.height - 2).                   // -2 for border
		Padding(0, 1)

	inner := m.width - 2 - 2 // -2 border, -2 padding
	if inner < 1 {
		inner = 1
	}
	header := lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Width(inner).
		Render("Grid")
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	// Highlight the active system, the rest stay plain
	rows := []string{header}
	for i, s := range grid.Systems() {
		line := fmt.Sprintf("%d %s", i+1, s.Title())
		if s == m.active {
			line = active.Render(truncate("> "+line, inner))
		} else {
			line = truncate("  "+line, inner)
		}
		rows = append(rows, line)
	}
	rows = append(rows, "",
		truncate("Spacing "+m.spacing, inner),
		truncate(fmt.Sprintf("Lines   %d", m.lines), inner),
	)
	if m.zones > 0 {
		rows = append(rows, truncate(fmt.Sprintf("Zones   %d", m.zones), inner))
	}

	// Keep within the box so it does not grow vertically
	contentHeight := m.height - 2
	if contentHeight < 0 {
		contentHeight = 0
	}
	if len(rows) > contentHeight {
		rows = rows[:contentHeight]
	}
	return style.Render(strings.Join(rows, "\n"))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s
}
