package header

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridmap/grid"
)

// Model holds the header's state
type Model struct {
	width  int
	system grid.System
}

// New creates a new header model
func New(system grid.System) Model {
	return Model{
		width:  80, // Default width, will be updated
		system: system,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) SetSystem(system grid.System) {
	m.system = system
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width // Just store the width
	}
	return m, nil
}

func (m Model) View() string {
	title := "GridMap · " + m.system.Title()

	// Style for the header
	style := lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("63")).  // Purple background (matches map border)
		Foreground(lipgloss.Color("255")). // White text
		Width(m.width).                    // Full terminal width
		Align(lipgloss.Center)             // Center the text

	return style.Render(title)
}
