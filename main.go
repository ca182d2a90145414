package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"gridmap/config"
	"gridmap/device/gps"
	"gridmap/fix"
	"gridmap/grid"
	"gridmap/overlay"
	"gridmap/ui/footer"
	"gridmap/ui/header"
	mapview "gridmap/ui/map"
	"gridmap/ui/msgbar"
	"gridmap/ui/sidebar"
)

// FixSource defines the interface for position receivers
type FixSource interface {
	Start(chan<- *fix.Fix)
	Close()
}

// --- Constants for Layout ---
const (
	sidebarWidth = 20
	msgbarHeight = 7
)

// gpsClosedMsg reports that the receiver stopped sending fixes
type gpsClosedMsg struct{}

// model holds the application's state
type model struct {
	width  int
	height int
	config config.Config

	headerModel  header.Model
	mapModel     mapview.Model
	msgbarModel  msgbar.Model
	footerModel  footer.Model
	sidebarModel sidebar.Model

	grid *overlay.Controller

	fixSource FixSource
	fixChan   chan *fix.Fix

	err error
}

// initialModel creates the starting model and attaches the grid to the map
func initialModel(conf config.Config, source FixSource, fChan chan *fix.Fix) model {
	mapMod, err := mapview.New(conf)
	if err != nil {
		return model{err: err}
	}

	opts, err := conf.GridOptions()
	if err != nil {
		return model{err: err}
	}
	ctl, err := overlay.New(conf.System(), opts, conf.Trigger())
	if err != nil {
		return model{err: err}
	}

	m := model{
		width:        80, // Default width
		height:       60, // Default height
		config:       conf,
		headerModel:  header.New(conf.System()),
		mapModel:     mapMod,
		msgbarModel:  msgbar.New(),
		footerModel:  footer.New(),
		sidebarModel: sidebar.New(conf.System()),
		grid:         ctl,
		fixSource:    source,
		fixChan:      fChan,
	}
	if err := ctl.Attach(mapMod.Host()); err != nil {
		m.msgbarModel.Add(fmt.Sprintf("grid: %v", err))
	}
	m.refresh()
	return m
}

// refresh copies the current view and grid result into the chrome
func (m *model) refresh() {
	h := m.mapModel.Host()
	m.headerModel.SetSystem(m.grid.System())
	m.sidebarModel.SetResult(m.grid.System(), m.grid.Result())
	m.footerModel.SetView(h.Center(), h.Zoom())
}

// listenForFixes is a tea.Cmd that waits for the next GPS fix
func (m model) listenForFixes() tea.Cmd {
	return func() tea.Msg {
		f, ok := <-m.fixChan
		if !ok {
			return gpsClosedMsg{}
		}
		return f
	}
}

func (m model) Init() tea.Cmd {
	if m.fixSource == nil {
		return nil
	}
	go m.fixSource.Start(m.fixChan)
	return m.listenForFixes()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}

	var (
		headerCmd  tea.Cmd
		mapCmd     tea.Cmd
		msgbarCmd  tea.Cmd
		footerCmd  tea.Cmd
		sidebarCmd tea.Cmd
		cmds       []tea.Cmd
	)

	switch msg := msg.(type) {
	case *fix.Fix:
		m.mapModel, mapCmd = m.mapModel.Update(msg)
		m.msgbarModel.Add(fmt.Sprintf("%s %s fix %.5f, %.5f (%d sats)", msg.Time, msg.Kind, msg.Lat, msg.Lon, msg.Satellites))
		cmds = append(cmds, mapCmd, m.listenForFixes())

	case gpsClosedMsg:
		log.Println("GPS connection closed")
		m.msgbarModel.Add("GPS connection closed")

	case error:
		m.err = msg
		log.Printf("Error received in Update: %v", msg)
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 1
		footerHeight := 1
		mainHeight := m.height - headerHeight - msgbarHeight - footerHeight
		mapWidth := m.width - sidebarWidth
		if mainHeight < 1 {
			mainHeight = 1
		}

		headerMsg := tea.WindowSizeMsg{Width: m.width, Height: headerHeight}
		m.headerModel, headerCmd = m.headerModel.Update(headerMsg)

		sidebarMsg := tea.WindowSizeMsg{Width: sidebarWidth, Height: mainHeight}
		m.sidebarModel, sidebarCmd = m.sidebarModel.Update(sidebarMsg)

		mapMsg := tea.WindowSizeMsg{Width: mapWidth, Height: mainHeight}
		m.mapModel, mapCmd = m.mapModel.Update(mapMsg)

		msgbarMsg := tea.WindowSizeMsg{Width: m.width, Height: msgbarHeight}
		m.msgbarModel, msgbarCmd = m.msgbarModel.Update(msgbarMsg)

		footerMsg := tea.WindowSizeMsg{Width: m.width, Height: footerHeight}
		m.footerModel, footerCmd = m.footerModel.Update(footerMsg)

		m.refresh()
		cmds = append(cmds, headerCmd, sidebarCmd, mapCmd, msgbarCmd, footerCmd)

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "1", "2", "3", "4", "5", "6":
			system, _ := sidebar.SystemForKey(key)
			if err := m.grid.SetSystem(system); err != nil {
				m.msgbarModel.Add(fmt.Sprintf("grid %s: %v", system, err))
			} else {
				m.msgbarModel.Add("grid: " + system.Title())
			}
			m.refresh()
		default:
			m.mapModel, mapCmd = m.mapModel.Update(msg)
			cmds = append(cmds, mapCmd)
			m.refresh()
		}

	default:
		m.headerModel, headerCmd = m.headerModel.Update(msg)
		m.mapModel, mapCmd = m.mapModel.Update(msg)
		m.msgbarModel, msgbarCmd = m.msgbarModel.Update(msg)
		m.footerModel, footerCmd = m.footerModel.Update(msg)
		m.sidebarModel, sidebarCmd = m.sidebarModel.Update(msg)
		cmds = append(cmds, headerCmd, mapCmd, msgbarCmd, footerCmd, sidebarCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Border(lipgloss.DoubleBorder(), true).
			BorderForeground(lipgloss.Color("9")).
			Padding(1).
			Align(lipgloss.Center, lipgloss.Center)
		return errorStyle.Render(
			"Error:\n\n" + m.err.Error() +
				"\n\nPress any key to quit.",
		)
	}

	headerView := m.headerModel.View()
	sidebarView := m.sidebarModel.View()
	mapView := m.mapModel.View()
	msgbarView := m.msgbarModel.View()
	footerView := m.footerModel.View()

	middleStack := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarView,
		mapView,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		headerView,
		middleStack,
		msgbarView,
		footerView,
	)
}

// setupLogging sends the log to a rotating file. Without one the log is
// discarded, since the terminal belongs to the UI.
func setupLogging(conf config.LogConfig) io.Closer {
	if conf.File == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}
	logger := &lumberjack.Logger{
		Filename:   conf.File,
		MaxSize:    conf.MaxSize,
		MaxBackups: conf.MaxBackups,
		MaxAge:     conf.MaxAge,
	}
	log.SetOutput(logger)
	return logger
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(path, system string, zoom int) (config.Config, error) {
	conf, err := config.Load(path)
	if err != nil {
		return conf, err
	}
	if system != "" {
		conf.Grid.System = system
	}
	if zoom >= 0 {
		conf.Map.DefaultZoom = grid.ClampZoom(zoom)
	}
	return conf, conf.Validate()
}

func runTUI(conf config.Config) error {
	closer := setupLogging(conf.Log)
	defer closer.Close()

	var source FixSource
	if conf.GPS.Device != "" {
		client, err := gps.Connect(conf.GPS)
		if err != nil {
			return fmt.Errorf("failed to connect to GPS: %w", err)
		}
		defer client.Close()
		source = client
	}

	// Create fix channel
	fixChan := make(chan *fix.Fix)

	// Run Bubble Tea
	p := tea.NewProgram(initialModel(conf, source, fixChan), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		system     string
		zoom       int
	)
	root := &cobra.Command{
		Use:           "gridmap",
		Short:         "Terminal map with coordinate grid overlays",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(configPath, system, zoom)
			if err != nil {
				return err
			}
			return runTUI(conf)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to config.toml")
	root.Flags().StringVarP(&system, "system", "s", "", "grid system: dd, dms, utm, mgrs, metric, imperial")
	root.Flags().IntVarP(&zoom, "zoom", "z", -1, "initial zoom level")

	root.AddCommand(newExportCmd(&configPath))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("gridmap: %v", err)
	}
}
