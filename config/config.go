package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"gridmap/geo"
	"gridmap/grid"
	"gridmap/overlay"
)

// DefaultPath is where LoadConfig looks for the configuration file.
const DefaultPath = "config.toml"

// MapConfig holds map-specific settings
type MapConfig struct {
	DefaultZoom int      `toml:"defaultzoom"`
	CenterLat   *float64 `toml:"center_lat"`
	CenterLon   *float64 `toml:"center_lon"`
	Shapefile   string   `toml:"shapefile"`
}

// StationConfig holds settings specific to the user's station
type StationConfig struct {
	GridSquare string `toml:"gridsquare"`
}

// SpacingConfig overrides the built-in spacing table of one grid system.
type SpacingConfig struct {
	Intervals []float64 `toml:"intervals"`
	Labels    []string  `toml:"labels"`
}

// GridConfig selects and styles the coordinate grid.
type GridConfig struct {
	System    string                   `toml:"system"`
	Redraw    string                   `toml:"redraw"`
	Pad       *float64                 `toml:"pad"`
	Labels    bool                     `toml:"labels"`
	LineStyle *grid.Style              `toml:"linestyle"`
	ZoneStyle *grid.Style              `toml:"zonestyle"`
	Spacing   map[string]SpacingConfig `toml:"spacing"`
}

// GPSConfig points at an NMEA receiver. An empty device disables it.
type GPSConfig struct {
	Device string `toml:"device"`
	Baud   int    `toml:"baud"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	File       string `toml:"file"`
	MaxSize    int    `toml:"maxsize"`
	MaxBackups int    `toml:"maxbackups"`
	MaxAge     int    `toml:"maxage"`
}

// Config holds all application configuration
type Config struct {
	Station StationConfig `toml:"station"`
	Map     MapConfig     `toml:"map"`
	Grid    GridConfig    `toml:"grid"`
	GPS     GPSConfig     `toml:"gps"`
	Log     LogConfig     `toml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	pad := grid.DefaultOptions().Pad
	return Config{
		Map: MapConfig{DefaultZoom: 3},
		Grid: GridConfig{
			System: grid.DecimalDegree.String(),
			Redraw: string(overlay.EventMove),
			Pad:    &pad,
		},
		GPS: GPSConfig{Baud: 4800},
		Log: LogConfig{MaxSize: 10, MaxBackups: 3, MaxAge: 28},
	}
}

// LoadConfig reads the configuration from config.toml in the working
// directory.
func LoadConfig() (Config, error) {
	return Load(DefaultPath)
}

// Load reads and validates the configuration at path. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	conf := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return conf, err
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

// Validate checks everything a redraw relies on, so that spacing problems
// surface at load time rather than on screen.
func (c Config) Validate() error {
	if _, err := grid.ParseSystem(c.Grid.System); err != nil {
		return err
	}
	if _, err := overlay.ParseEvent(c.Grid.Redraw); err != nil {
		return err
	}
	if c.Grid.Pad != nil && *c.Grid.Pad < 0 {
		return &grid.ConfigurationError{System: c.Grid.System, Reason: fmt.Sprintf("pad %v must be >= 0", *c.Grid.Pad)}
	}
	if _, err := c.Tables(); err != nil {
		return err
	}
	if c.Station.GridSquare != "" {
		if _, err := geo.GridSquareCenter(c.Station.GridSquare); err != nil {
			return fmt.Errorf("station gridsquare: %w", err)
		}
	}
	if c.GPS.Device != "" && c.GPS.Baud <= 0 {
		return fmt.Errorf("gps baud %d must be positive", c.GPS.Baud)
	}
	return nil
}

// System is the configured grid system.
func (c Config) System() grid.System {
	s, _ := grid.ParseSystem(c.Grid.System)
	return s
}

// Trigger is the configured redraw event.
func (c Config) Trigger() overlay.Event {
	e, err := overlay.ParseEvent(c.Grid.Redraw)
	if err != nil {
		return overlay.EventMove
	}
	return e
}

// Tables merges the spacing overrides into the built-in tables. Labels of
// a distance table are kept when only its intervals are overridden.
func (c Config) Tables() (grid.Tables, error) {
	tables := grid.DefaultTables()
	for name, sc := range c.Grid.Spacing {
		system, err := grid.ParseSystem(name)
		if err != nil {
			return nil, err
		}
		t := tables[system]
		if sc.Intervals != nil {
			t.Intervals = sc.Intervals
		}
		if sc.Labels != nil {
			t.Labels = sc.Labels
		}
		if err := t.Validate(system); err != nil {
			return nil, err
		}
		tables[system] = t
	}
	return tables, nil
}

// GridOptions builds the grid options from the configuration.
func (c Config) GridOptions() (grid.Options, error) {
	opts := grid.DefaultOptions()
	tables, err := c.Tables()
	if err != nil {
		return opts, err
	}
	opts.Tables = tables
	opts.Labels = c.Grid.Labels
	if c.Grid.Pad != nil {
		opts.Pad = *c.Grid.Pad
	}
	if c.Grid.LineStyle != nil {
		opts.LineStyle = *c.Grid.LineStyle
	}
	if c.Grid.ZoneStyle != nil {
		opts.ZoneStyle = *c.Grid.ZoneStyle
	}
	return opts, nil
}

// Center is the configured start position: the explicit centre if set,
// else the station grid square. ok is false when neither is configured.
func (c Config) Center() (lat, lon float64, ok bool) {
	if c.Map.CenterLat != nil && c.Map.CenterLon != nil {
		return *c.Map.CenterLat, *c.Map.CenterLon, true
	}
	if c.Station.GridSquare != "" {
		p, err := geo.GridSquareCenter(c.Station.GridSquare)
		if err == nil {
			return p.Lat(), p.Lon(), true
		}
	}
	return 0, 0, false
}
