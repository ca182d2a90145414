package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridmap/grid"
	"gridmap/overlay"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
	assert.Equal(t, grid.DecimalDegree, conf.System())
	assert.Equal(t, overlay.EventMove, conf.Trigger())

	opts, err := conf.GridOptions()
	require.NoError(t, err)
	assert.Equal(t, 0.5, opts.Pad)
	assert.Equal(t, grid.DefaultLineStyle, opts.LineStyle)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[map]
defaultzoom = 9
center_lat = 52.5
center_lon = 13.4

[station]
gridsquare = "JO62"

[grid]
system = "mgrs"
redraw = "viewreset"
pad = 0.25
labels = true

[grid.zonestyle]
stroke = true
color = "#f00"
opacity = 1.0
weight = 2

[grid.spacing.metric]
intervals = [9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9]

[gps]
device = "localhost:2947"
baud = 9600

[log]
file = "grid.log"
`)
	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9, conf.Map.DefaultZoom)
	assert.Equal(t, grid.MGRS, conf.System())
	assert.Equal(t, overlay.EventViewReset, conf.Trigger())
	assert.Equal(t, "localhost:2947", conf.GPS.Device)
	assert.Equal(t, 9600, conf.GPS.Baud)
	assert.Equal(t, "grid.log", conf.Log.File)
	assert.Equal(t, 10, conf.Log.MaxSize, "unset keys keep their defaults")

	lat, lon, ok := conf.Center()
	require.True(t, ok)
	assert.Equal(t, 52.5, lat)
	assert.Equal(t, 13.4, lon)

	opts, err := conf.GridOptions()
	require.NoError(t, err)
	assert.Equal(t, 0.25, opts.Pad)
	assert.True(t, opts.Labels)
	assert.Equal(t, grid.Style{Stroke: true, Color: "#f00", Opacity: 1, Weight: 2}, opts.ZoneStyle)
	assert.Equal(t, grid.DefaultLineStyle, opts.LineStyle)

	metric := opts.Tables[grid.DistanceMetric]
	assert.Equal(t, 9.0, metric.Intervals[18])
	assert.Len(t, metric.Labels, grid.MaxZoom+1, "built-in labels are kept")
}

func TestCenterFromGridSquare(t *testing.T) {
	conf := Default()
	_, _, ok := conf.Center()
	assert.False(t, ok)

	conf.Station.GridSquare = "EN91"
	lat, lon, ok := conf.Center()
	require.True(t, ok)
	assert.Equal(t, 41.5, lat)
	assert.Equal(t, -81.0, lon)
}

func TestLoadRejectsBadConfiguration(t *testing.T) {
	for name, body := range map[string]string{
		"unknown system":  "[grid]\nsystem = \"gars\"\n",
		"unknown trigger": "[grid]\nredraw = \"zoomend\"\n",
		"negative pad":    "[grid]\npad = -1.0\n",
		"short table":     "[grid.spacing.utm]\nintervals = [1000, 100]\n",
		"short labels":    "[grid.spacing.imperial]\nlabels = [\"1 mi\"]\n",
		"unknown table":   "[grid.spacing.gars]\nintervals = [1]\n",
	} {
		_, err := Load(writeConfig(t, body))
		var cerr *grid.ConfigurationError
		assert.True(t, errors.As(err, &cerr), "%s: %v", name, err)
	}
}

func TestLoadRejectsOtherErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "[station]\ngridsquare = \"ZZ99\"\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[gps]\ndevice = \"/dev/ttyUSB0\"\nbaud = 0\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[grid\n"))
	assert.Error(t, err)
}

func TestSampleConfigLoads(t *testing.T) {
	conf, err := Load(filepath.Join("..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, grid.MGRS, conf.System())
	assert.Equal(t, "EN91", conf.Station.GridSquare)
}
