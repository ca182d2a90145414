package mapview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridmap/config"
	"gridmap/fix"
	"gridmap/grid"
	"gridmap/overlay"
)

func counter(h *Host, e overlay.Event) *int {
	n := new(int)
	h.On(e, func() { *n++ })
	return n
}

func TestHostBounds(t *testing.T) {
	h := NewHost(100, 50, orb.Point{0, 0}, 3)
	b := h.Bounds()

	// 800 px of a 2048 px world
	assert.InDelta(t, 70.3125, b.East, 1e-9)
	assert.InDelta(t, -70.3125, b.West, 1e-9)
	assert.InDelta(t, -b.South, b.North, 1e-9)
	assert.True(t, b.Valid())

	c := h.Project(orb.Point{0, 0})
	assert.InDelta(t, 50, c.X(), 1e-9)
	assert.InDelta(t, 25, c.Y(), 1e-9)

	nw := h.Project(orb.Point{b.West, b.North})
	assert.InDelta(t, 0, nw.X(), 1e-6)
	assert.InDelta(t, 0, nw.Y(), 1e-6)
}

func TestHostEvents(t *testing.T) {
	h := NewHost(80, 24, orb.Point{-81, 41.5}, 8)
	moves := counter(h, overlay.EventMove)
	resets := counter(h, overlay.EventViewReset)

	before := h.Center()
	h.Pan(panFactor, 0)
	assert.Equal(t, 1, *moves)
	assert.Greater(t, h.Center().Lon(), before.Lon())
	assert.InDelta(t, before.Lat(), h.Center().Lat(), 1e-9)

	h.Pan(0, panFactor)
	assert.Greater(t, h.Center().Lat(), before.Lat())

	h.SetZoom(9)
	assert.Equal(t, 1, *resets)
	h.SetZoom(9)
	assert.Equal(t, 1, *resets, "same zoom is not a change")
	h.SetZoom(40)
	assert.Equal(t, grid.MaxZoom, h.Zoom())

	h.Resize(100, 30)
	assert.Equal(t, 3, *resets)
	h.Resize(100, 30)
	assert.Equal(t, 3, *resets)

	h.SetView(orb.Point{190, 89}, 2)
	assert.InDelta(t, -170, h.Center().Lon(), 1e-9)
	assert.Less(t, h.Center().Lat(), 86.0)
	assert.Equal(t, 4, *resets)
}

func TestHostDrivesOverlay(t *testing.T) {
	h := NewHost(120, 40, orb.Point{-1, 10}, 7)
	c, err := overlay.New(grid.DecimalDegree, grid.DefaultOptions(), overlay.EventMove)
	require.NoError(t, err)
	require.NoError(t, c.Attach(h))

	first := append([]overlay.Layer(nil), h.Layers()...)
	require.NotEmpty(t, first)

	h.Pan(2, 0)
	require.NotEmpty(t, h.Layers())
	// identity, not value: lines at the same longitude are redrawn in place
	for _, l := range first {
		for _, have := range h.Layers() {
			assert.False(t, have == l, "layer %p survived the redraw", l)
		}
	}
	assert.Equal(t, len(c.Layers()), len(h.Layers()))

	h.SetZoom(3)
	assert.Equal(t, 3, c.Result().State.Zoom)
}

func TestModelKeys(t *testing.T) {
	conf := config.Default()
	conf.Map.DefaultZoom = 6
	conf.Station.GridSquare = "EN91"
	m, err := New(conf)
	require.NoError(t, err)
	assert.Equal(t, 6, m.Host().Zoom())
	assert.InDelta(t, -81, m.Host().Center().Lon(), 1e-9)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	cols, rows := m.Host().Size()
	assert.Equal(t, 58, cols)
	assert.Equal(t, 18, rows)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("K")})
	assert.Equal(t, 7, m.Host().Zoom())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	assert.Equal(t, 6, m.Host().Zoom())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Greater(t, m.Host().Center().Lat(), 41.5)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.InDelta(t, 41.5, m.Host().Center().Lat(), 1e-9)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.InDelta(t, 41.5, m.Host().Center().Lat(), 1e-9, "no fix yet")

	m, _ = m.Update(&fix.Fix{Lat: 48.1173, Lon: 11.5167})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.InDelta(t, 48.1173, m.Host().Center().Lat(), 1e-9)
	assert.Equal(t, 6, m.Host().Zoom())
}

func TestModelViewDrawsGrid(t *testing.T) {
	conf := config.Default()
	conf.Map.DefaultZoom = 5
	m, err := New(conf)
	require.NoError(t, err)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 82, Height: 26})

	opts := grid.DefaultOptions()
	opts.Labels = true
	c, err := overlay.New(grid.DecimalDegree, opts, overlay.EventMove)
	require.NoError(t, err)
	require.NoError(t, c.Attach(m.Host()))

	// render, not View: the border is drawn with the same glyphs
	out := m.render(m.Host().Size())
	assert.Contains(t, out, "│")
	assert.Contains(t, out, "─")
	assert.Contains(t, out, "0°N")
	assert.NotContains(t, out, "@")

	m, _ = m.Update(&fix.Fix{Lat: 1, Lon: 1})
	assert.Contains(t, m.render(m.Host().Size()), "@")
	assert.NotEmpty(t, m.View())
}

func TestCanvasLine(t *testing.T) {
	c := newCanvas(10, 5)
	c.line(orb.Point{-5, 2.5}, orb.Point{20, 2.5}, '─', lineStyle(grid.DefaultLineStyle))
	for x := 0; x < 10; x++ {
		assert.True(t, c.isSet(x, 2), "x=%d", x)
		assert.False(t, c.isSet(x, 1))
	}

	c = newCanvas(10, 5)
	c.line(orb.Point{0.5, 0.5}, orb.Point{4.5, 4.5}, '╲', lineStyle(grid.DefaultLineStyle))
	for i := 0; i < 5; i++ {
		assert.True(t, c.isSet(i, i))
	}

	c = newCanvas(10, 5)
	c.line(orb.Point{-5, -5}, orb.Point{-1, -1}, '╲', lineStyle(grid.DefaultLineStyle))
	assert.Equal(t, strings.Repeat(strings.Repeat(" ", 10)+"\n", 4)+strings.Repeat(" ", 10), c.String())
}

func TestLineChar(t *testing.T) {
	assert.Equal(t, '─', lineChar(orb.Point{0, 0}, orb.Point{10, 0.1}, grid.KindLine))
	assert.Equal(t, '═', lineChar(orb.Point{0, 0}, orb.Point{-10, 0}, grid.KindZone))
	assert.Equal(t, '│', lineChar(orb.Point{0, 0}, orb.Point{0.1, 10}, grid.KindLine))
	assert.Equal(t, '║', lineChar(orb.Point{0, 5}, orb.Point{0, 0}, grid.KindZone))
	assert.Equal(t, '╲', lineChar(orb.Point{0, 0}, orb.Point{2, 1}, grid.KindLine))
	assert.Equal(t, '╱', lineChar(orb.Point{0, 1}, orb.Point{2, 0}, grid.KindLine))
}

func TestLineStyle(t *testing.T) {
	st := lineStyle(grid.Style{Stroke: true, Color: "#333", Opacity: 0.3, Weight: 3})
	assert.True(t, st.GetFaint())
	assert.True(t, st.GetBold())

	st = lineStyle(grid.DefaultLineStyle)
	assert.False(t, st.GetFaint())
	assert.False(t, st.GetBold())
}
