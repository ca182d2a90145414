package mapview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"

	"gridmap/grid"
	"gridmap/overlay"
)

// cell is a single character with its style
type cell struct {
	char  rune
	style lipgloss.Style
	set   bool
}

// canvas is a 2D grid of cells, (0,0) at top-left
type canvas struct {
	width  int
	height int
	cells  [][]cell
}

func newCanvas(width, height int) *canvas {
	cells := make([][]cell, height)
	for i := range cells {
		cells[i] = make([]cell, width)
	}
	return &canvas{width: width, height: height, cells: cells}
}

// cellAt is the cell containing a point in fractional cell coordinates.
func cellAt(p orb.Point) (int, int) {
	return int(math.Floor(p.X())), int(math.Floor(p.Y()))
}

func (c *canvas) set(x, y int, char rune, style lipgloss.Style) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.cells[y][x] = cell{char: char, style: style, set: true}
	}
}

func (c *canvas) isSet(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height && c.cells[y][x].set
}

func (c *canvas) text(x, y int, s string, style lipgloss.Style) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, style)
	}
}

// line draws a segment given in fractional cell coordinates, clipped to
// the canvas, with Bresenham's algorithm.
func (c *canvas) line(a, b orb.Point, char rune, style lipgloss.Style) {
	box := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{float64(c.width) - 0.5, float64(c.height) - 0.5}}
	for _, seg := range clip.LineString(box, orb.LineString{a, b}) {
		for i := 0; i+1 < len(seg); i++ {
			x0, y0 := cellAt(seg[i])
			x1, y1 := cellAt(seg[i+1])
			c.bresenham(x0, y0, x1, y1, char, style)
		}
	}
}

func (c *canvas) bresenham(x0, y0, x1, y1 int, char rune, style lipgloss.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	for {
		c.set(x0, y0, char, style)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// String renders the canvas, merging runs of equally styled cells.
func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		var run strings.Builder
		var runStyle *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle == nil {
				b.WriteString(run.String())
			} else {
				b.WriteString(runStyle.Render(run.String()))
			}
			run.Reset()
		}
		for x := range row {
			cl := &row[x]
			var st *lipgloss.Style
			if cl.set {
				st = &cl.style
			}
			if !sameStyle(st, runStyle) {
				flush()
				runStyle = st
			}
			if cl.set {
				run.WriteRune(cl.char)
			} else {
				run.WriteRune(' ')
			}
		}
		flush()
		if y < len(c.cells)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func sameStyle(a, b *lipgloss.Style) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.GetForeground() == b.GetForeground() && a.GetBold() == b.GetBold() && a.GetFaint() == b.GetFaint()
}

// lineStyle maps a grid stroke record onto terminal attributes.
func lineStyle(s grid.Style) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
	if s.Opacity < 0.5 {
		st = st.Faint(true)
	}
	if s.Weight >= 2 {
		st = st.Bold(true)
	}
	return st
}

// lineChar picks a glyph for a segment from its on-screen slope.
func lineChar(a, b orb.Point, kind grid.Kind) rune {
	dx := b.X() - a.X()
	dy := (b.Y() - a.Y()) * cellHeight / cellWidth
	angle := math.Abs(math.Atan2(dy, dx)) * 180 / math.Pi
	if angle > 90 {
		angle = 180 - angle
	}
	zone := kind == grid.KindZone
	switch {
	case angle < 22.5 && zone:
		return '═'
	case angle < 22.5:
		return '─'
	case angle > 67.5 && zone:
		return '║'
	case angle > 67.5:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func (c *canvas) polyline(p *overlay.Polyline, project func(orb.Point) orb.Point) {
	if !p.Style.Stroke {
		return
	}
	style := lineStyle(p.Style)
	for i := 0; i+1 < len(p.Path); i++ {
		a, b := project(p.Path[i]), project(p.Path[i+1])
		c.line(a, b, lineChar(a, b, p.Kind), style)
	}
}
