package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ggwoodsman/w0rd/parameter"
)

// cell is one terminal cell's pending content
type cell struct {
	ch  rune
	fg  colorful.Color
	set bool
}

// Canvas rasterizes virtual-pixel drawing onto a terminal cell grid.
// Later draws overwrite earlier ones, which is what makes the scene's
// back-to-front draw order an occlusion scheme
type Canvas struct {
	cols, rows int
	wash       colorful.Color
	cells      []cell
}

// NewCanvas creates a canvas for the given terminal size
func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{
		cols:  cols,
		rows:  rows,
		cells: make([]cell, cols*rows),
	}
}

// Resize adjusts the cell grid; content is discarded
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = cols, rows
	c.cells = make([]cell, cols*rows)
}

// Size returns the canvas extent in virtual px
func (c *Canvas) Size() (w, h float64) {
	return float64(c.cols) * parameter.CellWidthPx, float64(c.rows) * parameter.CellHeightPx
}

// Clear resets every cell and records the background wash tint
func (c *Canvas) Clear(wash colorful.Color) {
	c.wash = wash
	for i := range c.cells {
		c.cells[i] = cell{}
	}
}

func (c *Canvas) cellAt(px, py float64) (int, int, bool) {
	if c.cols == 0 || c.rows == 0 {
		return 0, 0, false
	}
	cx := int(px / parameter.CellWidthPx)
	cy := int(py / parameter.CellHeightPx)
	if cx < 0 || cx >= c.cols || cy < 0 || cy >= c.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// PlotPx writes one glyph at a virtual-pixel position
func (c *Canvas) PlotPx(px, py float64, ch rune, fg colorful.Color) {
	cx, cy, ok := c.cellAt(px, py)
	if !ok {
		return
	}
	c.cells[cy*c.cols+cx] = cell{ch: ch, fg: fg, set: true}
}

// dotGlyphs ordered by visual weight
var dotGlyphs = []rune{'·', '∙', '•', '●', '⬤'}

// Dot plots a point whose glyph weight grows with size (virtual px)
func (c *Canvas) Dot(px, py, size float64, fg colorful.Color) {
	idx := int(size / 4)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(dotGlyphs) {
		idx = len(dotGlyphs) - 1
	}
	c.PlotPx(px, py, dotGlyphs[idx], fg)
}

// Line draws a straight segment between two virtual-pixel points
func (c *Canvas) Line(x0, y0, x1, y1 float64, ch rune, fg colorful.Color) {
	cx0, cy0, ok0 := c.cellAt(x0, y0)
	cx1, cy1, ok1 := c.cellAt(x1, y1)
	if !ok0 && !ok1 {
		return
	}
	// Clamp endpoints into the grid so partially visible edges still draw
	if !ok0 {
		cx0, cy0 = clampCell(x0, y0, c.cols, c.rows)
	}
	if !ok1 {
		cx1, cy1 = clampCell(x1, y1, c.cols, c.rows)
	}

	dx := abs(cx1 - cx0)
	dy := -abs(cy1 - cy0)
	sx, sy := 1, 1
	if cx0 > cx1 {
		sx = -1
	}
	if cy0 > cy1 {
		sy = -1
	}
	err := dx + dy
	x, y := cx0, cy0
	for {
		if x >= 0 && x < c.cols && y >= 0 && y < c.rows {
			idx := y*c.cols + x
			if !c.cells[idx].set {
				c.cells[idx] = cell{ch: ch, fg: fg, set: true}
			}
		}
		if x == cx1 && y == cy1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Ring draws a circle outline of the given pixel radius. Step count
// scales with radius so large rings stay closed
func (c *Canvas) Ring(px, py, radius float64, ch rune, fg colorful.Color) {
	steps := int(radius)
	if steps < 8 {
		steps = 8
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.PlotPx(px+radius*math.Cos(a), py+radius*math.Sin(a), ch, fg)
	}
}

// Label writes text starting at a virtual-pixel position
func (c *Canvas) Label(px, py float64, text string, fg colorful.Color) {
	cx, cy, ok := c.cellAt(px, py)
	if !ok {
		return
	}
	for i, r := range text {
		x := cx + i
		if x >= c.cols {
			return
		}
		c.cells[cy*c.cols+x] = cell{ch: r, fg: fg, set: true}
	}
}

// Flush writes the canvas to the screen. Empty cells get the wash tint as
// a dim background dot pattern would be noise; they render as spaces on
// the wash-blended default style
func (c *Canvas) Flush(screen tcell.Screen) {
	bg := toTcell(c.wash)
	base := tcell.StyleDefault.Background(bg)
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			cl := c.cells[y*c.cols+x]
			if !cl.set {
				screen.SetContent(x, y, ' ', nil, base)
				continue
			}
			screen.SetContent(x, y, cl.ch, nil, base.Foreground(toTcell(cl.fg)))
		}
	}
	screen.Show()
}

// CellContent exposes one cell for tests
func (c *Canvas) CellContent(x, y int) (rune, bool) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return 0, false
	}
	cl := c.cells[y*c.cols+x]
	return cl.ch, cl.set
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func clampCell(px, py float64, cols, rows int) (int, int) {
	cx := int(px / parameter.CellWidthPx)
	cy := int(py / parameter.CellHeightPx)
	if cx < 0 {
		cx = 0
	}
	if cx >= cols {
		cx = cols - 1
	}
	if cy < 0 {
		cy = 0
	}
	if cy >= rows {
		cy = rows - 1
	}
	return cx, cy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
