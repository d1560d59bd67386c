package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/meshview/internal/mesh"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a grid of braille cells addressed in sub-pixels. Cells holding a
// vertex dot are marked so they can be coloured separately from edges.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	marks         [][]bool
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		marks:  make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.marks[i] = make([]bool, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the sub-pixel at (x, y). Points off the canvas are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.marks[i][j] = false
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm. The segment is clipped
// to the canvas first, so far-off endpoints cost nothing.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	x0, y0, x1, y1, ok := mesh.ClipSegment(x0, y0, x1, y1, c.SubWidth(), c.SubHeight())
	if !ok {
		return
	}
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
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
		c.Set(x0, y0)
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

// DrawDot lights a small plus-shaped blob centred on (x, y) and marks its
// cell. radius 0 lights a single sub-pixel.
func (c *Canvas) DrawDot(x, y, radius int) {
	c.Set(x, y)
	for r := 1; r <= radius; r++ {
		c.Set(x-r, y)
		c.Set(x+r, y)
		c.Set(x, y-r)
		c.Set(x, y+r)
	}
	if x >= 0 && y >= 0 && x/2 < c.Width && y/4 < c.Height {
		c.marks[y/4][x/2] = true
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the grid with edge cells in line and dotted cells in dot.
func (c *Canvas) Render(line, dot lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for start < len(row) {
			end := start
			for end < len(row) && c.marks[i][end] == c.marks[i][start] {
				end++
			}
			style := line
			if c.marks[i][start] {
				style = dot
			}
			b.WriteString(style.Render(string(row[start:end])))
			start = end
		}
		if i < len(c.Grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
