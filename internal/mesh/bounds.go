package mesh

import (
	"fmt"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Bounds is the data-space bounding box announced by the producer on the
// second input line. It is fixed for the whole session.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
}

func (b Bounds) Validate() error {
	if b.MaxX <= b.MinX || b.MaxY <= b.MinY {
		return fmt.Errorf("%w: x [%d, %d] y [%d, %d]", ErrDegenerateBounds, b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
	return nil
}

func (b Bounds) Rect() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: float64(b.MinX), Hi: float64(b.MaxX)},
		Y: r1.Interval{Lo: float64(b.MinY), Hi: float64(b.MaxY)},
	}
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Point) bool {
	return b.Rect().ContainsPoint(r2.Point{X: float64(p.X), Y: float64(p.Y)})
}

func (b Bounds) String() string {
	return fmt.Sprintf("%d %d %d %d", b.MinX, b.MaxX, b.MinY, b.MaxY)
}

// Projection maps data coordinates linearly onto a Width x Height drawing
// area inset by Border pixels on every side. The y axis is inverted so that
// larger data y values land nearer the top.
type Projection struct {
	Bounds Bounds
	Width  int
	Height int
	Border int
}

func NewProjection(b Bounds, width, height, border int) (Projection, error) {
	if err := b.Validate(); err != nil {
		return Projection{}, err
	}
	if width <= 0 || height <= 0 {
		return Projection{}, fmt.Errorf("%w: %dx%d", ErrCanvasSize, width, height)
	}
	return Projection{Bounds: b, Width: width, Height: height, Border: border}, nil
}

// X truncates toward zero, matching integer conversion of the scaled value.
func (p Projection) X(x int) int {
	return int((float64(x)-float64(p.Bounds.MinX))*float64(p.Width)/
		(float64(p.Bounds.MaxX)-float64(p.Bounds.MinX))) + p.Border
}

func (p Projection) Y(y int) int {
	return int((float64(p.Bounds.MaxY)-float64(y))*float64(p.Height)/
		(float64(p.Bounds.MaxY)-float64(p.Bounds.MinY))) + p.Border
}

func (p Projection) Point(pt Point) (int, int) {
	return p.X(pt.X), p.Y(pt.Y)
}

// Segment returns the pixel endpoints of e.
func (p Projection) Segment(e Edge) (x0, y0, x1, y1 int) {
	return p.X(e.AX), p.Y(e.AY), p.X(e.BX), p.Y(e.BY)
}

// Outer returns the full surface size including the border on both sides.
func (p Projection) Outer() (int, int) {
	return p.Width + 2*p.Border, p.Height + 2*p.Border
}
