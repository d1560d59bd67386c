package mesh

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"
)

// ClipSegment clips the segment (x0,y0)-(x1,y1) to the pixel box
// [0,w-1] x [0,h-1]. ok is false when nothing of the segment lies inside.
// Clipped endpoints are rounded to the nearest pixel.
func ClipSegment(x0, y0, x1, y1, w, h int) (cx0, cy0, cx1, cy1 int, ok bool) {
	if w < 1 || h < 1 {
		return 0, 0, 0, 0, false
	}
	box := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: float64(w - 1), Y: float64(h - 1)})
	a := r2.Point{X: float64(x0), Y: float64(y0)}
	b := r2.Point{X: float64(x1), Y: float64(y1)}
	if box.ContainsPoint(a) && box.ContainsPoint(b) {
		return x0, y0, x1, y1, true
	}

	ca, cb, ok := s2.ClipEdge(a, b, box)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return pixel(ca.X, w), pixel(ca.Y, h), pixel(cb.X, w), pixel(cb.Y, h), true
}

func pixel(v float64, n int) int {
	p := int(math.Round(v))
	if p < 0 {
		return 0
	}
	if p > n-1 {
		return n - 1
	}
	return p
}
