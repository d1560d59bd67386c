package export

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
)

// WritePNG rasterizes the frame and encodes it as PNG.
func WritePNG(w io.Writer, f Frame) error {
	width, height := f.Proj.Outer()
	dc := gg.NewContext(width, height)

	dc.SetColor(parseColor(f.Style.Background, color.White))
	dc.Clear()

	dc.SetColor(parseColor(f.Style.Edge, color.Black))
	dc.SetLineWidth(1)
	for _, e := range f.Edges {
		x0, y0, x1, y1 := f.Proj.Segment(e)
		dc.DrawLine(float64(x0), float64(y0), float64(x1), float64(y1))
		dc.Stroke()
	}

	if f.Style.DotSize > 0 {
		r := float64(f.Style.DotSize) / 2
		dc.SetColor(parseColor(f.Style.Dot, color.RGBA{0, 0, 255, 255}))
		for _, p := range vertices(f.Edges) {
			x, y := f.Proj.Point(p)
			dc.DrawCircle(float64(x), float64(y), r)
			dc.Fill()
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// parseColor reads #rrggbb, returning fallback for anything else.
func parseColor(hex string, fallback color.Color) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
