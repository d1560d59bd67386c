package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/san-kum/meshview/internal/mesh"
)

// Style controls how a mesh is drawn into an image.
type Style struct {
	Background string
	Edge       string
	Dot        string
	DotSize    int
}

// DefaultStyle draws black edges with blue endpoint dots on white.
var DefaultStyle = Style{
	Background: "#ffffff",
	Edge:       "#000000",
	Dot:        "#0000ff",
	DotSize:    6,
}

// Frame is everything needed to draw one picture of the mesh.
type Frame struct {
	Title     string
	SessionID string
	Edges     []mesh.Edge
	Proj      mesh.Projection
	Style     Style
}

// WriteSVG writes the frame as an SVG document sized to the projection's
// outer dimensions.
func WriteSVG(w io.Writer, f Frame) error {
	ew := &errWriter{w: w}
	width, height := f.Proj.Outer()

	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Title(f.Title)
	if f.SessionID != "" {
		canvas.Desc("meshview session " + f.SessionID)
	}
	canvas.Rect(0, 0, width, height, "fill:"+f.Style.Background)

	canvas.Gid("edges")
	for _, e := range f.Edges {
		x0, y0, x1, y1 := f.Proj.Segment(e)
		canvas.Line(x0, y0, x1, y1, "stroke:"+f.Style.Edge+";stroke-width:1")
	}
	canvas.Gend()

	if f.Style.DotSize > 0 {
		r := f.Style.DotSize / 2
		if r < 1 {
			r = 1
		}
		canvas.Gid("vertices")
		for _, p := range vertices(f.Edges) {
			x, y := f.Proj.Point(p)
			canvas.Circle(x, y, r, "fill:"+f.Style.Dot)
		}
		canvas.Gend()
	}

	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

// vertices returns each distinct endpoint once, in edge order.
func vertices(edges []mesh.Edge) []mesh.Point {
	seen := make(map[mesh.Point]bool, len(edges))
	out := make([]mesh.Point, 0, len(edges))
	for _, e := range edges {
		for _, p := range []mesh.Point{e.A(), e.B()} {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
