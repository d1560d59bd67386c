package mesh

import "fmt"

// Point is an integer data-space coordinate.
type Point struct {
	X, Y int
}

// Edge is a segment between two data-space points. Equality is structural,
// so an Edge is usable directly as a map key.
type Edge struct {
	AX, AY int
	BX, BY int
}

func NewEdge(ax, ay, bx, by int) Edge {
	return Edge{AX: ax, AY: ay, BX: bx, BY: by}
}

func (e Edge) A() Point { return Point{e.AX, e.AY} }
func (e Edge) B() Point { return Point{e.BX, e.BY} }

// Reversed returns the same segment with its endpoints swapped. The set treats
// it as a different edge.
func (e Edge) Reversed() Edge {
	return Edge{AX: e.BX, AY: e.BY, BX: e.AX, BY: e.AY}
}

func (e Edge) String() string {
	return fmt.Sprintf("%d %d %d %d", e.AX, e.AY, e.BX, e.BY)
}
