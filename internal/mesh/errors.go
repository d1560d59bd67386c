package mesh

import "errors"

var (
	// ErrDegenerateBounds indicates a bounding box with zero or negative extent
	// on either axis; projecting through it would divide by zero.
	ErrDegenerateBounds = errors.New("mesh: degenerate bounding box")

	// ErrCanvasSize indicates a non-positive canvas side length.
	ErrCanvasSize = errors.New("mesh: canvas size must be positive")
)
