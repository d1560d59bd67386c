// Package mesh holds the data side of the viewer: edges keyed on their raw
// endpoint coordinates, the lock-guarded set the worker mutates and the
// renderers read, and the fixed bounding box that maps data coordinates onto
// a pixel canvas.
//
// Edges are not canonicalized. A producer that emits (a, b) for an insert and
// (b, a) for the matching delete leaves the edge in the set; the triangulation
// producers this viewer is built for always sort endpoints before printing.
package mesh
