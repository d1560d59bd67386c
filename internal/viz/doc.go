// Package viz is the terminal front-end of meshview.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the viewer, a mesh canvas above Run/Pause/Quit buttons
//   - [Canvas]: Braille-based pixel canvas, 2x4 sub-pixels per cell
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Enter - Press the highlighted (default) button
//	R     - Run, or resume after a pause
//	P     - Pause
//	Space - Toggle run and pause
//	G     - Toggle the edge-count graph
//	T     - Cycle color themes
//	S     - Save an SVG snapshot
//	Q     - Quit
//
// The worker goroutine never touches the Model. It marks the canvas dirty,
// and anything else it needs done is sent into the program as a message so
// that it runs inside Update.
package viz
