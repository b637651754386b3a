// Package viz draws flingball boards in the terminal.
//
// A [Renderer] rasterizes a board onto a Braille [Canvas], four sub-pixels
// per board unit along each axis, coloring each character cell by the entity
// drawn into it. [LiveModel] is a Bubble Tea program that animates a board
// using the wall-clock time between frames as the step size.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Rebuild the board from its source
//	T     - Cycle color themes
//	Q     - Quit
package viz
