// Package viz renders particle fields in the terminal.
//
// A [Surface] rasterises draw calls onto a Braille [Canvas]: every cell
// holds 2x4 dots, and each dot stands for Scale logical pixels, so a
// field sized for a browser window keeps its proportions in a terminal.
// Strokes fainter than the surface threshold are skipped.
//
// [Model] is a Bubble Tea program around one driver. Mouse motion becomes
// pointer events, terminal resizes become resize events, and a tick
// message steps the manual host.
//
// # Key Bindings
//
//	Space - Pause/Resume (stops and restarts the driver)
//	R     - Redistribute particles
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
package viz
