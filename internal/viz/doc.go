// Package viz is the terminal view of the simulation, built on Bubble Tea.
//
// Bodies are drawn onto a braille [Canvas] (2x4 sub-pixels per cell) through
// a [CanvasRenderer], which satisfies sim.Renderer. The side panel shows run
// counters and an energy plot.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Restart from the seed
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
