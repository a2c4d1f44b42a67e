// Package viz provides the live terminal view of the cloth.
//
// The view is a Bubble Tea program drawing onto a Braille [Canvas] through
// [TermRenderer], which implements sim.Renderer. One world unit maps to one
// Braille dot, so the default 160x96 surface fills an 80x24 cell canvas.
// Anchors are drawn in the theme accent color.
//
// # Key Bindings
//
//	Mouse - Drag the cloth (motion only, no button needed)
//	Space - Pause/Resume simulation
//	R     - Reset to the initial lattice
//	S     - Toggle gauss-seidel/jacobi
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help
//
// # Recording
//
// G starts capturing every frame; pressing it again, or quitting, writes
// cloth.gif to the current directory.
package viz
