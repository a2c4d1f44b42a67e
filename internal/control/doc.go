// Package control turns user input into changes of lattice state.
//
// [Drag] converts successive pointer samples into instantaneous velocity
// impulses on every node inside a radius of the pointer. The impulse bypasses
// force and mass scaling: the raw pointer delta is added to velocity.
//
// # Usage
//
//	drag := control.NewDrag(cfg.DragRadius, false)
//	drag.Prime(width/2, height/2) // baseline, no impulse
//	drag.Move(l, x, y)            // on every motion sample
//
// Move must not run concurrently with a simulation tick.
package control
