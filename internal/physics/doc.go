// Package physics provides the force law for the cloth lattice.
//
// Every node feels gravity plus a linear (Hookean) spring toward each of its
// axis neighbours:
//
//   - [SpringForce]: the contribution of one spring on one node
//   - [NetForce]: gravity plus every neighbour spring
//   - [Model]: reusable evaluator that can read from a snapshot lattice
//
// Springs are attractive when stretched past the rest length, repulsive when
// compressed and exactly zero at rest. Two coincident nodes have no spring
// direction, so that contribution is skipped for the tick instead of
// producing NaN.
//
// # Energy
//
// [KineticEnergy], [SpringEnergy] and [MaxSpeed] summarize a lattice for
// metrics and stability checks:
//
//	ke := physics.KineticEnergy(l)
package physics
