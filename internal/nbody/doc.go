// Package nbody implements planar Newtonian gravitation for a small fixed
// set of point masses.
//
// The package is the numerical core of gravsim:
//
//   - [Body]: point mass with position, velocity and a cached acceleration
//   - [System]: ordered fixed-size collection of bodies plus [Params]
//   - [System.Step]: one velocity-Verlet (leapfrog) step
//   - [System.ToCOMFrame]: one-shot shift into the center-of-mass frame
//
// Forces are softened: the squared pair distance is padded with the EPS2
// constant from [Params], so accelerations stay finite even when two bodies
// coincide. Pairs are accumulated symmetrically, which makes Newton's third
// law hold exactly and gives the integrator its momentum-conservation
// property.
//
// # Complexity
//
// Force evaluation visits every unordered pair once, O(N²) per call. The
// package targets handfuls of bodies, not large N.
//
// # Thread Safety
//
// A System is not safe for concurrent use. Parallelism belongs across
// independent System instances; the two force evaluations inside one step
// are sequentially dependent and are never split.
package nbody
