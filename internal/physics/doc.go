// Package physics provides the particle field simulated behind the site.
//
// A [Field] owns a set of [Particle] values and advances them once per
// frame:
//
//   - pairs closer than the connection distance become [Connection] lines
//     whose opacity falls off linearly with distance
//   - particles inside the pointer radius are pulled toward the pointer and
//     joined to it by a [Link]
//   - every velocity is damped, positions wrap at the surface edges
//
// # Frames
//
// [Field.Advance] records a [Frame] which [Field.Render] draws onto any
// [dynamo.Surface]. Splitting the two keeps the simulation testable
// without a raster target:
//
//	f := physics.NewField(config.DefaultHero(), rng)
//	f.Initialize(160, dynamo.Size{W: 1280, H: 720})
//	f.Advance(pointer)
//	if err := f.Validate(); err != nil {
//	    // a NaN crept in
//	}
package physics
