// Package dynamo provides the core primitives shared by the particle engine
// and its render backends.
//
// The package defines the vocabulary the rest of the module speaks:
//
//   - [Vec2]: a point or displacement on the render plane
//   - [Size]: the dimensions of a render surface
//   - [RGBA]: a colour with a fractional alpha channel
//   - [Surface]: the immediate-mode 2D drawing target
//   - [Presenter]: optional hook for surfaces that buffer a frame
//
// # Example
//
//	field := physics.NewField(cfg, rand.New(rand.NewSource(1)))
//	field.Initialize(cfg.Count, dynamo.Size{W: 800, H: 600})
//	field.Advance(dynamo.Vec2{X: 400, Y: 300})
//	field.Render(surface)
//
// # Thread Safety
//
// Surfaces are NOT thread-safe. They are drawn from a single frame loop;
// see package sim for the hosts that provide one.
package dynamo
