// Package generator runs the complete Mondrian composition algorithm.
//
// # Overview
//
// A [GenerativeEffect] turns a [Config] into a [composition.Composition]. The
// [Mondrian] effect chains the core stages, all sharing one random stream:
//
//	lines    grid.DistributeLines (vertical, then horizontal)
//	strokes  optional per-line thickness variation
//	cells    grid.Partition
//	select   compose.Select
//	color    compose.Assign
//
// The stream is seeded once per run. A non-zero [Config.Seed] makes the run
// fully reproducible. A zero seed draws a fresh seed from ambient entropy and
// records it in the composition, so any run can be replayed:
//
//	c := generator.New().Generate(cfg)
//	cfg.Seed = c.Seed
//	again := generator.New().Generate(cfg) // identical primitives
//
// # Graceful Degradation
//
// Generate never fails. Unknown palettes fall back to classic, non-positive
// line counts produce no lines, a non-positive density or a canvas without
// qualifying cells produces no blocks.
package generator
