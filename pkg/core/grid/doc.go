// Package grid places the dividing lines of a composition and partitions the
// canvas into cells.
//
// # Line Placement
//
// [DistributeLines] spreads Count lines evenly across the usable span of one
// axis and then bends that structured baseline toward either favorite ratios
// or random jitter:
//
//   - Distribution above 0.5 snaps each base position to the first favorite
//     ratio (see [Favorites]) within 10% of the usable span.
//   - Jitter scales with Randomness*(1-Distribution): fully structured
//     placement has none, fully random placement has all of it.
//   - Every position is clamped to stay [EdgeInset] away from the margins.
//
// The result is sorted but not deduplicated.
//
// # Partitioning
//
// [Partition] combines the vertical and horizontal coordinates with the
// canvas edges and returns every cell whose edges are at least the minimum
// size. Each [Cell] remembers its column (I) and row (J) index, which later
// stages use to detect the top-left corner.
package grid
