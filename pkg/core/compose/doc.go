// Package compose decides which cells of a grid get colored and with what.
//
// # Selection
//
// [Select] picks max(1, floor(len(cells)*density)) cells. The balance
// parameter chooses the [Policy]:
//
//   - above 0.7, [Strategic]: the largest cells by area
//   - below 0.3, [Random]: a uniform sample without replacement
//   - otherwise, [Weighted]: sequential draws weighted by area^balance
//
// # Coloring
//
// [Assign] maps each selected cell to a palette color. Above a balance of 0.8
// coloring is strategic: the top-left cell takes the palette's first color,
// large cells (over 10% of the canvas) draw by palette weight, and small
// cells are dropped 60% of the time or otherwise painted white. Below that
// threshold every cell draws by palette weight.
//
// Both functions take the run's random stream explicitly. They never mutate
// their inputs.
package compose
