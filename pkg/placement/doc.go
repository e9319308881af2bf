// Package placement assigns grid positions by walking a canonical ordering
// along the contour, using the domino chains and U-sets from package domino.
//
// # Algorithms
//
// Two placement rules are provided:
//
//   - [Visibility] (Algorithm A) puts vk above wp, one column right of it
//     when vk is unstable, and searches upward for the first row from which
//     every run vertex is visible past the contour.
//   - [Slack] (Algorithm B) replaces the geometric search by the integer
//     slack 4*dx + dy between contour vertices. It is experimental: its
//     output is not guaranteed to be a valid drawing.
//
// Both seed v1, v3, v2 on (0, 0), (1, 1), (2, 0) and move whole U-sets
// right when a vertex needs room, so earlier placements are never undone.
//
// # Tracing
//
// With [Options.Trace] set, every step is recorded as a [Step] holding the
// contour and a snapshot of all positions, which is what the step viewer of
// the CLI replays. With [Options.Logger] set, each step is logged at debug
// level and the final extent at info level.
package placement
