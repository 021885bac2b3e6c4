// Package apsp computes all-pairs shortest distances on a ring of P ranks by
// repeated semiring matrix products.
//
// Overview:
//
//   - A is the N×N distance matrix, split into row bands a of N/P rows.
//     B is the same matrix stored column-major and split into column bands b
//     of N/P columns. a stays on its rank for the whole run; b rotates.
//   - Under the tropical (min, +) semiring one product A⊗B extends every
//     shortest path by one hop; N products (rounds) give the closure.
//
// Round arithmetic:
//
//   - Let own be the rank's ring distance from the transmitter, so own is
//     also the index of the column band it was scattered.
//   - At step s (0 ≤ s < P) the rank holds the band that started s hops
//     upstream, band (own−s+P) mod P. The local product a⊗b is therefore
//     the output block at column offset ((own−s+P) mod P)·N/P.
//   - After each step b is shifted to Next. After P steps b is home again,
//     so the next round starts from the same state.
//
// Pipeline (Run):
//
//  1. Broadcast N from the transmitter. N = 0 means no input (ErrNoInput).
//  2. Check N mod P == 0 on every rank (ErrIndivisible).
//  3. Scatter A row-major and B column-major.
//  4. Closure: N rounds unless WithRounds says otherwise.
//  5. Gather the row bands at the transmitter.
//
// Complexity:
//
//   - One round: P local products of (N/P)×N by N×(N/P), i.e. O(N³/P) work
//     per rank, and P shifts of N²/P cells.
//   - Closure: N rounds, O(N⁴/P) work per rank and O(N³) cells moved per rank.
//
// Errors:
//
//   - ErrNoInput, ErrIndivisible, ErrBlockShape, and the wrapped errors of
//     package ring and package matrix.
package apsp
