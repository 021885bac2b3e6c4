// SPDX-License-Identifier: MIT

// Package topology maps a worker's rank and the world size to its ring
// neighbours.
//
// A Ring is an immutable (rank, size) pair. Every address function is pure:
//
//	Next()     = (rank+1) mod size
//	Previous() = (rank-1+size) mod size
//	Offset(k)  = (rank+k) mod size
//
// For every rank in [0,size): Next(Previous(r)) == r and Previous(Next(r)) == r.
package topology

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRing is returned when the world size is smaller than one.
	ErrEmptyRing = errors.New("topology: world size must be >= 1")

	// ErrRankOutOfRange is returned when rank is not in [0,size).
	ErrRankOutOfRange = errors.New("topology: rank out of range")
)

// Ring is a worker's view of the logical ring.
type Ring struct {
	rank int
	size int
}

// New validates (rank, size) and returns the corresponding Ring.
func New(rank, size int) (Ring, error) {
	if size < 1 {
		return Ring{}, fmt.Errorf("New(%d,%d): %w", rank, size, ErrEmptyRing)
	}
	if rank < 0 || rank >= size {
		return Ring{}, fmt.Errorf("New(%d,%d): %w", rank, size, ErrRankOutOfRange)
	}

	return Ring{rank: rank, size: size}, nil
}

// Rank returns the worker's 0-based position.
func (r Ring) Rank() int { return r.rank }

// Size returns the number of workers.
func (r Ring) Size() int { return r.size }

// Next returns the ring successor.
func (r Ring) Next() int { return Next(r.rank, r.size) }

// Previous returns the ring predecessor.
func (r Ring) Previous() int { return Previous(r.rank, r.size) }

// Offset returns the rank k hops downstream (negative k walks upstream).
func (r Ring) Offset(k int) int { return mod(r.rank+k, r.size) }

// Distance returns how many hops downstream of from this rank sits.
// Distance(rank) == 0; Distance(Previous()) == 1.
func (r Ring) Distance(from int) int { return mod(r.rank-from, r.size) }

// IsEven reports the rank parity used by the rotation handshake.
func (r Ring) IsEven() bool { return r.rank%2 == 0 }

// String implements fmt.Stringer.
func (r Ring) String() string { return fmt.Sprintf("rank %d/%d", r.rank, r.size) }

// Next returns (rank+1) mod size.
func Next(rank, size int) int { return mod(rank+1, size) }

// Previous returns (rank-1+size) mod size.
func Previous(rank, size int) int { return mod(rank-1, size) }

// mod is the non-negative remainder.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}

	return m
}
