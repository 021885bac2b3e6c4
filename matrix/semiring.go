// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Describe the (combine, reduce, identity) operator pair a product runs under.
//   - Provide the two instantiations the engine needs: Standard (×, +, 0) and
//     Tropical (+, min, Sentinel).
//
// Contract (tropical):
//   - TropicalCombine(Sentinel, x) == TropicalCombine(x, Sentinel) == Sentinel.
//   - TropicalReduce(Sentinel, x) == x.

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Semiring names accepted by SemiringByName.
const (
	SemiringStandard = "standard"
	SemiringTropical = "tropical"
	semiringMinPlus  = "min-plus"
)

// Semiring is a pluggable operator pair for Product.
// Combine replaces multiplication, Reduce replaces summation and Identity
// seeds every reduction.
type Semiring struct {
	Name     string
	Combine  func(a, b float64) float64
	Reduce   func(acc, v float64) float64
	Identity float64
}

// Validate reports ErrIncompleteSemiring when an operator is missing.
func (s Semiring) Validate() error {
	if s.Combine == nil || s.Reduce == nil {
		return fmt.Errorf("semiring %q: %w", s.Name, ErrIncompleteSemiring)
	}

	return nil
}

// Standard returns the ordinary numeric semiring (×, +, 0).
func Standard() Semiring {
	return Semiring{
		Name:     SemiringStandard,
		Combine:  func(a, b float64) float64 { return a * b },
		Reduce:   func(acc, v float64) float64 { return acc + v },
		Identity: 0,
	}
}

// Tropical returns the min-plus semiring over float64 extended with Sentinel.
func Tropical() Semiring {
	return Semiring{
		Name:     SemiringTropical,
		Combine:  TropicalCombine,
		Reduce:   TropicalReduce,
		Identity: Sentinel,
	}
}

// TropicalCombine adds a and b unless either is the sentinel, in which case
// the sentinel is returned without touching real addition.
func TropicalCombine(a, b float64) float64 {
	if IsSentinel(a) || IsSentinel(b) {
		return Sentinel
	}

	return a + b
}

// TropicalReduce keeps the smaller value. The sentinel is its identity.
func TropicalReduce(acc, v float64) float64 {
	return math.Min(acc, v)
}

// SemiringByName resolves "standard", "tropical" or "min-plus" (case-insensitive).
func SemiringByName(name string) (Semiring, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SemiringStandard:
		return Standard(), nil
	case SemiringTropical, semiringMinPlus:
		return Tropical(), nil
	default:
		return Semiring{}, fmt.Errorf("SemiringByName(%q): %w", name, ErrUnknownSemiring)
	}
}
