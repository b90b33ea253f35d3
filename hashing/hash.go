// Package hashing implements the linear hash h(x) = (a*x + b) mod m.
//
// Products and sums wrap around modulo 2^64 before the final reduction, so
// for large operands the result is the hash of the wrapped value rather than
// of the exact integer a*x + b.
package hashing

import "errors"

// ErrZeroModulus is returned when a hash is built with m = 0.
var ErrZeroModulus = errors.New("hashing: modulus must be nonzero")

// Source yields uniformly distributed 64-bit words.
type Source interface {
	Uint64() uint64
}

// SimpleHash computes (a*x + b) mod m with wrapping arithmetic. It panics if
// m is zero.
func SimpleHash(a, b, x, m uint64) uint64 {
	return (a*x + b) % m
}

// Linear is one member of the family h(x) = (A*x + B) mod M.
type Linear struct {
	A, B, M uint64
}

// NewLinear draws A and B in [0, m) from src.
func NewLinear(m uint64, src Source) (Linear, error) {
	if m == 0 {
		return Linear{}, ErrZeroModulus
	}
	return Linear{
		A: src.Uint64() % m,
		B: src.Uint64() % m,
		M: m,
	}, nil
}

// Sum hashes x.
func (h Linear) Sum(x uint64) uint64 {
	return SimpleHash(h.A, h.B, x, h.M)
}

// SumAll hashes every element of xs.
func (h Linear) SumAll(xs []uint64) []uint64 {
	out := make([]uint64, len(xs))
	for i, x := range xs {
		out[i] = h.Sum(x)
	}
	return out
}
