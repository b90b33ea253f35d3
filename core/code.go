package core

import (
	"runtime"
	"sync"
)

// CodewordByCoefficients evaluates the polynomial with coefficients message at
// every element 0..p-1. p is not checked for primality.
func CodewordByCoefficients(message []uint64, p uint64) []uint64 {
	field := newField(p)
	poly := NewDensePoly(message)

	codeword := make([]uint64, p)
	for x := range codeword {
		codeword[x] = poly.Evaluate(field, uint64(x))
	}
	return codeword
}

// CodewordByInterpolation evaluates the polynomial interpolating values at
// anchors at every element 0..p-1. Same preconditions as EvaluateLagrange.
func CodewordByInterpolation(values, anchors []uint64, p uint64) []uint64 {
	if len(values) != len(anchors) {
		panic(ErrLengthMismatch)
	}
	field := newField(p)
	vs, as := field.ReduceAll(values), field.ReduceAll(anchors)

	codeword := make([]uint64, p)
	for x := range codeword {
		codeword[x] = evaluateLagrange(field, vs, as, uint64(x))
	}
	return codeword
}

// Fingerprint returns the Reed-Solomon fingerprint of message at r, i.e. the
// value at r of the polynomial whose coefficients are message. Two distinct
// messages of length k collide on at most k-1 points of the field.
func Fingerprint(message []uint64, field *PrimeField, r uint64) uint64 {
	return NewDensePoly(message).Evaluate(field, r)
}

// CodeOption configures a Code.
type CodeOption func(*Code)

// WithWorkers sets the number of goroutines used to fill a codeword. Values
// below 1 select runtime.NumCPU().
func WithWorkers(n int) CodeOption {
	return func(c *Code) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		c.workers = n
	}
}

// Code is a full-length Reed-Solomon code over a prime field: a codeword is
// the evaluation of a polynomial at every field element.
type Code struct {
	field   *PrimeField
	workers int
}

func NewCode(field *PrimeField, opts ...CodeOption) *Code {
	c := &Code{
		field:   field,
		workers: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Field returns the field the code is defined over.
func (c *Code) Field() *PrimeField {
	return c.field
}

// Length returns the codeword length, which is the field size.
func (c *Code) Length() int {
	return int(c.field.Modulus())
}

// EncodeCoefficients returns the codeword of the polynomial with the given
// coefficients.
func (c *Code) EncodeCoefficients(message []uint64) []uint64 {
	poly := NewDensePoly(c.field.ReduceAll(message))
	return c.encode(func(x uint64) uint64 {
		return poly.Evaluate(c.field, x)
	})
}

// EncodeInterpolation returns the codeword of the polynomial taking values at
// anchors. The anchors are validated first.
func (c *Code) EncodeInterpolation(values, anchors []uint64) ([]uint64, error) {
	poly, err := NewLagrangePoly(c.field, values, anchors)
	if err != nil {
		return nil, err
	}
	return c.EncodeLagrange(poly), nil
}

// EncodeLagrange returns the codeword of an already validated interpolating
// polynomial.
func (c *Code) EncodeLagrange(poly *LagrangePoly) []uint64 {
	return c.encode(poly.Evaluate)
}

// encode fills the codeword by evaluating eval at every field element. Each
// point is independent, so chunks are handed to workers writing disjoint
// ranges of the result.
func (c *Code) encode(eval func(x uint64) uint64) []uint64 {
	n := c.Length()
	codeword := make([]uint64, n)

	fill := func(start, end int) {
		for x := start; x < end; x++ {
			codeword[x] = eval(uint64(x))
		}
	}

	workers := min(c.workers, n)
	if workers <= 1 {
		fill(0, n)
		return codeword
	}

	chunkSize := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			fill(start, min(start+chunkSize, n))
		}(start)
	}
	wg.Wait()

	return codeword
}
