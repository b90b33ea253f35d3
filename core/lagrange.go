package core

import "fmt"

// EvaluateLagrange evaluates at x the unique polynomial of degree < k that
// takes value values[i] at anchors[i], over the integers modulo p.
//
// The anchors must be pairwise distinct modulo p and p must be prime. Neither
// is checked: a repeated anchor makes a denominator vanish, its "inverse" is
// 0 and the result is meaningless. Use NewLagrangePoly for a checked variant.
// It panics if values and anchors differ in length.
func EvaluateLagrange(values, anchors []uint64, p, x uint64) uint64 {
	if len(values) != len(anchors) {
		panic(ErrLengthMismatch)
	}
	field := newField(p)
	return evaluateLagrange(field, field.ReduceAll(values), field.ReduceAll(anchors), field.Reduce(x))
}

// evaluateLagrange expects every input reduced.
func evaluateLagrange(field *PrimeField, values, anchors []uint64, x uint64) uint64 {
	result := uint64(0)

	for i := range values {
		num := uint64(1)
		den := uint64(1)

		for j := range anchors {
			if i == j {
				continue
			}
			num = field.Mul(num, field.Sub(x, anchors[j]))
			den = field.Mul(den, field.Sub(anchors[i], anchors[j]))
		}

		li := field.Mul(num, field.InverseUnchecked(den))
		result = field.MulAdd(values[i], li, result)
	}

	return result
}

// LagrangePoly is a polynomial given by its values at distinct anchor points.
type LagrangePoly struct {
	field   *PrimeField
	values  []uint64
	anchors []uint64
	// weights[i] = 1 / prod_{j != i} (anchors[i] - anchors[j])
	weights []uint64
}

// NewLagrangePoly validates the anchors and precomputes the inverted
// denominators of every basis polynomial.
func NewLagrangePoly(field *PrimeField, values, anchors []uint64) (*LagrangePoly, error) {
	if len(values) != len(anchors) {
		return nil, fmt.Errorf("%w: %d values, %d anchors", ErrLengthMismatch, len(values), len(anchors))
	}

	vs := field.ReduceAll(values)
	as := field.ReduceAll(anchors)

	seen := make(map[uint64]int, len(as))
	for i, a := range as {
		if j, ok := seen[a]; ok {
			return nil, fmt.Errorf("%w: anchors %d and %d are both %d", ErrDuplicateAnchor, j, i, a)
		}
		seen[a] = i
	}

	weights := make([]uint64, len(as))
	for i := range as {
		den := uint64(1)
		for j := range as {
			if i != j {
				den = field.Mul(den, field.Sub(as[i], as[j]))
			}
		}
		w, err := field.Inverse(den)
		if err != nil {
			return nil, fmt.Errorf("basis %d: %w", i, err)
		}
		weights[i] = w
	}

	return &LagrangePoly{
		field:   field,
		values:  vs,
		anchors: as,
		weights: weights,
	}, nil
}

// Len returns the number of anchors.
func (l *LagrangePoly) Len() int {
	return len(l.anchors)
}

// Evaluate returns the value of the polynomial at x.
func (l *LagrangePoly) Evaluate(x uint64) uint64 {
	field := l.field
	x = field.Reduce(x)

	result := uint64(0)
	for i := range l.anchors {
		num := l.weights[i]
		for j := range l.anchors {
			if i != j {
				num = field.Mul(num, field.Sub(x, l.anchors[j]))
			}
		}
		result = field.MulAdd(l.values[i], num, result)
	}

	return result
}

// Coefficients converts the polynomial to coefficient form. The result has
// exactly Len() coefficients, trailing ones may be zero.
func (l *LagrangePoly) Coefficients() *DensePoly {
	field := l.field
	k := len(l.anchors)
	coeffs := make([]uint64, k)
	if k == 0 {
		return NewDensePoly(coeffs)
	}

	// master = prod_j (X - anchors[j]), degree k
	master := make([]uint64, k+1)
	master[0] = 1
	for _, a := range l.anchors {
		for t := k; t >= 1; t-- {
			master[t] = field.Sub(master[t-1], field.Mul(a, master[t]))
		}
		master[0] = field.Neg(field.Mul(a, master[0]))
	}

	quotient := make([]uint64, k)
	for i, a := range l.anchors {
		// synthetic division: quotient = master / (X - a)
		quotient[k-1] = master[k]
		for t := k - 2; t >= 0; t-- {
			quotient[t] = field.MulAdd(a, quotient[t+1], master[t+1])
		}

		scale := field.Mul(l.values[i], l.weights[i])
		for t := range coeffs {
			coeffs[t] = field.MulAdd(scale, quotient[t], coeffs[t])
		}
	}

	return NewDensePoly(coeffs)
}
