package core

// DensePoly is a polynomial in coefficient form, lowest degree first.
type DensePoly struct {
	Coefficients []uint64
}

func NewDensePoly(coefficients []uint64) *DensePoly {
	return &DensePoly{
		Coefficients: coefficients,
	}
}

// Degree returns the index of the highest nonzero coefficient, or -1 for the
// zero polynomial.
func (p *DensePoly) Degree() int {
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		if p.Coefficients[i] != 0 {
			return i
		}
	}
	return -1
}

// Evaluate computes sum(c_i * x^i) mod p.
//
// The power of x is carried along with the sum and both are reduced after
// every step, so coefficients outside [0, p) are accepted.
func (p *DensePoly) Evaluate(field *PrimeField, x uint64) uint64 {
	x = field.Reduce(x)

	result := uint64(0)
	xi := uint64(1)
	for _, coeff := range p.Coefficients {
		result = field.MulAdd(field.Reduce(coeff), xi, result)
		xi = field.Mul(xi, x)
	}

	return result
}

// EvaluatePolynomial evaluates the polynomial with coefficients message at x
// over the integers modulo p. An empty message evaluates to 0.
//
// p is not checked for primality.
func EvaluatePolynomial(message []uint64, p, x uint64) uint64 {
	return NewDensePoly(message).Evaluate(newField(p), x)
}
