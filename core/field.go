package core

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/lattigo/v6/ring"
)

// BarrettModulusBits is the largest modulus reduced with lattigo's Barrett
// reduction. Wider moduli fall back to a full 128-bit remainder.
const BarrettModulusBits = 61

// PrimeField implements arithmetic modulo a prime p over uint64 words.
//
// Operands are assumed to be reduced, i.e. in [0, p). Use Reduce on values
// coming from outside the field. Every product is computed on 128 bits and
// reduced immediately, so no intermediate value ever wraps around.
//
// # Warning
//
// This code is not constant time.
type PrimeField struct {
	modulus      uint64
	bredConstant [2]uint64
	// wide is set when p does not fit in BarrettModulusBits
	wide bool
}

// NewPrimeField returns the field of integers modulo p. It fails if p is not
// a prime.
func NewPrimeField(p uint64) (*PrimeField, error) {
	if p < 2 {
		return nil, ErrModulusTooSmall
	}
	if !ring.IsPrime(p) {
		return nil, fmt.Errorf("%w: %d", ErrModulusNotPrime, p)
	}
	return newField(p), nil
}

// newField builds a field without checking primality. Callers of the
// unchecked API own that obligation.
func newField(p uint64) *PrimeField {
	if p < 2 {
		panic(ErrModulusTooSmall)
	}
	if bits.Len64(p) > BarrettModulusBits {
		return &PrimeField{modulus: p, wide: true}
	}
	return &PrimeField{
		modulus:      p,
		bredConstant: ring.GenBRedConstant(p),
	}
}

// Modulus returns p.
func (f *PrimeField) Modulus() uint64 {
	return f.modulus
}

// Reduce maps any uint64 to its representative in [0, p).
func (f *PrimeField) Reduce(x uint64) uint64 {
	return x % f.modulus
}

// ReduceAll returns a reduced copy of xs.
func (f *PrimeField) ReduceAll(xs []uint64) []uint64 {
	out := make([]uint64, len(xs))
	for i, x := range xs {
		out[i] = x % f.modulus
	}
	return out
}

// Add z = x + y (mod p)
func (f *PrimeField) Add(x, y uint64) uint64 {
	if f.wide {
		sum, carry := bits.Add64(x, y, 0)
		if carry != 0 || sum >= f.modulus {
			sum -= f.modulus
		}
		return sum
	}
	return ring.CRed(x+y, f.modulus)
}

// Sub z = x - y (mod p)
//
// The modulus is added before reducing so the unsigned difference never
// goes negative.
func (f *PrimeField) Sub(x, y uint64) uint64 {
	if f.wide {
		if x >= y {
			return x - y
		}
		return x + (f.modulus - y)
	}
	return ring.CRed(x+f.modulus-y, f.modulus)
}

// Neg z = -x (mod p)
func (f *PrimeField) Neg(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return f.modulus - x
}

// Mul z = x * y (mod p)
func (f *PrimeField) Mul(x, y uint64) uint64 {
	if f.wide {
		hi, lo := bits.Mul64(x, y)
		return bits.Rem64(hi, lo, f.modulus)
	}
	return ring.BRed(x, y, f.modulus, f.bredConstant)
}

// MulAdd z = x * y + acc (mod p)
func (f *PrimeField) MulAdd(x, y, acc uint64) uint64 {
	return f.Add(f.Mul(x, y), acc)
}

// Exp z = x^e (mod p)
func (f *PrimeField) Exp(x, e uint64) uint64 {
	if !f.wide {
		return ring.ModExp(x, e, f.modulus)
	}
	result := uint64(1)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = f.Mul(result, x)
		}
		x = f.Mul(x, x)
	}
	return result
}

// Equal reports whether x and y are the same field element.
func (f *PrimeField) Equal(x, y uint64) bool {
	return x%f.modulus == y%f.modulus
}

// Inverse returns x^-1 (mod p), or ErrNotInvertible when x is zero.
func (f *PrimeField) Inverse(x uint64) (uint64, error) {
	if x%f.modulus == 0 {
		return 0, ErrNotInvertible
	}
	return f.InverseUnchecked(x % f.modulus), nil
}

// InverseUnchecked returns x^(p-2) (mod p), which is the inverse of x when p
// is prime and x is nonzero. Zero maps to zero.
func (f *PrimeField) InverseUnchecked(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return f.Exp(x, f.modulus-2)
}

// ModInverse returns a^(p-2) mod p, the multiplicative inverse of a by
// Fermat's little theorem.
//
// The result is only meaningful when p is prime and a is not a multiple of
// p. For a ≡ 0 (mod p) it returns 0, which is not an inverse; callers must
// rule that case out themselves or use PrimeField.Inverse.
func ModInverse(a, p uint64) uint64 {
	return newField(p).InverseUnchecked(a % p)
}
