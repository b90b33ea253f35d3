// Package freivalds verifies matrix products probabilistically.
//
// Verify checks a*b == c for square n x n matrices in O(iterations * n^2)
// time instead of computing the product. Arithmetic is over uint64 with
// wraparound, i.e. modulo 2^64. A wrong product survives a single trial with
// probability at most 1/2.
package freivalds

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/nulltea/fingerprint/core"
)

// ErrDimensionMismatch is returned when the matrices are not all n x n.
var ErrDimensionMismatch = errors.New("freivalds: matrices must be square and of equal size")

// Source yields uniformly distributed 64-bit words.
type Source = core.Source

// MulMatVec returns m*v; entry i is the wrapping dot product of row i and v.
func MulMatVec(m [][]uint64, v []uint64) []uint64 {
	out := make([]uint64, len(m))
	for i, row := range m {
		var sum uint64
		for j, mij := range row {
			sum += mij * v[j]
		}
		out[i] = sum
	}
	return out
}

func checkSquare(n int, ms ...[][]uint64) error {
	for _, m := range ms {
		if len(m) != n {
			return fmt.Errorf("%w: %d rows, want %d", ErrDimensionMismatch, len(m), n)
		}
		for i, row := range m {
			if len(row) != n {
				return fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
			}
		}
	}
	return nil
}

// Verify runs iterations trials of Freivalds' test with random vectors
// r in {0,1}^n drawn from src. It returns false as soon as a*(b*r) != c*r,
// which proves a*b != c, and true if every trial passed.
//
// A *core.Transcript source is handed to VerifyTranscript so the challenges
// depend on the matrices.
func Verify(a, b, c [][]uint64, iterations int, src Source) (bool, error) {
	if t, ok := src.(*core.Transcript); ok {
		return VerifyTranscript(a, b, c, iterations, t)
	}

	n := len(a)
	if err := checkSquare(n, a, b, c); err != nil {
		return false, err
	}

	r := make([]uint64, n)
	for range iterations {
		core.FillBits(src, r)
		if !trial(a, b, c, r) {
			return false, nil
		}
	}

	return true, nil
}

// VerifyTranscript is the non-interactive Verify: a, b and c are absorbed
// into t before any challenge vector is sampled from it, so a prover cannot
// pick c after seeing r.
func VerifyTranscript(a, b, c [][]uint64, iterations int, t *core.Transcript) (bool, error) {
	n := len(a)
	if err := checkSquare(n, a, b, c); err != nil {
		return false, err
	}

	t.AppendField("n", uint64(n))
	for _, m := range []struct {
		label  string
		matrix [][]uint64
	}{{"a", a}, {"b", b}, {"c", c}} {
		for _, row := range m.matrix {
			t.AppendFields(m.label, row)
		}
	}

	for range iterations {
		if !trial(a, b, c, t.SampleBits("r", n)) {
			return false, nil
		}
	}

	return true, nil
}

func trial(a, b, c [][]uint64, r []uint64) bool {
	return slices.Equal(MulMatVec(a, MulMatVec(b, r)), MulMatVec(c, r))
}

// Check is Verify with a ChaCha20 stream seeded from crypto/rand.
func Check(a, b, c [][]uint64, iterations int) (bool, error) {
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return false, fmt.Errorf("seed random source: %w", err)
	}
	return Verify(a, b, c, iterations, core.NewStream(binary.LittleEndian.Uint64(seed[:])))
}
