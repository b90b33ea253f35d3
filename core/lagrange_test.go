package core_test

import (
	"testing"

	"github.com/nulltea/fingerprint/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateLagrange(t *testing.T) {
	// f(0)=2, f(1)=1, f(2)=1 over F_11 is f(x) = 2 + 4x + 6x^2
	values := []uint64{2, 1, 1}
	anchors := []uint64{0, 1, 2}

	for x := uint64(0); x < 11; x++ {
		expected := core.EvaluatePolynomial([]uint64{2, 4, 6}, 11, x)
		assert.Equal(t, expected, core.EvaluateLagrange(values, anchors, 11, x), "f(%d)", x)
	}
}

func TestEvaluateLagrangeAtAnchors(t *testing.T) {
	values := []uint64{17, 3, 99, 0, 54}
	anchors := []uint64{5, 88, 13, 40, 100}

	for i, a := range anchors {
		assert.Equal(t, values[i], core.EvaluateLagrange(values, anchors, 101, a))
	}
}

func TestEvaluateLagrangeEmpty(t *testing.T) {
	assert.Equal(t, uint64(0), core.EvaluateLagrange(nil, nil, 11, 3))
}

func TestEvaluateLagrangeRepeatedAnchor(t *testing.T) {
	// both denominators vanish, their unchecked inverse is 0 and so is
	// every basis term
	assert.Equal(t, uint64(0), core.EvaluateLagrange([]uint64{5, 7}, []uint64{1, 12}, 11, 4))
}

func TestEvaluateLagrangeLengthMismatch(t *testing.T) {
	require.Panics(t, func() {
		core.EvaluateLagrange([]uint64{1, 2}, []uint64{0}, 11, 0)
	})
}

func TestNewLagrangePoly(t *testing.T) {
	field, err := core.NewPrimeField(11)
	require.NoError(t, err)

	t.Run("length mismatch", func(t *testing.T) {
		_, err := core.NewLagrangePoly(field, []uint64{1, 2}, []uint64{0})
		require.ErrorIs(t, err, core.ErrLengthMismatch)
	})

	t.Run("duplicate anchors", func(t *testing.T) {
		_, err := core.NewLagrangePoly(field, []uint64{1, 2}, []uint64{3, 3})
		require.ErrorIs(t, err, core.ErrDuplicateAnchor)
	})

	t.Run("anchors equal modulo p", func(t *testing.T) {
		_, err := core.NewLagrangePoly(field, []uint64{1, 2}, []uint64{3, 14})
		require.ErrorIs(t, err, core.ErrDuplicateAnchor)
	})

	t.Run("valid", func(t *testing.T) {
		poly, err := core.NewLagrangePoly(field, []uint64{2, 1, 1}, []uint64{0, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, 3, poly.Len())
	})
}

func TestLagrangePolyEvaluate(t *testing.T) {
	field, err := core.NewPrimeField(101)
	require.NoError(t, err)

	values := core.RandomMessage(6, field, 7)
	anchors := []uint64{3, 17, 42, 99, 100, 0}

	poly, err := core.NewLagrangePoly(field, values, anchors)
	require.NoError(t, err)

	for x := uint64(0); x < 101; x++ {
		assert.Equal(t, core.EvaluateLagrange(values, anchors, 101, x), poly.Evaluate(x), "x=%d", x)
	}
	for i, a := range anchors {
		assert.Equal(t, values[i], poly.Evaluate(a))
	}
}

func TestLagrangePolyCoefficients(t *testing.T) {
	field, err := core.NewPrimeField(11)
	require.NoError(t, err)

	tests := []struct {
		name     string
		values   []uint64
		anchors  []uint64
		expected []uint64
	}{
		{"quadratic", []uint64{2, 1, 1}, []uint64{0, 1, 2}, []uint64{2, 4, 6}},
		{"linear", []uint64{2, 1, 0}, []uint64{0, 1, 2}, []uint64{2, 10, 0}},
		{"constant", []uint64{7}, []uint64{5}, []uint64{7}},
		{"empty", nil, nil, []uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly, err := core.NewLagrangePoly(field, tt.values, tt.anchors)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, poly.Coefficients().Coefficients)
		})
	}
}

func TestLagrangePolyCoefficientsRoundTrip(t *testing.T) {
	field, err := core.NewPrimeField(65537)
	require.NoError(t, err)

	message := core.RandomMessage(8, field, 42)
	anchors := []uint64{1, 2, 3, 500, 1000, 20000, 65535, 65536}
	values := make([]uint64, len(anchors))
	for i, a := range anchors {
		values[i] = core.EvaluatePolynomial(message, 65537, a)
	}

	poly, err := core.NewLagrangePoly(field, values, anchors)
	require.NoError(t, err)
	assert.Equal(t, message, poly.Coefficients().Coefficients)
}
