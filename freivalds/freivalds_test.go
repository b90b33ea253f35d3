package freivalds_test

import (
	"testing"

	"github.com/nulltea/fingerprint/core"
	"github.com/nulltea/fingerprint/freivalds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onesSource makes every trial use r = (1, ..., 1).
type onesSource struct{}

func (onesSource) Uint64() uint64 { return ^uint64(0) }

func mul(a, b [][]uint64) [][]uint64 {
	n := len(a)
	c := make([][]uint64, n)
	for i := range c {
		c[i] = make([]uint64, n)
		for j := range c[i] {
			for k := 0; k < n; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return c
}

var (
	a = [][]uint64{{1, 2}, {3, 4}}
	b = [][]uint64{{2, 0}, {1, 2}}
)

func TestMulMatVec(t *testing.T) {
	assert.Equal(t, []uint64{3, 7}, freivalds.MulMatVec(a, []uint64{1, 1}))
	assert.Equal(t, []uint64{0}, freivalds.MulMatVec([][]uint64{{1 << 63}}, []uint64{2}))
}

func TestVerifyCorrect(t *testing.T) {
	c := [][]uint64{{4, 4}, {10, 8}}

	ok, err := freivalds.Verify(a, b, c, 5, core.NewStream(1))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = freivalds.Check(a, b, c, 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyIncorrect(t *testing.T) {
	wrong := [][]uint64{{9, 9}, {9, 9}}

	ok, err := freivalds.Verify(a, b, wrong, 1, onesSource{})
	require.NoError(t, err)
	assert.False(t, ok)

	// every nonzero r exposes this product, so only r = 0 in all 64
	// trials could let it through
	ok, err = freivalds.Check(a, b, wrong, 64)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRandomMatrices(t *testing.T) {
	x, err := core.RandomMatrix(65, 65, 0, 1)
	require.NoError(t, err)
	y, err := core.RandomMatrix(65, 65, 0, 2)
	require.NoError(t, err)
	c := mul(x, y)

	ok, err := freivalds.Verify(x, y, c, 10, core.NewTranscript("freivalds"))
	require.NoError(t, err)
	assert.True(t, ok)

	c[64][3]++
	ok, err = freivalds.Verify(x, y, c, 1, onesSource{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyTranscriptBindsProduct(t *testing.T) {
	// the challenge a transcript would give if the matrices were never
	// absorbed
	r0 := core.NewTranscript("freivalds").SampleBits("r", 2)

	// forged = a*b + d with d*r0 = 0, so it passes a trial with r0
	forged := mul(a, b)
	switch {
	case r0[0] == 0:
		forged[0][0] += 7
	case r0[1] == 0:
		forged[0][1] += 7
	default:
		forged[0][0] += 7
		forged[0][1] -= 7
	}
	require.Equal(t, freivalds.MulMatVec(a, freivalds.MulMatVec(b, r0)), freivalds.MulMatVec(forged, r0))

	ok, err := freivalds.VerifyTranscript(a, b, forged, 32, core.NewTranscript("freivalds"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = freivalds.Verify(a, b, forged, 32, core.NewTranscript("freivalds"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = freivalds.VerifyTranscript(a, b, mul(a, b), 32, core.NewTranscript("freivalds"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyTranscriptDimensions(t *testing.T) {
	_, err := freivalds.VerifyTranscript(a, b, [][]uint64{{1, 2}}, 1, core.NewTranscript("freivalds"))
	require.ErrorIs(t, err, freivalds.ErrDimensionMismatch)
}

func TestVerifyDimensions(t *testing.T) {
	_, err := freivalds.Verify(a, b, [][]uint64{{1, 2}}, 1, onesSource{})
	require.ErrorIs(t, err, freivalds.ErrDimensionMismatch)

	_, err = freivalds.Verify(a, [][]uint64{{1, 2}, {3}}, a, 1, onesSource{})
	require.ErrorIs(t, err, freivalds.ErrDimensionMismatch)

	ok, err := freivalds.Verify(nil, nil, nil, 3, onesSource{})
	require.NoError(t, err)
	assert.True(t, ok)
}
