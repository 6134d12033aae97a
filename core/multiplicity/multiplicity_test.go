package multiplicity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igsim-core/rng"
	"igsim-core/simerr"
)

func TestLambda(t *testing.T) {
	l, err := Lambda(100, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, l, 1e-12)

	for _, tc := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		_, err := Lambda(tc[0], tc[1])
		assert.ErrorIs(t, err, simerr.ErrConfiguration, "%v", tc)
	}
}

func TestNewExponential_Rejects(t *testing.T) {
	for _, l := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewExponential(l)
		assert.ErrorIs(t, err, simerr.ErrConfiguration, "lambda=%v", l)
	}
}

func TestExponential_FloorAndMean(t *testing.T) {
	e, err := NewExponential(0.1)
	require.NoError(t, err)
	r := rng.New(42, 0)

	const n = 20000
	sum := 0
	for i := 0; i < n; i++ {
		m := e.AssignMultiplicity(r, nil)
		require.GreaterOrEqual(t, m, 1)
		sum += m
	}
	// floor(Exp(0.1)) has mean ~9.5; ones are only bumped slightly.
	mean := float64(sum) / n
	assert.InDelta(t, 9.6, mean, 0.5)
}

func TestExponential_LargeLambdaIsOne(t *testing.T) {
	e := Exponential{Lambda: 1e9}
	r := rng.New(1, 2)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, e.AssignMultiplicity(r, nil))
	}
}

func TestConstant(t *testing.T) {
	assert.Equal(t, 3, Constant{N: 3}.AssignMultiplicity(nil, nil))
	assert.Equal(t, 1, Constant{}.AssignMultiplicity(nil, nil))
}
