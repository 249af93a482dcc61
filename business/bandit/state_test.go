package bandit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyState_Initialize(t *testing.T) {
	var s PolicyState
	assert.ErrorIs(t, s.Initialize(0), ErrInvalidConfig)
	assert.ErrorIs(t, s.Initialize(-3), ErrInvalidConfig)
	assert.Equal(t, 0, s.NumArms())

	require.NoError(t, s.Initialize(3))
	assert.Equal(t, []int{0, 0, 0}, s.Counts())
	assert.Equal(t, []float64{0, 0, 0}, s.Values())

	require.NoError(t, s.Update(1, 4))
	require.NoError(t, s.Initialize(2))
	assert.Equal(t, []int{0, 0}, s.Counts())
	assert.Equal(t, []float64{0, 0}, s.Values())
}

func TestPolicyState_UpdateBeforeInitialize(t *testing.T) {
	var s PolicyState
	assert.ErrorIs(t, s.Update(0, 1), ErrUninitializedPolicy)
}

func TestPolicyState_RoundTrip(t *testing.T) {
	const k = 4
	const r = 0.25

	var s PolicyState
	require.NoError(t, s.Initialize(k))
	for i := 0; i < k; i++ {
		require.NoError(t, s.Update(i, r))
	}
	assert.Equal(t, []int{1, 1, 1, 1}, s.Counts())
	assert.Equal(t, []float64{r, r, r, r}, s.Values())
}

func TestPolicyState_RunningMean(t *testing.T) {
	var s PolicyState
	require.NoError(t, s.Initialize(3))

	rng := NewRand(11)
	sums := make([]float64, 3)
	ns := make([]int, 3)
	for i := 0; i < 5000; i++ {
		arm := rng.IntN(3)
		reward := 10*rng.NormFloat64() + float64(arm)
		require.NoError(t, s.Update(arm, reward))
		sums[arm] += reward
		ns[arm]++
	}

	assert.Equal(t, ns, s.Counts())
	values := s.Values()
	for arm := range sums {
		assert.InDelta(t, sums[arm]/float64(ns[arm]), values[arm], 1e-9, "arm %d", arm)
	}
}

func TestPolicyState_UpdateIsAtomic(t *testing.T) {
	var s PolicyState
	require.NoError(t, s.Initialize(2))
	require.NoError(t, s.Update(0, 1))

	assert.ErrorIs(t, s.Update(2, 1), ErrInvalidArm)
	assert.ErrorIs(t, s.Update(-1, 1), ErrInvalidArm)
	assert.ErrorIs(t, s.Update(1, math.NaN()), ErrInvalidConfig)
	assert.ErrorIs(t, s.Update(1, math.Inf(-1)), ErrInvalidConfig)

	assert.Equal(t, []int{1, 0}, s.Counts())
	assert.Equal(t, []float64{1, 0}, s.Values())
}

func TestPolicyState_SnapshotsAreCopies(t *testing.T) {
	var s PolicyState
	require.NoError(t, s.Initialize(2))

	counts := s.Counts()
	values := s.Values()
	counts[0] = 99
	values[0] = 99

	assert.Equal(t, []int{0, 0}, s.Counts())
	assert.Equal(t, []float64{0, 0}, s.Values())
}
