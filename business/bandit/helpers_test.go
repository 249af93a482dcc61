package bandit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed values and fails the test when the code under
// test asks for more randomness than scripted.
type scriptedRand struct {
	t      *testing.T
	floats []float64
	ints   []int
	norms  []float64
}

func (r *scriptedRand) Float64() float64 {
	require.NotEmpty(r.t, r.floats, "unexpected Float64 call")
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	require.NotEmpty(r.t, r.ints, "unexpected IntN call")
	v := r.ints[0]
	r.ints = r.ints[1:]
	require.Less(r.t, v, n)
	return v
}

func (r *scriptedRand) NormFloat64() float64 {
	require.NotEmpty(r.t, r.norms, "unexpected NormFloat64 call")
	v := r.norms[0]
	r.norms = r.norms[1:]
	return v
}

// stuckPolicy always selects the same arm, valid or not.
type stuckPolicy struct {
	PolicyState
	arm int
}

func (p *stuckPolicy) Name() string { return "stuck" }

func (p *stuckPolicy) SelectArm() (int, error) { return p.arm, nil }

// valuePolicy is a value-typed Policy holding a slice, so its dynamic type
// cannot be a map key.
type valuePolicy struct {
	state *PolicyState
	tags  []string
}

func (p valuePolicy) Name() string { return "value" }
func (p valuePolicy) Initialize(n int) error { return p.state.Initialize(n) }
func (p valuePolicy) SelectArm() (int, error) { return 0, nil }
func (p valuePolicy) Update(arm int, r float64) error { return p.state.Update(arm, r) }
func (p valuePolicy) Counts() []int { return p.state.Counts() }
func (p valuePolicy) Values() []float64 { return p.state.Values() }

// cancellingPolicy plays arm 0 and cancels its context after limit selections.
type cancellingPolicy struct {
	PolicyState
	cancel  func()
	limit   int
	selects int
}

func (p *cancellingPolicy) Name() string { return "cancelling" }

func (p *cancellingPolicy) SelectArm() (int, error) {
	p.selects++
	if p.selects == p.limit {
		p.cancel()
	}
	return 0, nil
}

func mustBernoulli(t *testing.T, ps ...float64) []RewardSource {
	t.Helper()
	arms := make([]RewardSource, 0, len(ps))
	for _, p := range ps {
		a, err := NewBernoulliArm(p)
		require.NoError(t, err)
		arms = append(arms, a)
	}
	return arms
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
