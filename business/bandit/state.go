package bandit

import (
	"fmt"
	"math"
)

// PolicyState is the belief every policy keeps: pull counts and the running
// mean reward per arm. Counts and values are nil until Initialize.
type PolicyState struct {
	counts []int
	values []float64
}

// Initialize resets the state to n zeroed arms.
func (s *PolicyState) Initialize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: n_arms=%d must be positive", ErrInvalidConfig, n)
	}
	s.counts = make([]int, n)
	s.values = make([]float64, n)
	return nil
}

func (s *PolicyState) initialized() bool {
	return s.counts != nil
}

// NumArms is zero before Initialize.
func (s *PolicyState) NumArms() int {
	return len(s.counts)
}

// Update records one observed reward for arm. Nothing changes on error.
func (s *PolicyState) Update(arm int, reward float64) error {
	if err := s.check(arm, reward); err != nil {
		return err
	}
	s.counts[arm]++
	s.values[arm] += (reward - s.values[arm]) / float64(s.counts[arm])
	return nil
}

func (s *PolicyState) check(arm int, reward float64) error {
	if !s.initialized() {
		return ErrUninitializedPolicy
	}
	if arm < 0 || arm >= len(s.counts) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidArm, arm, len(s.counts))
	}
	if math.IsNaN(reward) || math.IsInf(reward, 0) {
		return fmt.Errorf("%w: reward %v is not finite", ErrInvalidConfig, reward)
	}
	return nil
}

// Counts returns a copy of the pull counts.
func (s *PolicyState) Counts() []int {
	out := make([]int, len(s.counts))
	copy(out, s.counts)
	return out
}

// Values returns a copy of the running mean rewards.
func (s *PolicyState) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}
