package bandit

import (
	"fmt"

	"banditLab/domain"
)

// Policy decides which arm to pull and folds observed rewards into its
// own PolicyState. A policy instance must not be shared between engines.
type Policy interface {
	Name() string
	// Initialize resets counts, values and any transient state for n arms.
	Initialize(n int) error
	// SelectArm returns an index in [0, n).
	SelectArm() (int, error)
	// Update records reward for arm. It is atomic: on error nothing changes.
	Update(arm int, reward float64) error
	Counts() []int
	Values() []float64
}

// NewPolicy builds the policy of the given kind. r feeds the random
// choices of uniform_random and win_stay_lose_shift.
func NewPolicy(kind domain.PolicyKind, r Rand) (Policy, error) {
	switch kind {
	case domain.PolicyUCB1:
		return NewUCB1(), nil
	case domain.PolicyWinStayLoseShift:
		if r == nil {
			return nil, fmt.Errorf("%w: %s needs a random source", ErrInvalidConfig, kind)
		}
		return NewWinStayLoseShift(r), nil
	case domain.PolicyUniformRandom:
		if r == nil {
			return nil, fmt.Errorf("%w: %s needs a random source", ErrInvalidConfig, kind)
		}
		return NewUniformRandom(r), nil
	case domain.PolicyFixedFirst:
		return NewFixedFirst(), nil
	default:
		return nil, fmt.Errorf("%w: unknown policy kind %q", ErrInvalidConfig, kind)
	}
}

// NewPolicies builds one fresh policy per kind, all drawing from r.
func NewPolicies(kinds []domain.PolicyKind, r Rand) ([]Policy, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: policy set is empty", ErrInvalidConfig)
	}
	policies := make([]Policy, 0, len(kinds))
	for _, kind := range kinds {
		p, err := NewPolicy(kind, r)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}
