package bandit

import (
	"fmt"
	"math"

	"banditLab/domain"
)

// RewardSource is one arm of the bandit. Implementations are immutable and
// safe to share between policies.
type RewardSource interface {
	// Draw samples one reward using r.
	Draw(r Rand) float64
	// Mean is the expected reward. It is used for reporting only.
	Mean() float64
}

// BernoulliArm pays 1 with probability p and 0 otherwise.
type BernoulliArm struct {
	p float64
}

func NewBernoulliArm(p float64) (BernoulliArm, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return BernoulliArm{}, fmt.Errorf("%w: bernoulli p=%v outside [0,1]", ErrInvalidConfig, p)
	}
	return BernoulliArm{p: p}, nil
}

func (a BernoulliArm) Draw(r Rand) float64 {
	if r.Float64() < a.p {
		return 1.0
	}
	return 0.0
}

func (a BernoulliArm) Mean() float64 { return a.p }

// NormalArm pays a Gaussian reward with mean mu and standard deviation sigma.
type NormalArm struct {
	mu    float64
	sigma float64
}

func NewNormalArm(mu, sigma float64) (NormalArm, error) {
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return NormalArm{}, fmt.Errorf("%w: normal mu=%v is not finite", ErrInvalidConfig, mu)
	}
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		return NormalArm{}, fmt.Errorf("%w: normal sigma=%v must be finite and >= 0", ErrInvalidConfig, sigma)
	}
	return NormalArm{mu: mu, sigma: sigma}, nil
}

func (a NormalArm) Draw(r Rand) float64 {
	return a.mu + a.sigma*r.NormFloat64()
}

func (a NormalArm) Mean() float64 { return a.mu }

// NewArm builds the reward source described by spec.
func NewArm(spec domain.ArmSpec) (RewardSource, error) {
	switch spec.Kind {
	case domain.ArmBernoulli:
		return NewBernoulliArm(spec.P)
	case domain.ArmNormal:
		return NewNormalArm(spec.Mu, spec.Sigma)
	default:
		return nil, fmt.Errorf("%w: unknown arm kind %q", ErrInvalidConfig, spec.Kind)
	}
}

// NewArms builds an arm pool, keeping the order of specs.
func NewArms(specs []domain.ArmSpec) ([]RewardSource, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: arm pool is empty", ErrInvalidConfig)
	}
	arms := make([]RewardSource, 0, len(specs))
	for i, spec := range specs {
		arm, err := NewArm(spec)
		if err != nil {
			return nil, fmt.Errorf("arm %d: %w", i, err)
		}
		arms = append(arms, arm)
	}
	return arms, nil
}

// bestArm returns the first index with the highest expected reward.
func bestArm(arms []RewardSource) int {
	best := 0
	for i := 1; i < len(arms); i++ {
		if arms[i].Mean() > arms[best].Mean() {
			best = i
		}
	}
	return best
}
