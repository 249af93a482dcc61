package bandit

import (
	"fmt"

	"banditLab/domain"
)

// UniformRandom ignores history and picks any arm with equal probability.
type UniformRandom struct {
	PolicyState
	rng Rand
}

func NewUniformRandom(r Rand) *UniformRandom {
	return &UniformRandom{rng: r}
}

func (p *UniformRandom) Name() string { return string(domain.PolicyUniformRandom) }

func (p *UniformRandom) SelectArm() (int, error) {
	if !p.initialized() {
		return 0, fmt.Errorf("%s: %w", p.Name(), ErrUninitializedPolicy)
	}
	return p.rng.IntN(p.NumArms()), nil
}
