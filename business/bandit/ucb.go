package bandit

import (
	"fmt"
	"math"

	"banditLab/domain"
)

// UCB1 plays every arm once, then the arm maximizing
// value + sqrt(2 ln(total) / count). Ties go to the lowest index.
type UCB1 struct {
	PolicyState
}

func NewUCB1() *UCB1 {
	return &UCB1{}
}

func (p *UCB1) Name() string { return string(domain.PolicyUCB1) }

func (p *UCB1) SelectArm() (int, error) {
	if !p.initialized() {
		return 0, fmt.Errorf("%s: %w", p.Name(), ErrUninitializedPolicy)
	}

	total := 0
	for arm, c := range p.counts {
		if c == 0 {
			return arm, nil
		}
		total += c
	}

	// total >= n_arms > 0 here, so the log is defined.
	logTotal := math.Log(float64(total))
	best, bestScore := 0, math.Inf(-1)
	for arm, c := range p.counts {
		score := p.values[arm] + math.Sqrt(2*logTotal/float64(c))
		if score > bestScore {
			best, bestScore = arm, score
		}
	}
	return best, nil
}
