package bandit

import (
	"fmt"

	"banditLab/domain"
)

// WinStayLoseShift repeats the previous arm after a reward of exactly 1 and
// picks uniformly at random otherwise. It is meant for {0,1} rewards: a
// continuous reward close to 1 still counts as a loss.
type WinStayLoseShift struct {
	PolicyState
	rng        Rand
	lastArm    int
	lastReward float64
}

func NewWinStayLoseShift(r Rand) *WinStayLoseShift {
	return &WinStayLoseShift{rng: r}
}

func (p *WinStayLoseShift) Name() string { return string(domain.PolicyWinStayLoseShift) }

func (p *WinStayLoseShift) Initialize(n int) error {
	if err := p.PolicyState.Initialize(n); err != nil {
		return err
	}
	p.lastArm = 0
	p.lastReward = 0
	return nil
}

func (p *WinStayLoseShift) SelectArm() (int, error) {
	if !p.initialized() {
		return 0, fmt.Errorf("%s: %w", p.Name(), ErrUninitializedPolicy)
	}
	if p.lastReward == 1 {
		return p.lastArm, nil
	}
	return p.rng.IntN(p.NumArms()), nil
}

func (p *WinStayLoseShift) Update(arm int, reward float64) error {
	if err := p.PolicyState.Update(arm, reward); err != nil {
		return err
	}
	p.lastArm = arm
	p.lastReward = reward
	return nil
}
