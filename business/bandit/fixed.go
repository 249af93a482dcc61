package bandit

import (
	"fmt"

	"banditLab/domain"
)

// FixedFirst always plays arm 0. It is an oracle baseline only when the
// caller puts the best arm first; it never compares arms itself.
type FixedFirst struct {
	PolicyState
}

func NewFixedFirst() *FixedFirst {
	return &FixedFirst{}
}

func (p *FixedFirst) Name() string { return string(domain.PolicyFixedFirst) }

func (p *FixedFirst) SelectArm() (int, error) {
	if !p.initialized() {
		return 0, fmt.Errorf("%s: %w", p.Name(), ErrUninitializedPolicy)
	}
	return 0, nil
}
