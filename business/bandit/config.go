package bandit

import (
	"context"
	"fmt"

	"banditLab/domain"
)

// Config is a self-contained simulation setup. Every run built from it gets
// its own generator, arm pool and policies.
//
// Arms are played by index, so a fixed_first policy only acts as an oracle
// when Arms[0] is the arm the caller considers best.
type Config struct {
	Arms     []domain.ArmSpec
	Policies []domain.PolicyKind
	Rounds   int
	Seed     uint64
	Trace    bool
}

const defaultRounds = 1000

var defaultArmProbabilities = []float64{0.7, 0.5, 0.2, 0.2, 0.3}

func DefaultArms() []domain.ArmSpec {
	arms := make([]domain.ArmSpec, 0, len(defaultArmProbabilities))
	for _, p := range defaultArmProbabilities {
		arms = append(arms, domain.BernoulliSpec(p))
	}
	return arms
}

func DefaultConfig() Config {
	return Config{
		Arms:     DefaultArms(),
		Policies: domain.AllPolicyKinds(),
		Rounds:   defaultRounds,
	}
}

// Validate checks the config without running it.
func (c Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("%w: rounds=%d must be positive", ErrInvalidConfig, c.Rounds)
	}
	if _, err := NewArms(c.Arms); err != nil {
		return err
	}
	if len(c.Policies) == 0 {
		return fmt.Errorf("%w: policy set is empty", ErrInvalidConfig)
	}
	for _, k := range c.Policies {
		if !k.Valid() {
			return fmt.Errorf("%w: unknown policy kind %q", ErrInvalidConfig, k)
		}
	}
	if c.Trace {
		return checkTrace(c.Rounds, len(c.Policies))
	}
	return nil
}

// Run builds fresh arms, policies and a generator seeded with c.Seed, then
// plays the simulation once.
func Run(c Config) (Report, error) {
	return RunContext(context.Background(), c)
}

// RunContext is Run with cancellation.
func RunContext(ctx context.Context, c Config) (Report, error) {
	if err := c.Validate(); err != nil {
		return Report{}, err
	}

	rng := NewRand(c.Seed)
	arms, err := NewArms(c.Arms)
	if err != nil {
		return Report{}, err
	}
	policies, err := NewPolicies(c.Policies, rng)
	if err != nil {
		return Report{}, err
	}

	var opts []Option
	if c.Trace {
		opts = append(opts, WithTrace())
	}
	engine, err := NewEngine(arms, policies, rng, opts...)
	if err != nil {
		return Report{}, err
	}
	return engine.RunContext(ctx, c.Rounds)
}
