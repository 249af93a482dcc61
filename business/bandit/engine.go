package bandit

import (
	"context"
	"fmt"
	"reflect"

	"banditLab/domain"
)

// MaxTracePulls caps the per-pull trace of one run.
const MaxTracePulls = 200_000

// ctxCheckEvery is how many rounds pass between context checks.
const ctxCheckEvery = 256

type Option func(*Engine)

// WithTrace records every pull in Report.Trace.
func WithTrace() Option {
	return func(e *Engine) { e.trace = true }
}

// Engine runs a fixed set of policies against one shared arm pool.
type Engine struct {
	arms     []RewardSource
	policies []Policy
	rng      Rand
	trace    bool
}

// Report is what a run leaves behind. Slices are copies owned by the caller.
type Report struct {
	Rounds   int                   `json:"rounds"`
	BestArm  int                   `json:"best_arm"`
	Policies []domain.PolicyResult `json:"policies"`
	Trace    []domain.Pull         `json:"trace,omitempty"`
}

// NewEngine wires arms and policies to one generator. The same pointer
// listed twice is rejected; value-typed policies are never deduplicated.
func NewEngine(arms []RewardSource, policies []Policy, r Rand, opts ...Option) (*Engine, error) {
	if len(arms) == 0 {
		return nil, fmt.Errorf("%w: arm pool is empty", ErrInvalidConfig)
	}
	if len(policies) == 0 {
		return nil, fmt.Errorf("%w: policy set is empty", ErrInvalidConfig)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidConfig)
	}
	for i, arm := range arms {
		if arm == nil {
			return nil, fmt.Errorf("%w: arm %d is nil", ErrInvalidConfig, i)
		}
	}
	seen := make(map[uintptr]struct{}, len(policies))
	for i, p := range policies {
		if p == nil {
			return nil, fmt.Errorf("%w: policy %d is nil", ErrInvalidConfig, i)
		}
		v := reflect.ValueOf(p)
		if v.Kind() != reflect.Pointer {
			continue
		}
		if _, dup := seen[v.Pointer()]; dup {
			return nil, fmt.Errorf("%w: policy %d (%s) appears twice", ErrInvalidConfig, i, p.Name())
		}
		seen[v.Pointer()] = struct{}{}
	}

	e := &Engine{
		arms:     append([]RewardSource(nil), arms...),
		policies: append([]Policy(nil), policies...),
		rng:      r,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run is RunContext without cancellation.
func (e *Engine) Run(rounds int) (Report, error) {
	return e.RunContext(context.Background(), rounds)
}

// RunContext initializes every policy and plays rounds rounds. In each round
// the policies play in slice order, which keeps the draw sequence
// reproducible. ctx is checked every few hundred rounds.
func (e *Engine) RunContext(ctx context.Context, rounds int) (Report, error) {
	if rounds <= 0 {
		return Report{}, fmt.Errorf("%w: rounds=%d must be positive", ErrInvalidConfig, rounds)
	}
	if e.trace {
		if err := checkTrace(rounds, len(e.policies)); err != nil {
			return Report{}, err
		}
	}

	n := len(e.arms)
	for _, p := range e.policies {
		if err := p.Initialize(n); err != nil {
			return Report{}, fmt.Errorf("initialize %s: %w", p.Name(), err)
		}
	}

	var trace []domain.Pull
	if e.trace {
		trace = make([]domain.Pull, 0, rounds*len(e.policies))
	}
	cumulative := make([]float64, len(e.policies))

	for round := 1; round <= rounds; round++ {
		if (round-1)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Report{}, fmt.Errorf("round %d: %w", round, err)
			}
		}
		for i, p := range e.policies {
			arm, err := p.SelectArm()
			if err != nil {
				return Report{}, fmt.Errorf("round %d: %w", round, err)
			}
			if arm < 0 || arm >= n {
				return Report{}, fmt.Errorf("round %d: %s selected %d: %w", round, p.Name(), arm, ErrInvalidArm)
			}

			reward := e.arms[arm].Draw(e.rng)
			if err := p.Update(arm, reward); err != nil {
				return Report{}, fmt.Errorf("round %d: update %s: %w", round, p.Name(), err)
			}

			cumulative[i] += reward
			if e.trace {
				trace = append(trace, domain.Pull{
					Round:      round,
					Policy:     p.Name(),
					Arm:        arm,
					Reward:     reward,
					Cumulative: cumulative[i],
				})
			}
		}
	}

	best := bestArm(e.arms)
	optimal := float64(rounds) * e.arms[best].Mean()

	results := make([]domain.PolicyResult, 0, len(e.policies))
	for _, p := range e.policies {
		counts, values := p.Counts(), p.Values()
		payoff := Payoff(counts, values)
		results = append(results, domain.PolicyResult{
			Name:   p.Name(),
			Counts: counts,
			Values: values,
			Payoff: payoff,
			Regret: optimal - payoff,
		})
	}

	return Report{
		Rounds:   rounds,
		BestArm:  best,
		Policies: results,
		Trace:    trace,
	}, nil
}

// checkTrace rejects traces longer than MaxTracePulls without overflowing.
func checkTrace(rounds, policies int) error {
	if policies > 0 && rounds > MaxTracePulls/policies {
		return fmt.Errorf("%w: trace of %d rounds x %d policies exceeds %d pulls",
			ErrInvalidConfig, rounds, policies, MaxTracePulls)
	}
	return nil
}

// Payoff is the total reward behind a counts/values snapshot.
func Payoff(counts []int, values []float64) float64 {
	total := 0.0
	for i, c := range counts {
		total += values[i] * float64(c)
	}
	return total
}
