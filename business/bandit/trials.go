package bandit

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"banditLab/domain"
)

// TrialsResult aggregates independent runs of the same Config.
type TrialsResult struct {
	Trials   int                      `json:"trials"`
	Rounds   int                      `json:"rounds"`
	BestArm  int                      `json:"best_arm"`
	Policies []domain.PolicyAggregate `json:"policies"`
}

// RunTrials plays trials independent simulations in parallel. Trial i is
// seeded with c.Seed+i and owns its generator, arms and policies, so the
// result depends only on c and trials. Tracing is ignored.
func RunTrials(ctx context.Context, c Config, trials int) (TrialsResult, error) {
	if trials <= 0 {
		return TrialsResult{}, fmt.Errorf("%w: trials=%d must be positive", ErrInvalidConfig, trials)
	}
	c.Trace = false
	if err := c.Validate(); err != nil {
		return TrialsResult{}, err
	}

	reports := make([]Report, trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < trials; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tc := c
			tc.Seed = c.Seed + uint64(i)
			r, err := RunContext(gctx, tc)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TrialsResult{}, err
	}

	return aggregate(reports), nil
}

// aggregate folds reports in trial order so float sums are reproducible.
func aggregate(reports []Report) TrialsResult {
	first := reports[0]
	trials := float64(len(reports))

	out := TrialsResult{
		Trials:   len(reports),
		Rounds:   first.Rounds,
		BestArm:  first.BestArm,
		Policies: make([]domain.PolicyAggregate, len(first.Policies)),
	}

	for j, pr := range first.Policies {
		agg := domain.PolicyAggregate{
			Name:       pr.Name,
			MeanCounts: make([]float64, len(pr.Counts)),
			MinPayoff:  math.Inf(1),
			MaxPayoff:  math.Inf(-1),
		}

		var sum, sumRegret float64
		for _, r := range reports {
			res := r.Policies[j]
			for k, c := range res.Counts {
				agg.MeanCounts[k] += float64(c)
			}
			sum += res.Payoff
			sumRegret += res.Regret
			agg.MinPayoff = math.Min(agg.MinPayoff, res.Payoff)
			agg.MaxPayoff = math.Max(agg.MaxPayoff, res.Payoff)
		}
		for k := range agg.MeanCounts {
			agg.MeanCounts[k] /= trials
		}
		agg.MeanPayoff = sum / trials
		agg.MeanRegret = sumRegret / trials

		var sq float64
		for _, r := range reports {
			d := r.Policies[j].Payoff - agg.MeanPayoff
			sq += d * d
		}
		agg.StdDevPayoff = math.Sqrt(sq / trials)

		out.Policies[j] = agg
	}
	return out
}
