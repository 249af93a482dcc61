package simulation

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"banditLab/business/bandit"
	"banditLab/domain"
	"banditLab/pkg/logger"

	"github.com/google/uuid"
)

type Config struct {
	Defaults      bandit.Config
	DefaultTrials int
	MaxRounds     int
	MaxTrials     int
	// CacheSize bounds the memoized trial results. Zero disables the cache.
	CacheSize int
}

func DefaultConfig() Config {
	return Config{
		Defaults:      bandit.DefaultConfig(),
		DefaultTrials: 100,
		MaxRounds:     1_000_000,
		MaxTrials:     10_000,
		CacheSize:     128,
	}
}

// ---- Usecase / Service ----

type Service struct {
	cfg    Config
	now    func() time.Time
	newID  func() string
	trials *trialCache
}

func NewService(cfg Config) *Service {
	return &Service{
		cfg:    cfg,
		now:    time.Now,
		newID:  uuid.NewString,
		trials: newTrialCache(cfg.CacheSize),
	}
}

// Defaults returns the request the service runs when every field is left empty.
func (s *Service) Defaults() domain.TrialRequest {
	d := s.cfg.Defaults
	return domain.TrialRequest{
		SimulationRequest: domain.SimulationRequest{
			Arms:     slices.Clone(d.Arms),
			Policies: slices.Clone(d.Policies),
			Rounds:   d.Rounds,
			Seed:     d.Seed,
		},
		Trials: s.cfg.DefaultTrials,
	}
}

// Simulate plays one run and reports per-policy counts, values and payoffs.
func (s *Service) Simulate(ctx context.Context, req domain.SimulationRequest) (domain.SimulationReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.SimulationReport{}, fmt.Errorf("context error: %w", err)
	}

	cfg, err := s.resolve(req)
	if err != nil {
		return domain.SimulationReport{}, err
	}

	runID := s.newID()
	start := s.now()

	report, err := bandit.RunContext(ctx, cfg)
	if err != nil {
		return domain.SimulationReport{}, fmt.Errorf("run simulation: %w", err)
	}

	logger.Info("simulation_run",
		"trace_id", TraceIDFromContext(ctx),
		"run_id", runID,
		"seed", cfg.Seed,
		"rounds", cfg.Rounds,
		"arms", len(cfg.Arms),
		"policies", len(cfg.Policies),
		"best_arm", report.BestArm,
		"elapsed_ms", s.now().Sub(start).Milliseconds(),
	)
	s.checkOracle(ctx, runID, cfg.Policies, report.BestArm)

	SimulationsTotal.WithLabelValues("single").Inc()
	for _, res := range report.Policies {
		for arm, c := range res.Counts {
			if c > 0 {
				ArmPullsTotal.WithLabelValues(res.Name, strconv.Itoa(arm)).Add(float64(c))
			}
		}
		PolicyPayoff.WithLabelValues(res.Name).Observe(res.Payoff)
	}

	return domain.SimulationReport{
		RunID:    runID,
		Seed:     cfg.Seed,
		Rounds:   report.Rounds,
		BestArm:  report.BestArm,
		Policies: report.Policies,
		Trace:    report.Trace,
	}, nil
}

// SimulateTrials plays independent, consecutively seeded runs and reports
// per-policy aggregates.
func (s *Service) SimulateTrials(ctx context.Context, req domain.TrialRequest) (domain.TrialReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrialReport{}, fmt.Errorf("context error: %w", err)
	}

	trials := req.Trials
	if trials == 0 {
		trials = s.cfg.DefaultTrials
	}
	if trials <= 0 {
		return domain.TrialReport{}, fmt.Errorf("%w: trials=%d must be positive",
			bandit.ErrInvalidConfig, trials)
	}
	if s.cfg.MaxTrials > 0 && trials > s.cfg.MaxTrials {
		return domain.TrialReport{}, fmt.Errorf("%w: trials=%d exceeds %d",
			bandit.ErrInvalidConfig, trials, s.cfg.MaxTrials)
	}

	// Trial batches never trace.
	sreq := req.SimulationRequest
	sreq.Trace = false
	cfg, err := s.resolve(sreq)
	if err != nil {
		return domain.TrialReport{}, err
	}

	runID := s.newID()
	start := s.now()

	// Time-derived seeds never repeat, so only fixed seeds are memoized.
	memo := req.Seed != 0 || s.cfg.Defaults.Seed != 0
	key := trialKey(cfg, trials)
	var (
		result bandit.TrialsResult
		cached bool
	)
	if memo {
		result, cached = s.trials.get(key)
	}
	if !cached {
		result, err = bandit.RunTrials(ctx, cfg, trials)
		if err != nil {
			return domain.TrialReport{}, fmt.Errorf("run trials: %w", err)
		}
		if memo {
			s.trials.add(key, result)
		}
	}

	logger.Info("simulation_trials",
		"trace_id", TraceIDFromContext(ctx),
		"run_id", runID,
		"seed", cfg.Seed,
		"rounds", cfg.Rounds,
		"trials", trials,
		"best_arm", result.BestArm,
		"cached", cached,
		"elapsed_ms", s.now().Sub(start).Milliseconds(),
	)
	s.checkOracle(ctx, runID, cfg.Policies, result.BestArm)

	SimulationsTotal.WithLabelValues("trials").Inc()
	for _, agg := range result.Policies {
		PolicyPayoff.WithLabelValues(agg.Name).Observe(agg.MeanPayoff)
	}

	return domain.TrialReport{
		RunID:    runID,
		Seed:     cfg.Seed,
		Rounds:   result.Rounds,
		Trials:   result.Trials,
		BestArm:  result.BestArm,
		Policies: result.Policies,
	}, nil
}

// resolve merges req over the service defaults and validates the result.
func (s *Service) resolve(req domain.SimulationRequest) (bandit.Config, error) {
	cfg := s.cfg.Defaults
	cfg.Arms = slices.Clone(cfg.Arms)
	cfg.Policies = slices.Clone(cfg.Policies)
	cfg.Trace = req.Trace

	if len(req.Arms) > 0 {
		cfg.Arms = slices.Clone(req.Arms)
	}
	if len(req.Policies) > 0 {
		cfg.Policies = slices.Clone(req.Policies)
	}
	if req.Rounds != 0 {
		cfg.Rounds = req.Rounds
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(s.now().UnixNano())
	}

	if s.cfg.MaxRounds > 0 && cfg.Rounds > s.cfg.MaxRounds {
		return bandit.Config{}, fmt.Errorf("%w: rounds=%d exceeds %d",
			bandit.ErrInvalidConfig, cfg.Rounds, s.cfg.MaxRounds)
	}
	if err := cfg.Validate(); err != nil {
		return bandit.Config{}, err
	}
	return cfg, nil
}

// checkOracle warns when fixed_first runs on a pool whose best arm is not
// arm 0, in which case it is no longer an oracle baseline.
func (s *Service) checkOracle(ctx context.Context, runID string, policies []domain.PolicyKind, best int) {
	if best == 0 || !slices.Contains(policies, domain.PolicyFixedFirst) {
		return
	}
	logger.Warn("fixed_first_oracle_mismatch",
		"trace_id", TraceIDFromContext(ctx),
		"run_id", runID,
		"best_arm", best,
	)
}
