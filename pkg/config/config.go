package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"banditLab/domain"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Server     ServerConfig
	Simulation SimulationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	LogLevel    string
}

type ServerConfig struct {
	Port string
	// RateLimit is requests per second per client IP. Zero disables limiting.
	RateLimit float64
}

// SimulationConfig holds the defaults applied to requests that leave fields
// empty. Arms are played by index: put the best arm first when fixed_first
// is meant as an oracle baseline.
type SimulationConfig struct {
	Arms      []domain.ArmSpec
	Policies  []domain.PolicyKind
	Rounds    int
	Seed      uint64
	Trials    int
	MaxRounds int
	MaxTrials int
	CacheSize int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	rounds, err := getEnvInt("SIM_ROUNDS", 1000)
	if err != nil {
		return nil, err
	}
	trials, err := getEnvInt("SIM_TRIALS", 100)
	if err != nil {
		return nil, err
	}
	maxRounds, err := getEnvInt("SIM_MAX_ROUNDS", 1_000_000)
	if err != nil {
		return nil, err
	}
	maxTrials, err := getEnvInt("SIM_MAX_TRIALS", 10_000)
	if err != nil {
		return nil, err
	}
	cacheSize, err := getEnvInt("SIM_CACHE_SIZE", 128)
	if err != nil {
		return nil, err
	}
	rateLimit, err := strconv.ParseFloat(getEnv("RATE_LIMIT", "20"), 64)
	if err != nil || rateLimit < 0 {
		return nil, errors.New("invalid RATE_LIMIT")
	}
	seed, err := strconv.ParseUint(getEnv("SIM_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid SIM_SEED")
	}
	arms, err := ParseArms(getEnv("SIM_ARMS", "bernoulli:0.7,bernoulli:0.5,bernoulli:0.2,bernoulli:0.2,bernoulli:0.3"))
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_ARMS: %w", err)
	}
	policies, err := ParsePolicies(getEnv("SIM_POLICIES", "ucb1,win_stay_lose_shift,uniform_random,fixed_first"))
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_POLICIES: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bandit Lab"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			RateLimit: rateLimit,
		},
		Simulation: SimulationConfig{
			Arms:      arms,
			Policies:  policies,
			Rounds:    rounds,
			Seed:      seed,
			Trials:    trials,
			MaxRounds: maxRounds,
			MaxTrials: maxTrials,
			CacheSize: cacheSize,
		},
	}

	if cfg.Simulation.Rounds <= 0 {
		return nil, errors.New("SIM_ROUNDS must be positive")
	}
	if cfg.Simulation.Trials <= 0 {
		return nil, errors.New("SIM_TRIALS must be positive")
	}
	if cfg.Simulation.Rounds > cfg.Simulation.MaxRounds {
		return nil, errors.New("SIM_ROUNDS exceeds SIM_MAX_ROUNDS")
	}
	if cfg.Simulation.Trials > cfg.Simulation.MaxTrials {
		return nil, errors.New("SIM_TRIALS exceeds SIM_MAX_TRIALS")
	}

	return cfg, nil
}

// ParseArms reads a comma separated pool such as
// "bernoulli:0.7,normal:1:0.5". Bernoulli takes p, normal takes mu and sigma.
// Range checks are left to the arm constructors.
func ParseArms(s string) ([]domain.ArmSpec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var arms []domain.ArmSpec
	for i, item := range strings.Split(s, ",") {
		parts := strings.Split(strings.TrimSpace(item), ":")
		params := make([]float64, 0, len(parts)-1)
		for _, raw := range parts[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("arm %d: bad number %q", i, raw)
			}
			params = append(params, v)
		}

		switch kind := domain.ArmKind(strings.ToLower(strings.TrimSpace(parts[0]))); kind {
		case domain.ArmBernoulli:
			if len(params) != 1 {
				return nil, fmt.Errorf("arm %d: bernoulli needs p", i)
			}
			arms = append(arms, domain.BernoulliSpec(params[0]))
		case domain.ArmNormal:
			if len(params) != 2 {
				return nil, fmt.Errorf("arm %d: normal needs mu and sigma", i)
			}
			arms = append(arms, domain.NormalSpec(params[0], params[1]))
		default:
			return nil, fmt.Errorf("arm %d: unknown kind %q", i, parts[0])
		}
	}
	return arms, nil
}

// ParsePolicies reads a comma separated list of policy kinds.
func ParsePolicies(s string) ([]domain.PolicyKind, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var kinds []domain.PolicyKind
	for _, item := range strings.Split(s, ",") {
		kind := domain.PolicyKind(strings.ToLower(strings.TrimSpace(item)))
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown policy %q", item)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
