package domain

type ArmKind string

const (
	ArmBernoulli ArmKind = "bernoulli"
	ArmNormal    ArmKind = "normal"
)

// ArmSpec describes one arm of the pool. P is read for bernoulli arms,
// Mu and Sigma for normal arms.
type ArmSpec struct {
	Kind  ArmKind `json:"kind" validate:"required,oneof=bernoulli normal"`
	P     float64 `json:"p" validate:"gte=0,lte=1"`
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma" validate:"gte=0"`
}

func BernoulliSpec(p float64) ArmSpec {
	return ArmSpec{Kind: ArmBernoulli, P: p}
}

func NormalSpec(mu, sigma float64) ArmSpec {
	return ArmSpec{Kind: ArmNormal, Mu: mu, Sigma: sigma}
}

type PolicyKind string

const (
	PolicyUCB1             PolicyKind = "ucb1"
	PolicyWinStayLoseShift PolicyKind = "win_stay_lose_shift"
	PolicyUniformRandom    PolicyKind = "uniform_random"
	// PolicyFixedFirst always plays arm 0. Callers that use it as an oracle
	// baseline must put the best arm first in the pool.
	PolicyFixedFirst PolicyKind = "fixed_first"
)

// AllPolicyKinds lists every policy in reporting order.
func AllPolicyKinds() []PolicyKind {
	return []PolicyKind{
		PolicyUCB1,
		PolicyWinStayLoseShift,
		PolicyUniformRandom,
		PolicyFixedFirst,
	}
}

func (k PolicyKind) Valid() bool {
	switch k {
	case PolicyUCB1, PolicyWinStayLoseShift, PolicyUniformRandom, PolicyFixedFirst:
		return true
	}
	return false
}

// PolicyResult is the end-of-run snapshot for one policy.
type PolicyResult struct {
	Name   string    `json:"name"`
	Counts []int     `json:"counts"`
	Values []float64 `json:"values"`
	Payoff float64   `json:"payoff"`
	// Regret is rounds * best arm mean - payoff. It can be negative on lucky runs.
	Regret float64 `json:"regret"`
}

// Pull is one select/draw/update cycle of a single policy.
type Pull struct {
	Round      int     `json:"round"`
	Policy     string  `json:"policy"`
	Arm        int     `json:"arm"`
	Reward     float64 `json:"reward"`
	Cumulative float64 `json:"cumulative"`
}

// PolicyAggregate summarizes one policy across independent trials.
type PolicyAggregate struct {
	Name         string    `json:"name"`
	MeanCounts   []float64 `json:"mean_counts"`
	MeanPayoff   float64   `json:"mean_payoff"`
	StdDevPayoff float64   `json:"stddev_payoff"`
	MinPayoff    float64   `json:"min_payoff"`
	MaxPayoff    float64   `json:"max_payoff"`
	MeanRegret   float64   `json:"mean_regret"`
}
