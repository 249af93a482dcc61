package domain

// SimulationRequest configures one run. Empty Arms, empty Policies, zero
// Rounds and zero Seed fall back to the service defaults.
type SimulationRequest struct {
	Arms     []ArmSpec    `json:"arms" validate:"omitempty,dive"`
	Policies []PolicyKind `json:"policies" validate:"omitempty,dive,oneof=ucb1 win_stay_lose_shift uniform_random fixed_first"`
	Rounds   int          `json:"rounds" validate:"gte=0"`
	Seed     uint64       `json:"seed"`
	Trace    bool         `json:"trace"`
}

type TrialRequest struct {
	SimulationRequest
	Trials int `json:"trials" validate:"gte=0"`
}

type SimulationReport struct {
	RunID    string         `json:"run_id"`
	Seed     uint64         `json:"seed"`
	Rounds   int            `json:"rounds"`
	BestArm  int            `json:"best_arm"`
	Policies []PolicyResult `json:"policies"`
	Trace    []Pull         `json:"trace,omitempty"`
}

type TrialReport struct {
	RunID    string            `json:"run_id"`
	Seed     uint64            `json:"seed"`
	Rounds   int               `json:"rounds"`
	Trials   int               `json:"trials"`
	BestArm  int               `json:"best_arm"`
	Policies []PolicyAggregate `json:"policies"`
}
