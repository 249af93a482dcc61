package bandit

import "errors"

var (
	// ErrInvalidConfig covers bad distribution parameters, non-positive arm,
	// round or trial counts and unknown arm or policy kinds.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUninitializedPolicy is returned when a policy is used before Initialize.
	ErrUninitializedPolicy = errors.New("policy not initialized")

	// ErrInvalidArm is returned for arm indexes outside [0, n_arms).
	ErrInvalidArm = errors.New("invalid arm")
)
