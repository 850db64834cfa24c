package business

import "errors"

// Error taxonomy for the command engine. Tier-local failures
// (ErrTierUnavailable and internal tier panics) degrade silently to the next
// tier at the orchestrator boundary; the rest become user-facing text.
// ErrProductNotFound and ErrActionFailed are for host ActionExecutor
// implementations to return, so the engine can tell a missing record from an
// infrastructure failure.
var (
	// ErrAmbiguousIntent: no command pattern matched, or a matched pattern
	// carried malformed parameters.
	ErrAmbiguousIntent = errors.New("ambiguous intent")

	// ErrProductNotFound: a named product could not be resolved.
	ErrProductNotFound = errors.New("product not found")

	// ErrTierUnavailable: the external generative tier failed (network,
	// timeout, quota, non-2xx, malformed body).
	ErrTierUnavailable = errors.New("external tier unavailable")

	// ErrActionFailed: the executor could not apply the mutation.
	ErrActionFailed = errors.New("action execution failed")

	// ErrPendingActionNotFound: confirm/cancel referenced an unknown or
	// already resolved pending action.
	ErrPendingActionNotFound = errors.New("pending action not found")

	// ErrPendingActionExpired: confirm/cancel arrived after the
	// confirmation window closed.
	ErrPendingActionExpired = errors.New("pending action expired")
)
