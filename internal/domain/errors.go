package domain

import "errors"

// Error taxonomy for hub operations. Handlers translate these to HTTP
// status codes; everything else is treated as an internal failure.
var (
	// ErrValidation indicates a missing or malformed required field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unknown agent, task or session id.
	ErrNotFound = errors.New("not found")

	// ErrNoCapableAgent indicates no online agent matched the requested
	// task type. The hub does not queue unmatched requests.
	ErrNoCapableAgent = errors.New("no capable agent available")

	// ErrPolicyBlocked indicates the dispatch policy rejected the request.
	ErrPolicyBlocked = errors.New("blocked by dispatch policy")
)
