package analyzer

import "errors"

// Failure taxonomy. Every error is recovered at the orchestrator boundary and
// converted into a SwapResponse with success=false; nothing propagates.
var (
	// ErrTransport covers network failures, timeouts, and non-2xx replies
	// from the upstream API.
	ErrTransport = errors.New("quote api unreachable")

	// ErrNoRoutes means the upstream returned an empty or all-invalid
	// candidate set.
	ErrNoRoutes = errors.New("no routes available")

	// ErrValidation covers missing or malformed request fields.
	ErrValidation = errors.New("invalid request")

	// ErrExecution means the execution call failed or reported failure.
	ErrExecution = errors.New("execution failed")
)
