package flags

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("toggle not found")

// Runtime toggles read by the request handlers.
const (
	// KeyDemoMode forces every analysis onto the canned demo source.
	KeyDemoMode = "demo_mode"

	// KeyLenientCriteria restores the old silent-default behavior for
	// unknown selection criteria instead of rejecting the request.
	KeyLenientCriteria = "criteria.lenient"
)

type Toggle struct {
	Key       string    `json:"key"`
	Value     bool      `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
