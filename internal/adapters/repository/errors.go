package repository

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrDuplicateVote means a vote for the (match, fingerprint) pair
	// already exists. Not retryable: the caller should surface the
	// existing vote instead.
	ErrDuplicateVote = errors.New("vote already recorded for this match and device")

	// ErrNotFound means the referenced match or official is unknown.
	ErrNotFound = errors.New("not found")
)
