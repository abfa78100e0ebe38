package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrInvalidLimit    = errors.New("limit must be positive")
	ErrNothingRated    = errors.New("vote has no rated criterion")
	ErrUnknownCategory = errors.New("unknown category")
)
