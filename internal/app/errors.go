package service

import (
	"errors"
	"fmt"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/eligibility"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrNotEligible      = errors.New("voting not open for this match")
	ErrUnknownCriterion = errors.New("unknown criterion")
)

// EligibilityError reports why a vote was refused for a match. It matches
// ErrNotEligible under errors.Is so callers can branch without inspecting
// the reason.
type EligibilityError struct {
	Reason eligibility.Reason
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("voting not open: %s", e.Reason.Message())
}

func (e *EligibilityError) Is(target error) bool {
	return target == ErrNotEligible
}
