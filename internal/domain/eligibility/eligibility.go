// Package eligibility decides whether a match is open for voting.
//
// The same Evaluate call backs both the display path (show or hide the vote
// form) and the submission path, so the two can never disagree.
package eligibility

import "time"

// VotingOpensAfter is how long after kickoff voting becomes available.
// There is no closing bound: votes stay open indefinitely once the window
// has opened.
const VotingOpensAfter = 30 * time.Minute

// Reason explains why a match is, or is not, open for voting.
type Reason string

const (
	// ReasonEligible means the vote may be accepted.
	ReasonEligible Reason = "eligible"
	// ReasonNoOfficial means no official has been assigned to the match yet.
	ReasonNoOfficial Reason = "no_official_assigned"
	// ReasonNotStarted means the kickoff is unknown or still in the future.
	ReasonNotStarted Reason = "match_not_started"
	// ReasonNotOpenYet means fewer than VotingOpensAfter have elapsed.
	ReasonNotOpenYet Reason = "voting_not_open"
)

// Message returns a user-readable explanation for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonEligible:
		return "voting is open"
	case ReasonNoOfficial:
		return "no official assigned yet"
	case ReasonNotStarted:
		return "the match has not started"
	case ReasonNotOpenYet:
		return "voting opens 30 minutes after kickoff"
	default:
		return "voting is closed"
	}
}

// Evaluate returns the eligibility verdict for a match. kickoff is nil when
// the match date is still pending.
func Evaluate(officialAssigned bool, kickoff *time.Time, now time.Time) Reason {
	if !officialAssigned {
		return ReasonNoOfficial
	}
	if kickoff == nil || kickoff.After(now) {
		return ReasonNotStarted
	}
	if now.Sub(*kickoff) < VotingOpensAfter {
		return ReasonNotOpenYet
	}
	return ReasonEligible
}

// CanVote is the boolean form of Evaluate.
func CanVote(officialAssigned bool, kickoff *time.Time, now time.Time) bool {
	return Evaluate(officialAssigned, kickoff, now) == ReasonEligible
}
