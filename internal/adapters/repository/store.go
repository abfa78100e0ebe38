// Package repository defines the vote store contract and its errors.
//
// The store is the authority for the one-vote-per-device-per-match policy:
// InsertVote must fail atomically on a duplicate (match, fingerprint) pair,
// regardless of any application-level pre-check.
package repository

import (
	"context"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
)

// Store provides read/write access to votes, matches and officials.
type Store interface {
	// InsertVote persists a vote. Returns ErrDuplicateVote when a vote for
	// the same (match, fingerprint) pair already exists; the check and the
	// write are one atomic step.
	InsertVote(ctx context.Context, v model.Vote) (model.Vote, error)

	// ListVotes returns every stored vote.
	ListVotes(ctx context.Context) ([]model.Vote, error)

	// ListVotesForMatches returns the votes of the given matches.
	ListVotesForMatches(ctx context.Context, matchIDs []string) ([]model.Vote, error)

	// ListVotesForOfficial returns the votes referencing one official.
	ListVotesForOfficial(ctx context.Context, officialID string) ([]model.Vote, error)

	// HasVote reports whether a vote exists for the (match, fingerprint)
	// pair. Display-path helper; never a substitute for InsertVote's check.
	HasVote(ctx context.Context, matchID, fingerprint string) (bool, error)

	// FindMatch resolves a match by id. Returns ErrNotFound when unknown.
	FindMatch(ctx context.Context, id string) (model.Match, error)

	// FindOfficial resolves an official by id. Returns ErrNotFound when unknown.
	FindOfficial(ctx context.Context, id string) (model.Official, error)

	ListMatches(ctx context.Context) ([]model.Match, error)
	ListOfficials(ctx context.Context) ([]model.Official, error)

	// PutMatch and PutOfficial upsert reference data (schedule import).
	PutMatch(ctx context.Context, m model.Match) error
	PutOfficial(ctx context.Context, o model.Official) error

	// CountVotes returns the number of stored votes.
	CountVotes(ctx context.Context) int
}
