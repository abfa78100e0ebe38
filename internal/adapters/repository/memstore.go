package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/identity"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
	"github.com/brahmiamine/ArbiNote-sub000/pkg/metrics"
)

// MemStore is the in-memory Store implementation used by default and in
// tests. A single mutex covers the vote map and its unique (match,
// fingerprint) index, so the duplicate check and the insert are one atomic
// step: two racing submissions cannot both commit.
type MemStore struct {
	mu sync.RWMutex

	votes      map[string]model.Vote // vote id -> vote
	byVoteKey  map[string]string     // identity.VoteKey -> vote id (unique index)
	byMatch    map[string][]string   // match id -> vote ids, insertion order
	byOfficial map[string][]string   // official id -> vote ids, insertion order

	matches   map[string]model.Match
	officials map[string]model.Official
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		votes:      make(map[string]model.Vote),
		byVoteKey:  make(map[string]string),
		byMatch:    make(map[string][]string),
		byOfficial: make(map[string][]string),
		matches:    make(map[string]model.Match),
		officials:  make(map[string]model.Official),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InsertVote implements Store. The uniqueness check and the write happen
// under one lock.
func (s *MemStore) InsertVote(_ context.Context, v model.Vote) (model.Vote, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreInsertLatency(float64(time.Since(start).Milliseconds()))
	}()

	key := identity.VoteKey(v.MatchID, v.Fingerprint)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byVoteKey[key]; exists {
		return model.Vote{}, ErrDuplicateVote
	}

	stored := v.Clone()
	stored.Fingerprint = identity.Normalize(v.Fingerprint)
	s.votes[stored.ID] = stored
	s.byVoteKey[key] = stored.ID
	s.byMatch[stored.MatchID] = append(s.byMatch[stored.MatchID], stored.ID)
	s.byOfficial[stored.OfficialID] = append(s.byOfficial[stored.OfficialID], stored.ID)

	metrics.UpdateTotalVotes(len(s.votes))
	return stored.Clone(), nil
}

func (s *MemStore) ListVotes(_ context.Context) ([]model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.votes))
	for id := range s.votes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]model.Vote, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.votes[id].Clone())
	}
	return out, nil
}

func (s *MemStore) ListVotesForMatches(_ context.Context, matchIDs []string) ([]model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Vote
	for _, mid := range matchIDs {
		for _, vid := range s.byMatch[mid] {
			out = append(out, s.votes[vid].Clone())
		}
	}
	return out, nil
}

func (s *MemStore) ListVotesForOfficial(_ context.Context, officialID string) ([]model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byOfficial[officialID]
	out := make([]model.Vote, 0, len(ids))
	for _, vid := range ids {
		out = append(out, s.votes[vid].Clone())
	}
	return out, nil
}

func (s *MemStore) HasVote(_ context.Context, matchID, fingerprint string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.byVoteKey[identity.VoteKey(matchID, fingerprint)]
	return exists, nil
}

func (s *MemStore) FindMatch(_ context.Context, id string) (model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return model.Match{}, ErrNotFound
	}
	return m, nil
}

func (s *MemStore) FindOfficial(_ context.Context, id string) (model.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.officials[id]
	if !ok {
		return model.Official{}, ErrNotFound
	}
	return o, nil
}

func (s *MemStore) ListMatches(_ context.Context) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) ListOfficials(_ context.Context) ([]model.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Official, 0, len(s.officials))
	for _, o := range s.officials {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) PutMatch(_ context.Context, m model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches[m.ID] = m
	metrics.UpdateTotalMatches(len(s.matches))
	return nil
}

func (s *MemStore) PutOfficial(_ context.Context, o model.Official) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.officials[o.ID] = o
	metrics.UpdateTotalOfficials(len(s.officials))
	return nil
}

func (s *MemStore) CountVotes(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.votes)
}
