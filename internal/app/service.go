// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/brahmiamine/ArbiNote-sub000/internal/adapters/repository"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/catalog"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/eligibility"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/identity"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/ranking"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/voteguard"
	"github.com/brahmiamine/ArbiNote-sub000/pkg/logger"
	"github.com/brahmiamine/ArbiNote-sub000/pkg/metrics"
)

// Store backends selectable via configuration.
const (
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)

const defaultTopMatchesLimit = 10

// VoteSubmission carries one device's rating of a match's officiating.
type VoteSubmission struct {
	MatchID     string
	Fingerprint string
	Scores      map[string]float64
}

// Service implements the API dependencies for the rating system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	guard   voteguard.Guard
	catalog *catalog.Catalog

	// Configuration
	guardSize     int
	storeBackend  string
	mongoURI      string
	mongoDatabase string
	criteriaFile  string
	maxTopMatches int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGuardSize bounds the in-memory duplicate-vote guard.
func WithGuardSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.guardSize = size
		}
	}
}

// WithStoreBackend selects the vote store implementation.
func WithStoreBackend(backend string) Option {
	return func(s *Service) {
		if backend != "" {
			s.storeBackend = backend
		}
	}
}

// WithMongo sets the MongoDB connection parameters for the mongo backend.
func WithMongo(uri, database string) Option {
	return func(s *Service) {
		s.mongoURI = uri
		s.mongoDatabase = database
	}
}

// WithCatalog sets the criteria catalog directly.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithCriteriaFile loads the criteria catalog from a YAML file on Start.
// Ignored when WithCatalog is also given.
func WithCriteriaFile(path string) Option {
	return func(s *Service) {
		s.criteriaFile = path
	}
}

// WithMaxTopMatches caps the limit accepted by TopMatches.
func WithMaxTopMatches(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopMatches = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		guardSize:     100_000,
		storeBackend:  StoreBackendMemory,
		maxTopMatches: 50,
		logger:        nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting rating service...")

	if s.catalog == nil {
		if s.criteriaFile != "" {
			c, err := catalog.Load(s.criteriaFile)
			if err != nil {
				return fmt.Errorf("load criteria catalog: %w", err)
			}
			s.catalog = c
			s.logger.Info(ctx, "loaded criteria catalog from file",
				logger.String("path", s.criteriaFile),
				logger.Int("criteria", c.Len()),
			)
		} else {
			s.catalog = catalog.Default()
		}
	}

	s.guard = voteguard.New(
		voteguard.WithMaxSize(s.guardSize),
	)

	switch s.storeBackend {
	case StoreBackendMongo:
		store, err := repository.NewMongoStore(ctx, s.mongoURI, s.mongoDatabase)
		if err != nil {
			return fmt.Errorf("connect mongo store: %w", err)
		}
		s.store = store
		s.logger.Info(ctx, "using mongo store", logger.String("database", s.mongoDatabase))
	default:
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory store")
	}

	s.started = true
	s.logger.Info(ctx, "rating service started",
		logger.Int("guardSize", s.guardSize),
		logger.Int("criteria", s.catalog.Len()),
		logger.String("store", s.storeBackend),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping rating service...")

	if closer, ok := s.store.(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(ctx); err != nil {
			s.logger.Warn(ctx, "closing store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "rating service stopped")
}

// SubmitVote runs the full ingestion pipeline for one vote: resolve the
// match, check the voting window, validate criteria keys, compute the global
// note, then insert with duplicate protection. The store's unique index has
// the final word on duplicates; the guard is only a fast path.
func (s *Service) SubmitVote(ctx context.Context, sub VoteSubmission) (model.Vote, error) {
	if !s.isStarted() {
		return model.Vote{}, ErrNotStarted
	}

	match, err := s.store.FindMatch(ctx, sub.MatchID)
	if err != nil {
		return model.Vote{}, fmt.Errorf("resolve match %q: %w", sub.MatchID, err)
	}

	now := time.Now()
	reason := eligibility.Evaluate(match.OfficialID != "", match.Kickoff, now)
	if reason != eligibility.ReasonEligible {
		metrics.RecordVoteRejected(string(reason))
		return model.Vote{}, &EligibilityError{Reason: reason}
	}

	for key := range sub.Scores {
		if _, ok := s.catalog.Lookup(key); !ok {
			metrics.RecordVoteRejected("unknown_criterion")
			return model.Vote{}, fmt.Errorf("%w: %q", ErrUnknownCriterion, key)
		}
	}

	note, err := ranking.GlobalNote(sub.Scores)
	if err != nil {
		metrics.RecordVoteRejected("nothing_rated")
		return model.Vote{}, fmt.Errorf("compute global note: %w", err)
	}

	key := identity.VoteKey(match.ID, sub.Fingerprint)
	if s.guard.SeenAndRecord(ctx, key) {
		metrics.RecordVoteDuplicate()
		s.logger.Debug(ctx, "duplicate vote blocked by guard",
			logger.String("matchID", match.ID),
		)
		return model.Vote{}, repository.ErrDuplicateVote
	}

	vote := model.Vote{
		ID:          uuid.NewString(),
		MatchID:     match.ID,
		OfficialID:  match.OfficialID,
		Fingerprint: sub.Fingerprint,
		Scores:      sub.Scores,
		GlobalNote:  note,
		CreatedAt:   now.UTC(),
	}

	stored, err := s.store.InsertVote(ctx, vote)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			metrics.RecordVoteDuplicate()
			return model.Vote{}, err
		}
		// Release the key so the device may retry after a transient failure.
		s.guard.Unrecord(ctx, key)
		metrics.RecordErrorByComponent("store", "insert_failed")
		return model.Vote{}, fmt.Errorf("insert vote: %w", err)
	}

	metrics.RecordVoteAccepted()
	metrics.RecordVoteGlobalNote(note)
	metrics.UpdateGuardSize(s.guard.Size())

	s.logger.Debug(ctx, "vote accepted",
		logger.String("voteID", stored.ID),
		logger.String("matchID", stored.MatchID),
		logger.String("officialID", stored.OfficialID),
		logger.Float64("globalNote", note),
	)

	return stored, nil
}

// Ranking returns the official ranking, optionally restricted to the given
// criterion categories. A nil set means every criterion counts; an empty
// set means none do.
func (s *Service) Ranking(ctx context.Context, include model.CategorySet) ([]ranking.Entry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	start := time.Now()

	votes, err := s.store.ListVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	officials, err := s.officialsByID(ctx)
	if err != nil {
		return nil, err
	}

	entries := ranking.BuildRanking(votes, officials, s.catalog.Criteria(), include)
	metrics.RecordRankingLatency(float64(time.Since(start).Microseconds()) / 1000)
	return entries, nil
}

// TopMatches returns the best matches for one category. A non-positive limit
// falls back to the default; limits above the configured cap are clamped.
func (s *Service) TopMatches(ctx context.Context, category string, limit int) ([]ranking.TopMatch, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	start := time.Now()

	if limit < 1 {
		limit = defaultTopMatchesLimit
	}
	if limit > s.maxTopMatches {
		limit = s.maxTopMatches
	}

	cat, err := model.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("top matches: %w", err)
	}

	votes, err := s.store.ListVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	matches, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out, err := ranking.TopMatches(votes, matches, s.catalog.Criteria(), cat, limit)
	if err != nil {
		return nil, err
	}
	metrics.RecordTopMatchesLatency(float64(time.Since(start).Microseconds()) / 1000)
	return out, nil
}

// BestOfMatchdays returns, per matchday, the best-rated referee entry.
// Matchdays whose votes carry no rated referee criterion are omitted.
func (s *Service) BestOfMatchdays(ctx context.Context) (map[string]*ranking.Entry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	start := time.Now()

	votes, err := s.store.ListVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	matches, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	officials, err := s.officialsByID(ctx)
	if err != nil {
		return nil, err
	}

	matchday := make(map[string]string, len(matches))
	for _, m := range matches {
		matchday[m.ID] = m.MatchdayID
	}

	groups := make(map[string][]model.Vote)
	for _, v := range votes {
		day, ok := matchday[v.MatchID]
		if !ok || day == "" {
			continue
		}
		groups[day] = append(groups[day], v)
	}

	best := ranking.BestOfGroups(groups, officials, s.catalog.Criteria())
	metrics.RecordBestOfLatency(float64(time.Since(start).Microseconds()) / 1000)
	return best, nil
}

// EligibilityFor reports whether voting is open for a match, and why not
// when it is closed.
func (s *Service) EligibilityFor(ctx context.Context, matchID string) (eligibility.Reason, error) {
	if !s.isStarted() {
		return "", ErrNotStarted
	}

	match, err := s.store.FindMatch(ctx, matchID)
	if err != nil {
		return "", fmt.Errorf("resolve match %q: %w", matchID, err)
	}
	return eligibility.Evaluate(match.OfficialID != "", match.Kickoff, time.Now()), nil
}

// SearchOfficials fuzzy-matches q against official full names. Results come
// back best match first.
func (s *Service) SearchOfficials(ctx context.Context, q string) ([]model.Official, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}

	officials, err := s.store.ListOfficials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}

	q = strings.TrimSpace(q)
	if q == "" {
		return officials, nil
	}

	names := make([]string, len(officials))
	for i, o := range officials {
		names[i] = o.FullName()
	}

	ranks := fuzzy.RankFindNormalizedFold(q, names)
	sort.Sort(ranks)

	out := make([]model.Official, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, officials[r.OriginalIndex])
	}
	return out, nil
}

// AddMatch upserts a match into the schedule.
func (s *Service) AddMatch(ctx context.Context, m model.Match) error {
	if !s.isStarted() {
		return ErrNotStarted
	}
	if err := s.store.PutMatch(ctx, m); err != nil {
		return fmt.Errorf("put match: %w", err)
	}
	return nil
}

// AddOfficial upserts an official.
func (s *Service) AddOfficial(ctx context.Context, o model.Official) error {
	if !s.isStarted() {
		return ErrNotStarted
	}
	if err := s.store.PutOfficial(ctx, o); err != nil {
		return fmt.Errorf("put official: %w", err)
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"storeBackend":  s.storeBackend,
		"guardSize":     s.guardSize,
		"maxTopMatches": s.maxTopMatches,
	}

	if s.started {
		totalVotes := s.store.CountVotes(ctx)
		stats["totalVotes"] = totalVotes
		stats["criteria"] = s.catalog.Len()
		stats["guardEntries"] = s.guard.Size()

		if matches, err := s.store.ListMatches(ctx); err == nil {
			stats["totalMatches"] = len(matches)
			metrics.UpdateTotalMatches(len(matches))
		}
		if officials, err := s.store.ListOfficials(ctx); err == nil {
			stats["totalOfficials"] = len(officials)
			metrics.UpdateTotalOfficials(len(officials))
		}

		metrics.UpdateTotalVotes(totalVotes)
		metrics.UpdateGuardSize(s.guard.Size())
	}

	return stats
}

// Catalog exposes the active criteria catalog.
func (s *Service) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// officialsByID loads all officials keyed by id.
func (s *Service) officialsByID(ctx context.Context) (map[string]model.Official, error) {
	list, err := s.store.ListOfficials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}
	out := make(map[string]model.Official, len(list))
	for _, o := range list {
		out[o.ID] = o
	}
	return out, nil
}
