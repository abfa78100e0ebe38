// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	service "github.com/brahmiamine/ArbiNote-sub000/internal/app"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/eligibility"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/ranking"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitVote runs the full vote ingestion pipeline.
	SubmitVote(ctx context.Context, sub service.VoteSubmission) (model.Vote, error)

	// Read operations expose ranking data.
	Ranking(ctx context.Context, include model.CategorySet) ([]ranking.Entry, error)
	TopMatches(ctx context.Context, category string, limit int) ([]ranking.TopMatch, error)
	BestOfMatchdays(ctx context.Context) (map[string]*ranking.Entry, error)
	EligibilityFor(ctx context.Context, matchID string) (eligibility.Reason, error)
	SearchOfficials(ctx context.Context, q string) ([]model.Official, error)

	// Reference data import.
	AddMatch(ctx context.Context, m model.Match) error
	AddOfficial(ctx context.Context, o model.Official) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	votesHandler     *VotesHandler
	rankingHandler   *RankingHandler
	matchesHandler   *MatchesHandler
	bestOfHandler    *BestOfHandler
	officialsHandler *OfficialsHandler
	voteLimiter      *rate.Limiter
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithVoteRateLimit bounds vote submission throughput. An rps of zero
// disables rate limiting.
func WithVoteRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.voteLimiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	v := validator.New()
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		votesHandler:     NewVotesHandler(deps, v),
		rankingHandler:   NewRankingHandler(deps),
		matchesHandler:   NewMatchesHandler(deps, v),
		bestOfHandler:    NewBestOfHandler(deps),
		officialsHandler: NewOfficialsHandler(deps, v),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/votes", RateLimitMiddleware(
		MetricsMiddleware(s.votesHandler.HandlePostVote, "votes"),
		s.voteLimiter,
	))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/matches/top", MetricsMiddleware(s.matchesHandler.HandleGetTopMatches, "matches_top"))
	mux.HandleFunc("/matches/", MetricsMiddleware(s.matchesHandler.HandleGetEligibility, "match_eligibility"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandlePostMatch, "matches"))
	mux.HandleFunc("/matchdays/best", MetricsMiddleware(s.bestOfHandler.HandleGetBestOfMatchdays, "matchdays_best"))
	mux.HandleFunc("/officials/search", MetricsMiddleware(s.officialsHandler.HandleSearch, "officials_search"))
	mux.HandleFunc("/officials", MetricsMiddleware(s.officialsHandler.HandlePostOfficial, "officials"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
