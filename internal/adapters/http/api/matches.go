// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brahmiamine/ArbiNote-sub000/internal/adapters/repository"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/eligibility"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/ranking"
)

// matchRequest mirrors the OpenAPI schema for POST /matches.
type matchRequest struct {
	ID         string `json:"id"         validate:"required"`
	HomeTeam   string `json:"home_team"  validate:"required"`
	AwayTeam   string `json:"away_team"  validate:"required"`
	Kickoff    string `json:"kickoff"    validate:"omitempty"`
	OfficialID string `json:"official_id"`
	MatchdayID string `json:"matchday_id"`
}

type eligibilityResponse struct {
	MatchID  string `json:"match_id"`
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

// MatchesHandler handles match-scoped requests.
type MatchesHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies, validate *validator.Validate) *MatchesHandler {
	return &MatchesHandler{deps: deps, validate: validate}
}

// HandleGetTopMatches handles GET /matches/top?category=C&limit=N requests.
func (h *MatchesHandler) HandleGetTopMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "missing_category", ErrBadRequest)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit", ErrBadRequest)
			return
		}
		limit = n
	}

	matches, err := h.deps.TopMatches(r.Context(), category, limit)
	if err != nil {
		if errors.Is(err, model.ErrUnknownCategory) || errors.Is(err, ranking.ErrUnknownCategory) {
			writeError(w, http.StatusBadRequest, "unknown_category", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandleGetEligibility handles GET /matches/{id}/eligibility requests.
func (h *MatchesHandler) HandleGetEligibility(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Extract path parameters after /matches/
	path := strings.TrimPrefix(r.URL.Path, "/matches/")
	matchID, ok := strings.CutSuffix(path, "/eligibility")
	if !ok || matchID == "" || strings.Contains(matchID, "/") {
		http.NotFound(w, r)
		return
	}

	reason, err := h.deps.EligibilityFor(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "match_not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, eligibilityResponse{
		MatchID:  matchID,
		Eligible: reason == eligibility.ReasonEligible,
		Reason:   string(reason),
		Message:  reason.Message(),
	})
}

// HandlePostMatch handles POST /matches requests (schedule import).
func (h *MatchesHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err)
		return
	}

	match := model.Match{
		ID:         req.ID,
		HomeTeam:   req.HomeTeam,
		AwayTeam:   req.AwayTeam,
		OfficialID: req.OfficialID,
		MatchdayID: req.MatchdayID,
	}
	if req.Kickoff != "" {
		kickoff, err := time.Parse(time.RFC3339, req.Kickoff)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_kickoff", ErrBadRequest)
			return
		}
		match.Kickoff = &kickoff
	}

	if err := h.deps.AddMatch(r.Context(), match); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, match)
}
