// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brahmiamine/ArbiNote-sub000/internal/adapters/repository"
	service "github.com/brahmiamine/ArbiNote-sub000/internal/app"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/ranking"
)

// voteRequest mirrors the OpenAPI schema for POST /votes.
type voteRequest struct {
	MatchID     string             `json:"match_id"    validate:"required"`
	Fingerprint string             `json:"fingerprint" validate:"required"`
	Scores      map[string]float64 `json:"scores"      validate:"required,dive,gte=0,lte=5"`
}

type voteResponse struct {
	ID         string    `json:"id"`
	MatchID    string    `json:"match_id"`
	OfficialID string    `json:"official_id"`
	GlobalNote float64   `json:"global_note"`
	CreatedAt  time.Time `json:"created_at"`
}

// VotesHandler handles vote submissions.
type VotesHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewVotesHandler creates a new votes handler.
func NewVotesHandler(deps Dependencies, validate *validator.Validate) *VotesHandler {
	return &VotesHandler{deps: deps, validate: validate}
}

// HandlePostVote handles POST /votes requests.
func (h *VotesHandler) HandlePostVote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err)
		return
	}

	vote, err := h.deps.SubmitVote(r.Context(), service.VoteSubmission{
		MatchID:     req.MatchID,
		Fingerprint: req.Fingerprint,
		Scores:      req.Scores,
	})
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, voteResponse{
		ID:         vote.ID,
		MatchID:    vote.MatchID,
		OfficialID: vote.OfficialID,
		GlobalNote: vote.GlobalNote,
		CreatedAt:  vote.CreatedAt,
	})
}

// writeSubmitError translates ingestion pipeline errors to HTTP responses.
func (h *VotesHandler) writeSubmitError(w http.ResponseWriter, err error) {
	var eligErr *service.EligibilityError

	switch {
	case errors.Is(err, repository.ErrDuplicateVote):
		writeError(w, http.StatusConflict, "already_voted", err)
	case errors.As(err, &eligErr):
		writeJSON(w, http.StatusForbidden, errorResponse{
			Code:    "voting_closed",
			Message: eligErr.Reason.Message(),
		})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "match_not_found", err)
	case errors.Is(err, service.ErrUnknownCriterion):
		writeError(w, http.StatusBadRequest, "unknown_criterion", err)
	case errors.Is(err, ranking.ErrNothingRated):
		writeError(w, http.StatusBadRequest, "nothing_rated", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
