// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
)

// officialRequest mirrors the OpenAPI schema for POST /officials.
type officialRequest struct {
	ID        string `json:"id"         validate:"required"`
	FirstName string `json:"first_name" validate:"required_without=LastName"`
	LastName  string `json:"last_name"  validate:"required_without=FirstName"`
	Role      string `json:"role"       validate:"omitempty,oneof=arbitre var assistant"`
}

// OfficialsHandler handles official lookups and imports.
type OfficialsHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewOfficialsHandler creates a new officials handler.
func NewOfficialsHandler(deps Dependencies, validate *validator.Validate) *OfficialsHandler {
	return &OfficialsHandler{deps: deps, validate: validate}
}

// HandleSearch handles GET /officials/search?q=name requests. Results come
// back best match first; an empty query returns every official.
func (h *OfficialsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	officials, err := h.deps.SearchOfficials(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, officials)
}

// HandlePostOfficial handles POST /officials requests (reference import).
func (h *OfficialsHandler) HandlePostOfficial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req officialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err)
		return
	}

	official := model.Official{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}
	if err := h.deps.AddOfficial(r.Context(), official); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, official)
}
