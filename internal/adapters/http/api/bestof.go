// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// BestOfHandler handles best-of-matchday requests.
type BestOfHandler struct {
	deps Dependencies
}

// NewBestOfHandler creates a new best-of handler.
func NewBestOfHandler(deps Dependencies) *BestOfHandler {
	return &BestOfHandler{deps: deps}
}

// HandleGetBestOfMatchdays handles GET /matchdays/best requests. The
// response maps matchday id to the best-rated referee entry of that day.
func (h *BestOfHandler) HandleGetBestOfMatchdays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	best, err := h.deps.BestOfMatchdays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, best)
}
