// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
)

// RankingHandler handles official ranking requests.
type RankingHandler struct {
	deps Dependencies
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps Dependencies) *RankingHandler {
	return &RankingHandler{deps: deps}
}

// HandleGetRanking handles GET /ranking?categories=a,b requests. An absent
// categories parameter means every criterion counts; an empty one means
// none do.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	include, err := parseCategories(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_category", err)
		return
	}

	entries, err := h.deps.Ranking(r.Context(), include)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// parseCategories distinguishes an absent parameter (nil set) from a
// present-but-empty one (empty set).
func parseCategories(q map[string][]string) (model.CategorySet, error) {
	raw, present := q["categories"]
	if !present {
		return nil, nil
	}

	include := model.CategorySet{}
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			cat, err := model.ParseCategory(part)
			if err != nil {
				return nil, err
			}
			include[cat] = struct{}{}
		}
	}
	return include, nil
}
