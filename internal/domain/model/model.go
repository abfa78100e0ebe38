// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownCategory reports a category outside the closed set.
var ErrUnknownCategory = errors.New("unknown category")

// Category scopes a criterion to the kind of official it rates.
type Category string

// Known categories. The set is closed; criteria files referencing anything
// else are rejected at load time.
const (
	CategoryArbitre   Category = "arbitre"
	CategoryVAR       Category = "var"
	CategoryAssistant Category = "assistant"
)

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryArbitre, CategoryVAR, CategoryAssistant:
		return Category(s), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownCategory, s)
	}
}

// CategorySet selects which categories count toward a ranking view.
//
// A nil set means "include everything"; an empty non-nil set means
// "include nothing". The two are distinct, observable outcomes.
type CategorySet map[Category]struct{}

// Categories builds a set from the given categories.
func Categories(cats ...Category) CategorySet {
	s := make(CategorySet, len(cats))
	for _, c := range cats {
		s[c] = struct{}{}
	}
	return s
}

// Allows reports whether c passes the filter. A nil receiver allows all.
func (s CategorySet) Allows(c Category) bool {
	if s == nil {
		return true
	}
	_, ok := s[c]
	return ok
}

// Criterion is a single rateable dimension, e.g. "fairplay".
// Labels carry localized display strings and are opaque to the engine.
type Criterion struct {
	Key      string            `json:"key"`
	Category Category          `json:"category"`
	Labels   map[string]string `json:"labels,omitempty"`
}

// Official is a referee, VAR operator or assistant being rated.
type Official struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
}

// FullName joins the display name fields for search and logs.
func (o Official) FullName() string {
	switch {
	case o.FirstName == "":
		return o.LastName
	case o.LastName == "":
		return o.FirstName
	default:
		return o.FirstName + " " + o.LastName
	}
}

// Match is a scheduled fixture. Kickoff is nil while the date is pending;
// OfficialID is empty until an official is assigned.
type Match struct {
	ID         string     `json:"id"`
	HomeTeam   string     `json:"home_team"`
	AwayTeam   string     `json:"away_team"`
	Kickoff    *time.Time `json:"kickoff,omitempty"`
	OfficialID string     `json:"official_id,omitempty"`
	MatchdayID string     `json:"matchday_id"`
}

// Vote is a single rating submission. Scores maps criterion key to a value
// in (0, 5]; a zero or absent value means "not rated", never "rated zero".
// Votes are immutable once inserted.
type Vote struct {
	ID          string             `json:"id"`
	MatchID     string             `json:"match_id"`
	OfficialID  string             `json:"official_id"`
	Fingerprint string             `json:"fingerprint"`
	Scores      map[string]float64 `json:"scores"`
	GlobalNote  float64            `json:"global_note"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Clone returns a deep copy so stored votes cannot be mutated through
// slices handed to the aggregation engine.
func (v Vote) Clone() Vote {
	out := v
	out.Scores = make(map[string]float64, len(v.Scores))
	for k, val := range v.Scores {
		out.Scores[k] = val
	}
	return out
}
