package loadgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-andiamo/splitter"
)

// Config holds configuration for the vote load generator.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumVotes  int           // Number of votes to generate
	Matches   int           // Number of matches to seed
	Officials []string      // Official full names to seed
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	LogFile   string        // Log file for run output
	Verbose   bool          // Enable verbose logging
}

// voteRequest mirrors the POST /votes schema.
type voteRequest struct {
	MatchID     string             `json:"match_id"`
	Fingerprint string             `json:"fingerprint"`
	Scores      map[string]float64 `json:"scores"`
}

// rankingEntry mirrors one GET /ranking row.
type rankingEntry struct {
	OfficialID string  `json:"official_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Votes      int     `json:"votes"`
	Average    float64 `json:"average"`
}

// Stats holds run statistics.
type Stats struct {
	VotesGenerated  int
	VotesSubmitted  int
	VotesSuccessful int
	VotesDuplicate  int
	VotesFailed     int
	RankingEntries  int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

// ParseOfficials splits a space-separated list of official names. Names with
// spaces can be double-quoted, e.g. `"Clement Turpin" Frappart`.
func ParseOfficials(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, fmt.Errorf("build splitter: %w", err)
	}
	parts, err := spaceSplitter.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("split officials list: %w", err)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
