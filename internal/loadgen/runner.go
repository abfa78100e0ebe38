// Package loadgen drives a running rating service with generated votes and
// verifies the resulting ranking, for load and smoke testing.
package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brahmiamine/ArbiNote-sub000/pkg/logger"
)

// Default official names seeded when none are given.
var defaultOfficials = []string{
	"Clement Turpin",
	"Benoit Bastien",
	"Stephanie Frappart",
	"Francois Letexier",
}

// Run executes the complete vote generation run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting vote load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("votes", config.NumVotes),
		logger.Int("matches", config.Matches),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Seed officials and matches
	matchIDs, err := seedReferenceData(ctx, config)
	if err != nil {
		return fmt.Errorf("reference data seeding failed: %w", err)
	}

	// Step 3: Generate votes
	votes := generateVotes(ctx, config, matchIDs, stats)

	// Step 4: Submit votes concurrently
	if err := submitVotes(ctx, config, votes, stats); err != nil {
		return fmt.Errorf("vote submission failed: %w", err)
	}

	// Step 5: Fetch the ranking and verify vote counts
	if err := verifyRanking(ctx, config, stats); err != nil {
		return fmt.Errorf("ranking verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}

	// Any 200 response is healthy (the endpoint returns Prometheus metrics).
	if resp.StatusCode != statusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// seedReferenceData imports officials and a past schedule so every generated
// vote targets an open match. Returns the seeded match ids.
func seedReferenceData(ctx context.Context, config *Config) ([]string, error) {
	client := newHTTPClient(config.Timeout)

	names := config.Officials
	if len(names) == 0 {
		names = defaultOfficials
	}

	officialIDs := make([]string, len(names))
	for i, name := range names {
		first, last := splitName(name)
		officialIDs[i] = fmt.Sprintf("loadgen-off-%d", i+1)
		body := map[string]string{
			"id":         officialIDs[i],
			"first_name": first,
			"last_name":  last,
			"role":       "arbitre",
		}
		if err := postCreated(ctx, client, config.BaseURL+"/officials", body); err != nil {
			return nil, fmt.Errorf("seed official %q: %w", name, err)
		}
	}

	kickoff := time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339)
	matchIDs := make([]string, config.Matches)
	for i := range matchIDs {
		matchIDs[i] = fmt.Sprintf("loadgen-m-%d", i+1)
		body := map[string]string{
			"id":          matchIDs[i],
			"home_team":   fmt.Sprintf("Home %d", i+1),
			"away_team":   fmt.Sprintf("Away %d", i+1),
			"kickoff":     kickoff,
			"official_id": officialIDs[i%len(officialIDs)],
			"matchday_id": fmt.Sprintf("J%d", i/10+1),
		}
		if err := postCreated(ctx, client, config.BaseURL+"/matches", body); err != nil {
			return nil, fmt.Errorf("seed match %q: %w", matchIDs[i], err)
		}
	}

	logger.Get().Info(ctx, "seeded reference data",
		logger.Int("officials", len(officialIDs)),
		logger.Int("matches", len(matchIDs)))
	return matchIDs, nil
}

func postCreated(ctx context.Context, client *HTTPClient, url string, body interface{}) error {
	resp, err := client.Post(ctx, url, body)
	if err != nil {
		return err
	}
	data, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != statusCreated {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}
	return nil
}

// verifyRanking fetches the ranking and checks that the accepted votes all
// landed in it.
func verifyRanking(ctx context.Context, config *Config, stats *Stats) error {
	logger.Get().Info(ctx, "fetching ranking for verification")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/ranking")
	if err != nil {
		return fmt.Errorf("failed to fetch ranking: %w", err)
	}
	data, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read ranking response: %w", err)
	}
	if resp.StatusCode != statusOK {
		return fmt.Errorf("ranking request failed with status: %d", resp.StatusCode)
	}

	var entries []rankingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode ranking: %w", err)
	}
	stats.RankingEntries = len(entries)

	totalVotes := 0
	for _, e := range entries {
		totalVotes += e.Votes
	}
	if totalVotes < stats.VotesSuccessful {
		return fmt.Errorf("ranking accounts for %d votes, expected at least %d",
			totalVotes, stats.VotesSuccessful)
	}

	logger.Get().Info(ctx, "ranking verified",
		logger.Int("entries", len(entries)),
		logger.Int("totalVotes", totalVotes))
	return nil
}

// splitName splits a full name into first and last on the final space.
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, votesPerSecond float64

	if stats.VotesSubmitted > 0 {
		successRate = float64(stats.VotesSuccessful) / float64(stats.VotesSubmitted) * 100
	}
	if stats.Duration > 0 {
		votesPerSecond = float64(stats.VotesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("votesGenerated", stats.VotesGenerated),
		logger.Int("votesSubmitted", stats.VotesSubmitted),
		logger.Int("votesSuccessful", stats.VotesSuccessful),
		logger.Int("votesDuplicate", stats.VotesDuplicate),
		logger.Int("votesFailed", stats.VotesFailed),
		logger.Int("rankingEntries", stats.RankingEntries),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("votesPerSecond", votesPerSecond))
}
