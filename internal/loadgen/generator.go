package loadgen

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/brahmiamine/ArbiNote-sub000/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 4
)

// Score profile bounds. Scores live in (0, 5]; a zero would mean "not
// rated" and is generated deliberately for some criteria.
const (
	harshMin      = 1.0
	harshRange    = 1.5
	averageMin    = 2.5
	averageRange  = 1.5
	generousMin   = 4.0
	generousRange = 1.0
	skipChance    = 0.3
)

// Profile cases for vote generation.
const (
	caseHarshVoter    = 0
	caseAverageVoter  = 1
	caseGenerousVoter = 2
	caseMixedVoter    = 3
)

// Criteria rated by the generator; a subset of the default catalog.
var ratedCriteria = []string{"fairplay", "autorite", "communication", "coherence"}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateVotes creates votes across the seeded matches, one unique device
// fingerprint per vote.
func generateVotes(ctx context.Context, config *Config, matchIDs []string, stats *Stats) []voteRequest {
	logger.Get().Info(ctx, "generating votes with unique device fingerprints",
		logger.Int("numVotes", config.NumVotes),
		logger.Int("matches", len(matchIDs)))

	votes := make([]voteRequest, config.NumVotes)
	for i := range votes {
		votes[i] = voteRequest{
			MatchID:     matchIDs[i%len(matchIDs)],
			Fingerprint: uuid.New().String(),
			Scores:      generateScores(),
		}
	}

	stats.VotesGenerated = len(votes)
	logger.Get().Info(ctx, "generated votes successfully", logger.Int("count", len(votes)))
	return votes
}

// generateScores builds one vote's criterion scores following a random
// voter profile. Some criteria are skipped (score zero) to exercise the
// not-rated path.
func generateScores() map[string]float64 {
	profile, _ := rand.Int(rand.Reader, big.NewInt(profileDivisor))

	scores := make(map[string]float64, len(ratedCriteria))
	for _, key := range ratedCriteria {
		if getRandomFloat() < skipChance {
			continue
		}
		scores[key] = roundHalf(profileScore(profile.Int64()))
	}

	// A vote must rate at least one criterion to be accepted.
	if len(scores) == 0 {
		scores[ratedCriteria[0]] = roundHalf(profileScore(caseAverageVoter))
	}
	return scores
}

func profileScore(profile int64) float64 {
	switch profile {
	case caseHarshVoter:
		return harshMin + getRandomFloat()*harshRange
	case caseAverageVoter:
		return averageMin + getRandomFloat()*averageRange
	case caseGenerousVoter:
		return generousMin + getRandomFloat()*generousRange
	case caseMixedVoter:
		return harshMin + getRandomFloat()*(generousMin+generousRange-harshMin)
	default:
		return averageMin + getRandomFloat()*averageRange
	}
}

// roundHalf snaps a score to the half-point scale used by the rating UI.
func roundHalf(v float64) float64 {
	snapped := float64(int(v*2+0.5)) / 2
	if snapped < 0.5 {
		snapped = 0.5
	}
	if snapped > 5 {
		snapped = 5
	}
	return snapped
}
