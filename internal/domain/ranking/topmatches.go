package ranking

import (
	"fmt"
	"sort"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
)

// TopMatch is a category-scoped quality score for one match.
type TopMatch struct {
	Match   model.Match `json:"match"`
	Average float64     `json:"average"`
	Votes   int         `json:"votes"`
}

// TopMatches returns the n best matches for a category, e.g. the best VAR
// performances. For each match it averages all rated criteria of that
// category across the match's votes; a vote counts toward the match's vote
// count only when it carries at least one qualifying rating. Matches with no
// qualifying rating are excluded entirely rather than ranked last.
//
// n < 1 is a contract violation and returns ErrInvalidLimit. Inputs are
// never mutated.
func TopMatches(votes []model.Vote, matches []model.Match, criteria []model.Criterion, category model.Category, n int) ([]TopMatch, error) {
	if n < 1 {
		return nil, fmt.Errorf("top matches: %w (got %d)", ErrInvalidLimit, n)
	}
	if _, err := model.ParseCategory(string(category)); err != nil {
		return nil, fmt.Errorf("top matches: %w: %q", ErrUnknownCategory, category)
	}

	inCategory := make(map[string]struct{}, len(criteria))
	for _, c := range criteria {
		if c.Category == category {
			inCategory[c.Key] = struct{}{}
		}
	}

	type agg struct {
		sum   float64
		n     int
		votes int
	}
	byMatch := make(map[string]*agg, len(matches))

	for _, v := range votes {
		var contributed bool
		for key, score := range v.Scores {
			if !rated(score) {
				continue
			}
			if _, ok := inCategory[key]; !ok {
				continue
			}
			a := byMatch[v.MatchID]
			if a == nil {
				a = &agg{}
				byMatch[v.MatchID] = a
			}
			a.sum += score
			a.n++
			contributed = true
		}
		if contributed {
			byMatch[v.MatchID].votes++
		}
	}

	out := make([]TopMatch, 0, len(byMatch))
	for _, m := range matches {
		a := byMatch[m.ID]
		if a == nil || a.n == 0 {
			continue
		}
		out = append(out, TopMatch{
			Match:   m,
			Average: Round2(a.sum / float64(a.n)),
			Votes:   a.votes,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Average != b.Average {
			return a.Average > b.Average
		}
		if a.Votes != b.Votes {
			return a.Votes > b.Votes
		}
		return a.Match.ID < b.Match.ID
	})

	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
