package ranking

import "github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"

// BestOfGroups applies BuildRanking to each partition of votes (grouped by
// matchday upstream) with the central-referee filter, keeping only the top
// entry per group. Groups with no rankable votes map to nil, which callers
// render as "no data yet".
//
// This is a thin fold over BuildRanking so the tie-break semantics cannot
// drift from the main ranking.
func BestOfGroups(groups map[string][]model.Vote, officials map[string]model.Official, criteria []model.Criterion) map[string]*Entry {
	include := model.Categories(model.CategoryArbitre)

	out := make(map[string]*Entry, len(groups))
	for id, votes := range groups {
		entries := BuildRanking(votes, officials, criteria, include)
		if len(entries) == 0 {
			out[id] = nil
			continue
		}
		best := entries[0]
		out[id] = &best
	}
	return out
}
