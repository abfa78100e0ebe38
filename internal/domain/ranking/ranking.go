// Package ranking folds raw vote records into deterministic, reproducible
// aggregates: per-official rankings, category-scoped top matches and
// best-of-matchday entries.
//
// Every function here is pure. Inputs are treated as immutable snapshots and
// results are freshly allocated, so concurrent calls never interfere and the
// same input always produces bit-identical output.
package ranking

import (
	"math"
	"sort"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
)

// Round2 rounds to exactly 2 decimal places, half away from zero. Displayed
// averages and sort keys go through this single function: ranking on the
// unrounded ratio could disagree with the number users see.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// rated reports whether a criterion value counts as an actual rating.
// Zero is the sentinel for "not answered", not a score of zero.
func rated(v float64) bool {
	return v > 0 && !math.IsNaN(v)
}

// GlobalNote computes a vote's global note at submission time: the mean of
// all rated criteria, rounded to 2 decimals. Returns ErrNothingRated when
// no criterion carries a rating.
func GlobalNote(scores map[string]float64) (float64, error) {
	var sum float64
	var n int
	for _, v := range scores {
		if rated(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, ErrNothingRated
	}
	return Round2(sum / float64(n)), nil
}

// CriterionAverage is one column of a ranking entry. Average is nil when the
// official has no rated vote for the criterion under the current scope.
type CriterionAverage struct {
	Key     string   `json:"key"`
	Average *float64 `json:"average"`
}

// Entry is a single row of a ranking, recomputed from the vote set on every
// query and never persisted.
type Entry struct {
	OfficialID string             `json:"official_id"`
	FirstName  string             `json:"first_name"`
	LastName   string             `json:"last_name"`
	Votes      int                `json:"votes"`
	Average    float64            `json:"average"`
	Criteria   []CriterionAverage `json:"criteria"`
}

// Criterion returns the average for a criterion column, with ok reporting
// whether the column exists on this entry.
func (e Entry) Criterion(key string) (avg *float64, ok bool) {
	for _, c := range e.Criteria {
		if c.Key == key {
			return c.Average, true
		}
	}
	return nil, false
}

// accumulator collects one official's running totals during the fold.
type accumulator struct {
	total float64
	count int
	sums  map[string]float64
	ns    map[string]int
}

// BuildRanking folds votes into a total order of officials.
//
// Votes referencing an official absent from officials are skipped; they
// cannot contribute to any entry. include scopes which criteria count toward
// the per-criterion columns: nil includes every observed key, an empty set
// includes none. The criteria slice fixes the column order; with a nil
// filter, keys observed in votes but missing from criteria are appended in
// sorted order so unknown keys are never silently dropped.
//
// Entries are sorted by rounded global average descending, ties broken by
// vote count descending, then by official id ascending so the order is fully
// deterministic.
func BuildRanking(votes []model.Vote, officials map[string]model.Official, criteria []model.Criterion, include model.CategorySet) []Entry {
	byKey := make(map[string]model.Criterion, len(criteria))
	for _, c := range criteria {
		if _, dup := byKey[c.Key]; !dup {
			byKey[c.Key] = c
		}
	}

	accs := make(map[string]*accumulator)
	var extras []string
	seenExtra := make(map[string]struct{})

	for _, v := range votes {
		if _, ok := officials[v.OfficialID]; !ok {
			continue
		}
		acc := accs[v.OfficialID]
		if acc == nil {
			acc = &accumulator{sums: make(map[string]float64), ns: make(map[string]int)}
			accs[v.OfficialID] = acc
		}
		acc.total += v.GlobalNote
		acc.count++

		for key, score := range v.Scores {
			if !rated(score) {
				continue
			}
			def, known := byKey[key]
			if include != nil {
				// With an explicit filter only cataloged criteria in the
				// allowed categories accumulate.
				if !known || !include.Allows(def.Category) {
					continue
				}
			} else if !known {
				if _, s := seenExtra[key]; !s {
					seenExtra[key] = struct{}{}
					extras = append(extras, key)
				}
			}
			acc.sums[key] += score
			acc.ns[key]++
		}
	}

	columns := columnOrder(criteria, extras, include)

	entries := make([]Entry, 0, len(accs))
	for id, acc := range accs {
		off := officials[id]
		e := Entry{
			OfficialID: id,
			FirstName:  off.FirstName,
			LastName:   off.LastName,
			Votes:      acc.count,
			Average:    Round2(acc.total / float64(acc.count)),
			Criteria:   make([]CriterionAverage, 0, len(columns)),
		}
		for _, key := range columns {
			col := CriterionAverage{Key: key}
			if n := acc.ns[key]; n > 0 {
				avg := Round2(acc.sums[key] / float64(n))
				col.Average = &avg
			}
			e.Criteria = append(e.Criteria, col)
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Average != b.Average {
			return a.Average > b.Average
		}
		if a.Votes != b.Votes {
			return a.Votes > b.Votes
		}
		return a.OfficialID < b.OfficialID
	})
	return entries
}

// columnOrder fixes the criterion column set for every entry of a ranking:
// the requested catalog order first, then extra observed keys (sorted) when
// no subset filter applies. With an explicit filter all cataloged columns
// remain visible so callers get a stable shape; out-of-scope columns simply
// carry nil averages.
func columnOrder(criteria []model.Criterion, extras []string, include model.CategorySet) []string {
	out := make([]string, 0, len(criteria)+len(extras))
	seen := make(map[string]struct{}, len(criteria))
	for _, c := range criteria {
		if _, dup := seen[c.Key]; dup {
			continue
		}
		seen[c.Key] = struct{}{}
		out = append(out, c.Key)
	}
	if include == nil {
		sort.Strings(extras)
		out = append(out, extras...)
	}
	return out
}
