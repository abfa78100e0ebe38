package repository

import "github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithMatches preloads reference matches, e.g. from a schedule import.
func WithMatches(matches []model.Match) MemOption {
	return func(s *MemStore) {
		for _, m := range matches {
			s.matches[m.ID] = m
		}
	}
}

// WithOfficials preloads reference officials.
func WithOfficials(officials []model.Official) MemOption {
	return func(s *MemStore) {
		for _, o := range officials {
			s.officials[o.ID] = o
		}
	}
}
