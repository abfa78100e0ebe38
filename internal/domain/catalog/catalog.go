// Package catalog holds the ordered, externally-configured set of rateable
// criteria. The engine treats the catalog as pure input data; admins extend
// it at runtime through a criteria file, never through code.
package catalog

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
)

// Catalog is an immutable, ordered criterion set with key lookup.
type Catalog struct {
	criteria []model.Criterion
	byKey    map[string]model.Criterion
}

// New builds a catalog preserving the given order. Duplicate keys collapse
// to their first occurrence.
func New(criteria []model.Criterion) *Catalog {
	c := &Catalog{
		criteria: make([]model.Criterion, 0, len(criteria)),
		byKey:    make(map[string]model.Criterion, len(criteria)),
	}
	for _, def := range criteria {
		if _, dup := c.byKey[def.Key]; dup {
			continue
		}
		c.byKey[def.Key] = def
		c.criteria = append(c.criteria, def)
	}
	return c
}

// Default returns the built-in catalog used when no criteria file is
// configured.
func Default() *Catalog {
	return New([]model.Criterion{
		{Key: "fairplay", Category: model.CategoryArbitre, Labels: map[string]string{"fr": "Fair-play", "en": "Fair play"}},
		{Key: "autorite", Category: model.CategoryArbitre, Labels: map[string]string{"fr": "Autorité", "en": "Authority"}},
		{Key: "communication", Category: model.CategoryArbitre, Labels: map[string]string{"fr": "Communication", "en": "Communication"}},
		{Key: "coherence", Category: model.CategoryArbitre, Labels: map[string]string{"fr": "Cohérence", "en": "Consistency"}},
		{Key: "gestion_cartons", Category: model.CategoryArbitre, Labels: map[string]string{"fr": "Gestion des cartons", "en": "Card management"}},
		{Key: "pertinence_var", Category: model.CategoryVAR, Labels: map[string]string{"fr": "Pertinence VAR", "en": "VAR relevance"}},
		{Key: "rapidite_var", Category: model.CategoryVAR, Labels: map[string]string{"fr": "Rapidité VAR", "en": "VAR speed"}},
		{Key: "hors_jeu", Category: model.CategoryAssistant, Labels: map[string]string{"fr": "Hors-jeu", "en": "Offside calls"}},
		{Key: "signalisation", Category: model.CategoryAssistant, Labels: map[string]string{"fr": "Signalisation", "en": "Flag signals"}},
	})
}

// criterionSpec mirrors one entry of the criteria YAML file.
type criterionSpec struct {
	Key      string            `koanf:"key"`
	Category string            `koanf:"category"`
	Labels   map[string]string `koanf:"labels"`
}

// Load reads a criteria file (YAML) and builds a catalog from it.
//
// File shape:
//
//	criteria:
//	  - key: fairplay
//	    category: arbitre
//	    labels: {fr: Fair-play}
func Load(path string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load criteria file: %w", err)
	}

	var specs []criterionSpec
	if err := k.Unmarshal("criteria", &specs); err != nil {
		return nil, fmt.Errorf("parse criteria file: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("criteria file %s defines no criteria", path)
	}

	criteria := make([]model.Criterion, 0, len(specs))
	for _, s := range specs {
		if s.Key == "" {
			return nil, fmt.Errorf("criteria file %s: entry with empty key", path)
		}
		cat, err := model.ParseCategory(s.Category)
		if err != nil {
			return nil, fmt.Errorf("criteria file %s: criterion %q: %w", path, s.Key, err)
		}
		criteria = append(criteria, model.Criterion{Key: s.Key, Category: cat, Labels: s.Labels})
	}
	return New(criteria), nil
}

// Criteria returns a copy of the ordered criterion list.
func (c *Catalog) Criteria() []model.Criterion {
	out := make([]model.Criterion, len(c.criteria))
	copy(out, c.criteria)
	return out
}

// Lookup resolves a criterion by key.
func (c *Catalog) Lookup(key string) (model.Criterion, bool) {
	def, ok := c.byKey[key]
	return def, ok
}

// Len returns the number of criteria.
func (c *Catalog) Len() int {
	return len(c.criteria)
}
