// Package recommendation holds the read-only table that maps a tone category
// to its fashion and makeup bundle.
package recommendation

import (
	"fmt"
	"slices"
	"sort"

	"github.com/glamlens/glamlens/pkg/models"
	"github.com/lucasb-eyer/go-colorful"
)

// Table is an immutable tone → bundle mapping. Safe for concurrent use.
type Table struct {
	entries  map[string]models.Recommendations
	fallback models.Recommendations
	keys     []string
}

// NewTable validates and copies the given bundles. Entries may be partial;
// missing tones resolve to the fallback bundle.
func NewTable(entries map[string]models.Recommendations, fallback models.Recommendations) (*Table, error) {
	t := &Table{
		entries: make(map[string]models.Recommendations, len(entries)),
	}
	for tone, bundle := range entries {
		key := NormalizeTone(tone)
		if key == "" {
			return nil, fmt.Errorf("empty tone key")
		}
		if _, dup := t.entries[key]; dup {
			return nil, fmt.Errorf("duplicate tone key %q", key)
		}
		if err := validateBundle(bundle); err != nil {
			return nil, fmt.Errorf("tone %q: %w", key, err)
		}
		t.entries[key] = cloneBundle(bundle)
		t.keys = append(t.keys, key)
	}
	if err := validateBundle(fallback); err != nil {
		return nil, fmt.Errorf("default bundle: %w", err)
	}
	t.fallback = cloneBundle(fallback)
	sort.Strings(t.keys)
	return t, nil
}

// Lookup returns the bundle for a tone key. When the key is unknown the
// default bundle is returned with found=false.
func (t *Table) Lookup(tone string) (models.Recommendations, bool) {
	if bundle, ok := t.entries[NormalizeTone(tone)]; ok {
		return cloneBundle(bundle), true
	}
	return cloneBundle(t.fallback), false
}

// Default returns the fallback bundle
func (t *Table) Default() models.Recommendations {
	return cloneBundle(t.fallback)
}

// Tones returns the stored keys in lexical order
func (t *Table) Tones() []string {
	return slices.Clone(t.keys)
}

// Has reports whether the table carries an entry for tone
func (t *Table) Has(tone string) bool {
	_, ok := t.entries[NormalizeTone(tone)]
	return ok
}

func validateBundle(b models.Recommendations) error {
	groups := map[string][]models.ColorInfo{
		"fashion":  b.Fashion,
		"lipstick": b.Makeup.Lipstick,
		"blush":    b.Makeup.Blush,
		"avoid":    b.Avoid,
	}
	for group, colors := range groups {
		for _, c := range colors {
			if c.Name == "" {
				return fmt.Errorf("%s: colour with empty name", group)
			}
			if _, err := colorful.Hex(c.Hex); err != nil {
				return fmt.Errorf("%s: colour %q has invalid hex %q: %w", group, c.Name, c.Hex, err)
			}
		}
	}
	return nil
}

// Bundles are handed out by value; slices are cloned so callers cannot
// reach the table's backing arrays.
func cloneBundle(b models.Recommendations) models.Recommendations {
	out := models.Recommendations{
		Fashion: slices.Clone(b.Fashion),
		Makeup: models.MakeupRecommendations{
			Lipstick: slices.Clone(b.Makeup.Lipstick),
			Blush:    slices.Clone(b.Makeup.Blush),
		},
		Avoid: slices.Clone(b.Avoid),
	}
	if b.Rationale != nil {
		r := *b.Rationale
		out.Rationale = &r
	}
	return out
}
