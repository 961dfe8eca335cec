package recommendation

import (
	_ "embed"
	"fmt"

	"github.com/glamlens/glamlens/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed recommendations.yaml
var recommendationsYAML []byte

type document struct {
	Tones   map[string]models.Recommendations `yaml:"tones"`
	Default models.Recommendations            `yaml:"default"`
}

// Load parses a recommendation document and requires a bundle for every tone
// category the classifier can emit.
func Load(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}

	table, err := NewTable(doc.Tones, doc.Default)
	if err != nil {
		return nil, err
	}
	for _, tone := range models.AllTones() {
		if !table.Has(tone) {
			return nil, fmt.Errorf("recommendations missing tone %q", tone)
		}
	}
	if len(table.keys) != len(models.AllTones()) {
		return nil, fmt.Errorf("recommendations define %d tones, want %d", len(table.keys), len(models.AllTones()))
	}
	return table, nil
}

// LoadEmbedded builds the table shipped with the binary
func LoadEmbedded() (*Table, error) {
	return Load(recommendationsYAML)
}

// MustLoadEmbedded is LoadEmbedded for process start; the embedded document is
// covered by tests so a failure here is a build defect.
func MustLoadEmbedded() *Table {
	table, err := LoadEmbedded()
	if err != nil {
		panic("failed to load embedded recommendations.yaml: " + err.Error())
	}
	return table
}
