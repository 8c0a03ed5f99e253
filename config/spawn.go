package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnDocument is the startup population manifest. original_source
// expresses this as a RON document with this field shape; no RON parser
// exists anywhere in the example corpus, so the document is expressed as
// YAML instead. Parsed once at startup; never consulted again.
type SpawnDocument struct {
	SpawnGroups []SpawnGroup `yaml:"spawn_groups"`
}

// SpawnGroup describes one batch of agents to create at startup.
type SpawnGroup struct {
	Species      string     `yaml:"species"`
	Count        int        `yaml:"count"`
	Names        []string   `yaml:"names,omitempty"`
	SpawnArea    SpawnArea  `yaml:"spawn_area"`
	SexSequence  []string   `yaml:"sex_sequence,omitempty"`
	Messages     []string   `yaml:"messages,omitempty"`
}

// SpawnArea bounds where a group's agents are placed.
type SpawnArea struct {
	Center       [2]int `yaml:"center"`
	SearchRadius int    `yaml:"search_radius"`
	MaxAttempts  int    `yaml:"max_attempts"`
}

// LoadSpawnDocument parses a spawn manifest from path. A malformed document
// is a startup-fatal condition — the caller aborts before entering the
// tick loop.
func LoadSpawnDocument(path string) (*SpawnDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spawn document: %w", err)
	}
	doc := &SpawnDocument{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing spawn document: %w", err)
	}
	for i, g := range doc.SpawnGroups {
		if g.Count <= 0 {
			return nil, fmt.Errorf("spawn group %d (%s): count must be positive, got %d", i, g.Species, g.Count)
		}
		if g.SpawnArea.SearchRadius <= 0 {
			return nil, fmt.Errorf("spawn group %d (%s): spawn_area.search_radius must be positive", i, g.Species)
		}
		if g.SpawnArea.MaxAttempts <= 0 {
			doc.SpawnGroups[i].SpawnArea.MaxAttempts = 20
		}
	}
	return doc, nil
}
