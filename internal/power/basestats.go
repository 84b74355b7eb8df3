package power

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

// TableProvider serves character base-stat vectors (character plus weapon
// plus every equipped item except the slot under evaluation) from a JSON
// table loaded once at startup.
type TableProvider struct {
	characters map[string]domain.StatVector
}

type rawBaseStats struct {
	Version    string                        `json:"version"`
	Characters map[string]map[string]float64 `json:"characters"`
}

// NewTableProvider loads base stats from a JSON file.
func NewTableProvider(path string) (*TableProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read base stats %s: %w", path, err)
	}
	var raw rawBaseStats
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse base stats %s: %w", path, err)
	}

	characters := make(map[string]domain.StatVector, len(raw.Characters))
	for name, stats := range raw.Characters {
		var vec domain.StatVector
		for statName, value := range stats {
			stat, ok := domain.ParseStat(statName)
			if !ok {
				return nil, fmt.Errorf("base stats for %s: unknown stat %q", name, statName)
			}
			vec[stat] = value
		}
		characters[name] = vec
	}
	return &TableProvider{characters: characters}, nil
}

// BaseStats returns the stat vector for a character.
func (p *TableProvider) BaseStats(_ context.Context, character string) (domain.StatVector, error) {
	vec, ok := p.characters[character]
	if !ok {
		return domain.StatVector{}, fmt.Errorf("%w: base stats for character %q", domain.ErrNoData, character)
	}
	return vec, nil
}

// Characters returns the known character names.
func (p *TableProvider) Characters() []string {
	names := make([]string, 0, len(p.characters))
	for name := range p.characters {
		names = append(names, name)
	}
	return names
}
