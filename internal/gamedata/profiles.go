package gamedata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

type rawProfileFile struct {
	Version    string       `yaml:"version"`
	Characters []rawProfile `yaml:"characters"`
}

type rawProfile struct {
	Name               string  `yaml:"name"`
	ScalingStat        string  `yaml:"scaling_stat"`
	CritMode           string  `yaml:"crit_mode"`
	AmplifyingReaction bool    `yaml:"amplifying_reaction"`
	ReactionMultiplier float64 `yaml:"reaction_multiplier"`
}

// LoadProfiles reads character scoring profiles from a YAML file and returns
// them keyed by character name.
func LoadProfiles(path string) (map[string]domain.ScoringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles %s: %w", path, err)
	}

	var raw rawProfileFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
	}

	profiles := make(map[string]domain.ScoringConfig, len(raw.Characters))
	for _, rp := range raw.Characters {
		if rp.Name == "" {
			return nil, fmt.Errorf("profile missing name in %s", path)
		}
		scaling, ok := domain.ParseStat(rp.ScalingStat)
		if !ok {
			return nil, fmt.Errorf("profile %s: unknown scaling stat %q", rp.Name, rp.ScalingStat)
		}
		cfg := domain.ScoringConfig{
			Name:               rp.Name,
			ScalingStat:        scaling,
			CritMode:           domain.CritMode(rp.CritMode),
			AmplifyingReaction: rp.AmplifyingReaction,
			ReactionMultiplier: rp.ReactionMultiplier,
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", rp.Name, err)
		}
		if _, exists := profiles[rp.Name]; exists {
			return nil, fmt.Errorf("duplicate profile %q in %s", rp.Name, path)
		}
		profiles[rp.Name] = cfg
	}
	return profiles, nil
}
