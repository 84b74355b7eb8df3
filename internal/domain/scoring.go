package domain

import "fmt"

// CritMode describes how a character's damage is assumed to interact with
// critical hits when scoring.
type CritMode string

const (
	// CritModeNever assumes hits never crit (crit rate and crit damage are
	// power-irrelevant).
	CritModeNever CritMode = "never"
	// CritModeAlways assumes every hit crits (crit rate is power-irrelevant,
	// crit damage is not).
	CritModeAlways CritMode = "always"
	// CritModeExpected weights damage by expected crit value (both crit
	// attributes matter).
	CritModeExpected CritMode = "expected"
)

// ScoringConfig captures how a character converts stats into power.
// It drives both substat consolidation and the default power projection.
type ScoringConfig struct {
	Name               string   `yaml:"name"`
	ScalingStat        Stat     `yaml:"-"`
	CritMode           CritMode `yaml:"crit_mode"`
	AmplifyingReaction bool     `yaml:"amplifying_reaction"`
	// ReactionMultiplier is the base amplification factor (e.g. 1.5 or 2.0).
	// Ignored when AmplifyingReaction is false.
	ReactionMultiplier float64 `yaml:"reaction_multiplier"`
}

// Validate checks semantic constraints of a scoring configuration.
func (c ScoringConfig) Validate() error {
	switch c.ScalingStat {
	case StatHP, StatATK, StatDEF:
	default:
		return fmt.Errorf("%w: scaling stat must be hp, atk or def, got %s", ErrInvalidScoring, c.ScalingStat)
	}
	switch c.CritMode {
	case CritModeNever, CritModeAlways, CritModeExpected:
	default:
		return fmt.Errorf("%w: unknown crit mode %q", ErrInvalidScoring, c.CritMode)
	}
	if c.AmplifyingReaction && c.ReactionMultiplier <= 1 {
		return fmt.Errorf("%w: reaction multiplier must exceed 1", ErrInvalidScoring)
	}
	return nil
}

// LootSource identifies the acquisition channel of an artifact. The channel
// determines the probability of one bonus roll event.
type LootSource string

const (
	SourceDomain    LootSource = "domain"
	SourceWorldBoss LootSource = "world_boss"
	SourceStrongbox LootSource = "strongbox"
)
