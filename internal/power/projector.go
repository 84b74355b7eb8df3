// Package power provides default implementations of the evaluation engine's
// external collaborators: the stat-to-power projection and the character
// base-stat provider. Both stay behind the engine's interfaces so a host can
// substitute its own damage model.
package power

import (
	"math"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

// EM amplification constants for the default damage model.
const (
	amplifyEMCoefficient = 2.78
	amplifyEMPivot       = 1400.0
)

// ExpectedDamageProjector scores a stat vector as expected single-hit damage:
// the effective scaling stat, multiplied by the crit expectation for the
// configured crit mode, multiplied by the amplifying reaction factor when one
// is used. Percent bonuses apply to the vector's flat scaling value.
type ExpectedDamageProjector struct{}

// NewProjector returns the default projector.
func NewProjector() ExpectedDamageProjector { return ExpectedDamageProjector{} }

// Project maps a full stat vector to a scalar power.
func (ExpectedDamageProjector) Project(stats domain.StatVector, cfg domain.ScoringConfig) float64 {
	scaling := stats.Get(cfg.ScalingStat)
	pct := stats.Get(cfg.ScalingStat.PercentVariant())
	effective := scaling * (1 + pct/100)

	crit := 1.0
	switch cfg.CritMode {
	case domain.CritModeAlways:
		crit = 1 + stats.Get(domain.StatCritDamage)/100
	case domain.CritModeExpected:
		rate := math.Min(stats.Get(domain.StatCritRate), 100) / 100
		crit = 1 + rate*stats.Get(domain.StatCritDamage)/100
	}

	reaction := 1.0
	if cfg.AmplifyingReaction {
		em := stats.Get(domain.StatElementalMastery)
		reaction = cfg.ReactionMultiplier * (1 + amplifyEMCoefficient*em/(em+amplifyEMPivot))
	}

	return effective * crit * reaction
}
