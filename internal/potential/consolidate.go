package potential

import "github.com/ScottNealon/ArtifactScouter_Go/internal/domain"

// Consolidation describes which substats are power-irrelevant to a character
// and therefore interchangeable for enumeration purposes. All members of the
// group collapse into one canonical placeholder substat; merging them shrinks
// the enumeration state space without changing the power distribution.
type Consolidation struct {
	member      [domain.NumSubstats]bool
	placeholder domain.Stat
	hasGroup    bool
}

// CondensableSubstats returns, in stat index order, whether each substat is
// power-irrelevant under the scoring configuration:
//
//   - the scaling attribute and its percent variant are never condensable
//   - the two other flat/percent base attribute pairs are condensable
//   - energy recharge is always condensable
//   - elemental mastery is condensable unless the character uses an
//     amplifying reaction
//   - crit rate is condensable when crits are forced always or never
//   - crit damage is condensable only when crits are forced never
func CondensableSubstats(cfg domain.ScoringConfig) [domain.NumSubstats]bool {
	var condensable [domain.NumSubstats]bool

	for _, base := range []domain.Stat{domain.StatHP, domain.StatATK, domain.StatDEF} {
		if base != cfg.ScalingStat {
			condensable[base] = true
			condensable[base.PercentVariant()] = true
		}
	}

	condensable[domain.StatEnergyRecharge] = true
	condensable[domain.StatElementalMastery] = !cfg.AmplifyingReaction
	condensable[domain.StatCritRate] = cfg.CritMode == domain.CritModeAlways || cfg.CritMode == domain.CritModeNever
	condensable[domain.StatCritDamage] = cfg.CritMode == domain.CritModeNever

	return condensable
}

// NewConsolidation computes the consolidation group for one evaluation.
// pool is the union of the artifact's valid substat pool and its already
// locked substats; the first condensable member present in that pool becomes
// the canonical placeholder. Computed once per (character, slot) pair and
// reused across all pseudo-outcomes.
func NewConsolidation(cfg domain.ScoringConfig, pool domain.SubstatSet) Consolidation {
	condensable := CondensableSubstats(cfg)

	c := Consolidation{}
	for s := 0; s < domain.NumSubstats; s++ {
		stat := domain.Stat(s)
		if !condensable[s] || !pool.Has(stat) {
			continue
		}
		c.member[s] = true
		if !c.hasGroup {
			c.placeholder = stat
			c.hasGroup = true
		}
	}
	return c
}

// Condensable reports whether the substat belongs to the consolidation group.
func (c Consolidation) Condensable(s domain.Stat) bool {
	return c.member[s]
}

// Placeholder returns the canonical placeholder substat. Only meaningful when
// HasGroup is true.
func (c Consolidation) Placeholder() domain.Stat { return c.placeholder }

// HasGroup reports whether any substat is condensable for this evaluation.
func (c Consolidation) HasGroup() bool { return c.hasGroup }

// GroupSize returns the number of substats merged into the placeholder.
func (c Consolidation) GroupSize() int {
	n := 0
	for _, m := range c.member {
		if m {
			n++
		}
	}
	return n
}
