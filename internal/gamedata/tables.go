// Package gamedata loads and serves the read-only game data tables the
// evaluation engine consumes: substat rarity weights, the roll-value grid,
// loot-source bonus-roll probabilities, and main-stat scaling. Tables are
// loaded once at startup and safe for concurrent readers.
package gamedata

import (
	"context"
	"fmt"
	"math"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

// Tables bundles every data table the engine needs.
type Tables struct {
	Weights   WeightTable
	Rolls     RollGrid
	Sources   LootTable
	MainStats MainStatTable
}

// CheckHealth reports whether every table has been populated. Used by the
// readiness probe.
func (t *Tables) CheckHealth(_ context.Context) error {
	if len(t.Weights.weights) == 0 {
		return fmt.Errorf("%w: substat weights not loaded", domain.ErrNoData)
	}
	if len(t.Sources.probs) == 0 {
		return fmt.Errorf("%w: loot sources not loaded", domain.ErrNoData)
	}
	if len(t.MainStats.curves) == 0 {
		return fmt.Errorf("%w: main stat curves not loaded", domain.ErrNoData)
	}
	if !t.Rolls.populated() {
		return fmt.Errorf("%w: roll grid not loaded", domain.ErrNoData)
	}
	return nil
}

// WeightTable maps (slot, main stat) to the categorical weight of each
// substat being newly unlocked. Weights need not be pre-normalized.
type WeightTable struct {
	weights map[domain.Slot]map[domain.Stat][domain.NumSubstats]float64
}

// SubstatWeights returns the weight of each substat for the given slot and
// main stat. Substats with weight 0 are not in the pool.
func (t WeightTable) SubstatWeights(slot domain.Slot, main domain.Stat) ([domain.NumSubstats]float64, error) {
	var zero [domain.NumSubstats]float64
	byMain, ok := t.weights[slot]
	if !ok {
		return zero, fmt.Errorf("%w: substat weights for slot %s", domain.ErrNoData, slot)
	}
	w, ok := byMain[main]
	if !ok {
		return zero, fmt.Errorf("%w: substat weights for %s/%s", domain.ErrNoData, slot, main)
	}
	return w, nil
}

// RollGrid maps (substat, rarity) to the discrete set of possible single-roll
// magnitudes, plus the fixed-point representation used for drift-free merge
// keys and the precomputed total-to-multiset decomposition.
type RollGrid struct {
	// indexed [substat][rarity]; empty slice means no data
	values [domain.NumSubstats][6][]float64
	scaled [domain.NumSubstats][6][]int64
	scale  [domain.NumSubstats][6]int64

	// decomp[substat][rarity] maps a scaled cumulative value to every roll
	// multiset (by grid index, non-decreasing) that sums to it, for roll
	// counts 1..MaxDecomposeRolls.
	decomp [domain.NumSubstats][6]map[int64][][]int
}

// Values returns the possible single-roll magnitudes for a substat at a
// rarity tier, in ascending order.
func (g *RollGrid) Values(stat domain.Stat, rarity int) ([]float64, error) {
	if err := g.check(stat, rarity); err != nil {
		return nil, err
	}
	return g.values[stat][rarity], nil
}

// ScaledValues returns the roll magnitudes as fixed-point integers.
func (g *RollGrid) ScaledValues(stat domain.Stat, rarity int) ([]int64, error) {
	if err := g.check(stat, rarity); err != nil {
		return nil, err
	}
	return g.scaled[stat][rarity], nil
}

// Scale returns the fixed-point denominator for a substat at a rarity tier
// (10^d where d is the table's native decimal precision).
func (g *RollGrid) Scale(stat domain.Stat, rarity int) (int64, error) {
	if err := g.check(stat, rarity); err != nil {
		return 0, err
	}
	return g.scale[stat][rarity], nil
}

// ToScaled converts a magnitude to its fixed-point representation at the
// substat's native precision.
func (g *RollGrid) ToScaled(stat domain.Stat, rarity int, v float64) (int64, error) {
	sc, err := g.Scale(stat, rarity)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(v * float64(sc))), nil
}

func (g *RollGrid) check(stat domain.Stat, rarity int) error {
	if !stat.IsSubstat() {
		return fmt.Errorf("%w: %s is not a substat", domain.ErrNoData, stat)
	}
	if rarity < 1 || rarity > 5 || len(g.values[stat][rarity]) == 0 {
		return fmt.Errorf("%w: roll values for %s at rarity %d", domain.ErrNoData, stat, rarity)
	}
	return nil
}

// populated reports whether at least one (substat, rarity) grid entry holds
// roll magnitudes.
func (g *RollGrid) populated() bool {
	for _, byRarity := range g.values {
		for _, vals := range byRarity {
			if len(vals) > 0 {
				return true
			}
		}
	}
	return false
}

// LootTable maps (loot source, rarity) to the probability of one bonus roll
// event at artifact generation.
type LootTable struct {
	probs map[domain.LootSource]map[int]float64
}

// BonusProbability returns the bonus-roll probability for a source and
// rarity tier.
func (t LootTable) BonusProbability(source domain.LootSource, rarity int) (float64, error) {
	byRarity, ok := t.probs[source]
	if !ok {
		return 0, fmt.Errorf("%w: loot source %s", domain.ErrNoData, source)
	}
	p, ok := byRarity[rarity]
	if !ok {
		return 0, fmt.Errorf("%w: loot source %s at rarity %d", domain.ErrNoData, source, rarity)
	}
	return p, nil
}

// SourceNames returns the known loot source identifiers.
func (t LootTable) SourceNames() []domain.LootSource {
	names := make([]domain.LootSource, 0, len(t.probs))
	for s := range t.probs {
		names = append(names, s)
	}
	return names
}

// mainStatCurve is a linear per-level scaling entry.
type mainStatCurve struct {
	Base     float64
	PerLevel float64
}

// MainStatTable maps (main stat, rarity) to a per-level scaling curve.
type MainStatTable struct {
	curves map[domain.Stat]map[int]mainStatCurve
}

// Value returns the main-stat magnitude at the given rarity and level.
func (t MainStatTable) Value(stat domain.Stat, rarity, level int) (float64, error) {
	byRarity, ok := t.curves[stat]
	if !ok {
		return 0, fmt.Errorf("%w: main stat curve for %s", domain.ErrNoData, stat)
	}
	c, ok := byRarity[rarity]
	if !ok {
		return 0, fmt.Errorf("%w: main stat curve for %s at rarity %d", domain.ErrNoData, stat, rarity)
	}
	return c.Base + c.PerLevel*float64(level), nil
}
