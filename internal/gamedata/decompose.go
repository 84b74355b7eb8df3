package gamedata

import (
	"fmt"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

// MaxDecomposeRolls bounds the roll count considered when decomposing an
// observed cumulative value into individual rolls. One substat can receive at
// most the unlock roll plus five increases before an artifact is maxed.
const MaxDecomposeRolls = 6

// buildDecomposition precomputes, for every achievable cumulative value, the
// roll multisets (as non-decreasing grid indices) that sum to it.
func buildDecomposition(scaled []int64) map[int64][][]int {
	decomp := make(map[int64][][]int)
	var walk func(start int, count int, sum int64, picked []int)
	walk = func(start, count int, sum int64, picked []int) {
		if count > 0 {
			key := sum
			decomp[key] = append(decomp[key], append([]int(nil), picked...))
		}
		if count == MaxDecomposeRolls {
			return
		}
		for i := start; i < len(scaled); i++ {
			walk(i, count+1, sum+scaled[i], append(picked, i))
		}
	}
	walk(0, 0, 0, nil)
	return decomp
}

// ValidateRolls checks that every recorded roll magnitude matches a grid
// entry exactly at the substat's native precision. A roll no grid entry can
// produce is malformed input data and fails with domain.ErrRollHistory.
func (g *RollGrid) ValidateRolls(stat domain.Stat, rarity int, rolls []float64) error {
	scaled, err := g.ScaledValues(stat, rarity)
	if err != nil {
		return err
	}
	for _, roll := range rolls {
		rs, err := g.ToScaled(stat, rarity, roll)
		if err != nil {
			return err
		}
		match := false
		for _, s := range scaled {
			if s == rs {
				match = true
				break
			}
		}
		if !match {
			return fmt.Errorf("%w: %s roll %v is not a rarity %d magnitude",
				domain.ErrRollHistory, stat, roll, rarity)
		}
	}
	return nil
}

// ResolveRolls returns every roll multiset that reproduces the observed
// cumulative substat value, as magnitude slices in non-decreasing order.
// It fails with domain.ErrRollHistory when no combination of rolls sums to
// the observed value - malformed input data, not a recoverable condition.
func (g *RollGrid) ResolveRolls(stat domain.Stat, rarity int, total float64) ([][]float64, error) {
	scaledTotal, err := g.ToScaled(stat, rarity, total)
	if err != nil {
		return nil, err
	}
	multisets := g.decomp[stat][rarity][scaledTotal]
	if len(multisets) == 0 {
		return nil, fmt.Errorf("%w: %s=%v at rarity %d", domain.ErrRollHistory, stat, total, rarity)
	}
	values := g.values[stat][rarity]
	out := make([][]float64, len(multisets))
	for i, ms := range multisets {
		rolls := make([]float64, len(ms))
		for j, idx := range ms {
			rolls[j] = values[idx]
		}
		out[i] = rolls
	}
	return out, nil
}

// ResolveRollsN is ResolveRolls restricted to multisets of exactly n rolls.
func (g *RollGrid) ResolveRollsN(stat domain.Stat, rarity int, total float64, n int) ([][]float64, error) {
	all, err := g.ResolveRolls(stat, rarity, total)
	if err != nil {
		return nil, err
	}
	var out [][]float64
	for _, ms := range all {
		if len(ms) == n {
			out = append(out, ms)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s=%v at rarity %d in %d rolls", domain.ErrRollHistory, stat, total, rarity, n)
	}
	return out, nil
}
