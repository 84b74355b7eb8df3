package potential

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/gamedata"
)

// comboKey caches one per-substat roll-multiset distribution.
type comboKey struct {
	stat   domain.Stat
	rarity int
	count  int
}

// rollTotal is one reachable cumulative magnitude for a fixed number of
// rolls, with the probability of rolling it. Scaled is the fixed-point
// representation used as the merge key.
type rollTotal struct {
	scaled int64
	prob   float64
}

// expandedRow is one fully valued substat assignment with its probability.
type expandedRow struct {
	values [domain.NumSubstats]float64
	prob   float64
}

// expander converts integer roll-count assignments into numeric value
// distributions by combinatorial expansion against the roll-value grid.
// The per-substat multiset distributions are cached across evaluations.
type expander struct {
	grid  *gamedata.RollGrid
	cache *lru.Cache[comboKey, []rollTotal]
}

func newExpander(grid *gamedata.RollGrid) (*expander, error) {
	cache, err := lru.New[comboKey, []rollTotal](rollComboCacheSize)
	if err != nil {
		return nil, fmt.Errorf("roll combo cache: %w", err)
	}
	return &expander{grid: grid, cache: cache}, nil
}

// rollTotals returns the distribution of cumulative magnitudes over all
// multisets of `count` rolls drawn with replacement from the substat's grid.
// Distinct multisets that sum to the same magnitude are merged.
func (e *expander) rollTotals(stat domain.Stat, rarity, count int) ([]rollTotal, error) {
	key := comboKey{stat: stat, rarity: rarity, count: count}
	if cached, ok := e.cache.Get(key); ok {
		return cached, nil
	}

	scaled, err := e.grid.ScaledValues(stat, rarity)
	if err != nil {
		return nil, err
	}
	gridSize := len(scaled)

	// Walk multisets as occurrence counts per grid entry; the probability of
	// a multiset is its multinomial arrangement count over gridSize^count.
	totals := make(map[int64]float64)
	denom := math.Pow(float64(gridSize), float64(count))
	occurrences := make([]int, gridSize)
	var walk func(idx, left int)
	walk = func(idx, left int) {
		if idx == gridSize-1 {
			occurrences[idx] = left
			var sum int64
			arrangements := factorial(count)
			for i, occ := range occurrences {
				sum += int64(occ) * scaled[i]
				arrangements /= factorial(occ)
			}
			totals[sum] += float64(arrangements) / denom
			return
		}
		for occ := 0; occ <= left; occ++ {
			occurrences[idx] = occ
			walk(idx+1, left-occ)
		}
	}
	walk(0, count)

	out := make([]rollTotal, 0, len(totals))
	for sum, prob := range totals {
		out = append(out, rollTotal{scaled: sum, prob: prob})
	}
	e.cache.Add(key, out)
	return out, nil
}

// expand resolves every pseudo-outcome into concrete substat values. New
// rolls are appended to the artifact's recorded history; final values are
// rounded to the grid's native precision and deduplicated by the full
// fixed-point value vector, summing probability on collision.
func (e *expander) expand(set *outcomeSet, art *domain.Artifact, cons Consolidation) ([]expandedRow, error) {
	baseScaled, err := e.existingScaled(art, cons)
	if err != nil {
		return nil, err
	}

	merged := make(map[[domain.NumSubstats]int64]float64)
	for key, stateProb := range set.byKey {
		partials := [][domain.NumSubstats]int64{baseScaled}
		probs := []float64{stateProb}

		for s := 0; s < domain.NumSubstats; s++ {
			stat := domain.Stat(s)
			count := int(key.rolls[s])
			if count == 0 {
				continue
			}
			if cons.HasGroup() && stat == cons.Placeholder() {
				// Rolls absorbed by the placeholder are power-irrelevant;
				// skipping their expansion is the point of consolidation.
				continue
			}
			combos, err := e.rollTotals(stat, art.Rarity, count)
			if err != nil {
				return nil, err
			}
			nextVecs := make([][domain.NumSubstats]int64, 0, len(partials)*len(combos))
			nextProbs := make([]float64, 0, len(partials)*len(combos))
			for i, vec := range partials {
				for _, c := range combos {
					grown := vec
					grown[s] += c.scaled
					nextVecs = append(nextVecs, grown)
					nextProbs = append(nextProbs, probs[i]*c.prob)
				}
			}
			partials, probs = nextVecs, nextProbs
		}

		for i, vec := range partials {
			merged[vec] += probs[i]
		}
	}

	rows := make([]expandedRow, 0, len(merged))
	for vec, prob := range merged {
		row := expandedRow{prob: prob}
		for s := 0; s < domain.NumSubstats; s++ {
			if vec[s] == 0 {
				continue
			}
			scale, err := e.grid.Scale(domain.Stat(s), art.Rarity)
			if err != nil {
				return nil, err
			}
			row.values[s] = float64(vec[s]) / float64(scale)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// existingScaled converts the artifact's recorded substat totals to the
// fixed-point base vector. Condensed substats contribute nothing.
func (e *expander) existingScaled(art *domain.Artifact, cons Consolidation) ([domain.NumSubstats]int64, error) {
	var base [domain.NumSubstats]int64
	for _, sub := range art.Substats {
		if cons.Condensable(sub.Stat) {
			continue
		}
		scaled, err := e.grid.ToScaled(sub.Stat, art.Rarity, sub.Total())
		if err != nil {
			return base, err
		}
		base[sub.Stat] = scaled
	}
	return base, nil
}

var factorials = [13]int{1, 1, 2, 6, 24, 120, 720, 5040, 40320, 362880, 3628800, 39916800, 479001600}

func factorial(n int) int {
	if n < len(factorials) {
		return factorials[n]
	}
	f := factorials[len(factorials)-1]
	for i := len(factorials); i <= n; i++ {
		f *= i
	}
	return f
}
