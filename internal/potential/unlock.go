package potential

import (
	"fmt"
	"math/bits"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

// enumerateUnlocks builds every distinguishable set of newly unlocked
// substats of size `remaining`, extending base, with its joint probability.
//
// The underlying process draws distinct substats sequentially without
// replacement, weighted by the rarity table; only the resulting set is
// observable, so the probability of a combination is the sum over all draw
// orders. Combinations that differ only in which condensable member was
// drawn collapse into the same placeholder state before deduplication.
func enumerateUnlocks(base pseudoKey, baseProb float64, weights [domain.NumSubstats]float64, existing domain.SubstatSet, cons Consolidation, remaining int) (*outcomeSet, error) {
	set := newOutcomeSet()
	if remaining <= 0 {
		set.add(base, baseProb)
		return set, nil
	}

	var pool []domain.Stat
	var poolTotal float64
	for s := 0; s < domain.NumSubstats; s++ {
		stat := domain.Stat(s)
		if weights[s] > 0 && !existing.Has(stat) {
			pool = append(pool, stat)
			poolTotal += weights[s]
		}
	}
	if remaining > len(pool) {
		return nil, fmt.Errorf("%w: %d unlocks from a pool of %d substats",
			domain.ErrNoData, remaining, len(pool))
	}

	combo := make([]domain.Stat, 0, remaining)
	var walk func(start int)
	walk = func(start int) {
		if len(combo) == remaining {
			prob := drawSetProbability(combo, weights, poolTotal)
			key := base
			for _, stat := range combo {
				if cons.Condensable(stat) {
					key.unlocked = key.unlocked.With(cons.Placeholder())
					key.rolls[cons.Placeholder()]++
					key.absorbed++
				} else {
					key.unlocked = key.unlocked.With(stat)
					key.rolls[stat]++
				}
			}
			set.add(key, baseProb*prob)
			return
		}
		for i := start; i < len(pool); i++ {
			combo = append(combo, pool[i])
			walk(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	walk(0)

	if err := set.checkMass("unlock"); err != nil {
		return nil, err
	}
	return set, nil
}

// drawSetProbability returns the probability that sequential weighted draws
// without replacement from the pool produce exactly the given set, in any
// order. Computed by subset recursion over the set rather than enumerating
// permutations: the first |S| draws land on S with probability
//
//	p(S) = sum over x in S of p(S\{x}) * w(x) / (poolTotal - w(S\{x}))
func drawSetProbability(combo []domain.Stat, weights [domain.NumSubstats]float64, poolTotal float64) float64 {
	n := len(combo)
	if n == 0 {
		return 1
	}

	w := make([]float64, n)
	for i, s := range combo {
		w[i] = weights[s]
	}

	full := 1<<n - 1
	prob := make([]float64, full+1)
	sum := make([]float64, full+1)
	prob[0] = 1
	for mask := 1; mask <= full; mask++ {
		i := bits.TrailingZeros(uint(mask))
		sum[mask] = sum[mask&(mask-1)] + w[i]
		var p float64
		for rest := mask; rest != 0; rest &= rest - 1 {
			x := bits.TrailingZeros(uint(rest))
			without := mask &^ (1 << x)
			p += prob[without] * w[x] / (poolTotal - sum[without])
		}
		prob[mask] = p
	}
	return prob[full]
}
