package potential

import (
	"fmt"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

// enumerateIncreases distributes `remaining` roll-up events across the
// unlocked substats of every input state. Each event independently targets
// one of the substat slots: every unlocked non-condensed substat with
// probability 1/SubstatSlots, and the condensed placeholder with probability
// absorbed/SubstatSlots. Only the final per-substat counts are observable,
// so states with identical counts merge after every event.
//
// The collection is advanced one event at a time, carrying the merged state
// forward, which keeps peak memory at the size of the merged frontier
// instead of the full cross product.
func enumerateIncreases(in *outcomeSet, remaining int, cons Consolidation) (*outcomeSet, error) {
	cur := in
	for event := 0; event < remaining; event++ {
		next := newOutcomeSet()
		for key, prob := range cur.byKey {
			slots := increaseSlots(key, cons)
			if slots == 0 {
				return nil, fmt.Errorf("%w: increase event with no unlocked substats", domain.ErrNoData)
			}
			for s := 0; s < domain.NumSubstats; s++ {
				stat := domain.Stat(s)
				if !key.unlocked.Has(stat) {
					continue
				}
				weight := 1.0
				if cons.HasGroup() && stat == cons.Placeholder() {
					weight = float64(key.absorbed)
				}
				grown := key
				grown.rolls[s]++
				next.add(grown, prob*weight/float64(slots))
			}
		}
		if err := next.checkMass("increase"); err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// increaseSlots returns the number of substat slots an increase event chooses
// between for one state. Equal to SubstatSlots once the artifact is fully
// unlocked; an under-unlocked state distributes over the substats that exist.
func increaseSlots(key pseudoKey, cons Consolidation) int {
	n := 0
	for s := 0; s < domain.NumSubstats; s++ {
		stat := domain.Stat(s)
		if !key.unlocked.Has(stat) {
			continue
		}
		if cons.HasGroup() && stat == cons.Placeholder() {
			n += int(key.absorbed)
		} else {
			n++
		}
	}
	return n
}
