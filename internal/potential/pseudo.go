package potential

import (
	"fmt"
	"math"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

// pseudoKey identifies one statistically distinguishable intermediate state
// of the enumeration: which substats are unlocked, how many new rolls each
// has been assigned, and how many condensable substats the placeholder
// absorbs. The struct is comparable and used directly as a map key; no
// serialized representation is involved.
type pseudoKey struct {
	unlocked domain.SubstatSet
	rolls    [domain.NumSubstats]uint8
	absorbed uint8
}

// pseudoOutcome is a partially resolved hypothetical future state with its
// accumulated probability weight.
type pseudoOutcome struct {
	key  pseudoKey
	prob float64
}

// outcomeSet is a live pseudo-outcome collection. States that become
// identical are merged by summing probability; the sample space must remain
// a partition at every stage.
type outcomeSet struct {
	byKey map[pseudoKey]float64
}

func newOutcomeSet() *outcomeSet {
	return &outcomeSet{byKey: make(map[pseudoKey]float64)}
}

// add merges one state into the set.
func (s *outcomeSet) add(key pseudoKey, prob float64) {
	s.byKey[key] += prob
}

// addScaled merges every state of other, scaled by factor. Used for the
// bonus-roll mixture blend.
func (s *outcomeSet) addScaled(other *outcomeSet, factor float64) {
	for k, p := range other.byKey {
		s.byKey[k] += p * factor
	}
}

func (s *outcomeSet) len() int { return len(s.byKey) }

// outcomes returns the states in unspecified order.
func (s *outcomeSet) outcomes() []pseudoOutcome {
	out := make([]pseudoOutcome, 0, len(s.byKey))
	for k, p := range s.byKey {
		out = append(out, pseudoOutcome{key: k, prob: p})
	}
	return out
}

// checkMass verifies the probability mass invariant at one enumeration stage.
func (s *outcomeSet) checkMass(stage string) error {
	var mass float64
	for _, p := range s.byKey {
		mass += p
	}
	if math.Abs(mass-1) > massTolerance {
		return fmt.Errorf("%w: %s stage mass %.9f over %d states",
			domain.ErrMassInvariant, stage, mass, len(s.byKey))
	}
	return nil
}
