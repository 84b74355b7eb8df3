package potential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

func fourUnlocked() pseudoKey {
	key := pseudoKey{}
	for _, s := range []domain.Stat{domain.StatHPPercent, domain.StatEnergyRecharge, domain.StatCritRate, domain.StatCritDamage} {
		key.unlocked = key.unlocked.With(s)
		key.rolls[s] = 1
	}
	return key
}

func TestEnumerateIncreases_SingleEvent(t *testing.T) {
	in := newOutcomeSet()
	in.add(fourUnlocked(), 1)

	out, err := enumerateIncreases(in, 1, Consolidation{})
	require.NoError(t, err)
	require.Equal(t, 4, out.len())
	for _, o := range out.outcomes() {
		assert.InDelta(t, 0.25, o.prob, 1e-12)
	}
}

func TestEnumerateIncreases_TwoEventsMerge(t *testing.T) {
	// Two substats, two events: both on the first, one each, both on the
	// second. The split outcome has two draw orders.
	key := pseudoKey{}
	key.unlocked = key.unlocked.With(domain.StatCritRate).With(domain.StatCritDamage)
	key.rolls[domain.StatCritRate] = 1
	key.rolls[domain.StatCritDamage] = 1

	in := newOutcomeSet()
	in.add(key, 1)

	out, err := enumerateIncreases(in, 2, Consolidation{})
	require.NoError(t, err)
	require.Equal(t, 3, out.len())

	for _, o := range out.outcomes() {
		switch {
		case o.key.rolls[domain.StatCritRate] == 3:
			assert.InDelta(t, 0.25, o.prob, 1e-12)
		case o.key.rolls[domain.StatCritDamage] == 3:
			assert.InDelta(t, 0.25, o.prob, 1e-12)
		default:
			assert.InDelta(t, 0.5, o.prob, 1e-12)
		}
	}
}

func TestEnumerateIncreases_PlaceholderWeight(t *testing.T) {
	cons := NewConsolidation(domain.ScoringConfig{
		ScalingStat: domain.StatHP,
		CritMode:    domain.CritModeNever,
	}, domain.SubstatSet(0).
		With(domain.StatHPPercent).
		With(domain.StatATKPercent).
		With(domain.StatEnergyRecharge).
		With(domain.StatCritRate))
	require.True(t, cons.HasGroup())
	require.Equal(t, domain.StatATKPercent, cons.Placeholder())

	// One visible substat plus a placeholder absorbing three: the event
	// picks among four slots, three of which belong to the placeholder.
	key := pseudoKey{absorbed: 3}
	key.unlocked = key.unlocked.With(domain.StatHPPercent).With(cons.Placeholder())
	key.rolls[domain.StatHPPercent] = 1
	key.rolls[cons.Placeholder()] = 3

	in := newOutcomeSet()
	in.add(key, 1)

	out, err := enumerateIncreases(in, 1, cons)
	require.NoError(t, err)
	require.Equal(t, 2, out.len())
	for _, o := range out.outcomes() {
		if o.key.rolls[cons.Placeholder()] == 4 {
			assert.InDelta(t, 0.75, o.prob, 1e-12)
		} else {
			assert.InDelta(t, 0.25, o.prob, 1e-12)
		}
	}
}

func TestEnumerateIncreases_NoUnlocked(t *testing.T) {
	in := newOutcomeSet()
	in.add(pseudoKey{}, 1)

	_, err := enumerateIncreases(in, 1, Consolidation{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestIncreaseSlots(t *testing.T) {
	key := fourUnlocked()
	assert.Equal(t, 4, increaseSlots(key, Consolidation{}))

	cons := NewConsolidation(domain.ScoringConfig{
		ScalingStat: domain.StatHP,
		CritMode:    domain.CritModeNever,
	}, domain.SubstatSet(0).With(domain.StatATKPercent))
	ph := pseudoKey{absorbed: 2}
	ph.unlocked = ph.unlocked.With(domain.StatHPPercent).With(cons.Placeholder())
	assert.Equal(t, 3, increaseSlots(ph, cons))
}
