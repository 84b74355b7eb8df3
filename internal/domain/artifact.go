package domain

import "fmt"

// Slot identifies one of the five artifact slots. Each slot restricts which
// main stats are valid.
type Slot string

const (
	SlotFlower  Slot = "flower"
	SlotPlume   Slot = "plume"
	SlotSands   Slot = "sands"
	SlotGoblet  Slot = "goblet"
	SlotCirclet Slot = "circlet"
)

// Slots lists all slots in canonical order.
var Slots = []Slot{SlotFlower, SlotPlume, SlotSands, SlotGoblet, SlotCirclet}

var slotMainStats = map[Slot][]Stat{
	SlotFlower: {StatHP},
	SlotPlume:  {StatATK},
	SlotSands: {
		StatHPPercent, StatATKPercent, StatDEFPercent,
		StatEnergyRecharge, StatElementalMastery,
	},
	SlotGoblet: {
		StatHPPercent, StatATKPercent, StatDEFPercent, StatElementalMastery,
		StatElementalDamage, StatPhysicalDamage,
	},
	SlotCirclet: {
		StatHPPercent, StatATKPercent, StatDEFPercent, StatElementalMastery,
		StatCritRate, StatCritDamage, StatHealingBonus,
	},
}

// ValidMainStats returns the main stats a slot can carry.
func ValidMainStats(slot Slot) []Stat {
	return slotMainStats[slot]
}

// ValidSlot reports whether the slot name is known.
func ValidSlot(slot Slot) bool {
	_, ok := slotMainStats[slot]
	return ok
}

// MaxSubstats is the cap on unlocked substats per artifact.
const MaxSubstats = 4

// MaxInitialRolls is the cap on substat rolls received at generation.
const MaxInitialRolls = 4

// LevelsPerRoll is the number of levels between substat roll events.
const LevelsPerRoll = 4

// MaxLevel returns the level cap for a rarity tier.
func MaxLevel(rarity int) int { return LevelsPerRoll * rarity }

// RollEvents returns the number of substat roll events between two levels.
func RollEvents(fromLevel, toLevel int) int {
	return toLevel/LevelsPerRoll - fromLevel/LevelsPerRoll
}

// SubstatRolls records one locked substat and the ordered individual roll
// magnitudes already applied to it. The first roll is the unlock event.
type SubstatRolls struct {
	Stat  Stat
	Rolls []float64
}

// Total returns the cumulative substat value.
func (s SubstatRolls) Total() float64 {
	var sum float64
	for _, r := range s.Rolls {
		sum += r
	}
	return sum
}

// Artifact is an immutable descriptor of one piece of equipment at its
// current state. Construct with NewArtifact; a descriptor that fails
// validation is never partially computed on.
type Artifact struct {
	Rarity   int
	Slot     Slot
	MainStat Stat
	Level    int
	Substats []SubstatRolls
}

// NewArtifact validates and builds an artifact descriptor.
//
// The recorded roll history must be achievable: every level threshold since
// generation contributes one roll event, generation itself contributes
// between zero and MaxInitialRolls, and events unlock new substats until the
// four-substat cap before they increase existing ones.
func NewArtifact(rarity int, slot Slot, mainStat Stat, level int, substats []SubstatRolls) (*Artifact, error) {
	if rarity < 1 || rarity > 5 {
		return nil, fmt.Errorf("%w: %s: got %d", ErrInvalidArtifact, ErrMsgInvalidRarity, rarity)
	}
	if level < 0 || level > MaxLevel(rarity) {
		return nil, fmt.Errorf("%w: %s: level %d, rarity %d", ErrInvalidArtifact, ErrMsgInvalidLevel, level, rarity)
	}
	if !ValidSlot(slot) {
		return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidArtifact, slot)
	}
	if !validMainStat(slot, mainStat) {
		return nil, fmt.Errorf("%w: %s: %s on %s", ErrInvalidArtifact, ErrMsgInvalidMainStat, mainStat, slot)
	}
	if len(substats) > MaxSubstats {
		return nil, fmt.Errorf("%w: %s: got %d", ErrInvalidArtifact, ErrMsgTooManySubstats, len(substats))
	}

	totalRolls := 0
	seen := SubstatSet(0)
	for _, sub := range substats {
		if !sub.Stat.IsSubstat() {
			return nil, fmt.Errorf("%w: %s is not a substat", ErrInvalidArtifact, sub.Stat)
		}
		if sub.Stat == mainStat {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalidArtifact, ErrMsgMainStatSubstat, sub.Stat)
		}
		if seen.Has(sub.Stat) {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalidArtifact, ErrMsgDuplicateSubstat, sub.Stat)
		}
		seen = seen.With(sub.Stat)
		if len(sub.Rolls) == 0 {
			return nil, fmt.Errorf("%w: %s: substat %s has no rolls", ErrInvalidArtifact, ErrMsgRollCountMismatch, sub.Stat)
		}
		totalRolls += len(sub.Rolls)
	}

	// Unlocks happen before increases, so the substat count is pinned by the
	// total roll count.
	if expected := min(MaxSubstats, totalRolls); len(substats) != expected {
		return nil, fmt.Errorf("%w: %s: %d substats cannot hold %d rolls",
			ErrInvalidArtifact, ErrMsgRollCountMismatch, len(substats), totalRolls)
	}
	initial := totalRolls - level/LevelsPerRoll
	if initial < 0 || initial > MaxInitialRolls {
		return nil, fmt.Errorf("%w: %s: %d rolls at level %d implies %d initial rolls",
			ErrInvalidArtifact, ErrMsgRollCountMismatch, totalRolls, level, initial)
	}

	a := &Artifact{
		Rarity:   rarity,
		Slot:     slot,
		MainStat: mainStat,
		Level:    level,
		Substats: substats,
	}
	return a, nil
}

// UnlockCount returns the number of locked substats.
func (a *Artifact) UnlockCount() int { return len(a.Substats) }

// TotalRolls returns the number of roll events recorded in the history.
func (a *Artifact) TotalRolls() int {
	n := 0
	for _, s := range a.Substats {
		n += len(s.Rolls)
	}
	return n
}

// IncreaseCount returns the number of roll-up events already applied beyond
// the initial unlock of each substat.
func (a *Artifact) IncreaseCount() int {
	return a.TotalRolls() - a.UnlockCount()
}

// SubstatSet returns the bitmask of locked substats.
func (a *Artifact) SubstatSet() SubstatSet {
	m := SubstatSet(0)
	for _, s := range a.Substats {
		m = m.With(s.Stat)
	}
	return m
}

// RollsFor returns the recorded rolls for one substat, or nil.
func (a *Artifact) RollsFor(stat Stat) []float64 {
	for _, s := range a.Substats {
		if s.Stat == stat {
			return s.Rolls
		}
	}
	return nil
}

func validMainStat(slot Slot, main Stat) bool {
	for _, s := range slotMainStats[slot] {
		if s == main {
			return true
		}
	}
	return false
}
