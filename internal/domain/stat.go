package domain

// Stat identifies one attribute in the fixed stat index scheme.
// The first NumSubstats values are the attributes that can appear as artifact
// substats; the remaining values can only occur as artifact main stats.
type Stat uint8

const (
	StatHP Stat = iota
	StatATK
	StatDEF
	StatHPPercent
	StatATKPercent
	StatDEFPercent
	StatEnergyRecharge
	StatElementalMastery
	StatCritRate
	StatCritDamage

	// Main-stat-only attributes
	StatElementalDamage
	StatPhysicalDamage
	StatHealingBonus

	NumStats
)

// NumSubstats is the number of attributes eligible as substats.
const NumSubstats = int(StatCritDamage) + 1

var statNames = [NumStats]string{
	StatHP:               "hp",
	StatATK:              "atk",
	StatDEF:              "def",
	StatHPPercent:        "hp_percent",
	StatATKPercent:       "atk_percent",
	StatDEFPercent:       "def_percent",
	StatEnergyRecharge:   "energy_recharge",
	StatElementalMastery: "elemental_mastery",
	StatCritRate:         "crit_rate",
	StatCritDamage:       "crit_damage",
	StatElementalDamage:  "elemental_damage",
	StatPhysicalDamage:   "physical_damage",
	StatHealingBonus:     "healing_bonus",
}

// String returns the canonical snake_case name used in data tables and APIs.
func (s Stat) String() string {
	if int(s) >= int(NumStats) {
		return "unknown"
	}
	return statNames[s]
}

// ParseStat resolves a canonical stat name back to its index.
func ParseStat(name string) (Stat, bool) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), true
		}
	}
	return 0, false
}

// IsSubstat reports whether the attribute can appear as an artifact substat.
func (s Stat) IsSubstat() bool {
	return int(s) < NumSubstats
}

// IsPercent reports whether the attribute is measured in percent points.
func (s Stat) IsPercent() bool {
	switch s {
	case StatHP, StatATK, StatDEF, StatElementalMastery:
		return false
	default:
		return true
	}
}

// PercentVariant returns the percent counterpart of a flat base attribute.
// Returns s unchanged for attributes without a percent variant.
func (s Stat) PercentVariant() Stat {
	switch s {
	case StatHP:
		return StatHPPercent
	case StatATK:
		return StatATKPercent
	case StatDEF:
		return StatDEFPercent
	default:
		return s
	}
}

// StatVector holds one value per attribute, indexed by Stat.
// Flat attributes are absolute points; percent attributes are percent points
// (4.7 means 4.7%).
type StatVector [NumStats]float64

// Add returns the element-wise sum of two vectors.
func (v StatVector) Add(o StatVector) StatVector {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

// Get returns the value for one attribute.
func (v StatVector) Get(s Stat) float64 { return v[s] }

// SubstatSet is a bitmask over substat indices.
type SubstatSet uint16

// With returns the set with s added.
func (m SubstatSet) With(s Stat) SubstatSet { return m | 1<<uint(s) }

// Has reports whether s is in the set.
func (m SubstatSet) Has(s Stat) bool { return m&(1<<uint(s)) != 0 }

// Count returns the number of substats in the set.
func (m SubstatSet) Count() int {
	n := 0
	for s := 0; s < NumSubstats; s++ {
		if m&(1<<uint(s)) != 0 {
			n++
		}
	}
	return n
}
