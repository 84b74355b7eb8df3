package domain

import (
	"errors"
	"testing"
)

func TestNewArtifact_Valid(t *testing.T) {
	tests := []struct {
		name     string
		rarity   int
		slot     Slot
		mainStat Stat
		level    int
		substats []SubstatRolls
	}{
		{
			name:     "fresh rarity-5 with no substats",
			rarity:   5,
			slot:     SlotFlower,
			mainStat: StatHP,
			level:    0,
			substats: nil,
		},
		{
			name:     "fresh rarity-5 with three initial rolls",
			rarity:   5,
			slot:     SlotPlume,
			mainStat: StatATK,
			level:    0,
			substats: []SubstatRolls{
				{Stat: StatCritRate, Rolls: []float64{3.5}},
				{Stat: StatCritDamage, Rolls: []float64{7.77}},
				{Stat: StatEnergyRecharge, Rolls: []float64{5.18}},
			},
		},
		{
			name:     "leveled artifact with an increase",
			rarity:   5,
			slot:     SlotSands,
			mainStat: StatATKPercent,
			level:    4,
			substats: []SubstatRolls{
				{Stat: StatCritRate, Rolls: []float64{3.5, 3.89}},
				{Stat: StatHP, Rolls: []float64{239.0}},
				{Stat: StatDEF, Rolls: []float64{20.83}},
				{Stat: StatElementalMastery, Rolls: []float64{23.31}},
			},
		},
		{
			name:     "low rarity at level cap",
			rarity:   1,
			slot:     SlotFlower,
			mainStat: StatHP,
			level:    4,
			substats: []SubstatRolls{
				{Stat: StatATK, Rolls: []float64{1.95}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art, err := NewArtifact(tt.rarity, tt.slot, tt.mainStat, tt.level, tt.substats)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if art.UnlockCount() != len(tt.substats) {
				t.Errorf("expected %d unlocked substats, got %d", len(tt.substats), art.UnlockCount())
			}
		})
	}
}

func TestNewArtifact_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		rarity   int
		slot     Slot
		mainStat Stat
		level    int
		substats []SubstatRolls
	}{
		{
			name:     "rarity out of range",
			rarity:   6,
			slot:     SlotFlower,
			mainStat: StatHP,
		},
		{
			name:     "level beyond cap",
			rarity:   3,
			slot:     SlotFlower,
			mainStat: StatHP,
			level:    13,
		},
		{
			name:     "unknown slot",
			rarity:   5,
			slot:     Slot("weapon"),
			mainStat: StatHP,
		},
		{
			name:     "main stat not allowed on slot",
			rarity:   5,
			slot:     SlotFlower,
			mainStat: StatCritRate,
		},
		{
			name:     "substat duplicates main stat",
			rarity:   5,
			slot:     SlotGoblet,
			mainStat: StatHPPercent,
			substats: []SubstatRolls{
				{Stat: StatHPPercent, Rolls: []float64{4.66}},
			},
		},
		{
			name:     "duplicate substat",
			rarity:   5,
			slot:     SlotFlower,
			mainStat: StatHP,
			substats: []SubstatRolls{
				{Stat: StatCritRate, Rolls: []float64{3.5}},
				{Stat: StatCritRate, Rolls: []float64{3.89}},
			},
		},
		{
			name:     "substat with empty roll history",
			rarity:   5,
			slot:     SlotFlower,
			mainStat: StatHP,
			substats: []SubstatRolls{
				{Stat: StatCritRate},
			},
		},
		{
			name:     "increase recorded while a slot is still empty",
			rarity:   5,
			slot:     SlotFlower,
			mainStat: StatHP,
			level:    0,
			substats: []SubstatRolls{
				{Stat: StatCritRate, Rolls: []float64{3.5, 3.89}},
			},
		},
		{
			name:     "too few rolls for the level",
			rarity:   5,
			slot:     SlotFlower,
			mainStat: StatHP,
			level:    8,
			substats: []SubstatRolls{
				{Stat: StatCritRate, Rolls: []float64{3.5}},
			},
		},
		{
			name:     "more initial rolls than possible",
			rarity:   5,
			slot:     SlotFlower,
			mainStat: StatHP,
			level:    0,
			substats: []SubstatRolls{
				{Stat: StatCritRate, Rolls: []float64{3.5, 3.89}},
				{Stat: StatCritDamage, Rolls: []float64{7.77}},
				{Stat: StatEnergyRecharge, Rolls: []float64{5.18}},
				{Stat: StatElementalMastery, Rolls: []float64{23.31}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArtifact(tt.rarity, tt.slot, tt.mainStat, tt.level, tt.substats)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidArtifact) {
				t.Errorf("expected ErrInvalidArtifact, got %v", err)
			}
		})
	}
}

func TestArtifact_RollCounts(t *testing.T) {
	art, err := NewArtifact(5, SlotFlower, StatHP, 8, []SubstatRolls{
		{Stat: StatCritRate, Rolls: []float64{3.5, 3.89}},
		{Stat: StatCritDamage, Rolls: []float64{7.77}},
		{Stat: StatATKPercent, Rolls: []float64{5.83}},
		{Stat: StatEnergyRecharge, Rolls: []float64{5.18, 4.53}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := art.TotalRolls(); got != 6 {
		t.Errorf("TotalRolls = %d, want 6", got)
	}
	if got := art.IncreaseCount(); got != 2 {
		t.Errorf("IncreaseCount = %d, want 2", got)
	}
	if got := art.UnlockCount(); got != 4 {
		t.Errorf("UnlockCount = %d, want 4", got)
	}

	set := art.SubstatSet()
	for _, s := range []Stat{StatCritRate, StatCritDamage, StatATKPercent, StatEnergyRecharge} {
		if !set.Has(s) {
			t.Errorf("SubstatSet missing %s", s)
		}
	}
	if set.Has(StatHPPercent) {
		t.Error("SubstatSet contains substat that was never unlocked")
	}

	rolls := art.RollsFor(StatEnergyRecharge)
	if len(rolls) != 2 {
		t.Errorf("RollsFor returned %d rolls, want 2", len(rolls))
	}
	if art.RollsFor(StatDEF) != nil {
		t.Error("RollsFor returned rolls for an absent substat")
	}
}

func TestRollEvents(t *testing.T) {
	tests := []struct {
		from, to, want int
	}{
		{0, 0, 0},
		{0, 4, 1},
		{0, 20, 5},
		{3, 4, 1},
		{4, 7, 0},
		{8, 20, 3},
	}
	for _, tt := range tests {
		if got := RollEvents(tt.from, tt.to); got != tt.want {
			t.Errorf("RollEvents(%d, %d) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestMaxLevel(t *testing.T) {
	for rarity := 1; rarity <= 5; rarity++ {
		if got := MaxLevel(rarity); got != 4*rarity {
			t.Errorf("MaxLevel(%d) = %d, want %d", rarity, got, 4*rarity)
		}
	}
}
