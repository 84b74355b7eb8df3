package gamedata

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/validation"
)

// Data file names under the data directory.
const (
	FileSubstatWeights = "substat_weights.json"
	FileRollValues     = "roll_values.json"
	FileLootSources    = "loot_sources.json"
	FileMainStats      = "main_stats.json"
)

// Schema file names under the schema directory.
const (
	SchemaSubstatWeights = "substat_weights.schema.json"
	SchemaRollValues     = "roll_values.schema.json"
	SchemaLootSources    = "loot_sources.schema.json"
	SchemaMainStats      = "main_stats.schema.json"
)

type rawWeights struct {
	Version string                                   `json:"version"`
	Slots   map[string]map[string]map[string]float64 `json:"slots"`
}

type rawRollValues struct {
	Version  string                          `json:"version"`
	Substats map[string]map[string][]float64 `json:"substats"`
}

type rawLootSources struct {
	Version string                        `json:"version"`
	Sources map[string]map[string]float64 `json:"sources"`
}

type rawMainStats struct {
	Version string                             `json:"version"`
	Curves  map[string]map[string]rawStatCurve `json:"curves"`
}

type rawStatCurve struct {
	Base     float64 `json:"base"`
	PerLevel float64 `json:"per_level"`
}

// LoadTables reads and validates every data table from dataDir. When
// schemaDir is non-empty each file is first checked against its JSON Schema.
func LoadTables(dataDir, schemaDir string) (*Tables, error) {
	var sv validation.SchemaValidator
	if schemaDir != "" {
		sv = validation.NewSchemaValidator()
	}

	tables := &Tables{}

	var rw rawWeights
	if err := readTable(dataDir, schemaDir, FileSubstatWeights, SchemaSubstatWeights, sv, &rw); err != nil {
		return nil, err
	}
	if err := tables.Weights.fill(rw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileSubstatWeights, err)
	}

	var rv rawRollValues
	if err := readTable(dataDir, schemaDir, FileRollValues, SchemaRollValues, sv, &rv); err != nil {
		return nil, err
	}
	if err := tables.Rolls.fill(rv); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileRollValues, err)
	}

	var rl rawLootSources
	if err := readTable(dataDir, schemaDir, FileLootSources, SchemaLootSources, sv, &rl); err != nil {
		return nil, err
	}
	if err := tables.Sources.fill(rl); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileLootSources, err)
	}

	var rm rawMainStats
	if err := readTable(dataDir, schemaDir, FileMainStats, SchemaMainStats, sv, &rm); err != nil {
		return nil, err
	}
	if err := tables.MainStats.fill(rm); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileMainStats, err)
	}

	return tables, nil
}

func readTable(dataDir, schemaDir, file, schema string, sv validation.SchemaValidator, out any) error {
	path := filepath.Join(dataDir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read data table %s: %w", path, err)
	}
	if sv != nil {
		if err := sv.ValidateBytes(data, filepath.Join(schemaDir, schema)); err != nil {
			return fmt.Errorf("schema validation for %s: %w", file, err)
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return nil
}

func (t *WeightTable) fill(raw rawWeights) error {
	t.weights = make(map[domain.Slot]map[domain.Stat][domain.NumSubstats]float64, len(raw.Slots))
	for slotName, byMain := range raw.Slots {
		slot := domain.Slot(slotName)
		if !domain.ValidSlot(slot) {
			return fmt.Errorf("unknown slot %q", slotName)
		}
		t.weights[slot] = make(map[domain.Stat][domain.NumSubstats]float64, len(byMain))
		for mainName, pool := range byMain {
			main, ok := domain.ParseStat(mainName)
			if !ok {
				return fmt.Errorf("unknown main stat %q", mainName)
			}
			var w [domain.NumSubstats]float64
			for subName, weight := range pool {
				sub, ok := domain.ParseStat(subName)
				if !ok || !sub.IsSubstat() {
					return fmt.Errorf("unknown substat %q", subName)
				}
				if weight <= 0 {
					return fmt.Errorf("substat %q weight must be positive", subName)
				}
				if sub == main {
					return fmt.Errorf("substat %q duplicates main stat in pool %s/%s", subName, slotName, mainName)
				}
				w[sub] = weight
			}
			t.weights[slot][main] = w
		}
	}
	return nil
}

func (g *RollGrid) fill(raw rawRollValues) error {
	for statName, byRarity := range raw.Substats {
		stat, ok := domain.ParseStat(statName)
		if !ok || !stat.IsSubstat() {
			return fmt.Errorf("unknown substat %q", statName)
		}
		for rarityKey, values := range byRarity {
			rarity, err := parseRarityKey(rarityKey)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return fmt.Errorf("empty roll grid for %s rarity %d", statName, rarity)
			}
			for i := 1; i < len(values); i++ {
				if values[i] <= values[i-1] {
					return fmt.Errorf("roll grid for %s rarity %d must be strictly ascending", statName, rarity)
				}
			}
			scale := detectScale(values)
			scaled := make([]int64, len(values))
			for i, v := range values {
				scaled[i] = int64(math.Round(v * float64(scale)))
			}
			g.values[stat][rarity] = append([]float64(nil), values...)
			g.scaled[stat][rarity] = scaled
			g.scale[stat][rarity] = scale
			g.decomp[stat][rarity] = buildDecomposition(scaled)
		}
	}
	return nil
}

func (t *LootTable) fill(raw rawLootSources) error {
	t.probs = make(map[domain.LootSource]map[int]float64, len(raw.Sources))
	for sourceName, byRarity := range raw.Sources {
		probs := make(map[int]float64, len(byRarity))
		for rarityKey, p := range byRarity {
			rarity, err := parseRarityKey(rarityKey)
			if err != nil {
				return err
			}
			if p < 0 || p > 1 {
				return fmt.Errorf("bonus probability for %s rarity %d must be in [0,1]", sourceName, rarity)
			}
			probs[rarity] = p
		}
		t.probs[domain.LootSource(sourceName)] = probs
	}
	return nil
}

func (t *MainStatTable) fill(raw rawMainStats) error {
	t.curves = make(map[domain.Stat]map[int]mainStatCurve, len(raw.Curves))
	for statName, byRarity := range raw.Curves {
		stat, ok := domain.ParseStat(statName)
		if !ok {
			return fmt.Errorf("unknown main stat %q", statName)
		}
		curves := make(map[int]mainStatCurve, len(byRarity))
		for rarityKey, c := range byRarity {
			rarity, err := parseRarityKey(rarityKey)
			if err != nil {
				return err
			}
			curves[rarity] = mainStatCurve{Base: c.Base, PerLevel: c.PerLevel}
		}
		t.curves[stat] = curves
	}
	return nil
}

func parseRarityKey(key string) (int, error) {
	if len(key) != 1 || key[0] < '1' || key[0] > '5' {
		return 0, fmt.Errorf("rarity key must be \"1\"..\"5\", got %q", key)
	}
	return int(key[0] - '0'), nil
}

// detectScale returns the smallest power of ten that represents every grid
// value exactly, capped at 10^4.
func detectScale(values []float64) int64 {
	for scale := int64(1); scale <= 10000; scale *= 10 {
		exact := true
		for _, v := range values {
			s := v * float64(scale)
			if math.Abs(s-math.Round(s)) > 1e-6*float64(scale) {
				exact = false
				break
			}
		}
		if exact {
			return scale
		}
	}
	return 10000
}
