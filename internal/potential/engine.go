package potential

import (
	"context"
	"fmt"
	"time"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/gamedata"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/logger"
)

// BaseStatProvider supplies a character's stat vector excluding the artifact
// slot under evaluation. Queried once per evaluation.
type BaseStatProvider interface {
	BaseStats(ctx context.Context, character string) (domain.StatVector, error)
}

// Projector maps a full stat vector to a scalar power under a scoring
// configuration. Invoked once per outcome row.
type Projector interface {
	Project(stats domain.StatVector, cfg domain.ScoringConfig) float64
}

// Request describes one artifact evaluation.
type Request struct {
	Artifact    *domain.Artifact
	Character   string
	Scoring     domain.ScoringConfig
	TargetLevel int
	Source      domain.LootSource

	// DisableConsolidation turns off substat merging. Consolidation must not
	// change the power distribution, only the enumeration size; this knob
	// exists to verify that.
	DisableConsolidation bool
}

// Service is the potential evaluation engine. Evaluations are stateless and
// independent; a Service is safe for concurrent use since the underlying
// tables are read-only.
type Service interface {
	Evaluate(ctx context.Context, req Request) (*domain.OutcomeTable, error)
}

type service struct {
	tables *gamedata.Tables
	base   BaseStatProvider
	proj   Projector
	exp    *expander
}

// NewService creates the evaluation engine over loaded game data tables.
func NewService(tables *gamedata.Tables, base BaseStatProvider, proj Projector) (Service, error) {
	exp, err := newExpander(&tables.Rolls)
	if err != nil {
		return nil, err
	}
	return &service{tables: tables, base: base, proj: proj, exp: exp}, nil
}

// Evaluate enumerates every distinguishable future of the artifact up to the
// target level and returns the finalized (stats, power, probability) table.
func (s *service) Evaluate(ctx context.Context, req Request) (*domain.OutcomeTable, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	art := req.Artifact
	if art == nil {
		return nil, fmt.Errorf("%w: artifact is required", domain.ErrInvalidArtifact)
	}
	if err := req.Scoring.Validate(); err != nil {
		return nil, err
	}
	if req.TargetLevel < art.Level || req.TargetLevel > domain.MaxLevel(art.Rarity) {
		return nil, fmt.Errorf("%w: target level %d outside [%d, %d]",
			domain.ErrInvalidArtifact, req.TargetLevel, art.Level, domain.MaxLevel(art.Rarity))
	}
	// Recorded rolls must be grid magnitudes; an impossible history would
	// otherwise flow rounded into the outcome rows.
	for _, sub := range art.Substats {
		if err := s.tables.Rolls.ValidateRolls(sub.Stat, art.Rarity, sub.Rolls); err != nil {
			return nil, err
		}
	}

	log.Debug(LogMsgEvaluationStarted,
		"slot", art.Slot, "rarity", art.Rarity, "level", art.Level,
		"target_level", req.TargetLevel, "source", req.Source, "character", req.Character)

	weights, err := s.tables.Weights.SubstatWeights(art.Slot, art.MainStat)
	if err != nil {
		return nil, err
	}

	cons := Consolidation{}
	if !req.DisableConsolidation {
		pool := art.SubstatSet()
		for i, w := range weights {
			if w > 0 {
				pool = pool.With(domain.Stat(i))
			}
		}
		cons = NewConsolidation(req.Scoring, pool)
	}

	final, err := s.enumerate(art, req, weights, cons)
	if err != nil {
		log.Error(LogMsgEvaluationFailed, "error", err)
		return nil, err
	}

	rows, err := s.exp.expand(final, art, cons)
	if err != nil {
		log.Error(LogMsgEvaluationFailed, "error", err)
		return nil, err
	}

	table, err := s.assemble(ctx, rows, art, req)
	if err != nil {
		log.Error(LogMsgEvaluationFailed, "error", err)
		return nil, err
	}

	log.Debug(LogMsgEvaluationFinished,
		"rows", table.Len(), "duration_ms", time.Since(start).Milliseconds())
	return table, nil
}

// enumerate runs the unlock and increase stages, blending in the loot
// source's bonus roll as a weighted mixture. The bonus materializes as an
// extra unlock while the artifact is below the four-substat cap and as an
// extra increase otherwise; these are mutually exclusive.
func (s *service) enumerate(art *domain.Artifact, req Request, weights [domain.NumSubstats]float64, cons Consolidation) (*outcomeSet, error) {
	base := pseudoKey{}
	for _, sub := range art.Substats {
		if cons.Condensable(sub.Stat) {
			base.unlocked = base.unlocked.With(cons.Placeholder())
			base.absorbed++
		} else {
			base.unlocked = base.unlocked.With(sub.Stat)
		}
	}

	events := domain.RollEvents(art.Level, req.TargetLevel)
	unlocks := min(domain.MaxSubstats-art.UnlockCount(), events)
	increases := events - unlocks

	var bonus float64
	if events > 0 {
		p, err := s.tables.Sources.BonusProbability(req.Source, art.Rarity)
		if err != nil {
			return nil, err
		}
		bonus = p
	}

	existing := art.SubstatSet()

	if bonus > 0 && art.UnlockCount()+unlocks < domain.MaxSubstats {
		baseline, err := enumerateUnlocks(base, 1, weights, existing, cons, unlocks)
		if err != nil {
			return nil, err
		}
		extra, err := enumerateUnlocks(base, 1, weights, existing, cons, unlocks+1)
		if err != nil {
			return nil, err
		}
		blended := newOutcomeSet()
		blended.addScaled(baseline, 1-bonus)
		blended.addScaled(extra, bonus)
		if err := blended.checkMass("unlock mixture"); err != nil {
			return nil, err
		}
		return enumerateIncreases(blended, increases, cons)
	}

	unlocked, err := enumerateUnlocks(base, 1, weights, existing, cons, unlocks)
	if err != nil {
		return nil, err
	}
	grown, err := enumerateIncreases(unlocked, increases, cons)
	if err != nil {
		return nil, err
	}
	if bonus == 0 {
		return grown, nil
	}

	extra, err := enumerateIncreases(grown, 1, cons)
	if err != nil {
		return nil, err
	}
	blended := newOutcomeSet()
	blended.addScaled(grown, 1-bonus)
	blended.addScaled(extra, bonus)
	if err := blended.checkMass("increase mixture"); err != nil {
		return nil, err
	}
	return blended, nil
}

// assemble completes each row's stat vector with the artifact main stat and
// the character's base stats, projects power, and freezes the table.
func (s *service) assemble(ctx context.Context, rows []expandedRow, art *domain.Artifact, req Request) (*domain.OutcomeTable, error) {
	var baseStats domain.StatVector
	if s.base != nil && req.Character != "" {
		bs, err := s.base.BaseStats(ctx, req.Character)
		if err != nil {
			return nil, fmt.Errorf("base stats for %s: %w", req.Character, err)
		}
		baseStats = bs
	}

	mainValue, err := s.tables.MainStats.Value(art.MainStat, art.Rarity, req.TargetLevel)
	if err != nil {
		return nil, err
	}

	out := make([]domain.OutcomeRow, 0, len(rows))
	for _, row := range rows {
		var stats domain.StatVector
		for i, v := range row.values {
			stats[i] = v
		}
		stats[art.MainStat] += mainValue
		full := baseStats.Add(stats)
		out = append(out, domain.OutcomeRow{
			Stats:       stats,
			Power:       s.proj.Project(full, req.Scoring),
			Probability: row.prob,
		})
	}
	return domain.NewOutcomeTable(out)
}
