package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/gamedata"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/logger"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/metrics"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/potential"
)

// SubstatRequest describes one unlocked substat. Callers either list the
// individual rolls or give the cumulative value they read off the artifact;
// a cumulative value is decomposed against the roll grid, with RollCount
// disambiguating when several roll counts reproduce it.
type SubstatRequest struct {
	Stat      string    `json:"stat" validate:"required,stat"`
	Rolls     []float64 `json:"rolls,omitempty" validate:"omitempty,dive,gt=0"`
	Value     *float64  `json:"value,omitempty" validate:"omitempty,gt=0"`
	RollCount int       `json:"roll_count,omitempty" validate:"omitempty,min=1,max=6"`
}

// ArtifactRequest describes the artifact under evaluation.
type ArtifactRequest struct {
	Rarity   int              `json:"rarity" validate:"required,min=1,max=5"`
	Slot     string           `json:"slot" validate:"required,slot"`
	MainStat string           `json:"main_stat" validate:"required,stat"`
	Level    int              `json:"level" validate:"min=0"`
	Substats []SubstatRequest `json:"substats" validate:"max=4,dive"`
}

// ScoringRequest is an inline scoring configuration, used when the caller
// does not reference a named profile.
type ScoringRequest struct {
	ScalingStat        string  `json:"scaling_stat" validate:"required,stat"`
	CritMode           string  `json:"crit_mode" validate:"required,critmode"`
	AmplifyingReaction bool    `json:"amplifying_reaction"`
	ReactionMultiplier float64 `json:"reaction_multiplier" validate:"omitempty,gt=1"`
}

// EvaluateRequest is the body of the evaluate and summary endpoints.
type EvaluateRequest struct {
	Artifact    ArtifactRequest `json:"artifact" validate:"required"`
	TargetLevel int             `json:"target_level" validate:"min=0"`
	Source      string          `json:"source" validate:"required,source"`
	Character   string          `json:"character,omitempty" validate:"omitempty,max=64"`
	Profile     string          `json:"profile,omitempty" validate:"omitempty,max=64"`
	Scoring     *ScoringRequest `json:"scoring,omitempty"`

	// ThresholdPower, when set, adds the probability mass strictly below it
	// to the summary.
	ThresholdPower *float64 `json:"threshold_power,omitempty"`

	// DisableConsolidation reports every substat's value in each row's
	// stats instead of omitting the power-irrelevant ones.
	DisableConsolidation bool `json:"disable_consolidation,omitempty"`
}

// OutcomeRowResponse is one row of the outcome table. Stats carries only the
// nonzero entries, keyed by stat identifier.
type OutcomeRowResponse struct {
	Stats       map[string]float64 `json:"stats"`
	Power       float64            `json:"power"`
	Probability float64            `json:"probability"`
}

// SummaryResponse condenses an outcome table into its headline numbers.
type SummaryResponse struct {
	RowCount    int                `json:"row_count"`
	MinPower    float64            `json:"min_power"`
	MaxPower    float64            `json:"max_power"`
	MeanPower   float64            `json:"mean_power"`
	MedianPower float64            `json:"median_power"`
	Percentiles map[string]float64 `json:"percentiles"`
	MassBelow   *float64           `json:"mass_below,omitempty"`
}

// EvaluateResponse is the full outcome table plus its summary.
type EvaluateResponse struct {
	Rows    []OutcomeRowResponse `json:"rows"`
	Summary SummaryResponse      `json:"summary"`
}

// PotentialHandler serves artifact evaluation endpoints.
type PotentialHandler struct {
	service  potential.Service
	tables   *gamedata.Tables
	profiles map[string]domain.ScoringConfig
}

// NewPotentialHandler creates the handler over the evaluation engine,
// loaded game data, and named scoring profiles.
func NewPotentialHandler(service potential.Service, tables *gamedata.Tables, profiles map[string]domain.ScoringConfig) *PotentialHandler {
	return &PotentialHandler{service: service, tables: tables, profiles: profiles}
}

// HandleEvaluate enumerates every distinguishable future of an artifact and
// returns the full (stats, power, probability) table. Unless consolidation is
// disabled, substats that cannot move the configured power are omitted from
// each row's reported stats, so a row may carry less than the literal input
// stat vector; power values are unaffected either way.
func (h *PotentialHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	table, req, ok := h.evaluate(w, r)
	if !ok {
		return
	}

	rows := make([]OutcomeRowResponse, 0, table.Len())
	for _, row := range table.Rows() {
		rows = append(rows, OutcomeRowResponse{
			Stats:       statsToMap(row.Stats),
			Power:       row.Power,
			Probability: row.Probability,
		})
	}

	respondJSON(w, http.StatusOK, EvaluateResponse{
		Rows:    rows,
		Summary: summarize(table, req.ThresholdPower),
	})
}

// HandleSummary runs the same evaluation but returns only the summary,
// for callers that do not need every outcome row.
func (h *PotentialHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	table, req, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, summarize(table, req.ThresholdPower))
}

// evaluate decodes, validates and runs an evaluation request. On failure the
// response has already been written and ok is false.
func (h *PotentialHandler) evaluate(w http.ResponseWriter, r *http.Request) (*domain.OutcomeTable, *EvaluateRequest, bool) {
	log := logger.FromContext(r.Context())

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
		return nil, nil, false
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondValidationError(w, FormatValidationError(err))
		return nil, nil, false
	}

	scoring, err := h.resolveScoring(&req)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return nil, nil, false
	}

	artifact, err := h.buildArtifact(&req.Artifact)
	if err != nil {
		log.Warn(LogMsgRejectedArtifact, "error", err)
		metrics.EvaluationErrors.WithLabelValues(errorReason(err)).Inc()
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return nil, nil, false
	}

	start := time.Now()
	table, err := h.service.Evaluate(r.Context(), potential.Request{
		Artifact:             artifact,
		Character:            req.Character,
		Scoring:              scoring,
		TargetLevel:          req.TargetLevel,
		Source:               domain.LootSource(req.Source),
		DisableConsolidation: req.DisableConsolidation,
	})
	if err != nil {
		log.Error(LogMsgEvaluationFailed, "error", err)
		metrics.EvaluationErrors.WithLabelValues(errorReason(err)).Inc()
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return nil, nil, false
	}

	metrics.EvaluationsTotal.WithLabelValues(req.Artifact.Slot, req.Source).Inc()
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	metrics.OutcomeRows.Observe(float64(table.Len()))

	return table, &req, true
}

// resolveScoring picks the named profile or builds one from the inline block.
func (h *PotentialHandler) resolveScoring(req *EvaluateRequest) (domain.ScoringConfig, error) {
	if req.Profile != "" {
		cfg, ok := h.profiles[req.Profile]
		if !ok {
			return domain.ScoringConfig{}, fmt.Errorf("%w: profile %q", domain.ErrNoData, req.Profile)
		}
		return cfg, nil
	}
	if req.Scoring == nil {
		return domain.ScoringConfig{}, fmt.Errorf("%w: profile or scoring is required", domain.ErrInvalidInput)
	}
	scaling, _ := domain.ParseStat(req.Scoring.ScalingStat)
	cfg := domain.ScoringConfig{
		ScalingStat:        scaling,
		CritMode:           domain.CritMode(req.Scoring.CritMode),
		AmplifyingReaction: req.Scoring.AmplifyingReaction,
		ReactionMultiplier: req.Scoring.ReactionMultiplier,
	}
	if err := cfg.Validate(); err != nil {
		return domain.ScoringConfig{}, err
	}
	return cfg, nil
}

// buildArtifact converts the request into a validated artifact, decomposing
// cumulative substat values into rolls where needed.
func (h *PotentialHandler) buildArtifact(ar *ArtifactRequest) (*domain.Artifact, error) {
	substats := make([]domain.SubstatRolls, 0, len(ar.Substats))
	for _, sub := range ar.Substats {
		stat, _ := domain.ParseStat(sub.Stat)
		rolls, err := h.resolveSubstatRolls(stat, ar.Rarity, &sub)
		if err != nil {
			return nil, err
		}
		substats = append(substats, domain.SubstatRolls{Stat: stat, Rolls: rolls})
	}

	mainStat, _ := domain.ParseStat(ar.MainStat)
	return domain.NewArtifact(ar.Rarity, domain.Slot(ar.Slot), mainStat, ar.Level, substats)
}

func (h *PotentialHandler) resolveSubstatRolls(stat domain.Stat, rarity int, sub *SubstatRequest) ([]float64, error) {
	if len(sub.Rolls) > 0 {
		return sub.Rolls, nil
	}
	if sub.Value == nil {
		return nil, fmt.Errorf("%w: substat %s needs rolls or value", domain.ErrInvalidInput, stat)
	}

	if sub.RollCount > 0 {
		multisets, err := h.tables.Rolls.ResolveRollsN(stat, rarity, *sub.Value, sub.RollCount)
		if err != nil {
			return nil, err
		}
		// Multisets of equal size sum to the same total, so any one works.
		return multisets[0], nil
	}

	multisets, err := h.tables.Rolls.ResolveRolls(stat, rarity, *sub.Value)
	if err != nil {
		return nil, err
	}
	counts := map[int]bool{}
	for _, ms := range multisets {
		counts[len(ms)] = true
	}
	if len(counts) > 1 {
		return nil, fmt.Errorf("%w: %s=%v is reachable with several roll counts, set roll_count",
			domain.ErrInvalidInput, stat, *sub.Value)
	}
	return multisets[0], nil
}

// summarize builds the summary block from a finalized outcome table.
func summarize(table *domain.OutcomeTable, threshold *float64) SummaryResponse {
	resp := SummaryResponse{
		RowCount:    table.Len(),
		MinPower:    table.MinPower(),
		MaxPower:    table.MaxPower(),
		MeanPower:   table.MeanPower(),
		MedianPower: table.MedianPower(),
		Percentiles: map[string]float64{
			"p10": table.Percentile(0.10),
			"p25": table.Percentile(0.25),
			"p50": table.Percentile(0.50),
			"p75": table.Percentile(0.75),
			"p90": table.Percentile(0.90),
		},
	}
	if threshold != nil {
		mass := table.MassBelow(*threshold)
		resp.MassBelow = &mass
	}
	return resp
}

// statsToMap keeps only the nonzero entries of a stat vector.
func statsToMap(stats domain.StatVector) map[string]float64 {
	out := make(map[string]float64)
	for i, v := range stats {
		if v != 0 {
			out[domain.Stat(i).String()] = v
		}
	}
	return out
}
