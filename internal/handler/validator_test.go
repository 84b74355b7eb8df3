package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_CustomTags(t *testing.T) {
	v := GetValidator()

	valid := EvaluateRequest{
		Artifact: ArtifactRequest{Rarity: 5, Slot: "flower", MainStat: "hp"},
		Source:   "domain",
		Scoring:  &ScoringRequest{ScalingStat: "hp", CritMode: "expected"},
	}
	assert.NoError(t, v.ValidateStruct(valid))

	tests := []struct {
		name   string
		mutate func(*EvaluateRequest)
	}{
		{"unknown slot", func(r *EvaluateRequest) { r.Artifact.Slot = "helmet" }},
		{"unknown stat", func(r *EvaluateRequest) { r.Artifact.MainStat = "mana" }},
		{"unknown source", func(r *EvaluateRequest) { r.Source = "raid" }},
		{"unknown crit mode", func(r *EvaluateRequest) { r.Scoring.CritMode = "sometimes" }},
		{"rarity out of range", func(r *EvaluateRequest) { r.Artifact.Rarity = 6 }},
		{"too many substats", func(r *EvaluateRequest) {
			r.Artifact.Substats = make([]SubstatRequest, 5)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			scoring := *valid.Scoring
			req.Scoring = &scoring
			tt.mutate(&req)
			assert.Error(t, v.ValidateStruct(req))
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(EvaluateRequest{
		Artifact: ArtifactRequest{Rarity: 5, Slot: "helmet", MainStat: "hp"},
		Source:   "domain",
		Scoring:  &ScoringRequest{ScalingStat: "hp", CritMode: "expected"},
	})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Unknown artifact slot", fields["slot"])

	assert.Nil(t, FormatValidationError(nil))

	fields = FormatValidationError(assert.AnError)
	assert.Equal(t, "Invalid request format", fields["error"])
}
