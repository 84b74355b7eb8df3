package domain

import (
	"errors"
	"testing"
)

func TestScoringConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ScoringConfig
		wantErr bool
	}{
		{
			name: "valid expected crit",
			cfg:  ScoringConfig{ScalingStat: StatATK, CritMode: CritModeExpected},
		},
		{
			name: "valid amplifying",
			cfg:  ScoringConfig{ScalingStat: StatHP, CritMode: CritModeAlways, AmplifyingReaction: true, ReactionMultiplier: 1.5},
		},
		{
			name:    "percent attribute as scaling stat",
			cfg:     ScoringConfig{ScalingStat: StatATKPercent, CritMode: CritModeNever},
			wantErr: true,
		},
		{
			name:    "unknown crit mode",
			cfg:     ScoringConfig{ScalingStat: StatATK, CritMode: CritMode("sometimes")},
			wantErr: true,
		},
		{
			name:    "amplifying without multiplier",
			cfg:     ScoringConfig{ScalingStat: StatATK, CritMode: CritModeExpected, AmplifyingReaction: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidScoring) {
					t.Errorf("expected ErrInvalidScoring, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
