package handler

import (
	"net/http"
	"sort"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/gamedata"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/naming"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/power"
)

// SubstatInfo describes one substat for catalog consumers.
type SubstatInfo struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Percent     bool      `json:"percent"`
	RollValues  []float64 `json:"roll_values,omitempty"`
}

// SubstatCatalogResponse lists every substat, with roll magnitudes for the
// requested rarity (default 5).
type SubstatCatalogResponse struct {
	Rarity   int           `json:"rarity"`
	Substats []SubstatInfo `json:"substats"`
}

// ProfileInfo describes one named scoring profile.
type ProfileInfo struct {
	Name               string `json:"name"`
	ScalingStat        string `json:"scaling_stat"`
	CritMode           string `json:"crit_mode"`
	AmplifyingReaction bool   `json:"amplifying_reaction"`
}

// HandleGetSubstats lists the substat catalog with roll values.
func HandleGetSubstats(tables *gamedata.Tables) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rarity := 5
		if q := r.URL.Query().Get("rarity"); q != "" {
			parsed, ok := parseRarity(q)
			if !ok {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
				return
			}
			rarity = parsed
		}

		substats := make([]SubstatInfo, 0, domain.NumSubstats)
		for i := 0; i < domain.NumSubstats; i++ {
			stat := domain.Stat(i)
			info := SubstatInfo{
				ID:          stat.String(),
				DisplayName: naming.DisplayName(stat.String()),
				Percent:     stat.IsPercent(),
			}
			if values, err := tables.Rolls.Values(stat, rarity); err == nil {
				info.RollValues = values
			}
			substats = append(substats, info)
		}

		respondJSON(w, http.StatusOK, SubstatCatalogResponse{Rarity: rarity, Substats: substats})
	}
}

// HandleGetProfiles lists the named scoring profiles, sorted by name.
func HandleGetProfiles(profiles map[string]domain.ScoringConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]ProfileInfo, 0, len(profiles))
		for name, cfg := range profiles {
			out = append(out, ProfileInfo{
				Name:               name,
				ScalingStat:        cfg.ScalingStat.String(),
				CritMode:           string(cfg.CritMode),
				AmplifyingReaction: cfg.AmplifyingReaction,
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		respondJSON(w, http.StatusOK, out)
	}
}

// HandleGetCharacters lists characters with known base stats.
func HandleGetCharacters(provider *power.TableProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, provider.Characters())
	}
}

func parseRarity(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '5' {
		return 0, false
	}
	return int(s[0] - '0'), true
}
