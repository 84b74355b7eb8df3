package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

func TestHandleGetSubstats(t *testing.T) {
	h := HandleGetSubstats(loadHandlerTables(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/substats", nil)
	w := httptest.NewRecorder()
	h(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SubstatCatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Rarity)
	require.Len(t, resp.Substats, domain.NumSubstats)

	byID := make(map[string]SubstatInfo)
	for _, s := range resp.Substats {
		byID[s.ID] = s
	}
	cr := byID["crit_rate"]
	assert.Equal(t, "CRIT Rate", cr.DisplayName)
	assert.True(t, cr.Percent)
	assert.Equal(t, []float64{2.72, 3.11, 3.50, 3.89}, cr.RollValues)

	hp := byID["hp"]
	assert.False(t, hp.Percent)
	assert.Equal(t, "HP", hp.DisplayName)
}

func TestHandleGetSubstats_UnknownRarityDropsValues(t *testing.T) {
	h := HandleGetSubstats(loadHandlerTables(t))

	// The fixture only carries rarity 5 grids; rarity 3 still lists the
	// catalog, just without magnitudes.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/substats?rarity=3", nil)
	w := httptest.NewRecorder()
	h(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SubstatCatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Rarity)
	for _, s := range resp.Substats {
		assert.Empty(t, s.RollValues)
	}
}

func TestHandleGetSubstats_BadRarity(t *testing.T) {
	h := HandleGetSubstats(loadHandlerTables(t))

	for _, q := range []string{"0", "6", "abc", "55"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/substats?rarity="+q, nil)
		w := httptest.NewRecorder()
		h(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rarity %q", q)
	}
}

func TestHandleGetProfiles(t *testing.T) {
	profiles := map[string]domain.ScoringConfig{
		"hu_tao":  {Name: "hu_tao", ScalingStat: domain.StatHP, CritMode: domain.CritModeExpected},
		"bennett": {Name: "bennett", ScalingStat: domain.StatHP, CritMode: domain.CritModeNever},
	}
	h := HandleGetProfiles(profiles)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil)
	w := httptest.NewRecorder()
	h(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []ProfileInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "bennett", resp[0].Name, "sorted by name")
	assert.Equal(t, "never", resp[0].CritMode)
	assert.Equal(t, "hp", resp[1].ScalingStat)
}
