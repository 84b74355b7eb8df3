package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutcomeTable_MassInvariant(t *testing.T) {
	_, err := NewOutcomeTable([]OutcomeRow{
		{Power: 1, Probability: 0.5},
		{Power: 2, Probability: 0.4},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMassInvariant))

	table, err := NewOutcomeTable([]OutcomeRow{
		{Power: 1, Probability: 0.5},
		{Power: 2, Probability: 0.5 + 1e-9},
	})
	require.NoError(t, err, "mass within tolerance must pass")
	assert.Equal(t, 2, table.Len())
}

func TestOutcomeTable_SortedAndQueries(t *testing.T) {
	table, err := NewOutcomeTable([]OutcomeRow{
		{Power: 30, Probability: 0.2},
		{Power: 10, Probability: 0.5},
		{Power: 20, Probability: 0.3},
	})
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, 10.0, rows[0].Power, "rows must be sorted ascending")
	assert.Equal(t, 30.0, rows[2].Power)

	assert.Equal(t, 10.0, table.MinPower())
	assert.Equal(t, 30.0, table.MaxPower())
	assert.InDelta(t, 10*0.5+20*0.3+30*0.2, table.MeanPower(), 1e-12)
}

func TestOutcomeTable_MassBelow(t *testing.T) {
	table, err := NewOutcomeTable([]OutcomeRow{
		{Power: 10, Probability: 0.5},
		{Power: 20, Probability: 0.3},
		{Power: 30, Probability: 0.2},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, table.MassBelow(10), "strictly below excludes the boundary row")
	assert.Equal(t, 0.5, table.MassBelow(15))
	assert.Equal(t, 0.5, table.MassBelow(20))
	assert.InDelta(t, 0.8, table.MassBelow(30), 1e-12)
	assert.InDelta(t, 1.0, table.MassBelow(math.Inf(1)), 1e-12)
}

func TestOutcomeTable_Percentile(t *testing.T) {
	table, err := NewOutcomeTable([]OutcomeRow{
		{Power: 10, Probability: 0.5},
		{Power: 20, Probability: 0.3},
		{Power: 30, Probability: 0.2},
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, table.Percentile(0))
	assert.Equal(t, 10.0, table.Percentile(0.25))
	assert.Equal(t, 10.0, table.Percentile(0.5), "boundary mass satisfies the percentile")
	assert.Equal(t, 20.0, table.Percentile(0.75))
	assert.Equal(t, 30.0, table.Percentile(0.95))
	assert.Equal(t, 30.0, table.Percentile(1))
	assert.Equal(t, 10.0, table.MedianPower())
}

func TestOutcomeTable_Empty(t *testing.T) {
	table := &OutcomeTable{}
	assert.Equal(t, 0.0, table.MinPower())
	assert.Equal(t, 0.0, table.MaxPower())
	assert.Equal(t, 0.0, table.Percentile(0.5))
}
