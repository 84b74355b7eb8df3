package domain

import (
	"fmt"
	"math"
	"sort"
)

// MassTolerance is the allowed deviation of total probability mass from 1.
const MassTolerance = 1e-6

// OutcomeRow is one fully resolved future state of an artifact: its
// stat-relevant substat assignment, the derived power scalar, and the
// probability of reaching that state.
type OutcomeRow struct {
	Stats       StatVector `json:"stats"`
	Power       float64    `json:"power"`
	Probability float64    `json:"probability"`
}

// OutcomeTable is the finalized discrete probability distribution produced by
// one evaluation. Rows are sorted by ascending power and the table is
// immutable once built.
type OutcomeTable struct {
	rows []OutcomeRow
}

// NewOutcomeTable validates mass conservation and freezes the rows.
// The caller must not retain the slice.
func NewOutcomeTable(rows []OutcomeRow) (*OutcomeTable, error) {
	var mass float64
	for _, r := range rows {
		mass += r.Probability
	}
	if math.Abs(mass-1) > MassTolerance {
		return nil, fmt.Errorf("%w: outcome table mass %.9f", ErrMassInvariant, mass)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Power < rows[j].Power })
	return &OutcomeTable{rows: rows}, nil
}

// Rows returns the outcome rows in ascending power order.
func (t *OutcomeTable) Rows() []OutcomeRow { return t.rows }

// Len returns the number of distinguishable outcomes.
func (t *OutcomeTable) Len() int { return len(t.rows) }

// MinPower returns the lowest reachable power.
func (t *OutcomeTable) MinPower() float64 {
	if len(t.rows) == 0 {
		return 0
	}
	return t.rows[0].Power
}

// MaxPower returns the highest reachable power.
func (t *OutcomeTable) MaxPower() float64 {
	if len(t.rows) == 0 {
		return 0
	}
	return t.rows[len(t.rows)-1].Power
}

// MeanPower returns the probability-weighted expected power.
func (t *OutcomeTable) MeanPower() float64 {
	var mean float64
	for _, r := range t.rows {
		mean += r.Power * r.Probability
	}
	return mean
}

// MassBelow returns the probability that the final power is strictly below x.
func (t *OutcomeTable) MassBelow(x float64) float64 {
	var mass float64
	for _, r := range t.rows {
		if r.Power >= x {
			break
		}
		mass += r.Probability
	}
	return mass
}

// Percentile returns the smallest power value whose cumulative probability
// reaches p. p is clamped to [0,1].
func (t *OutcomeTable) Percentile(p float64) float64 {
	if len(t.rows) == 0 {
		return 0
	}
	if p <= 0 {
		return t.rows[0].Power
	}
	var mass float64
	for _, r := range t.rows {
		mass += r.Probability
		if mass >= p-MassTolerance {
			return r.Power
		}
	}
	return t.rows[len(t.rows)-1].Power
}

// MedianPower returns the 50th percentile power.
func (t *OutcomeTable) MedianPower() float64 { return t.Percentile(0.5) }
