package sip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionFirstMonths(t *testing.T) {
	entries := Projection(1000, 12, 0.01)
	require.Len(t, entries, 12)

	first := entries[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, int64(1000), first.Investment)
	assert.Equal(t, int64(1000), first.CumulativeInvestment)
	// No balance existed before the first contribution.
	assert.Equal(t, int64(0), first.Returns)
	assert.Equal(t, int64(10), first.CumulativeReturns)
	assert.Equal(t, int64(1010), first.TotalValue)

	second := entries[1]
	assert.Equal(t, int64(2000), second.CumulativeInvestment)
	assert.Equal(t, int64(20), second.CumulativeReturns)
	assert.Equal(t, int64(2020), second.TotalValue)
}

func TestProjectionZeroRate(t *testing.T) {
	entries := Projection(500, 6, 0)
	require.Len(t, entries, 6)

	last := entries[5]
	assert.Equal(t, int64(3000), last.CumulativeInvestment)
	assert.Equal(t, int64(0), last.CumulativeReturns)
	assert.Equal(t, int64(3000), last.TotalValue)
}

func TestProjectionDivergesFromClosedForm(t *testing.T) {
	entries := Projection(1000, 12, 0.01)
	last := entries[len(entries)-1]

	// The per-step schedule compounds only the returns balance, so it lands
	// below the annuity-due closed form and the two are not reconciled.
	assert.Equal(t, int64(12127), last.TotalValue)
	assert.Equal(t, int64(12809), round(FutureValue(1000, 0.01, 12)))
	assert.Less(t, last.TotalValue, round(FutureValue(1000, 0.01, 12)))
}

func TestProjectionEmpty(t *testing.T) {
	assert.Empty(t, Projection(1000, 0, 0.01))
}
