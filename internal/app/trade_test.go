package app

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosteriq/internal/analysis"
)

func weeklySeries(n int) []analysis.WeeklyProjection {
	weeks := make([]analysis.WeeklyProjection, 0, n)
	for i := 1; i <= n; i++ {
		weeks = append(weeks, analysis.WeeklyProjection{
			Week:       i,
			Current:    decimal.NewFromInt(int64(100 + i)),
			Proposed:   decimal.NewFromInt(int64(105 + i)),
			Difference: decimal.NewFromInt(5),
		})
	}
	return weeks
}

func TestDownsampleWeeksKeepsEndpoints(t *testing.T) {
	weeks := weeklySeries(18)

	down := downsampleWeeks(weeks, 5)
	require.Len(t, down, 5)
	assert.Equal(t, 1, down[0].Week)
	assert.Equal(t, 18, down[len(down)-1].Week)
}

func TestDownsampleWeeksNoopWhenSmall(t *testing.T) {
	weeks := weeklySeries(4)

	assert.Len(t, downsampleWeeks(weeks, 10), 4)
	assert.Len(t, downsampleWeeks(weeks, 0), 4)
}

func TestWriteWeeksCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trade.csv")
	require.NoError(t, writeWeeksCSV(path, weeklySeries(3)))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"week", "current", "proposed", "difference", "playoff_week"}, rows[0])
	assert.Equal(t, []string{"1", "101", "106", "5", "false"}, rows[1])
}
