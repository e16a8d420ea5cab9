package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromCSV(t *testing.T) {
	injuryPath := writeTempCSV(t, "injuries.csv", "player_name,status\nSome Back,Q\nSome End, IR\n")
	sosPath := writeTempCSV(t, "sos.csv", "team,position,avg_rank_remaining\nSF,RB,9\nNYJ,WR,25\n")

	tables, err := Load(injuryPath, sosPath)
	require.NoError(t, err)

	status, ok := tables.InjuryStatus("Some Back")
	require.True(t, ok)
	assert.Equal(t, StatusQuestionable, status)

	status, ok = tables.InjuryStatus("Some End")
	require.True(t, ok)
	assert.Equal(t, StatusIR, status)

	assert.Equal(t, SOSEasy, tables.SOSScore("SF", "RB").Label)
	assert.Equal(t, SOSHard, tables.SOSScore("NYJ", "WR").Label)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	tables, err := Load("", "")
	require.NoError(t, err)

	status, ok := tables.InjuryStatus("Lamar Jackson")
	require.True(t, ok)
	assert.Equal(t, StatusOut, status)

	rank, ok := tables.SOSRank("BUF", "QB")
	require.True(t, ok)
	assert.Equal(t, 6, rank)
}

func TestLoadRejectsBadRank(t *testing.T) {
	sosPath := writeTempCSV(t, "sos.csv", "team,position,avg_rank_remaining\nSF,RB,soft\n")

	_, err := Load("", sosPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad rank")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), "")
	assert.Error(t, err)
}
