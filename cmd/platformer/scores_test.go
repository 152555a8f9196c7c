package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var (
	meadow = levels.Level{ID: "meadow", Name: "Meadow"}
	towers = levels.Level{ID: "towers", Name: "Towers"}
)

func TestPrintScoresLimitAndAll(t *testing.T) {
	store := testStore(t)
	for _, score := range []int{100, 300, 200} {
		_, err := store.SaveScore("meadow", score, score == 300)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	require.NoError(t, printScores(&out, store, meadow, false, 2))
	assert.Contains(t, out.String(), "High Scores - Meadow")
	assert.Contains(t, out.String(), "300")
	assert.Contains(t, out.String(), "200")
	assert.NotContains(t, out.String(), "100 ")
	assert.Contains(t, out.String(), "Best: 300  Runs: 3  Wins: 1")

	out.Reset()
	require.NoError(t, printScores(&out, store, meadow, true, 2))
	assert.Contains(t, out.String(), "100 ")
}

func TestPrintScoresEmptyLevel(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printScores(&out, testStore(t), towers, false, 10))
	assert.Contains(t, out.String(), "No scores recorded yet.")
	assert.Contains(t, out.String(), "platformer play towers")
}

func TestPrintSummaryListsPlayedLevels(t *testing.T) {
	store := testStore(t)

	var out bytes.Buffer
	require.NoError(t, printSummary(&out, store, []levels.Level{meadow, towers}))
	assert.Contains(t, out.String(), "No scores recorded yet.")

	_, err := store.SaveScore("meadow", 150, true)
	require.NoError(t, err)
	_, err = store.SaveScore("removed", 40, false)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, printSummary(&out, store, []levels.Level{meadow, towers}))
	assert.Contains(t, out.String(), "Meadow")
	assert.Contains(t, out.String(), "150")
	assert.Contains(t, out.String(), "removed", "unknown levels keep their ID")
	assert.NotContains(t, out.String(), "Towers", "unplayed levels are skipped")
}

func TestClearScoresOnlyTouchesOneLevel(t *testing.T) {
	store := testStore(t)
	_, err := store.SaveScore("meadow", 150, true)
	require.NoError(t, err)
	_, err = store.SaveScore("towers", 90, false)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, clearScores(&out, store, meadow))
	assert.Contains(t, out.String(), "Meadow")

	best, err := store.HighScore("meadow")
	require.NoError(t, err)
	assert.Zero(t, best)

	best, err = store.HighScore("towers")
	require.NoError(t, err)
	assert.Equal(t, 90, best)
}
