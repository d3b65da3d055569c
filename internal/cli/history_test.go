package cli

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/formulary/internal/store"
)

// seedEvaluation writes a history record directly into the database.
func seedEvaluation(t *testing.T, dbPath string, ev store.Evaluation) {
	t.Helper()
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.WriteEvaluation(context.Background(), ev))
}

func TestHistory_Empty(t *testing.T) {
	out, _, err := executeCommand(t, "--db", testDBPath(t), "history")
	require.NoError(t, err)
	assert.Equal(t, "No evaluations recorded.\n", out)
}

func TestHistory_Text(t *testing.T) {
	dbPath := testDBPath(t)
	seedEvaluation(t, dbPath, store.Evaluation{
		ID:          uuid.Must(uuid.NewV7()).String(),
		FormulaName: "circle_area",
		Expression:  "3.141592653589793 * 2**2",
		Result:      12.566370614359172,
		Created:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	out, _, err := executeCommand(t, "--db", dbPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "WHEN")
	assert.Contains(t, out, "circle_area")
	assert.Contains(t, out, "3.141592653589793 * 2**2")
	assert.Contains(t, out, "12.566370614359172")
}

func TestHistory_AdHocShownAsDash(t *testing.T) {
	dbPath := testDBPath(t)
	seedEvaluation(t, dbPath, store.Evaluation{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Expression: "1 + 1",
		Result:     2,
		Created:    time.Now().UTC(),
	})

	out, _, err := executeCommand(t, "--db", dbPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "-")
}

func TestHistory_Limit(t *testing.T) {
	dbPath := testDBPath(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedEvaluation(t, dbPath, store.Evaluation{
			ID:         uuid.Must(uuid.NewV7()).String(),
			Expression: "1 + 1",
			Result:     2,
			Created:    base.Add(time.Duration(i) * time.Minute),
		})
	}

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	evals, err := s.ListEvaluations(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, evals, 2)

	out, _, err := executeCommand(t, "--db", dbPath, "history", "--limit", "2")
	require.NoError(t, err)

	// Header plus two records
	assert.Equal(t, 3, countLines(out))
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
