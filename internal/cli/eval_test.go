package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/formulary/internal/store"
)

func TestEval_Text(t *testing.T) {
	dbPath := testDBPath(t)
	seedFormula(t, dbPath, testFormula("circle_area", "π * r²", "r"))

	out, _, err := executeCommand(t, "--db", dbPath, "eval", "circle_area", "r=2")
	require.NoError(t, err)
	assert.Equal(t, "12.566370614359172\n", out)
}

func TestEval_JSON(t *testing.T) {
	dbPath := testDBPath(t)
	seedFormula(t, dbPath, testFormula("double", "x * 2", "x"))

	out, _, err := executeCommand(t, "--db", dbPath, "--format", "json", "eval", "double", "x=21")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   EvalResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "double", resp.Data.Formula)
	assert.Equal(t, "21 * 2", resp.Data.Substituted)
	assert.Equal(t, float64(42), resp.Data.Result)
}

func TestEval_FormulaNotFound(t *testing.T) {
	out, _, err := executeCommand(t, "--db", testDBPath(t), "eval", "missing", "x=1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestEval_UndeclaredBinding(t *testing.T) {
	dbPath := testDBPath(t)
	seedFormula(t, dbPath, testFormula("double", "x * 2", "x"))

	out, _, err := executeCommand(t, "--db", dbPath, "eval", "double", "y=3")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E010]")
}

func TestEval_MalformedBinding(t *testing.T) {
	dbPath := testDBPath(t)
	seedFormula(t, dbPath, testFormula("double", "x * 2", "x"))

	tests := []struct {
		name string
		pair string
	}{
		{"missing equals", "x2"},
		{"not a number", "x=abc"},
		{"invalid identifier", "2x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, "--db", dbPath, "eval", "double", tt.pair)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestEval_EvaluationFailure(t *testing.T) {
	dbPath := testDBPath(t)
	seedFormula(t, dbPath, testFormula("broken", "x //", "x"))

	out, _, err := executeCommand(t, "--db", dbPath, "eval", "broken", "x=1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E008]")
}

func TestEval_RecordsHistory(t *testing.T) {
	dbPath := testDBPath(t)
	seedFormula(t, dbPath, testFormula("circle_area", "π * r²", "r"))

	_, _, err := executeCommand(t, "--db", dbPath, "eval", "circle_area", "r=2")
	require.NoError(t, err)

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	evals, err := s.ListEvaluations(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, "circle_area", evals[0].FormulaName)
	assert.Equal(t, "3.141592653589793 * 2**2", evals[0].Expression)
	assert.InDelta(t, 12.566370614359172, evals[0].Result, 1e-12)
	assert.NotEmpty(t, evals[0].ID)
}
