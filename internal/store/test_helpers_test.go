package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/formulary/internal/formula"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestFormula creates a formula with minimal required fields.
func createTestFormula(name, expression string, variables ...string) formula.Formula {
	return formula.Formula{
		Name:       name,
		Expression: expression,
		Variables:  variables,
		Created:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// createTestEvaluation creates a history record with minimal required fields.
func createTestEvaluation(id, formulaName, expression string, result float64) Evaluation {
	return Evaluation{
		ID:          id,
		FormulaName: formulaName,
		Expression:  expression,
		Result:      result,
		Created:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
