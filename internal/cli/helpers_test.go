package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/formulary/internal/formula"
	"github.com/roach88/formulary/internal/store"
)

// executeCommand runs the CLI with the given args and captures output.
func executeCommand(t *testing.T, args ...string) (stdout string, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// testDBPath returns a database path inside a per-test temp dir.
func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

// seedFormula writes a formula directly into the database at dbPath.
func seedFormula(t *testing.T, dbPath string, f formula.Formula) {
	t.Helper()
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.SaveFormula(context.Background(), f))
}

// testFormula builds a formula with a fixed creation time.
func testFormula(name, expression string, variables ...string) formula.Formula {
	return formula.Formula{
		Name:       name,
		Expression: expression,
		Variables:  variables,
		Created:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
