package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/formulary/internal/store"
)

// writeDefs writes a single CUE definitions file into a fresh temp dir.
func writeDefs(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "formulas.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return dir
}

const sampleDefs = `
formula: circle_area: {
	expression: "π * r²"
	variables: ["r"]
}

formula: double: {
	expression: "x * 2"
	variables: ["x"]
}
`

func TestLoad_Success(t *testing.T) {
	dbPath := testDBPath(t)
	defsDir := writeDefs(t, sampleDefs)

	out, _, err := executeCommand(t, "--db", dbPath, "load", defsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Loaded 2 formula(s)")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	formulas, err := s.GetFormulas(context.Background())
	require.NoError(t, err)
	require.Len(t, formulas, 2)
	assert.Equal(t, "circle_area", formulas[0].Name)
	assert.Equal(t, "π * r²", formulas[0].Expression)
	assert.Equal(t, []string{"r"}, formulas[0].Variables)
}

func TestLoad_SkipsDuplicates(t *testing.T) {
	dbPath := testDBPath(t)
	defsDir := writeDefs(t, sampleDefs)

	_, _, err := executeCommand(t, "--db", dbPath, "load", defsDir)
	require.NoError(t, err)

	out, _, err := executeCommand(t, "--db", dbPath, "load", defsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Loaded 0 formula(s)")
	assert.Contains(t, out, "skipped circle_area (already exists)")
	assert.Contains(t, out, "skipped double (already exists)")
}

func TestLoad_ReplaceOverwrites(t *testing.T) {
	dbPath := testDBPath(t)
	seedFormula(t, dbPath, testFormula("double", "x * 3", "x"))

	defsDir := writeDefs(t, `
formula: double: {
	expression: "x * 2"
	variables: ["x"]
}
`)

	_, _, err := executeCommand(t, "--db", dbPath, "load", defsDir, "--replace")
	require.NoError(t, err)

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	f, err := s.GetFormula(context.Background(), "double")
	require.NoError(t, err)
	assert.Equal(t, "x * 2", f.Expression)
}

func TestLoad_RejectedExpression(t *testing.T) {
	dbPath := testDBPath(t)
	defsDir := writeDefs(t, `
formula: broken: {
	expression: "x ++ ** 2"
	variables: ["x"]
}
`)

	out, _, err := executeCommand(t, "--db", dbPath, "load", defsDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "E105")

	// Nothing reaches the store when validation fails
	s, serr := store.Open(dbPath)
	require.NoError(t, serr)
	defer s.Close()

	formulas, serr := s.GetFormulas(context.Background())
	require.NoError(t, serr)
	assert.Empty(t, formulas)
}

func TestLoad_MissingExpression(t *testing.T) {
	defsDir := writeDefs(t, `
formula: nameless: {
	variables: ["x"]
}
`)

	out, _, err := executeCommand(t, "--db", testDBPath(t), "load", defsDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
}

func TestLoad_MissingDirectory(t *testing.T) {
	out, _, err := executeCommand(t, "--db", testDBPath(t), "load", "/nonexistent/defs")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestLoad_NoCUEFiles(t *testing.T) {
	out, _, err := executeCommand(t, "--db", testDBPath(t), "load", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E003]")
}
