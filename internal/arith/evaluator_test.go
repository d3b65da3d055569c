package arith

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/formulary/internal/formula"
)

func TestEvaluate_Arithmetic(t *testing.T) {
	e := New()

	tests := []struct {
		expression string
		want       float64
	}{
		{"1 + 1", 2},
		{"2 * 3 + 4", 10},
		{"2 * (3 + 4)", 14},
		{"10 / 4", 2.5},
		{"2 ** 10", 1024},
		{"3.141592653589793 * 2**2", 12.566370614359172},
		{"-5 + 3", -2},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := e.Evaluate(tt.expression)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEvaluate_Functions(t *testing.T) {
	e := New()

	tests := []struct {
		expression string
		want       float64
	}{
		{"sqrt(16)", 4},
		{"abs(-3.5)", 3.5},
		{"ln(1)", 0},
		{"log(100)", 2},
		{"sin(0)", 0},
		{"cos(0)", 1},
		{"pow(2, 8)", 256},
		{"sqrt(4**2) + 1", 5},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := e.Evaluate(tt.expression)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEvaluate_Failures(t *testing.T) {
	e := New()

	expressions := []string{
		"",
		"1 +",
		"invalid()",
		"sqrt()",
		"sqrt(1, 2)",
		"pow(1)",
		"unknown_variable + 1",
	}

	for _, expr := range expressions {
		t.Run(expr, func(t *testing.T) {
			_, err := e.Evaluate(expr)
			assert.Error(t, err)
		})
	}
}

func TestEvaluate_UnresolvedIdentifier(t *testing.T) {
	e := New()

	// Must return an error, never panic, when an identifier has no value
	expressions := []string{
		"x + 1",
		"r * h",
		"2 * undefined_thing",
	}

	for _, expr := range expressions {
		t.Run(expr, func(t *testing.T) {
			_, err := e.Evaluate(expr)
			require.Error(t, err)
		})
	}
}

func TestEvaluate_NonNumericResult(t *testing.T) {
	e := New()
	_, err := e.Evaluate("1 == 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
}

func TestEngineIntegration_CircleArea(t *testing.T) {
	eng := formula.NewEngine(New())

	result, err := eng.Evaluate("π * r²", formula.Bindings{"r": 2})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*4, result, 1e-12)
}

func TestEngineIntegration_TestFormula(t *testing.T) {
	eng := formula.NewEngine(New())

	assert.True(t, eng.Test("π * r²", []string{"r"}))
	assert.True(t, eng.Test("base * height / 2", []string{"base", "height"}))
	assert.True(t, eng.Test("√(x²)", []string{"x"}))
	assert.False(t, eng.Test("invalid()", nil))
	assert.False(t, eng.Test("r +", []string{"r"}))
}

func TestEngineIntegration_PartialBindings(t *testing.T) {
	eng := formula.NewEngine(New())

	// A declared variable left unbound stays in the expression and surfaces
	// as an evaluation error, not a crash
	_, err := eng.Evaluate("r * h", formula.Bindings{"r": 2})
	require.Error(t, err)
	assert.True(t, formula.IsEvaluationError(err))
	assert.Contains(t, err.Error(), "h")

	// Test with an identifier outside the declared set reports invalid
	assert.False(t, eng.Test("a + b", []string{"a"}))
}

func TestEngineIntegration_SqrtSymbol(t *testing.T) {
	eng := formula.NewEngine(New())

	result, err := eng.Evaluate("√(a) + 1", formula.Bindings{"a": 16})
	require.NoError(t, err)
	assert.InDelta(t, 5, result, 1e-12)

	// Bare √ without parentheses produces an unparseable expression
	_, err = eng.Evaluate("√9", nil)
	assert.Error(t, err)
}
