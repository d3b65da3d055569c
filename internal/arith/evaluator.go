// Package arith provides the arithmetic evaluator capability: it parses and
// computes finished expression strings using govaluate, with the scientific
// function set registered (sqrt, abs, ln, log, sin, cos, tan, pow).
package arith

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// Evaluator evaluates arithmetic expression strings.
//
// The grammar is govaluate's: standard arithmetic, parentheses, the **
// exponent operator, and calls to the registered functions. Expressions are
// self-contained; bare identifiers have no parameter source and fail at
// evaluation time.
//
// Implements formula.Evaluator. Stateless and safe for concurrent use.
type Evaluator struct {
	functions map[string]govaluate.ExpressionFunction
}

// New creates an Evaluator with the scientific function set.
func New() *Evaluator {
	return &Evaluator{
		functions: map[string]govaluate.ExpressionFunction{
			"sqrt": unary("sqrt", math.Sqrt),
			"abs":  unary("abs", math.Abs),
			"ln":   unary("ln", math.Log),
			"log":  unary("log", math.Log10),
			"sin":  unary("sin", math.Sin),
			"cos":  unary("cos", math.Cos),
			"tan":  unary("tan", math.Tan),
			"pow":  binary("pow", math.Pow),
		},
	}
}

// Evaluate parses and computes expression. Fails if the expression is
// malformed, references an unknown identifier or function, or does not
// produce a numeric result.
func (e *Evaluator) Evaluate(expression string) (float64, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, e.functions)
	if err != nil {
		return 0, fmt.Errorf("parse expression: %w", err)
	}

	// govaluate panics on a nil parameter source when the expression
	// references an identifier; an empty map makes it return a lookup error.
	result, err := expr.Evaluate(map[string]interface{}{})
	if err != nil {
		return 0, fmt.Errorf("evaluate expression: %w", err)
	}

	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("expression result is %T, not a number", result)
	}
	return value, nil
}

// unary adapts a single-argument math function to govaluate's calling
// convention with arity and type checking.
func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		x, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
}

// binary adapts a two-argument math function.
func binary(name string, fn func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(args))
		}
		x, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		y, err := toFloat(name, args[1])
		if err != nil {
			return nil, err
		}
		return fn(x, y), nil
	}
}

func toFloat(name string, v interface{}) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%s argument %v is not a number", name, v)
	}
	return f, nil
}
