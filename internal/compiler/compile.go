// Package compiler turns CUE formula definitions into formula.Formula
// records and validates them against the identifier and expression rules.
//
// A definition file declares formulas under the top-level "formula" struct:
//
//	formula: circle_area: {
//		expression: "π * r²"
//		variables: ["r"]
//	}
package compiler

import (
	"fmt"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/formulary/internal/formula"
)

// CompileFormula parses a CUE value into a Formula.
// The value should be the formula struct itself; the formula name is taken
// from the struct label, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`formula: circle_area: {...}`)
//	f, err := CompileFormula(v.LookupPath(cue.ParsePath("formula.circle_area")))
func CompileFormula(v cue.Value) (*formula.Formula, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	f := &formula.Formula{}

	// Formula name comes from the struct label (the path selector)
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		f.Name = labels[len(labels)-1].String()
	}

	exprVal := v.LookupPath(cue.ParsePath("expression"))
	if !exprVal.Exists() {
		return nil, &CompileError{
			Field:   "expression",
			Message: "expression is required",
			Pos:     v.Pos(),
		}
	}
	expr, err := exprVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	f.Expression = expr

	// variables is optional - a formula may be a pure constant expression
	varsVal := v.LookupPath(cue.ParsePath("variables"))
	if varsVal.Exists() {
		iter, err := varsVal.List()
		if err != nil {
			return nil, &CompileError{
				Field:   "variables",
				Message: fmt.Sprintf("variables must be a list of strings: %v", err),
				Pos:     varsVal.Pos(),
			}
		}
		for iter.Next() {
			name, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			f.Variables = append(f.Variables, name)
		}
	}

	f.Created = time.Now().UTC()

	return f, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
