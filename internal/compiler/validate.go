package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/formulary/internal/formula"
)

// Validation error codes (E100-E199)
const (
	ErrInvalidFormulaName  = "E101" // formula name fails identifier check
	ErrExpressionEmpty     = "E102" // expression is required
	ErrInvalidVariableName = "E103" // variable name fails identifier check
	ErrDuplicateVariable   = "E104" // variable declared twice
	ErrExpressionRejected  = "E105" // expression failed test evaluation
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a formula against the identifier and expression rules.
// Returns all errors found (does not fail-fast).
//
// Shared by every path that creates formulas: CUE definitions, YAML import,
// and direct saves. A formula that fails validation is never stored.
func Validate(f *formula.Formula) []ValidationError {
	var errs []ValidationError

	// E101: name must be identifier-shaped
	if !formula.ValidIdentifier(f.Name) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("invalid formula name %q: must match [A-Za-z_][A-Za-z0-9_]*", f.Name),
			Code:    ErrInvalidFormulaName,
		})
	}

	// E102: expression must be non-empty
	if strings.TrimSpace(f.Expression) == "" {
		errs = append(errs, ValidationError{
			Field:   "expression",
			Message: "expression is required and must be non-empty",
			Code:    ErrExpressionEmpty,
		})
	}

	seen := make(map[string]bool, len(f.Variables))
	for i, name := range f.Variables {
		// E103: variable names must be identifier-shaped
		if !formula.ValidIdentifier(name) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("variables[%d]", i),
				Message: fmt.Sprintf("invalid variable name %q: must match [A-Za-z_][A-Za-z0-9_]*", name),
				Code:    ErrInvalidVariableName,
			})
		}

		// E104: duplicate variable declaration
		if seen[name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("variables[%d]", i),
				Message: fmt.Sprintf("duplicate variable: %q", name),
				Code:    ErrDuplicateVariable,
			})
		}
		seen[name] = true
	}

	return errs
}
