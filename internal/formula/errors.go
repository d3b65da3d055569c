package formula

import (
	"errors"
	"fmt"
)

// InvalidIdentifierError reports a formula or variable name that fails the
// identifier pattern check. Raised at save/creation time; the formula is
// never stored.
type InvalidIdentifierError struct {
	// Name is the rejected identifier.
	Name string

	// Field says where the identifier appeared ("name" or "variable").
	Field string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid %s %q: must match [A-Za-z_][A-Za-z0-9_]*", e.Field, e.Name)
}

// EvaluationError reports that the delegated evaluator rejected a
// substituted expression. The message is the evaluator's own, unchanged.
type EvaluationError struct {
	// Expression is the substituted form that was sent to the evaluator.
	Expression string

	// Message is the evaluator's failure message.
	Message string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate %q: %s", e.Expression, e.Message)
}

// UnboundVariableError reports a binding key outside the formula's declared
// variables.
type UnboundVariableError struct {
	Formula  string
	Variable string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("formula %q does not declare variable %q", e.Formula, e.Variable)
}

// IsEvaluationError returns true if err is (or wraps) an EvaluationError.
func IsEvaluationError(err error) bool {
	var ee *EvaluationError
	return errors.As(err, &ee)
}
