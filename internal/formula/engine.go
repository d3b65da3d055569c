package formula

// Evaluator is the external arithmetic capability. It parses and computes a
// finished expression string: standard arithmetic, the ** exponent operator,
// and function calls such as sqrt(x). Malformed input fails with an error.
//
// Implemented by arith.Evaluator (production) and test fakes.
type Evaluator interface {
	Evaluate(expression string) (float64, error)
}

// Engine turns a formula template plus variable bindings into a concrete
// expression and requests evaluation. It holds no mutable state; every
// evaluation is a single bounded synchronous call.
type Engine struct {
	eval Evaluator
}

// NewEngine creates an Engine backed by the given evaluator.
// The evaluator is a required capability, not looked up dynamically.
func NewEngine(eval Evaluator) *Engine {
	return &Engine{eval: eval}
}

// Test binds every declared variable to the placeholder value 1, substitutes,
// and reports whether the evaluator accepts the result. Used to vet a
// formula before saving; the computed value is never surfaced.
func (e *Engine) Test(expression string, variables []string) bool {
	bindings := make(Bindings, len(variables))
	for _, v := range variables {
		bindings[v] = 1
	}
	_, err := e.Evaluate(expression, bindings)
	return err == nil
}

// Evaluate substitutes bindings into expression and delegates to the
// evaluator. Evaluator failures are returned as *EvaluationError carrying
// the evaluator's message; no partial result is produced.
func (e *Engine) Evaluate(expression string, bindings Bindings) (float64, error) {
	substituted := Substitute(expression, bindings)
	result, err := e.eval.Evaluate(substituted)
	if err != nil {
		return 0, &EvaluationError{Expression: substituted, Message: err.Error()}
	}
	return result, nil
}

// EvaluateFormula evaluates a stored formula with the given bindings.
// Binding keys must be a subset of the formula's declared variables;
// an undeclared key fails with *UnboundVariableError before any
// substitution happens.
func (e *Engine) EvaluateFormula(f Formula, bindings Bindings) (float64, error) {
	declared := make(map[string]bool, len(f.Variables))
	for _, v := range f.Variables {
		declared[v] = true
	}
	for name := range bindings {
		if !declared[name] {
			return 0, &UnboundVariableError{Formula: f.Name, Variable: name}
		}
	}
	return e.Evaluate(f.Expression, bindings)
}
