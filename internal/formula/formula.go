package formula

import (
	"regexp"
	"time"
)

// Formula is a named arithmetic template with declared free variables.
//
// INVARIANTS:
//   - Name and every entry of Variables match identifierPattern
//   - No two stored formulas share the same Name (enforced by the store)
type Formula struct {
	Name       string    `json:"name" yaml:"name"`
	Expression string    `json:"expression" yaml:"expression"`
	Variables  []string  `json:"variables" yaml:"variables"`
	Created    time.Time `json:"created" yaml:"created"`
}

// Bindings maps variable names to numeric values at evaluation time.
// Keys must be a subset of the formula's declared variables; the
// formula-aware entry points enforce this, Substitute does not.
type Bindings map[string]float64

// identifierPattern is the shape required of formula names and variable
// names: a letter or underscore followed by letters, digits, or underscores.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name is a well-formed formula or variable
// name. Empty strings, leading digits, spaces, and hyphens are all rejected.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
