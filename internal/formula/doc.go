// Package formula implements named arithmetic templates with declared free
// variables, and the substitution step that turns a template plus variable
// bindings into a concrete expression string for an arithmetic evaluator.
//
// The substitution model is deliberately textual, not a tokenizer:
//   - Variable names are replaced whole-word (word-boundary matched), so a
//     variable "r" never matches inside "radius".
//   - All match positions are computed against the ORIGINAL expression in a
//     single pass, so digits inserted by one substitution can never be
//     re-matched as part of another variable name.
//   - After variables, a fixed set of mathematical symbols is expanded
//     globally: π to its decimal literal, ² and ³ to the ** operator form,
//     and √ to the evaluator's sqrt function name.
//
// Arithmetic itself is delegated to an Evaluator capability injected at
// construction. The package never parses or computes expressions on its own.
package formula
