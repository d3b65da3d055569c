package formula

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// symbolReplacements are applied globally after variable substitution, in
// this exact order. They are independent of bindings: a template with no
// variables still gets its symbols expanded.
//
// √ expands to the evaluator's sqrt function name, so "√(9)" becomes
// "sqrt(9)". A bare "√9" becomes "sqrt9" and fails in the evaluator.
var symbolReplacements = []struct {
	symbol      string
	replacement string
}{
	{"π", strconv.FormatFloat(math.Pi, 'g', -1, 64)},
	{"²", "**2"},
	{"³", "**3"},
	{"√", "sqrt"},
}

// replacement is a resolved variable match: a half-open byte range in the
// original expression and the literal that replaces it.
type replacement struct {
	start, end int
	text       string
}

// Substitute replaces each bound variable in expression with its numeric
// literal, then expands the fixed mathematical symbols.
//
// Variable matches are whole-word only: "r" does not match inside "radius".
// All match positions are found against the original expression before any
// text is rewritten, and the output is assembled in one pass. A value that
// happens to contain digits therefore can never be re-interpreted as part
// of another variable name.
//
// Binding keys that are not well-formed identifiers are ignored; they can
// never appear as a word in a valid template.
func Substitute(expression string, bindings Bindings) string {
	// Composed and decomposed forms of the math symbols must compare equal.
	expr := norm.NFC.String(expression)

	var repls []replacement
	for name, value := range bindings {
		if !ValidIdentifier(name) {
			continue
		}
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		for _, loc := range pattern.FindAllStringIndex(expr, -1) {
			repls = append(repls, replacement{
				start: loc[0],
				end:   loc[1],
				text:  FormatNumber(value),
			})
		}
	}

	// Whole-word matches of distinct identifiers cannot overlap, so sorting
	// by start position fully orders the replacements.
	sort.Slice(repls, func(i, j int) bool { return repls[i].start < repls[j].start })

	var b strings.Builder
	b.Grow(len(expr))
	last := 0
	for _, r := range repls {
		b.WriteString(expr[last:r.start])
		b.WriteString(r.text)
		last = r.end
	}
	b.WriteString(expr[last:])
	out := b.String()

	for _, s := range symbolReplacements {
		out = strings.ReplaceAll(out, s.symbol, s.replacement)
	}
	return out
}

// FormatNumber renders a numeric value the way it is substituted into
// expressions: shortest representation that round-trips, no trailing zeros,
// always plain decimal notation. The evaluator's lexer reads digits and "."
// only, so exponent forms fall back to fixed notation.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, "eE") {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return s
}
