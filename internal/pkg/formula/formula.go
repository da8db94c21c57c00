// Package formula provides safe arithmetic formula evaluation for
// payroll output columns. Formulas are validated token-by-token against
// a fixed allow-list before anything is evaluated, then parsed into an
// AST and tree-walked over a numeric variable map. There is no code
// generation anywhere: a malformed or unsafe formula yields zero.
package formula

import (
	"fmt"
	"math"
)

// Validate tokenizes expr and checks every token: numbers and
// punctuation always pass, identifiers must be either an allow-listed
// math function or accepted by known. The first offending token fails
// the whole formula.
func Validate(expr string, known func(name string) bool) error {
	tokens, err := tokenize(expr)
	if err != nil {
		return err
	}
	for _, t := range tokens {
		if t.kind != tokIdent {
			continue
		}
		if IsFunction(t.text) {
			continue
		}
		if known != nil && known(t.text) {
			continue
		}
		return fmt.Errorf("identifier %q is not recognized", t.text)
	}
	return nil
}

// Variables returns the distinct non-function identifiers referenced by
// expr, in order of first appearance. A formula that fails to tokenize
// references nothing.
func Variables(expr string) []string {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, t := range tokens {
		if t.kind != tokIdent || IsFunction(t.text) || seen[t.text] {
			continue
		}
		seen[t.text] = true
		names = append(names, t.text)
	}
	return names
}

// Eval validates expr against vars, parses it and evaluates the AST.
// Any failure along the way, and any non-finite result, collapses to
// zero: a broken formula must never abort a payroll run.
func Eval(expr string, vars map[string]float64) float64 {
	v, err := TryEval(expr, vars)
	if err != nil {
		return 0
	}
	return v
}

// TryEval behaves like Eval but reports what went wrong, so callers can
// surface configuration mistakes as diagnostics while still treating
// the value as zero.
func TryEval(expr string, vars map[string]float64) (float64, error) {
	known := func(name string) bool {
		_, ok := vars[name]
		return ok
	}
	if err := Validate(expr, known); err != nil {
		return 0, err
	}

	ast, err := Parse(expr)
	if err != nil {
		return 0, err
	}

	v, err := ast.eval(vars)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("formula produced a non-finite value")
	}
	return v, nil
}
