package formula

import (
	"fmt"
	"math"
	"strconv"
)

// Expr is a parsed formula node. Evaluation never panics; structural
// problems surface as errors which the public API collapses to zero.
type Expr interface {
	eval(vars map[string]float64) (float64, error)
}

type numberExpr struct {
	value float64
}

type identExpr struct {
	name string
}

type unaryExpr struct {
	op      string
	operand Expr
}

type binaryExpr struct {
	op          string
	left, right Expr
}

type ternaryExpr struct {
	cond, then, otherwise Expr
}

type callExpr struct {
	fn   string
	args []Expr
}

func (e numberExpr) eval(map[string]float64) (float64, error) {
	return e.value, nil
}

func (e identExpr) eval(vars map[string]float64) (float64, error) {
	v, ok := vars[e.name]
	if !ok {
		return 0, fmt.Errorf("unknown identifier %q", e.name)
	}
	return v, nil
}

func (e unaryExpr) eval(vars map[string]float64) (float64, error) {
	v, err := e.operand.eval(vars)
	if err != nil {
		return 0, err
	}
	switch e.op {
	case "-":
		return -v, nil
	case "!":
		if v == 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("unknown unary operator %q", e.op)
}

func (e binaryExpr) eval(vars map[string]float64) (float64, error) {
	l, err := e.left.eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := e.right.eval(vars)
	if err != nil {
		return 0, err
	}

	switch e.op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return l / r, nil
	case "<":
		return boolToFloat(l < r), nil
	case ">":
		return boolToFloat(l > r), nil
	case "<=":
		return boolToFloat(l <= r), nil
	case ">=":
		return boolToFloat(l >= r), nil
	case "==":
		return boolToFloat(l == r), nil
	case "!=":
		return boolToFloat(l != r), nil
	case "&&":
		return boolToFloat(l != 0 && r != 0), nil
	case "||":
		return boolToFloat(l != 0 || r != 0), nil
	}
	return 0, fmt.Errorf("unknown operator %q", e.op)
}

func (e ternaryExpr) eval(vars map[string]float64) (float64, error) {
	c, err := e.cond.eval(vars)
	if err != nil {
		return 0, err
	}
	if c != 0 {
		return e.then.eval(vars)
	}
	return e.otherwise.eval(vars)
}

func (e callExpr) eval(vars map[string]float64) (float64, error) {
	args := make([]float64, len(e.args))
	for i, a := range e.args {
		v, err := a.eval(vars)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	fn, ok := functions[e.fn]
	if !ok {
		return 0, fmt.Errorf("unknown function %q", e.fn)
	}
	return fn(args)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// functions is the fixed allow-list of callables. Arity is checked at
// evaluation time so a bad call degrades to zero like any other error.
var functions = map[string]func(args []float64) (float64, error){
	"min": func(args []float64) (float64, error) {
		if len(args) == 0 {
			return 0, fmt.Errorf("min requires at least one argument")
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Min(v, a)
		}
		return v, nil
	},
	"max": func(args []float64) (float64, error) {
		if len(args) == 0 {
			return 0, fmt.Errorf("max requires at least one argument")
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Max(v, a)
		}
		return v, nil
	},
	"round": func(args []float64) (float64, error) {
		switch len(args) {
		case 1:
			return math.Round(args[0]), nil
		case 2:
			mult := math.Pow(10, math.Trunc(args[1]))
			return math.Round(args[0]*mult) / mult, nil
		}
		return 0, fmt.Errorf("round requires one or two arguments")
	},
	"floor": func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("floor requires one argument")
		}
		return math.Floor(args[0]), nil
	},
	"ceil": func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("ceil requires one argument")
		}
		return math.Ceil(args[0]), nil
	},
	"abs": func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("abs requires one argument")
		}
		return math.Abs(args[0]), nil
	},
}

// IsFunction reports whether name is one of the allow-listed math functions.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

type parser struct {
	tokens []token
	pos    int
}

// Parse builds an AST from a formula string. Parse only checks syntax;
// identifier resolution happens during validation and evaluation.
func Parse(input string) (Expr, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.current().kind != tokEOF {
		return nil, fmt.Errorf("unexpected token %q at position %d", p.current().text, p.current().pos)
	}
	return expr, nil
}

func (p *parser) current() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) acceptPunct(text string) bool {
	if p.current().kind == tokPunct && p.current().text == text {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectPunct(text string) error {
	if !p.acceptPunct(text) {
		return fmt.Errorf("expected %q at position %d", text, p.current().pos)
	}
	return nil
}

func (p *parser) parseTernary() (Expr, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.acceptPunct("?") {
		return cond, nil
	}
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}
	otherwise, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return ternaryExpr{cond: cond, then: then, otherwise: otherwise}, nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.acceptPunct("||") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: "||", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.acceptPunct("&&") {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: "&&", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for _, op := range []string{"<=", ">=", "==", "!=", "<", ">"} {
		if p.acceptPunct(op) {
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			return binaryExpr{op: op, left: left, right: right}, nil
		}
	}
	return left, nil
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.acceptPunct("+"):
			op = "+"
		case p.acceptPunct("-"):
			op = "-"
		default:
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.acceptPunct("*"):
			op = "*"
		case p.acceptPunct("/"):
			op = "/"
		default:
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.acceptPunct("-") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryExpr{op: "-", operand: operand}, nil
	}
	if p.acceptPunct("!") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryExpr{op: "!", operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.current()

	switch t.kind {
	case tokNumber:
		p.advance()
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", t.text)
		}
		return numberExpr{value: v}, nil

	case tokIdent:
		p.advance()
		if !p.acceptPunct("(") {
			return identExpr{name: t.text}, nil
		}
		var args []Expr
		if !p.acceptPunct(")") {
			for {
				arg, err := p.parseTernary()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.acceptPunct(",") {
					continue
				}
				if err := p.expectPunct(")"); err != nil {
					return nil, err
				}
				break
			}
		}
		return callExpr{fn: t.text, args: args}, nil

	case tokPunct:
		if t.text == "(" {
			p.advance()
			inner, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}

	return nil, fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
}
