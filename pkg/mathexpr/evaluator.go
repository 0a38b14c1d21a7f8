// FILE: pkg/mathexpr/evaluator.go
// PURPOSE: Restricted arithmetic evaluation. No identifiers, no function
// calls, no access to anything outside the operator grammar below.

package mathexpr

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const allowedChars = "0123456789+-*/(). %"

// Result is the structured calculator payload surfaced as a tool result.
// Exactly one of Result/Error is set.
type Result struct {
	Result *float64 `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
}

var errInvalidCharacters = errors.New("invalid characters")

// Calc normalizes a spoken phrase and evaluates it. The status code follows
// HTTP conventions: 200 on success, 400 for anything the evaluator rejects.
func Calc(expression string) (Result, int) {
	return Evaluate(Normalize(expression))
}

// Evaluate runs a normalized expression through the restricted grammar.
// The expression must be non-empty, contain only digits, + - * / % ( ) .
// and spaces, and hold at least one digit; anything else is rejected up
// front as invalid characters.
func Evaluate(expr string) (Result, int) {
	expr = strings.TrimSpace(expr)
	if !isEvaluable(expr) {
		return Result{Error: errInvalidCharacters.Error()}, http.StatusBadRequest
	}

	value, err := evalExpression(expr)
	if err != nil {
		return Result{Error: err.Error()}, http.StatusBadRequest
	}
	return Result{Result: &value}, http.StatusOK
}

// FormatNumber renders an evaluation result the way it should be spoken:
// no trailing zeros, no exponent notation for everyday magnitudes.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isEvaluable(expr string) bool {
	if expr == "" {
		return false
	}
	hasDigit := false
	for _, r := range expr {
		if !strings.ContainsRune(allowedChars, r) {
			return false
		}
		if r >= '0' && r <= '9' {
			hasDigit = true
		}
	}
	return hasDigit
}

// --- recursive-descent parser ---
//
// expr   := term (('+' | '-') term)*
// term   := unary (('*' | '/' | '%') unary)*
// unary  := ('+' | '-') unary | power
// power  := primary ('**' unary)?          right-associative
// primary:= number | '(' expr ')'

type parser struct {
	input []rune
	pos   int
}

func evalExpression(expr string) (float64, error) {
	p := &parser{input: []rune(expr)}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("invalid syntax at position %d", p.pos)
	}
	return v, nil
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() rune {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

// peekPower reports whether "**" starts at the cursor; a single '*' is
// multiplication and must not be consumed here.
func (p *parser) peekPower() bool {
	return p.pos+1 < len(p.input) && p.input[p.pos] == '*' && p.input[p.pos+1] == '*'
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		if p.peekPower() {
			return left, nil
		}
		op := p.peek()
		if op != '*' && op != '/' && op != '%' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case '*':
			left *= right
		case '/':
			if right == 0 {
				return 0, errors.New("division by zero")
			}
			left /= right
		case '%':
			if right == 0 {
				return 0, errors.New("modulo by zero")
			}
			left = flooredMod(left, right)
		}
	}
}

// flooredMod keeps the divisor's sign: -7 % 3 is 2, 7 % -3 is -2.
func flooredMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func (p *parser) parseUnary() (float64, error) {
	p.skipSpaces()
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if !p.peekPower() {
		return base, nil
	}
	p.pos += 2
	// exponent re-enters unary so chains like 2 ** 3 ** 2 bind right to left
	exp, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

func (p *parser) parsePrimary() (float64, error) {
	p.skipSpaces()
	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, errors.New("unmatched parenthesis")
		}
		p.pos++
		return v, nil
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	seenDot := false
	for p.pos < len(p.input) {
		r := p.input[p.pos]
		if r >= '0' && r <= '9' {
			p.pos++
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, fmt.Errorf("invalid syntax at position %d", start)
	}
	v, err := strconv.ParseFloat(string(p.input[start:p.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q", string(p.input[start:p.pos]))
	}
	return v, nil
}
