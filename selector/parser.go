/*
 * Copyright 2025 The Selectors Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package selector

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/astitcher/selectors/logger"
)

// DefaultMaxDepth bounds how deeply parenthesized/OR/AND expressions may
// nest before Compile gives up with a CompileError instead of recursing
// further. Selector text arrives from untrusted message producers, so an
// unbounded recursive-descent parser is a stack-exhaustion risk.
const DefaultMaxDepth = 128

// ParseOptions configures Compile.
type ParseOptions struct {
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
	// Logger receives a DEBUG line per token lexed, when non-nil.
	Logger logger.Logger
}

func (o ParseOptions) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

type parser struct {
	tk       *Tokeniser
	depth    int
	maxDepth int
}

func newParser(tk *Tokeniser, opts ParseOptions) *parser {
	return &parser{tk: tk, maxDepth: opts.maxDepth()}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return tooDeepErr()
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// Compile lexes and parses text into an immutable *Expression. An empty
// (or all-whitespace) selector compiles to a literal TRUE, matching JMS's
// "no selector" semantics.
func Compile(text string, opts ParseOptions) (*Expression, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	tk := NewTokeniser(text, log)
	p := newParser(tk, opts)

	root, err := p.parseSelector()
	if err != nil {
		logCompileFailure(log, text, err)
		return nil, err
	}

	tok, err := tk.Next()
	if err != nil {
		logCompileFailure(log, text, err)
		return nil, err
	}
	if tok.Type != TokEOS {
		err := unexpectedTokenErr(tok, "extra input after selector")
		logCompileFailure(log, text, err)
		return nil, err
	}
	return &Expression{root: root}, nil
}

// logCompileFailure reports why text was rejected. CauseTooDeep is logged
// at Error: it usually means a producer is sending adversarial or broken
// selector text, not an ordinary typo. Every other cause is an ordinary
// syntax mistake, logged at Warn.
func logCompileFailure(log logger.Logger, text string, err error) {
	var ce *CompileError
	if !errors.As(err, &ce) {
		log.Warn("selector %q rejected: %v", text, err)
		return
	}
	if ce.Cause == CauseTooDeep {
		log.Error("selector %q rejected: %s (cause=%s)", text, ce.Msg, ce.Cause)
		return
	}
	log.Warn("selector %q rejected: %s (cause=%s, token=%q)", text, ce.Msg, ce.Cause, ce.Token)
}

func (p *parser) parseSelector() (node, error) {
	tok, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	if tok.Type == TokEOS {
		return &literalNode{v: BoolValue(true)}, nil
	}
	p.tk.Rewind(1)
	return p.parseOr()
}

func (p *parser) parseOr() (node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.tk.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type != TokOr {
			p.tk.Rewind(1)
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &orNode{l: left, r: right}
	}
}

func (p *parser) parseAnd() (node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.tk.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type != TokAnd {
			p.tk.Rewind(1)
			return left, nil
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &andNode{l: left, r: right}
	}
}

func (p *parser) parseComparison() (node, error) {
	tok, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	if tok.Type == TokNot {
		inner, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return &notNode{x: inner}, nil
	}
	p.tk.Rewind(1)

	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}

	tok, err = p.tk.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TokIs:
		return p.parseIsNull(left)
	case TokNot:
		return p.parseSpecialComparison(left, true)
	case TokBetween, TokLike, TokIn:
		p.tk.Rewind(1)
		return p.parseSpecialComparison(left, false)
	}
	p.tk.Rewind(1)

	tok, err = p.tk.Next()
	if err != nil {
		return nil, err
	}
	cop, ok := compareOpFor(tok.Type)
	if !ok {
		p.tk.Rewind(1)
		return left, nil
	}
	right, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return &compareNode{op: cop, l: left, r: right}, nil
}

func compareOpFor(tt TokenType) (CompareOp, bool) {
	switch tt {
	case TokEqual:
		return CmpEq, true
	case TokNeq:
		return CmpNeq, true
	case TokLess:
		return CmpLt, true
	case TokGreater:
		return CmpGt, true
	case TokLessEq:
		return CmpLe, true
	case TokGreaterEq:
		return CmpGe, true
	default:
		return 0, false
	}
}

func (p *parser) parseIsNull(left node) (node, error) {
	tok, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TokNull:
		return &isNullNode{x: left}, nil
	case TokNot:
		nullTok, err := p.tk.Next()
		if err != nil {
			return nil, err
		}
		if nullTok.Type != TokNull {
			return nil, missingTokenErr(nullTok, "expected NULL after IS NOT")
		}
		return &isNotNullNode{x: left}, nil
	default:
		return nil, unexpectedTokenErr(tok, "expected NULL or NOT NULL after IS")
	}
}

// parseSpecialComparison parses the tail of LIKE, BETWEEN or IN, having
// already consumed a leading NOT when negated is true.
func (p *parser) parseSpecialComparison(left node, negated bool) (node, error) {
	tok, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TokLike:
		return p.parseLike(left, negated)
	case TokBetween:
		return p.parseBetween(left, negated)
	case TokIn:
		return p.parseIn(left, negated)
	default:
		return nil, unexpectedTokenErr(tok, "expected LIKE, IN or BETWEEN")
	}
}

func (p *parser) parseLike(left node, negated bool) (node, error) {
	pat, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	if pat.Type != TokString {
		return nil, unexpectedTokenErr(pat, "expected string pattern after LIKE")
	}

	escape := ""
	esc, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	if esc.Type == TokEscape {
		escTok, err := p.tk.Next()
		if err != nil {
			return nil, err
		}
		if escTok.Type != TokString {
			return nil, unexpectedTokenErr(escTok, "expected string after ESCAPE")
		}
		if len(escTok.Text) != 1 {
			return nil, &CompileError{Cause: CauseInvalidEscape, Token: escTok.Text, Msg: "ESCAPE string must be exactly one character"}
		}
		if escTok.Text == "%" || escTok.Text == "_" {
			return nil, &CompileError{Cause: CauseInvalidEscape, Token: escTok.Text, Msg: "'%' and '_' are not allowed as ESCAPE characters"}
		}
		escape = escTok.Text
	} else {
		p.tk.Rewind(1)
	}

	like, err := newLikeNode(left, pat.Text, escape)
	if err != nil {
		return nil, err
	}
	if negated {
		return &notNode{x: like}, nil
	}
	return like, nil
}

func (p *parser) parseBetween(left node, negated bool) (node, error) {
	lower, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	andTok, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	if andTok.Type != TokAnd {
		return nil, missingTokenErr(andTok, "expected AND after BETWEEN lower bound")
	}
	upper, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	b := &betweenNode{x: left, lower: lower, upper: upper}
	if negated {
		return &notNode{x: b}, nil
	}
	return b, nil
}

func (p *parser) parseIn(left node, negated bool) (node, error) {
	lp, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	if lp.Type != TokLParen {
		return nil, missingTokenErr(lp, "expected '(' after IN")
	}

	var list []node
	for {
		item, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		list = append(list, item)

		comma, err := p.tk.Next()
		if err != nil {
			return nil, err
		}
		if comma.Type != TokComma {
			p.tk.Rewind(1)
			break
		}
	}

	rp, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	if rp.Type != TokRParen {
		return nil, missingTokenErr(rp, "expected ',' or ')' in IN list")
	}

	if negated {
		return &notInNode{x: left, list: list}, nil
	}
	return &inNode{x: left, list: list}, nil
}

func (p *parser) parseAdd() (node, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.tk.Next()
		if err != nil {
			return nil, err
		}
		var op ArithOp
		switch tok.Type {
		case TokPlus:
			op = ArithAdd
		case TokMinus:
			op = ArithSub
		default:
			p.tk.Rewind(1)
			return left, nil
		}
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &binaryArithNode{op: op, l: left, r: right}
	}
}

func (p *parser) parseMul() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.tk.Next()
		if err != nil {
			return nil, err
		}
		var op ArithOp
		switch tok.Type {
		case TokMult:
			op = ArithMul
		case TokDiv:
			op = ArithDiv
		default:
			p.tk.Rewind(1)
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryArithNode{op: op, l: left, r: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	tok, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TokLParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		p.leave()
		if err != nil {
			return nil, err
		}
		rp, err := p.tk.Next()
		if err != nil {
			return nil, err
		}
		if rp.Type != TokRParen {
			return nil, missingTokenErr(rp, "expected ')'")
		}
		return inner, nil
	case TokPlus:
		return p.parseUnary()
	case TokMinus:
		// A numeric literal directly after unary minus is a special case
		// (see parseExactNumeric) so that -9223372036854775808 parses as
		// i64::MIN instead of overflowing +9223372036854775808 first.
		numTok, err := p.tk.Next()
		if err != nil {
			return nil, err
		}
		if numTok.Type == TokNumericExact {
			return parseExactNumeric(numTok, true)
		}
		p.tk.Rewind(1)
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryArithNode{x: inner}, nil
	default:
		p.tk.Rewind(1)
		return p.parsePrimary()
	}
}

func (p *parser) parsePrimary() (node, error) {
	tok, err := p.tk.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TokIdentifier:
		return &identifierNode{name: tok.Text}, nil
	case TokString:
		return &literalNode{v: StringValue(tok.Text)}, nil
	case TokTrue:
		return &literalNode{v: BoolValue(true)}, nil
	case TokFalse:
		return &literalNode{v: BoolValue(false)}, nil
	case TokNumericExact:
		return parseExactNumeric(tok, false)
	case TokNumericApprox:
		return parseApproxNumeric(tok)
	default:
		return nil, unexpectedTokenErr(tok, "expected a value, identifier or '('")
	}
}

func stripUnderscores(s string) string {
	if !strings.ContainsRune(s, '_') {
		return s
	}
	return strings.ReplaceAll(s, "_", "")
}

// parseExactNumeric converts a TokNumericExact token's text to a Literal.
// The base is decided from the token's own prefix (0x/0X -> 16, 0b/0B -> 2,
// a bare leading zero -> 8, else 10) before any prefix is stripped, which
// avoids a latent bug in the original parser where re-checking for a
// leading zero against the post-prefix remainder could misclassify a hex
// literal like 0x0A as octal.
//
// negate is true only for the unary-minus-immediately-before-a-literal
// grammar special case; it exists so "-9223372036854775808" can produce
// i64::MIN, which has no positive int64 representation to negate from.
func parseExactNumeric(tok Token, negate bool) (node, error) {
	s := stripUnderscores(tok.Text)
	base := 10
	switch {
	case len(s) > 1 && (s[1] == 'x' || s[1] == 'X'):
		base = 16
		s = s[2:]
	case len(s) > 1 && (s[1] == 'b' || s[1] == 'B'):
		base = 2
		s = s[2:]
	case len(s) > 1 && s[0] == '0':
		base = 8
	}
	if n := len(s); n > 0 && (s[n-1] == 'l' || s[n-1] == 'L') {
		s = s[:n-1]
	}

	value, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return nil, numericOverflowErr(tok)
	}

	if negate {
		if value <= math.MaxInt64 {
			return &literalNode{v: ExactValue(-int64(value))}, nil
		}
		if value == uint64(math.MaxInt64)+1 {
			return &literalNode{v: ExactValue(math.MinInt64)}, nil
		}
		return nil, numericOverflowErr(tok)
	}

	if base == 10 && value > math.MaxInt64 {
		return nil, numericOverflowErr(tok)
	}
	// Bases 2/8/16 accept the full 64-bit range and reinterpret it as
	// signed two's complement, exactly what this conversion does.
	return &literalNode{v: ExactValue(int64(value))}, nil
}

// parseApproxNumeric converts a TokNumericApprox token's text to a
// Literal. strconv.ParseFloat natively accepts both ordinary decimal
// float syntax and the hex-mantissa/p-exponent syntax the lexer also
// classifies as approximate, so no special-casing is needed here.
func parseApproxNumeric(tok Token) (node, error) {
	s := stripUnderscores(tok.Text)
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'f', 'F', 'd', 'D':
			s = s[:n-1]
		}
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &CompileError{Cause: CauseNumericOverflow, Token: tok.Text, Msg: "floating literal overflow"}
	}
	return &literalNode{v: InexactValue(value)}, nil
}
