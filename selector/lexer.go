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
	"strings"

	"github.com/astitcher/selectors/logger"
)

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isBinDigit(c byte) bool { return c == '0' || c == '1' }

func isOctDigit(c byte) bool { return c >= '0' && c <= '7' }

func isIdentifierStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' || c == '$'
}

func isIdentifierPart(c byte) bool {
	return isIdentifierStart(c) || isDigit(c) || c == '.'
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func finishTok(src string, start, end int, t TokenType) (Token, int, error) {
	return Token{Type: t, Text: src[start:end]}, end, nil
}

// scanToken recognizes a single token starting at pos, skipping leading
// whitespace first. It returns the token, the position immediately after
// it, and a *CompileError if pos cannot start any valid token.
//
// Punctuation and quoted literals are recognized with direct one- or
// two-character lookahead (mirroring the original tokeniser's START-state
// switch); identifiers and numeric literals are each recognized by their
// own explicit finite-state machine, since those are the categories with
// real branching lexical structure.
func scanToken(src string, pos int) (Token, int, error) {
	n := len(src)
	i := pos
	for i < n && isSpace(src[i]) {
		i++
	}
	if i >= n {
		return Token{Type: TokEOS, Text: "<END>"}, i, nil
	}

	start := i
	switch src[i] {
	case '(':
		return finishTok(src, start, i+1, TokLParen)
	case ')':
		return finishTok(src, start, i+1, TokRParen)
	case ',':
		return finishTok(src, start, i+1, TokComma)
	case '+':
		return finishTok(src, start, i+1, TokPlus)
	case '-':
		return finishTok(src, start, i+1, TokMinus)
	case '*':
		return finishTok(src, start, i+1, TokMult)
	case '/':
		return finishTok(src, start, i+1, TokDiv)
	case '=':
		return finishTok(src, start, i+1, TokEqual)
	case '<':
		j := i + 1
		switch {
		case j < n && src[j] == '>':
			return finishTok(src, start, j+1, TokNeq)
		case j < n && src[j] == '=':
			return finishTok(src, start, j+1, TokLessEq)
		default:
			return finishTok(src, start, j, TokLess)
		}
	case '>':
		j := i + 1
		if j < n && src[j] == '=' {
			return finishTok(src, start, j+1, TokGreaterEq)
		}
		return finishTok(src, start, j, TokGreater)
	case '\'':
		return scanQuoted(src, i, '\'', TokString)
	case '"':
		return scanQuoted(src, i, '"', TokIdentifier)
	}

	if isIdentifierStart(src[i]) {
		return scanIdentifier(src, i)
	}
	if src[i] == '0' {
		return scanNumber(src, i, true)
	}
	if isDigit(src[i]) {
		return scanNumber(src, i, false)
	}
	if src[i] == '.' && i+1 < n && isDigit(src[i+1]) {
		return scanDecimalPoint(src, i)
	}
	return Token{}, i, illegalCharError(Token{Text: src[start:minInt(i+1, n)]})
}

func scanQuoted(src string, pos int, quote byte, tt TokenType) (Token, int, error) {
	n := len(src)
	i := pos + 1
	var b strings.Builder
	for {
		j := strings.IndexByte(src[i:], quote)
		if j < 0 {
			return Token{}, pos, illegalCharError(Token{Text: src[pos:n]})
		}
		j += i
		b.WriteString(src[i:j])
		i = j + 1
		if i < n && src[i] == quote {
			b.WriteByte(quote)
			i++
			continue
		}
		break
	}
	return Token{Type: tt, Text: b.String()}, i, nil
}

func scanIdentifier(src string, pos int) (Token, int, error) {
	n := len(src)
	i := pos + 1
	for i < n && isIdentifierPart(src[i]) {
		i++
	}
	text := src[pos:i]
	tt := TokIdentifier
	if kw, ok := reservedWord(text); ok {
		tt = kw
	}
	return Token{Type: tt, Text: text}, i, nil
}

// scanNumber recognizes the full numeric-literal FSM: zero-prefixed
// radices (hex/binary/octal), plain decimal integers, decimal fractions
// and exponents, and the l/L and f/F/d/D suffixes that force exact or
// approximate classification.
func scanNumber(src string, pos int, leadingZero bool) (Token, int, error) {
	n := len(src)
	start := pos
	i := pos + 1

	if leadingZero {
		switch {
		case i < n && src[i] == '.':
			return scanDecimalBody(src, start, i+1)
		case i < n && (src[i] == 'x' || src[i] == 'X'):
			return scanHexBody(src, start, i+1)
		case i < n && (src[i] == 'b' || src[i] == 'B'):
			return scanBinBody(src, start, i+1)
		default:
			return scanOctalBody(src, start, i)
		}
	}

	for i < n {
		switch {
		case src[i] == 'l' || src[i] == 'L':
			return finishTok(src, start, i+1, TokNumericExact)
		case src[i] == 'f' || src[i] == 'F' || src[i] == 'd' || src[i] == 'D':
			return finishTok(src, start, i+1, TokNumericApprox)
		case isDigit(src[i]) || src[i] == '_':
			i++
		case src[i] == '.':
			return scanDecimalBody(src, start, i+1)
		case src[i] == 'e' || src[i] == 'E':
			return scanExponent(src, start, i+1)
		default:
			return finishTok(src, start, i, TokNumericExact)
		}
	}
	return finishTok(src, start, i, TokNumericExact)
}

func scanHexBody(src string, start, i int) (Token, int, error) {
	n := len(src)
	if i >= n || !isHexDigit(src[i]) {
		return Token{}, start, illegalCharError(Token{Text: src[start:minInt(i+1, n)]})
	}
	i++
	for i < n {
		switch {
		case src[i] == 'l' || src[i] == 'L':
			return finishTok(src, start, i+1, TokNumericExact)
		case isHexDigit(src[i]) || src[i] == '_':
			i++
		case src[i] == 'p' || src[i] == 'P':
			return scanExponent(src, start, i+1)
		default:
			return finishTok(src, start, i, TokNumericExact)
		}
	}
	return finishTok(src, start, i, TokNumericExact)
}

func scanBinBody(src string, start, i int) (Token, int, error) {
	n := len(src)
	if i >= n || !isBinDigit(src[i]) {
		return Token{}, start, illegalCharError(Token{Text: src[start:minInt(i+1, n)]})
	}
	i++
	for i < n {
		switch {
		case src[i] == 'l' || src[i] == 'L':
			return finishTok(src, start, i+1, TokNumericExact)
		case isBinDigit(src[i]) || src[i] == '_':
			i++
		default:
			return finishTok(src, start, i, TokNumericExact)
		}
	}
	return finishTok(src, start, i, TokNumericExact)
}

func scanOctalBody(src string, start, i int) (Token, int, error) {
	n := len(src)
	for i < n {
		switch {
		case src[i] == 'l' || src[i] == 'L':
			return finishTok(src, start, i+1, TokNumericExact)
		case isOctDigit(src[i]) || src[i] == '_':
			i++
		default:
			return finishTok(src, start, i, TokNumericExact)
		}
	}
	return finishTok(src, start, i, TokNumericExact)
}

func scanDecimalBody(src string, start, i int) (Token, int, error) {
	n := len(src)
	for i < n {
		switch {
		case isDigit(src[i]) || src[i] == '_':
			i++
		case src[i] == 'e' || src[i] == 'E':
			return scanExponent(src, start, i+1)
		case src[i] == 'f' || src[i] == 'F' || src[i] == 'd' || src[i] == 'D':
			return finishTok(src, start, i+1, TokNumericApprox)
		default:
			return finishTok(src, start, i, TokNumericApprox)
		}
	}
	return finishTok(src, start, i, TokNumericApprox)
}

// scanDecimalPoint handles a literal that starts with '.', which requires
// at least one digit after the point (unlike the digit-then-'.' path,
// which allows a bare trailing dot such as "123.").
func scanDecimalPoint(src string, pos int) (Token, int, error) {
	return scanDecimalBody(src, pos, pos+1)
}

// scanExponent is reached after consuming an 'e'/'E' (decimal exponent) or
// 'p'/'P' (hex-float exponent) marker. Both paths land here and both
// always yield an approximate token; this is the behavior traced from the
// original lexer's EXPONENT state, which classifies a hex-float's 'p'
// exponent identically to a decimal's 'e' exponent.
func scanExponent(src string, start, i int) (Token, int, error) {
	n := len(src)
	if i < n && (src[i] == '-' || src[i] == '+') {
		i++
	}
	if i >= n || !isDigit(src[i]) {
		return Token{}, start, illegalCharError(Token{Text: src[start:minInt(i+1, n)]})
	}
	i++
	for i < n && isDigit(src[i]) {
		i++
	}
	if i < n && (src[i] == 'f' || src[i] == 'F' || src[i] == 'd' || src[i] == 'D') {
		return finishTok(src, start, i+1, TokNumericApprox)
	}
	return finishTok(src, start, i, TokNumericApprox)
}

// Lexer wraps scanToken with a position cursor over a single source string.
type Lexer struct {
	src string
	pos int
}

// NewLexer creates a Lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{src: input}
}

// Next returns the next token, advancing the cursor, or an error if the
// remaining input cannot start a valid token.
func (lx *Lexer) Next() (Token, error) {
	tok, next, err := scanToken(lx.src, lx.pos)
	if err != nil {
		return Token{}, err
	}
	lx.pos = next
	return tok, nil
}

// Tokeniser is a rewindable cursor over a Lexer's token stream: the parser
// needs lookahead (e.g. to distinguish "IS NULL" from "IS NOT NULL", or to
// backtrack out of a comparison operator it didn't find), so every token
// the Lexer produces is cached here for the Tokeniser's lifetime.
type Tokeniser struct {
	lex    *Lexer
	tokens []Token
	pos    int // index into tokens of the next token Next() will return
	log    logger.Logger
}

// NewTokeniser creates a Tokeniser over input. A nil log is replaced with
// a discarding logger.
func NewTokeniser(input string, log logger.Logger) *Tokeniser {
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	return &Tokeniser{lex: NewLexer(input), log: log}
}

// Next returns the next token, from the buffer if a prior Rewind put it
// there, otherwise freshly lexed (and buffered). Next is idempotent at
// end-of-stream: repeated calls after EOS keep returning the EOS token
// rather than erroring.
func (tk *Tokeniser) Next() (Token, error) {
	if tk.pos < len(tk.tokens) {
		tok := tk.tokens[tk.pos]
		tk.pos++
		return tok, nil
	}
	tok, err := tk.lex.Next()
	if err != nil {
		return Token{}, err
	}
	tk.tokens = append(tk.tokens, tok)
	tk.pos++
	tk.log.Debug("token: %s %q", tok.Type, tok.Text)
	return tok, nil
}

// Rewind pushes the last n tokens returned by Next back onto the front of
// the stream, so the next n calls to Next return them again. n must not
// exceed the number of tokens already produced from the current position;
// violating that is a parser bug, not a caller-facing error, so Rewind
// panics rather than returning one.
func (tk *Tokeniser) Rewind(n int) {
	if n > tk.pos {
		panic("selector: Tokeniser.Rewind: rewound past the start of the stream")
	}
	tk.pos -= n
}
