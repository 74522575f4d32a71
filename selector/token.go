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

import "strings"

// TokenType enumerates every lexical category the Lexer can produce.
type TokenType int

const (
	TokEOS TokenType = iota
	TokIdentifier
	TokString
	TokNumericExact
	TokNumericApprox

	TokLParen
	TokRParen
	TokComma

	TokPlus
	TokMinus
	TokMult
	TokDiv

	TokEqual
	TokNeq
	TokLess
	TokGreater
	TokLessEq
	TokGreaterEq

	TokAnd
	TokOr
	TokNot
	TokIs
	TokNull
	TokTrue
	TokFalse
	TokLike
	TokEscape
	TokBetween
	TokIn
)

// String names a TokenType for diagnostics and debug logging.
func (t TokenType) String() string {
	switch t {
	case TokEOS:
		return "EOS"
	case TokIdentifier:
		return "IDENTIFIER"
	case TokString:
		return "STRING"
	case TokNumericExact:
		return "NUMERIC_EXACT"
	case TokNumericApprox:
		return "NUMERIC_APPROX"
	case TokLParen:
		return "LPAREN"
	case TokRParen:
		return "RPAREN"
	case TokComma:
		return "COMMA"
	case TokPlus:
		return "PLUS"
	case TokMinus:
		return "MINUS"
	case TokMult:
		return "MULT"
	case TokDiv:
		return "DIV"
	case TokEqual:
		return "EQUAL"
	case TokNeq:
		return "NEQ"
	case TokLess:
		return "LESS"
	case TokGreater:
		return "GREATER"
	case TokLessEq:
		return "LESSEQ"
	case TokGreaterEq:
		return "GREATEREQ"
	case TokAnd:
		return "AND"
	case TokOr:
		return "OR"
	case TokNot:
		return "NOT"
	case TokIs:
		return "IS"
	case TokNull:
		return "NULL"
	case TokTrue:
		return "TRUE"
	case TokFalse:
		return "FALSE"
	case TokLike:
		return "LIKE"
	case TokEscape:
		return "ESCAPE"
	case TokBetween:
		return "BETWEEN"
	case TokIn:
		return "IN"
	default:
		return "?"
	}
}

// Token is a single lexical unit: its type and its literal source text
// (unescaped, for strings/identifiers).
type Token struct {
	Type TokenType
	Text string
}

var reservedWords = map[string]TokenType{
	"and":     TokAnd,
	"or":      TokOr,
	"not":     TokNot,
	"is":      TokIs,
	"null":    TokNull,
	"true":    TokTrue,
	"false":   TokFalse,
	"like":    TokLike,
	"escape":  TokEscape,
	"between": TokBetween,
	"in":      TokIn,
}

// reservedWord looks up an identifier's reserved-word token type,
// case-insensitively, as JMS selector keywords are.
func reservedWord(text string) (TokenType, bool) {
	tt, ok := reservedWords[strings.ToLower(text)]
	return tt, ok
}
