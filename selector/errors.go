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
	"fmt"
)

// CauseCode classifies why a selector failed to compile.
type CauseCode int

const (
	CauseIllegalCharacter CauseCode = iota
	CauseUnexpectedToken
	CauseMissingToken
	CauseMalformedConstruct
	CauseNumericOverflow
	CauseInvalidEscape
	CauseTooDeep
)

// String names a CauseCode, for diagnostic log lines rather than for
// display to an end user.
func (c CauseCode) String() string {
	switch c {
	case CauseIllegalCharacter:
		return "illegal-character"
	case CauseUnexpectedToken:
		return "unexpected-token"
	case CauseMissingToken:
		return "missing-token"
	case CauseMalformedConstruct:
		return "malformed-construct"
	case CauseNumericOverflow:
		return "numeric-overflow"
	case CauseInvalidEscape:
		return "invalid-escape"
	case CauseTooDeep:
		return "too-deep"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per CauseCode, so callers can branch with errors.Is
// instead of matching on message text.
var (
	ErrIllegalCharacter   = errors.New("illegal character")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrMissingToken       = errors.New("missing token")
	ErrMalformedConstruct = errors.New("malformed construct")
	ErrNumericOverflow    = errors.New("numeric literal overflow")
	ErrInvalidEscape      = errors.New("invalid escape string")
	ErrTooDeep            = errors.New("expression nested too deeply")
)

var causeSentinel = map[CauseCode]error{
	CauseIllegalCharacter:   ErrIllegalCharacter,
	CauseUnexpectedToken:    ErrUnexpectedToken,
	CauseMissingToken:       ErrMissingToken,
	CauseMalformedConstruct: ErrMalformedConstruct,
	CauseNumericOverflow:    ErrNumericOverflow,
	CauseInvalidEscape:      ErrInvalidEscape,
	CauseTooDeep:            ErrTooDeep,
}

// CompileError is returned by Compile for any syntactically invalid
// selector text. Token holds the offending token's source text ("<END>"
// at end of input); Unwrap exposes a cause-specific sentinel for
// errors.Is/errors.As.
type CompileError struct {
	Cause CauseCode
	Token string
	Msg   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("selector: %s: %q", e.Msg, e.Token)
}

func (e *CompileError) Unwrap() error {
	return causeSentinel[e.Cause]
}

func illegalCharError(tok Token) error {
	return &CompileError{Cause: CauseIllegalCharacter, Token: tok.Text, Msg: "illegal character"}
}

func unexpectedTokenErr(tok Token, msg string) error {
	return &CompileError{Cause: CauseUnexpectedToken, Token: tok.Text, Msg: msg}
}

func missingTokenErr(tok Token, msg string) error {
	return &CompileError{Cause: CauseMissingToken, Token: tok.Text, Msg: msg}
}

func numericOverflowErr(tok Token) error {
	return &CompileError{Cause: CauseNumericOverflow, Token: tok.Text, Msg: "integer literal too big"}
}

func tooDeepErr() error {
	return &CompileError{Cause: CauseTooDeep, Token: "", Msg: "expression nested too deeply"}
}
