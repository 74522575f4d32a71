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

package selectors

import (
	"github.com/astitcher/selectors/logger"
	"github.com/astitcher/selectors/selector"
)

// Value, BoolOrNone, Environment, Expression and CompileError are re-exported
// from the selector package so callers of this facade never need to import
// selector directly.
type (
	Value        = selector.Value
	BoolOrNone   = selector.BoolOrNone
	Environment  = selector.Environment
	Expression   = selector.Expression
	CompileError = selector.CompileError
)

// Re-exported Value constructors and cause codes, for callers building a
// custom Environment.
const (
	CauseIllegalCharacter   = selector.CauseIllegalCharacter
	CauseUnexpectedToken    = selector.CauseUnexpectedToken
	CauseMissingToken       = selector.CauseMissingToken
	CauseMalformedConstruct = selector.CauseMalformedConstruct
	CauseNumericOverflow    = selector.CauseNumericOverflow
	CauseInvalidEscape      = selector.CauseInvalidEscape
	CauseTooDeep            = selector.CauseTooDeep
)

var (
	UnknownValue  = selector.UnknownValue
	BoolValue     = selector.BoolValue
	ExactValue    = selector.ExactValue
	InexactValue  = selector.InexactValue
	StringValue   = selector.StringValue
)

// Option configures Compile. Go's functional-options convention is used
// here rather than a bare struct literal, so new knobs can be added later
// without breaking existing callers.
type Option func(*selector.ParseOptions)

// WithMaxDepth overrides the default recursion-depth guard (128). Selector
// text arrives from untrusted message producers; lower this for
// defense-in-depth in a multi-tenant broker, or raise it for selectors
// generated by trusted tooling that legitimately nest deeper.
func WithMaxDepth(n int) Option {
	return func(o *selector.ParseOptions) { o.MaxDepth = n }
}

// WithLogger attaches a logger.Logger that receives a DEBUG line per token
// lexed during Compile, plus a WARN or ERROR line if Compile ends up
// rejecting the text. Defaults to a discarding logger.
func WithLogger(log logger.Logger) Option {
	return func(o *selector.ParseOptions) { o.Logger = log }
}

// Compile parses text into a reusable, concurrency-safe *Expression. An
// empty selector compiles successfully and always evaluates to true, per
// JMS's "no selector" convention.
func Compile(text string, opts ...Option) (*Expression, error) {
	var o selector.ParseOptions
	for _, opt := range opts {
		opt(&o)
	}
	return selector.Compile(text, o)
}

// Evaluate reports whether expr selects the message described by env: true
// only if the selector's top-level result is definitely true. This never
// fails; a missing property surfaces as Unknown and a comparison between
// incompatible types as false, and Evaluate treats both as non-matching.
func Evaluate(expr *Expression, env Environment) bool {
	return selector.Evaluate(expr, env)
}

// EvaluateValue returns the raw three-valued/typed Value expr produces
// against env, without collapsing it to a bool.
func EvaluateValue(expr *Expression, env Environment) Value {
	return selector.EvaluateValue(expr, env)
}

// Render produces a canonical textual form of expr, useful for logging or
// for verifying two compiled selectors are structurally identical.
func Render(expr *Expression) string {
	return selector.Render(expr)
}
