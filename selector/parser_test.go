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
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/astitcher/selectors/logger"
)

// testEnv is a minimal Environment over a plain map, used throughout the
// parser/evaluator tests. A missing key resolves to UnknownValue, matching
// how an absent message property should behave.
type testEnv map[string]Value

func (e testEnv) Lookup(name string) Value {
	if v, ok := e[name]; ok {
		return v
	}
	return UnknownValue()
}

func mustCompile(t *testing.T, text string) *Expression {
	t.Helper()
	expr, err := Compile(text, ParseOptions{})
	if err != nil {
		t.Fatalf("Compile(%q): unexpected error: %v", text, err)
	}
	return expr
}

func TestEmptySelectorIsAlwaysTrue(t *testing.T) {
	expr := mustCompile(t, "")
	if !Evaluate(expr, nil) {
		t.Errorf("an empty selector should evaluate to true")
	}
	expr = mustCompile(t, "   ")
	if !Evaluate(expr, testEnv{}) {
		t.Errorf("a whitespace-only selector should evaluate to true")
	}
}

// Tests the mandated end-to-end scenario: A='foo' equality match.
func TestScenarioSimpleEquality(t *testing.T) {
	expr := mustCompile(t, `A='foo'`)
	if !Evaluate(expr, testEnv{"A": StringValue("foo")}) {
		t.Errorf(`A='foo' with A="foo" should match`)
	}
	if Evaluate(expr, testEnv{"A": StringValue("bar")}) {
		t.Errorf(`A='foo' with A="bar" should not match`)
	}
	if Evaluate(expr, testEnv{}) {
		t.Errorf(`A='foo' with A absent should not match`)
	}
}

// Tests the mandated end-to-end scenario: A IS NULL OR A='' matches both a
// missing property and (if it were present) an empty string.
func TestScenarioIsNullOrEmpty(t *testing.T) {
	expr := mustCompile(t, `A IS NULL OR A=''`)
	if Evaluate(expr, testEnv{"A": StringValue("x")}) {
		t.Errorf(`with A="x" should not match`)
	}
	if !Evaluate(expr, testEnv{}) {
		t.Errorf(`with A absent should match`)
	}
}

// Tests the mandated end-to-end scenario: (A BETWEEN 10 AND C) IS NULL,
// where the upper bound C is absent.
func TestScenarioBetweenWithMissingBoundIsNull(t *testing.T) {
	expr := mustCompile(t, `(A BETWEEN 10 AND C) IS NULL`)
	if !Evaluate(expr, testEnv{"A": ExactValue(15)}) {
		t.Errorf(`BETWEEN with a missing bound should make the whole thing Unknown, so IS NULL should match`)
	}
}

// Tests the mandated end-to-end scenario: LIKE with an ESCAPE character
// covering every regex-special character in both the pattern and the
// matched text.
func TestScenarioLikeEscapeEverySpecialCharacter(t *testing.T) {
	text := `{}[]<>,.!"$%^&*()_-+=?/|\`
	pattern := `{}[]<>,.!"$z%^&*()z_-+=?/|\`
	sel := "'" + strings.ReplaceAll(text, "'", "''") + `' LIKE '` + strings.ReplaceAll(pattern, "'", "''") + `' escape 'z'`
	expr := mustCompile(t, sel)
	if !Evaluate(expr, testEnv{}) {
		t.Errorf("escaped LIKE pattern over every special character should match, selector=%s", sel)
	}
}

// Tests the mandated end-to-end scenario: integer division truncates, and
// float division by zero is +Inf, never equal to an exact zero.
func TestScenarioDivision(t *testing.T) {
	expr := mustCompile(t, `17/4=4`)
	if !Evaluate(expr, testEnv{}) {
		t.Errorf("17/4=4 should be true (integer division truncates)")
	}

	expr = mustCompile(t, `A/0=0`)
	if Evaluate(expr, testEnv{"A": InexactValue(42.0)}) {
		t.Errorf("42.0/0=0 should be false: float division by zero is +Inf, not 0")
	}
}

// Tests the mandated end-to-end scenario: IN with a mixed-type list and an
// arithmetic element.
func TestScenarioIn(t *testing.T) {
	expr := mustCompile(t, `-16 IN ('hello','there',1,true,(1-17))`)
	if !Evaluate(expr, testEnv{}) {
		t.Errorf("-16 should be found via the arithmetic element (1-17)")
	}

	expr = mustCompile(t, `1 IN ('hello','there','polly')`)
	if Evaluate(expr, testEnv{}) {
		t.Errorf("1 IN a list of strings should not match (no Unknown element to cause ambiguity)")
	}
}

// Tests the mandated end-to-end scenario: a hex integer boundary literal,
// reinterpreted as signed two's complement.
func TestScenarioHexIntegerBoundary(t *testing.T) {
	expr := mustCompile(t, `0x8000_0000_0000_0001 = -9223372036854775807`)
	if !Evaluate(expr, testEnv{}) {
		t.Errorf("0x8000_0000_0000_0001 should equal -9223372036854775807")
	}
}

func TestIntegerBoundaryNegationAndOverflow(t *testing.T) {
	expr := mustCompile(t, `A = -9223372036854775808`)
	if !Evaluate(expr, testEnv{"A": ExactValue(math.MinInt64)}) {
		t.Errorf("-9223372036854775808 should parse to int64 MIN")
	}

	if _, err := Compile(`A = 9223372036854775808`, ParseOptions{}); err == nil {
		t.Errorf("a decimal literal one past int64 MAX with no minus sign should overflow")
	}

	expr = mustCompile(t, `A = 0x8000_0000_0000_0000`)
	if !Evaluate(expr, testEnv{"A": ExactValue(math.MinInt64)}) {
		t.Errorf("0x8000_0000_0000_0000 should reinterpret to int64 MIN")
	}
}

func TestThreeValuedLogicConsistency(t *testing.T) {
	// Tests AND/OR/NOT three-valued Unknown-propagation, exercised directly
	// through identifiers that are deliberately absent.
	tests := []struct {
		sel  string
		env  testEnv
		want BoolOrNone
	}{
		{"A AND B", testEnv{"A": BoolValue(false)}, BNFalse},       // false AND unknown -> false
		{"A AND B", testEnv{"A": BoolValue(true)}, BNUnknown},      // true AND unknown -> unknown
		{"A OR B", testEnv{"A": BoolValue(true)}, BNTrue},          // true OR unknown -> true
		{"A OR B", testEnv{"A": BoolValue(false)}, BNUnknown},      // false OR unknown -> unknown
		{"NOT A", testEnv{}, BNUnknown},                            // NOT unknown -> unknown
	}
	for _, tt := range tests {
		expr := mustCompile(t, tt.sel)
		got := EvaluateValue(expr, tt.env)
		want := BoolValue(tt.want == BNTrue)
		if tt.want == BNUnknown {
			if !got.IsUnknown() {
				t.Errorf("%q with %v: got %v, want Unknown", tt.sel, tt.env, got)
			}
			continue
		}
		if !equalValues(got, want) {
			t.Errorf("%q with %v: got %v, want %v", tt.sel, tt.env, got, want)
		}
	}
}

func TestRecursionDepthGuard(t *testing.T) {
	// A deeply left-nested parenthesized expression should trip the
	// recursion-depth guard rather than overflow the Go call stack.
	sel := strings.Repeat("(", 1000) + "A=1" + strings.Repeat(")", 1000)
	_, err := Compile(sel, ParseOptions{MaxDepth: 10})
	if err == nil {
		t.Fatalf("expected a CompileError for a selector nested far past MaxDepth")
	}
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Cause != CauseTooDeep {
		t.Errorf("expected CauseTooDeep, got %v", err)
	}
}

func TestIsNotNullMissingNullIsCompileError(t *testing.T) {
	_, err := Compile(`A IS NOT`, ParseOptions{})
	if err == nil {
		t.Fatalf("expected a CompileError for 'IS NOT' without a trailing NULL")
	}
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Cause != CauseMissingToken {
		t.Errorf("expected CauseMissingToken, got %v", err)
	}
}

func TestNotInDiffersFromNegatedIn(t *testing.T) {
	// A type-incompatible element forces NOT IN to False, which makes NOT IN
	// distinct from NOT(x IN (...)); it does so only if no Unknown element
	// has already forced the result to Unknown, and a later Unknown element
	// still overrides an earlier type-incompatible element.
	expr := mustCompile(t, `A NOT IN (true, B)`)
	// A=1 (exact): true is type-incompatible -> candidate False; B is
	// Unknown (missing) -> overrides to Unknown.
	got := EvaluateValue(expr, testEnv{"A": ExactValue(1)})
	if !got.IsUnknown() {
		t.Errorf("NOT IN: a later Unknown element should override an earlier type-incompatible one, got %v", got)
	}
	// With no Unknown element: 1 NOT IN (true) is False, NOT(1 IN (true)) is True.
	notIn := EvaluateValue(mustCompile(t, `A NOT IN (true)`), testEnv{"A": ExactValue(1)})
	negIn := EvaluateValue(mustCompile(t, `NOT (A IN (true))`), testEnv{"A": ExactValue(1)})
	if !equalValues(notIn, BoolValue(false)) || !equalValues(negIn, BoolValue(true)) {
		t.Errorf("NOT IN vs NOT(IN) with a type-incompatible element: got %v and %v, want false and true", notIn, negIn)
	}
}

func TestCompileFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(logger.WARN, &buf)

	if _, err := Compile(`A IS NOT`, ParseOptions{Logger: log}); err == nil {
		t.Fatalf("expected a CompileError")
	}
	if !strings.Contains(buf.String(), "[WARN]") || !strings.Contains(buf.String(), "missing-token") {
		t.Errorf("expected an ordinary syntax error to be logged at WARN with its cause, got: %s", buf.String())
	}

	buf.Reset()
	log.SetLevel(logger.ERROR)
	sel := strings.Repeat("(", 1000) + "A=1" + strings.Repeat(")", 1000)
	if _, err := Compile(sel, ParseOptions{Logger: log, MaxDepth: 10}); err == nil {
		t.Fatalf("expected a CompileError")
	}
	if !strings.Contains(buf.String(), "[ERROR]") || !strings.Contains(buf.String(), "too-deep") {
		t.Errorf("expected a too-deep selector to be logged at ERROR, got: %s", buf.String())
	}
}

func TestExtraInputAfterSelectorIsCompileError(t *testing.T) {
	_, err := Compile(`A=1 B=2`, ParseOptions{})
	if err == nil {
		t.Fatalf("expected a CompileError for trailing input after a complete selector")
	}
}

func TestParenthesizedExpression(t *testing.T) {
	expr := mustCompile(t, `(A+1)*2=10`)
	if !Evaluate(expr, testEnv{"A": ExactValue(4)}) {
		t.Errorf("(4+1)*2 should equal 10")
	}
}

func TestNotBetweenIsNegation(t *testing.T) {
	expr := mustCompile(t, `A NOT BETWEEN 1 AND 10`)
	if Evaluate(expr, testEnv{"A": ExactValue(5)}) {
		t.Errorf("5 NOT BETWEEN 1 AND 10 should be false")
	}
	if !Evaluate(expr, testEnv{"A": ExactValue(20)}) {
		t.Errorf("20 NOT BETWEEN 1 AND 10 should be true")
	}
}

func TestNotLikeIsNegation(t *testing.T) {
	expr := mustCompile(t, `A NOT LIKE 'foo%'`)
	if Evaluate(expr, testEnv{"A": StringValue("foobar")}) {
		t.Errorf("'foobar' NOT LIKE 'foo%%' should be false")
	}
	if !Evaluate(expr, testEnv{"A": StringValue("barfoo")}) {
		t.Errorf("'barfoo' NOT LIKE 'foo%%' should be true")
	}
}

func TestRenderRoundTripStructuralEquality(t *testing.T) {
	e1 := mustCompile(t, `A = 1 AND B > 2`)
	e2 := mustCompile(t, `A=1 AND B>2`)
	if Render(e1) != Render(e2) {
		t.Errorf("structurally identical selectors should render identically: %q vs %q", Render(e1), Render(e2))
	}
}
