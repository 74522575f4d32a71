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
	"fmt"
	"strconv"
)

// Kind identifies which field of Value is meaningful.
type Kind int

const (
	KindUnknown Kind = iota
	KindBool
	KindExact
	KindInexact
	KindString
)

// Value is the tagged union every selector sub-expression evaluates to:
// the SQL NULL-equivalent Unknown, a bool, an exact (int64) number, an
// inexact (float64) number, or a string. There is no implicit conversion
// between String and the numeric kinds.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// UnknownValue is the selector equivalent of SQL NULL.
func UnknownValue() Value { return Value{kind: KindUnknown} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ExactValue wraps an int64.
func ExactValue(i int64) Value { return Value{kind: KindExact, i: i} }

// InexactValue wraps a float64.
func InexactValue(f float64) Value { return Value{kind: KindInexact, f: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// Kind reports which field of the Value is populated.
func (v Value) Kind() Kind { return v.kind }

// IsUnknown reports whether v is the Unknown value.
func (v Value) IsUnknown() bool { return v.kind == KindUnknown }

// IsNumeric reports whether v holds an Exact or Inexact number.
func (v Value) IsNumeric() bool { return v.kind == KindExact || v.kind == KindInexact }

// Bool returns the wrapped bool and whether v actually held one.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Exact returns the wrapped int64 and whether v actually held one.
func (v Value) Exact() (int64, bool) { return v.i, v.kind == KindExact }

// Inexact returns the wrapped float64 and whether v actually held one.
func (v Value) Inexact() (float64, bool) { return v.f, v.kind == KindInexact }

// StringVal returns the wrapped string and whether v actually held one.
func (v Value) StringVal() (string, bool) { return v.s, v.kind == KindString }

// String implements fmt.Stringer, rendering the value the way the original
// selector library's ostream operator does.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("BOOL:%t", v.b)
	case KindExact:
		return fmt.Sprintf("EXACT:%d", v.i)
	case KindInexact:
		return fmt.Sprintf("APPROX:%s", strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		return fmt.Sprintf("STRING:'%s'", v.s)
	default:
		return "UNKNOWN"
	}
}

// promote applies JMS numeric promotion: if both values are numeric and of
// different kinds, the Exact one is widened to Inexact. Returns ok=false if
// either value is not numeric, in which case the original values are
// returned unchanged and callers must not compare/combine them.
func promote(v1, v2 Value) (Value, Value, bool) {
	if !v1.IsNumeric() || !v2.IsNumeric() {
		return v1, v2, false
	}
	if v1.kind == v2.kind {
		return v1, v2, true
	}
	if v1.kind == KindInexact {
		v2 = InexactValue(float64(v2.i))
	} else {
		v1 = InexactValue(float64(v1.i))
	}
	return v1, v2, true
}

// equalValues implements JMS equality: numeric values are promoted then
// compared; any other kind mismatch (such as Bool vs a non-Bool, or String
// vs numeric) is simply false, never an error. Callers are responsible for checking Unknown beforehand.
func equalValues(v1, v2 Value) bool {
	v1, v2, _ = promote(v1, v2)
	if v1.kind != v2.kind {
		return false
	}
	switch v1.kind {
	case KindBool:
		return v1.b == v2.b
	case KindExact:
		return v1.i == v2.i
	case KindInexact:
		return v1.f == v2.f
	case KindString:
		return v1.s == v2.s
	default:
		return false
	}
}

// sameKind reports whether two values carry the same Kind, without
// promotion. Used by NOT IN to detect type-incompatible list elements.
func sameKind(v1, v2 Value) bool { return v1.kind == v2.kind }

// The four ordering predicates are defined only between two numeric values;
// promote's ok=false turns any other comparison into false rather than an
// error, matching the "ordering only defined between numerics" invariant.

func lessValues(v1, v2 Value) bool {
	v1, v2, ok := promote(v1, v2)
	if !ok {
		return false
	}
	if v1.kind == KindExact {
		return v1.i < v2.i
	}
	return v1.f < v2.f
}

func greaterValues(v1, v2 Value) bool {
	v1, v2, ok := promote(v1, v2)
	if !ok {
		return false
	}
	if v1.kind == KindExact {
		return v1.i > v2.i
	}
	return v1.f > v2.f
}

func lessEqValues(v1, v2 Value) bool {
	v1, v2, ok := promote(v1, v2)
	if !ok {
		return false
	}
	if v1.kind == KindExact {
		return v1.i <= v2.i
	}
	return v1.f <= v2.f
}

func greaterEqValues(v1, v2 Value) bool {
	v1, v2, ok := promote(v1, v2)
	if !ok {
		return false
	}
	if v1.kind == KindExact {
		return v1.i >= v2.i
	}
	return v1.f >= v2.f
}

// addValues, subValues and mulValues promote then combine; a non-numeric
// operand on either side yields Unknown rather than a fault.

func addValues(v1, v2 Value) Value {
	v1, v2, ok := promote(v1, v2)
	if !ok {
		return UnknownValue()
	}
	if v1.kind == KindExact {
		return ExactValue(v1.i + v2.i)
	}
	return InexactValue(v1.f + v2.f)
}

func subValues(v1, v2 Value) Value {
	v1, v2, ok := promote(v1, v2)
	if !ok {
		return UnknownValue()
	}
	if v1.kind == KindExact {
		return ExactValue(v1.i - v2.i)
	}
	return InexactValue(v1.f - v2.f)
}

func mulValues(v1, v2 Value) Value {
	v1, v2, ok := promote(v1, v2)
	if !ok {
		return UnknownValue()
	}
	if v1.kind == KindExact {
		return ExactValue(v1.i * v2.i)
	}
	return InexactValue(v1.f * v2.f)
}

// divValues promotes then divides. Integer division by zero produces
// Unknown rather than panicking; this is a deliberate deviation from the
// original C++ operator/, which leaves it as undefined behavior. Inexact
// division by zero follows ordinary IEEE-754 semantics (±Inf or NaN).
func divValues(v1, v2 Value) Value {
	v1, v2, ok := promote(v1, v2)
	if !ok {
		return UnknownValue()
	}
	if v1.kind == KindExact {
		if v2.i == 0 {
			return UnknownValue()
		}
		return ExactValue(v1.i / v2.i)
	}
	return InexactValue(v1.f / v2.f)
}

// negateValue implements unary minus; non-numeric operands yield Unknown.
func negateValue(v Value) Value {
	switch v.kind {
	case KindExact:
		return ExactValue(-v.i)
	case KindInexact:
		return InexactValue(-v.f)
	default:
		return UnknownValue()
	}
}

// BoolOrNone is SQL three-valued logic: True, False, or Unknown (NULL).
type BoolOrNone int

const (
	BNUnknown BoolOrNone = iota
	BNTrue
	BNFalse
)

// String renders the three-valued-logic tag used in diagnostics.
func (b BoolOrNone) String() string {
	switch b {
	case BNTrue:
		return "true"
	case BNFalse:
		return "false"
	default:
		return "unknown"
	}
}

func boolOrNoneFromBool(b bool) BoolOrNone {
	if b {
		return BNTrue
	}
	return BNFalse
}

func negateBoolOrNone(b BoolOrNone) BoolOrNone {
	switch b {
	case BNTrue:
		return BNFalse
	case BNFalse:
		return BNTrue
	default:
		return BNUnknown
	}
}
