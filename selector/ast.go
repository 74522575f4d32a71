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

import "regexp"

// Environment is how a compiled Expression reads message properties. A
// caller implements Lookup to resolve an identifier to a Value; an unknown
// property name should return UnknownValue(), not an error, since a
// missing property is indistinguishable from SQL NULL.
type Environment interface {
	Lookup(name string) Value
}

// node is the internal Expression AST. Every node can be evaluated as a
// Value (eval) or as three-valued logic (evalBool); one of the two is
// always the node's "native" operation, and the other falls back to a
// default conversion (see defaultEval/defaultEvalBool) exactly as the
// selector library's ValueExpression/BoolExpression split does.
type node interface {
	eval(env Environment) Value
	evalBool(env Environment) BoolOrNone
	render() string
}

// Expression is an immutable, compiled selector. It holds no reference to
// the source text it was compiled from and is safe for concurrent
// evaluation from multiple goroutines.
type Expression struct {
	root node
}

// defaultEvalBool converts a value-producing node's eval result to
// three-valued logic: a Bool value maps to True/False, anything else
// (including Unknown) maps to Unknown.
func defaultEvalBool(n node, env Environment) BoolOrNone {
	v := n.eval(env)
	if b, ok := v.Bool(); ok {
		return boolOrNoneFromBool(b)
	}
	return BNUnknown
}

// defaultEval converts a boolean-producing node's evalBool result to a
// Value: True/False map to BoolValue, Unknown maps to UnknownValue.
func defaultEval(n node, env Environment) Value {
	switch n.evalBool(env) {
	case BNTrue:
		return BoolValue(true)
	case BNFalse:
		return BoolValue(false)
	default:
		return UnknownValue()
	}
}

// literalNode is a constant value: TRUE/FALSE, a string, or a numeric
// literal.
type literalNode struct {
	v Value
}

func (n *literalNode) eval(Environment) Value                 { return n.v }
func (n *literalNode) evalBool(env Environment) BoolOrNone     { return defaultEvalBool(n, env) }
func (n *literalNode) render() string                          { return n.v.String() }

// identifierNode looks a message property up in the Environment.
type identifierNode struct {
	name string
}

func (n *identifierNode) eval(env Environment) Value {
	if env == nil {
		return UnknownValue()
	}
	return env.Lookup(n.name)
}
func (n *identifierNode) evalBool(env Environment) BoolOrNone { return defaultEvalBool(n, env) }
func (n *identifierNode) render() string                       { return "I:" + n.name }

// ArithOp identifies an arithmetic operator.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
)

func (op ArithOp) symbol() string {
	switch op {
	case ArithAdd:
		return "+"
	case ArithSub:
		return "-"
	case ArithMul:
		return "*"
	case ArithDiv:
		return "/"
	default:
		return "?"
	}
}

type binaryArithNode struct {
	op   ArithOp
	l, r node
}

func (n *binaryArithNode) eval(env Environment) Value {
	l := n.l.eval(env)
	r := n.r.eval(env)
	switch n.op {
	case ArithAdd:
		return addValues(l, r)
	case ArithSub:
		return subValues(l, r)
	case ArithMul:
		return mulValues(l, r)
	case ArithDiv:
		return divValues(l, r)
	default:
		return UnknownValue()
	}
}
func (n *binaryArithNode) evalBool(env Environment) BoolOrNone { return defaultEvalBool(n, env) }
func (n *binaryArithNode) render() string {
	return "(" + n.l.render() + n.op.symbol() + n.r.render() + ")"
}

type unaryArithNode struct {
	x node
}

func (n *unaryArithNode) eval(env Environment) Value           { return negateValue(n.x.eval(env)) }
func (n *unaryArithNode) evalBool(env Environment) BoolOrNone   { return defaultEvalBool(n, env) }
func (n *unaryArithNode) render() string                        { return "-(" + n.x.render() + ")" }

// CompareOp identifies a comparison operator.
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNeq
	CmpLt
	CmpGt
	CmpLe
	CmpGe
)

func (op CompareOp) symbol() string {
	switch op {
	case CmpEq:
		return "="
	case CmpNeq:
		return "<>"
	case CmpLt:
		return "<"
	case CmpGt:
		return ">"
	case CmpLe:
		return "<="
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}

type compareNode struct {
	op   CompareOp
	l, r node
}

func (n *compareNode) evalBool(env Environment) BoolOrNone {
	v1 := n.l.eval(env)
	if v1.IsUnknown() {
		return BNUnknown
	}
	v2 := n.r.eval(env)
	if v2.IsUnknown() {
		return BNUnknown
	}
	switch n.op {
	case CmpEq:
		return boolOrNoneFromBool(equalValues(v1, v2))
	case CmpNeq:
		return boolOrNoneFromBool(!equalValues(v1, v2))
	case CmpLt:
		return boolOrNoneFromBool(lessValues(v1, v2))
	case CmpGt:
		return boolOrNoneFromBool(greaterValues(v1, v2))
	case CmpLe:
		return boolOrNoneFromBool(lessEqValues(v1, v2))
	case CmpGe:
		return boolOrNoneFromBool(greaterEqValues(v1, v2))
	default:
		return BNUnknown
	}
}
func (n *compareNode) eval(env Environment) Value { return defaultEval(n, env) }
func (n *compareNode) render() string {
	return "(" + n.l.render() + n.op.symbol() + n.r.render() + ")"
}

type andNode struct{ l, r node }

func (n *andNode) evalBool(env Environment) BoolOrNone {
	l := n.l.evalBool(env)
	if l == BNFalse {
		return BNFalse
	}
	r := n.r.evalBool(env)
	if r == BNFalse {
		return BNFalse
	}
	if l == BNTrue && r == BNTrue {
		return BNTrue
	}
	return BNUnknown
}
func (n *andNode) eval(env Environment) Value { return defaultEval(n, env) }
func (n *andNode) render() string              { return "(" + n.l.render() + " AND " + n.r.render() + ")" }

type orNode struct{ l, r node }

func (n *orNode) evalBool(env Environment) BoolOrNone {
	l := n.l.evalBool(env)
	if l == BNTrue {
		return BNTrue
	}
	r := n.r.evalBool(env)
	if r == BNTrue {
		return BNTrue
	}
	if l == BNFalse && r == BNFalse {
		return BNFalse
	}
	return BNUnknown
}
func (n *orNode) eval(env Environment) Value { return defaultEval(n, env) }
func (n *orNode) render() string              { return "(" + n.l.render() + " OR " + n.r.render() + ")" }

type notNode struct{ x node }

func (n *notNode) evalBool(env Environment) BoolOrNone { return negateBoolOrNone(n.x.evalBool(env)) }
func (n *notNode) eval(env Environment) Value           { return defaultEval(n, env) }
func (n *notNode) render() string                        { return "NOT(" + n.x.render() + ")" }

type isNullNode struct{ x node }

func (n *isNullNode) evalBool(env Environment) BoolOrNone {
	return boolOrNoneFromBool(n.x.eval(env).IsUnknown())
}
func (n *isNullNode) eval(env Environment) Value { return defaultEval(n, env) }
func (n *isNullNode) render() string               { return "IsNull(" + n.x.render() + ")" }

type isNotNullNode struct{ x node }

func (n *isNotNullNode) evalBool(env Environment) BoolOrNone {
	return boolOrNoneFromBool(!n.x.eval(env).IsUnknown())
}
func (n *isNotNullNode) eval(env Environment) Value { return defaultEval(n, env) }
func (n *isNotNullNode) render() string               { return "IsNonNull(" + n.x.render() + ")" }

// likeNode implements LIKE via a precompiled, fully anchored regexp
// translated from the SQL-style pattern at compile time (see
// translateLikePattern). A non-string subject evaluates to Unknown, never
// a match attempt.
type likeNode struct {
	x      node
	reText string
	re     *regexp.Regexp
}

func newLikeNode(x node, pattern, escape string) (*likeNode, error) {
	reText := translateLikePattern(pattern, escape)
	re, err := regexp.Compile(reText)
	if err != nil {
		return nil, &CompileError{Cause: CauseMalformedConstruct, Token: pattern, Msg: "invalid LIKE pattern: " + err.Error()}
	}
	return &likeNode{x: x, reText: reText, re: re}, nil
}

func (n *likeNode) evalBool(env Environment) BoolOrNone {
	v := n.x.eval(env)
	s, ok := v.StringVal()
	if !ok {
		return BNUnknown
	}
	return boolOrNoneFromBool(n.re.MatchString(s))
}
func (n *likeNode) eval(env Environment) Value { return defaultEval(n, env) }
func (n *likeNode) render() string {
	return n.x.render() + " REGEX_MATCH '" + n.reText + "'"
}

// betweenNode implements x BETWEEN lower AND upper as x >= lower AND
// x <= upper, except that any Unknown operand makes the whole thing
// Unknown rather than running the (false-on-non-numeric) comparisons.
type betweenNode struct {
	x, lower, upper node
}

func (n *betweenNode) evalBool(env Environment) BoolOrNone {
	vx := n.x.eval(env)
	vl := n.lower.eval(env)
	vu := n.upper.eval(env)
	if vx.IsUnknown() || vl.IsUnknown() || vu.IsUnknown() {
		return BNUnknown
	}
	return boolOrNoneFromBool(greaterEqValues(vx, vl) && lessEqValues(vx, vu))
}
func (n *betweenNode) eval(env Environment) Value { return defaultEval(n, env) }
func (n *betweenNode) render() string {
	return n.x.render() + " BETWEEN " + n.lower.render() + " AND " + n.upper.render()
}

// inNode implements x IN (list...): Unknown subject is Unknown; a match is
// immediately True; an Unknown list element is remembered (continuing to
// scan for an exact match) but otherwise ignored; no match and no Unknown
// element seen is False.
type inNode struct {
	x    node
	list []node
}

func (n *inNode) evalBool(env Environment) BoolOrNone {
	ve := n.x.eval(env)
	if ve.IsUnknown() {
		return BNUnknown
	}
	result := BNFalse
	for _, item := range n.list {
		vi := item.eval(env)
		if vi.IsUnknown() {
			result = BNUnknown
			continue
		}
		if equalValues(ve, vi) {
			return BNTrue
		}
	}
	return result
}
func (n *inNode) eval(env Environment) Value { return defaultEval(n, env) }
func (n *inNode) render() string              { return n.x.render() + " IN " + renderList(n.list) }

// notInNode implements x NOT IN (list...). This is not boolean negation of
// inNode: an element whose type is incompatible with x (neither an exact
// kind match nor both numeric) forces the result to False, but only if no
// Unknown element has already forced it to Unknown; a later Unknown
// element still overrides an earlier type-incompatible False.
type notInNode struct {
	x    node
	list []node
}

func (n *notInNode) evalBool(env Environment) BoolOrNone {
	ve := n.x.eval(env)
	if ve.IsUnknown() {
		return BNUnknown
	}
	result := BNTrue
	for _, item := range n.list {
		vi := item.eval(env)
		if vi.IsUnknown() {
			result = BNUnknown
			continue
		}
		if equalValues(ve, vi) {
			return BNFalse
		}
		if result != BNUnknown && !sameKind(ve, vi) && !(ve.IsNumeric() && vi.IsNumeric()) {
			result = BNFalse
		}
	}
	return result
}
func (n *notInNode) eval(env Environment) Value { return defaultEval(n, env) }
func (n *notInNode) render() string              { return n.x.render() + " NOT IN " + renderList(n.list) }

func renderList(list []node) string {
	s := "("
	for i, item := range list {
		if i > 0 {
			s += ", "
		}
		s += item.render()
	}
	return s + ")"
}
