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

// Package selector implements the core of a JMS-style message-selector
// expression engine: a hand-written lexer, a recursive-descent parser and a
// tree-walking three-valued-logic evaluator.
//
// A selector is compiled once into an immutable *Expression and then
// evaluated repeatedly against caller-supplied Environments:
//
//	expr, err := selector.Compile(`type = 'order' AND amount > 100`, selector.ParseOptions{})
//	if err != nil {
//	    // err is a *CompileError
//	}
//	ok := selector.Evaluate(expr, env)
//
// Three-valued logic
//
// Every comparison and boolean operator can produce Unknown in addition to
// true/false, following SQL NULL-propagation rules: a selector evaluates to
// true only when the top-level boolean expression evaluates to true; any
// Unknown result routes the message away, same as false.
//
// Operator precedence (highest to lowest): unary +/-, * and /, binary +/-,
// comparisons (=, <>, <, >, <=, >=, LIKE, BETWEEN, IN, IS NULL), NOT, AND, OR.
//
// Grammar
//
// The concrete grammar mirrors the informal JMS selector syntax:
//
//	selector      ::= orExpr | <empty>
//	orExpr        ::= andExpr ( "OR" andExpr )*
//	andExpr       ::= comparison ( "AND" comparison )*
//	comparison    ::= "NOT" comparison
//	              | addExpr [ comparisonTail ]
//	comparisonTail::= ( "=" | "<>" | "<" | ">" | "<=" | ">=" ) addExpr
//	              | [ "NOT" ] "LIKE" string [ "ESCAPE" string ]
//	              | [ "NOT" ] "BETWEEN" addExpr "AND" addExpr
//	              | [ "NOT" ] "IN" "(" addExpr ( "," addExpr )* ")"
//	              | "IS" [ "NOT" ] "NULL"
//	addExpr       ::= mulExpr ( ( "+" | "-" ) mulExpr )*
//	mulExpr       ::= unary ( ( "*" | "/" ) unary )*
//	unary         ::= "(" orExpr ")" | "+" unary | "-" unary | primary
//	primary       ::= identifier | string | TRUE | FALSE | exactNumeric | approxNumeric
//
// Performance considerations
//
// Compile does the work once: lexing, parsing and LIKE-pattern-to-regexp
// translation. The resulting *Expression holds no reference to the source
// text and is safe to evaluate concurrently from multiple goroutines, since
// evaluation never mutates the tree (see Environment).
package selector
