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

// Evaluate walks expr against env and reports whether it selects the
// message: true only if the top-level boolean result is True. Unknown and
// False both mean "does not match". Evaluate never fails: a caller error
// (missing property, type mismatch) surfaces as Unknown, not a panic or
// an error return.
func Evaluate(expr *Expression, env Environment) bool {
	return expr.root.evalBool(env) == BNTrue
}

// EvaluateValue walks expr against env and returns the raw Value the
// expression produced, without collapsing it to a bool. Useful for
// debugging a selector or inspecting why it didn't match.
func EvaluateValue(expr *Expression, env Environment) Value {
	return expr.root.eval(env)
}

// Render produces a canonical, fully parenthesized textual form of expr.
// It is not guaranteed to round-trip to the same source text (e.g.
// identifiers render with an "I:" prefix, numeric literals render in
// their canonical tag:value form) but two expressions with the same
// Render output are structurally identical.
func Render(expr *Expression) string {
	return expr.root.render()
}
