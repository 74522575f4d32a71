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

/*
Package condition adapts a compiled selector expression to a narrow
Condition interface, for callers already wired to an "evaluate this
boolean condition against an env" shape rather than the selectors package's
own Compile/Evaluate pair.

# Condition interface

	type Condition interface {
		Evaluate(env interface{}) bool
	}

# Usage

	cond, err := condition.NewSelectorCondition("age >= 18 AND status = 'active'")
	if err != nil {
		log.Fatal(err)
	}

	data := map[string]interface{}{
		"age":    25,
		"status": "active",
	}

	result := cond.Evaluate(data) // true

LIKE pattern matching and NULL checking are native selector-language
operators rather than custom functions:

	cond, _ := condition.NewSelectorCondition("name LIKE 'John%'")
	cond, _ = condition.NewSelectorCondition("email IS NOT NULL")

Evaluate accepts either a map[string]interface{} (wrapped in a
selectors.MapEnvironment automatically) or a caller-provided
selectors.Environment directly, for callers that need coercion rules a
plain map can't express.
*/
package condition
