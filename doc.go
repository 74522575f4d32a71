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
Package selectors compiles and evaluates JMS-style message-selector
expressions: the small SQL-92-flavored predicate language message brokers
use to route messages without deserializing their bodies.

# Basic usage

	expr, err := selectors.Compile(`type = 'order' AND (amount > 100 OR rush IS NOT NULL)`)
	if err != nil {
		log.Fatal(err)
	}
	env := selectors.NewMapEnvironment(map[string]interface{}{
		"type":   "order",
		"amount": 250,
	})
	if selectors.Evaluate(expr, env) {
		// route the message
	}

A compiled *Expression holds no reference to the text it came from and is
safe to evaluate concurrently from any number of goroutines; compile once,
evaluate many times per message.

# Three-valued logic

Selector evaluation uses SQL-style three-valued logic: a comparison against
a missing property is Unknown, not false, and Unknown propagates through
AND/OR/NOT by the usual SQL rules. A comparison between values of
incompatible types (a string and a number, say) is plain false. Evaluate collapses
this back to a plain bool for the common "does this message match" case;
EvaluateValue exposes the raw three-valued/typed result when a caller needs
to distinguish "selector says no" from "selector couldn't tell".

# Environments

Environment is the only extension point: Lookup(name) resolves an
identifier to a Value, returning UnknownValue() for anything the selector
shouldn't be able to see. MapEnvironment is a ready-made Environment over a
map[string]interface{}, coercing arbitrary Go values the way a decoded JSON
message body would hand them over.
*/
package selectors
