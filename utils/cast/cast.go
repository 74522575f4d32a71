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

// Package cast coerces arbitrary Go values (as they come out of a
// map[string]interface{}, a decoded JSON document, or similar) into the
// selector package's Value kinds. A value that cannot be coerced becomes
// selector.UnknownValue() rather than causing a panic, since a
// caller-supplied message property is untrusted input, not a programming
// invariant.
package cast

import (
	"github.com/spf13/cast"

	"github.com/astitcher/selectors/selector"
)

// ToValue picks the selector.Value kind that best matches v's Go type and
// coerces it. nil becomes selector.UnknownValue(); bools, strings, every
// integer/unsigned-integer width, and float32/float64 map to Bool/String/
// Exact/Inexact respectively, decided by a type switch so an integer-typed
// property is never silently widened to Inexact and a float-typed one is
// never truncated into Exact. []byte is treated as a string, since that is
// how most message transports hand over text properties. Anything else
// (json.Number and similar numeric-ish wrapper types) is tried against
// cast's int64, float64, bool and string coercions in that order; the first
// that succeeds decides the kind, and a value none of them accept becomes
// Unknown.
func ToValue(v interface{}) selector.Value {
	if v == nil {
		return selector.UnknownValue()
	}
	switch t := v.(type) {
	case bool:
		return selector.BoolValue(t)
	case string:
		return selector.StringValue(t)
	case []byte:
		return selector.StringValue(string(t))
	case float32:
		return selector.InexactValue(float64(t))
	case float64:
		return selector.InexactValue(t)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if i, err := cast.ToInt64E(t); err == nil {
			return selector.ExactValue(i)
		}
	}

	if i, err := cast.ToInt64E(v); err == nil {
		return selector.ExactValue(i)
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return selector.InexactValue(f)
	}
	if b, err := cast.ToBoolE(v); err == nil {
		return selector.BoolValue(b)
	}
	if s, err := cast.ToStringE(v); err == nil {
		return selector.StringValue(s)
	}
	return selector.UnknownValue()
}
