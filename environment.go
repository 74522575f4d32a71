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
	"github.com/astitcher/selectors/utils/cast"
)

// MapEnvironment is a reference Environment backed by a plain
// map[string]interface{}, the shape a decoded JSON message body or a set
// of broker headers typically arrives in. Values are coerced to
// selector.Value lazily, on each Lookup, via utils/cast; a missing key or a
// value cast cannot make sense of both resolve to UnknownValue().
type MapEnvironment struct {
	data map[string]interface{}
}

// NewMapEnvironment wraps data as an Environment. data is not copied:
// Lookup reads it and Set writes into it. The caller must not mutate it
// concurrently with evaluation.
func NewMapEnvironment(data map[string]interface{}) *MapEnvironment {
	return &MapEnvironment{data: data}
}

// Lookup implements selector.Environment.
func (e *MapEnvironment) Lookup(name string) Value {
	if e == nil || e.data == nil {
		return UnknownValue()
	}
	v, ok := e.data[name]
	if !ok {
		return UnknownValue()
	}
	return cast.ToValue(v)
}

// Set stores a property, overwriting any previous value. Convenience for
// callers building up an environment incrementally (e.g. one property at a
// time as a message is parsed) instead of constructing the whole map
// up front.
func (e *MapEnvironment) Set(name string, value interface{}) {
	if e.data == nil {
		e.data = make(map[string]interface{})
	}
	e.data[name] = value
}
