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
	"errors"
	"testing"
)

func TestCompileErrorUnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		sel  string
		want error
	}{
		{"A = @", ErrIllegalCharacter},
		{"A =", ErrUnexpectedToken},
		{"A BETWEEN 1", ErrMissingToken},
		{"A LIKE 'x' escape '%'", ErrInvalidEscape},
	}
	for _, tt := range tests {
		_, err := Compile(tt.sel, ParseOptions{})
		if err == nil {
			t.Fatalf("%q: expected a CompileError", tt.sel)
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%q: error %v does not wrap %v", tt.sel, err, tt.want)
		}
	}
}

func TestCompileErrorMessageIncludesOffendingToken(t *testing.T) {
	_, err := Compile("A = 99999999999999999999999999", ParseOptions{})
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected a *CompileError, got %T: %v", err, err)
	}
	if ce.Token == "" {
		t.Errorf("CompileError should record the offending token text")
	}
}
