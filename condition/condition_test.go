package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectorCondition(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{name: "simple comparison", expression: "age > 18", wantErr: false},
		{name: "compound logic", expression: "age > 18 AND name = 'John'", wantErr: false},
		{name: "is null", expression: "name IS NULL", wantErr: false},
		{name: "like pattern", expression: "name LIKE 'John%'", wantErr: false},
		{name: "unbalanced comparison", expression: "age >", wantErr: true},
		{name: "missing closing paren", expression: "(age > 18", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := NewSelectorCondition(tt.expression)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cond)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, cond)
			}
		})
	}
}

func TestSelectorCondition_Evaluate(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		env        map[string]interface{}
		expected   bool
	}{
		{
			name:       "numeric greater than",
			expression: "age > 18",
			env:        map[string]interface{}{"age": 25},
			expected:   true,
		},
		{
			name:       "numeric less-equal",
			expression: "age <= 18",
			env:        map[string]interface{}{"age": 16},
			expected:   true,
		},
		{
			name:       "string equality",
			expression: "name = 'John'",
			env:        map[string]interface{}{"name": "John"},
			expected:   true,
		},
		{
			name:       "string inequality",
			expression: "name <> 'John'",
			env:        map[string]interface{}{"name": "Jane"},
			expected:   true,
		},
		{
			name:       "AND both true",
			expression: "age > 18 AND active = true",
			env:        map[string]interface{}{"age": 25, "active": true},
			expected:   true,
		},
		{
			name:       "AND one false",
			expression: "age > 18 AND active = true",
			env:        map[string]interface{}{"age": 25, "active": false},
			expected:   false,
		},
		{
			name:       "OR one true",
			expression: "age < 18 OR vip = true",
			env:        map[string]interface{}{"age": 25, "vip": true},
			expected:   true,
		},
		{
			name:       "OR both false",
			expression: "age < 18 OR vip = true",
			env:        map[string]interface{}{"age": 25, "vip": false},
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := NewSelectorCondition(tt.expression)
			require.NoError(t, err)
			require.NotNil(t, cond)

			assert.Equal(t, tt.expected, cond.Evaluate(tt.env))
		})
	}
}

func TestSelectorCondition_IsNull(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		env        map[string]interface{}
		expected   bool
	}{
		{
			name:       "IS NULL on a nil value",
			expression: "name IS NULL",
			env:        map[string]interface{}{"name": nil},
			expected:   true,
		},
		{
			name:       "IS NULL on a present value",
			expression: "name IS NULL",
			env:        map[string]interface{}{"name": "John"},
			expected:   false,
		},
		{
			name:       "IS NOT NULL on a nil value",
			expression: "name IS NOT NULL",
			env:        map[string]interface{}{"name": nil},
			expected:   false,
		},
		{
			name:       "IS NOT NULL on a present value",
			expression: "name IS NOT NULL",
			env:        map[string]interface{}{"name": "John"},
			expected:   true,
		},
		{
			name:       "IS NULL on a missing property",
			expression: "missing_field IS NULL",
			env:        map[string]interface{}{"name": "John"},
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := NewSelectorCondition(tt.expression)
			require.NoError(t, err)
			require.NotNil(t, cond)

			assert.Equal(t, tt.expected, cond.Evaluate(tt.env))
		})
	}
}

func TestSelectorCondition_Like(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		env        map[string]interface{}
		expected   bool
	}{
		{
			name:       "prefix wildcard",
			expression: "name LIKE 'John%'",
			env:        map[string]interface{}{"name": "Johnson"},
			expected:   true,
		},
		{
			name:       "suffix wildcard",
			expression: "name LIKE '%son'",
			env:        map[string]interface{}{"name": "Johnson"},
			expected:   true,
		},
		{
			name:       "contains wildcard",
			expression: "name LIKE '%oh%'",
			env:        map[string]interface{}{"name": "Johnson"},
			expected:   true,
		},
		{
			name:       "single-character wildcard",
			expression: "name LIKE 'J_hn'",
			env:        map[string]interface{}{"name": "John"},
			expected:   true,
		},
		{
			name:       "exact match, no wildcards",
			expression: "name LIKE 'John'",
			env:        map[string]interface{}{"name": "John"},
			expected:   true,
		},
		{
			name:       "no match",
			expression: "name LIKE 'Jane%'",
			env:        map[string]interface{}{"name": "Johnson"},
			expected:   false,
		},
		{
			name:       "domain suffix match",
			expression: "email LIKE '%@%.com'",
			env:        map[string]interface{}{"email": "user@example.com"},
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := NewSelectorCondition(tt.expression)
			require.NoError(t, err)
			require.NotNil(t, cond)

			assert.Equal(t, tt.expected, cond.Evaluate(tt.env))
		})
	}
}

func TestSelectorCondition_UnknownIsNotAMatch(t *testing.T) {
	// An ordering comparison between a number and a string is false, and a
	// comparison against a missing property is Unknown in three-valued
	// logic; Evaluate treats both as "does not match", not as an error.
	cond, err := NewSelectorCondition("age > 'invalid'")
	require.NoError(t, err)
	require.NotNil(t, cond)
	assert.False(t, cond.Evaluate(map[string]interface{}{"age": 25}))
	assert.False(t, cond.Evaluate(map[string]interface{}{}))

	cond, err = NewSelectorCondition("missing_field IS NULL")
	require.NoError(t, err)
	assert.True(t, cond.Evaluate(map[string]interface{}{"age": 25}))

	cond, err = NewSelectorCondition("true = true")
	require.NoError(t, err)
	assert.True(t, cond.Evaluate(map[string]interface{}{}))
}

func TestSelectorCondition_ComplexExpressions(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		env        map[string]interface{}
		expected   bool
	}{
		{
			name:       "nested boolean logic",
			expression: "(age > 18 AND age < 65) AND (active = true OR vip = true)",
			env:        map[string]interface{}{"age": 30, "active": false, "vip": true},
			expected:   true,
		},
		{
			name:       "multi-condition combination",
			expression: "(score >= 90 OR (score >= 80 AND bonus > 0)) AND name IS NOT NULL",
			env:        map[string]interface{}{"score": 85, "bonus": 5, "name": "John"},
			expected:   true,
		},
		{
			name:       "like combined with numeric",
			expression: "email LIKE '%@gmail.com' AND age >= 18",
			env:        map[string]interface{}{"email": "user@gmail.com", "age": 25},
			expected:   true,
		},
		{
			name:       "multiple null checks",
			expression: "name IS NOT NULL AND email IS NOT NULL AND age > 0",
			env:        map[string]interface{}{"name": "John", "email": "john@example.com", "age": 25},
			expected:   true,
		},
		{
			name:       "between and in",
			expression: "age BETWEEN 18 AND 65 AND status IN ('active', 'pending')",
			env:        map[string]interface{}{"age": 30, "status": "pending"},
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := NewSelectorCondition(tt.expression)
			require.NoError(t, err)
			require.NotNil(t, cond)

			assert.Equal(t, tt.expected, cond.Evaluate(tt.env))
		})
	}
}

func TestSelectorCondition_NilEnv(t *testing.T) {
	cond, err := NewSelectorCondition("missing IS NULL")
	require.NoError(t, err)
	assert.True(t, cond.Evaluate(nil))
}
