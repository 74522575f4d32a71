package condition

import (
	"github.com/astitcher/selectors"
)

// Condition is the narrow interface callers already wired to a generic
// "evaluate this against an env" shape expect: Evaluate never fails,
// mapping anything that isn't a definite match (a parse-time problem
// would have surfaced earlier, from NewSelectorCondition) to false.
type Condition interface {
	Evaluate(env interface{}) bool
}

// SelectorCondition adapts a compiled selector Expression to Condition.
type SelectorCondition struct {
	expr *selectors.Expression
}

// NewSelectorCondition compiles a JMS-style selector expression into a
// Condition. The expression language is the one selectors.Compile accepts:
// SQL-92-flavored predicates with AND/OR/NOT, comparisons, LIKE, BETWEEN,
// IN and IS [NOT] NULL, operating in three-valued logic rather than the
// two-valued boolean logic a generic expression evaluator would use.
func NewSelectorCondition(expression string, opts ...selectors.Option) (Condition, error) {
	expr, err := selectors.Compile(expression, opts...)
	if err != nil {
		return nil, err
	}
	return &SelectorCondition{expr: expr}, nil
}

// Evaluate adapts env to a selector Environment and evaluates the compiled
// expression against it. A selectors.Environment is used as is and a
// map[string]interface{} is wrapped in a MapEnvironment; any other env (or a
// nil env) behaves as an environment with no properties, so every
// identifier resolves to Unknown.
func (c *SelectorCondition) Evaluate(env interface{}) bool {
	return selectors.Evaluate(c.expr, toEnvironment(env))
}

func toEnvironment(env interface{}) selectors.Environment {
	switch e := env.(type) {
	case selectors.Environment:
		return e
	case map[string]interface{}:
		return selectors.NewMapEnvironment(e)
	default:
		return selectors.NewMapEnvironment(nil)
	}
}
