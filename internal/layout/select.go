package layout

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Select narrows a decoded description to the single mapping matched by a
// JSONPath selector, e.g. "$.packages.core".
func Select(data any, selector string) (any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	results := x.Get(data)
	switch len(results) {
	case 0:
		return nil, fmt.Errorf("jsonpath '%s' matched nothing", selector)
	case 1:
	default:
		return nil, fmt.Errorf("jsonpath '%s' matched %d values, want exactly one", selector, len(results))
	}

	if _, ok := results[0].(map[string]any); !ok {
		return nil, fmt.Errorf("jsonpath '%s' matched a %T, want a mapping", selector, results[0])
	}
	return results[0], nil
}
