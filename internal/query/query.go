// Package query selects values out of a JSON document with JSONPath.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

var ErrNoMatch = errors.New("no value found")

// Select evaluates expr against the JSON document in body. Every match is rendered on
// its own: strings as-is, scalars with fmt, objects and arrays as compact JSON.
func Select(body []byte, expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("empty jsonpath expression")
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("document is not valid JSON: %w", err)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %s: %w", expr, err)
	}
	if isEmptyValue(val) {
		return nil, fmt.Errorf("jsonpath %s: %w", expr, ErrNoMatch)
	}

	// Wildcards and filters yield a list of matches; a plain path yields one value.
	if arr, ok := val.([]any); ok && isMultiMatch(expr) {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			s, err := toString(v)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}

	s, err := toString(val)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func isMultiMatch(expr string) bool {
	return strings.ContainsAny(expr, "*?") || strings.Contains(expr, "..") || strings.Contains(expr, ",")
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64, bool:
		return fmt.Sprint(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
