package search

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// ErrUnsupportedFilter is returned for CQL2 constructs this evaluator does
// not implement.
var ErrUnsupportedFilter = fmt.Errorf("search: unsupported filter expression")

// EvaluateFilter decodes a CQL2-JSON filter expression and evaluates it
// against item, reading property values from item's top-level fields and
// its open-schema properties region. Supported operators: =/eq, <>/neq,
// <, <=, >, >=, in, and, or, not, isNull, like.
func EvaluateFilter(filter json.RawMessage, item *stac.Item) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}
	var raw any
	if err := json.Unmarshal(filter, &raw); err != nil {
		return false, fmt.Errorf("search: decoding filter: %w", err)
	}
	return evalNode(raw, item)
}

func evalNode(raw any, item *stac.Item) (bool, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return false, fmt.Errorf("%w: expected an object node", ErrUnsupportedFilter)
	}
	opVal, _ := obj["op"].(string)
	args, _ := obj["args"].([]any)

	switch strings.ToLower(opVal) {
	case "and":
		for _, arg := range args {
			ok, err := evalNode(arg, item)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case "or":
		for _, arg := range args {
			ok, err := evalNode(arg, item)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case "not":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: 'not' requires exactly 1 argument", ErrUnsupportedFilter)
		}
		ok, err := evalNode(args[0], item)
		return !ok, err
	case "isnull":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: 'isNull' requires exactly 1 argument", ErrUnsupportedFilter)
		}
		_, ok := resolveValue(args[0], item)
		return !ok, nil
	case "=", "eq":
		return compareOp(args, item, func(c int) bool { return c == 0 })
	case "<>", "neq", "!=":
		return compareOp(args, item, func(c int) bool { return c != 0 })
	case "<", "lt":
		return compareOp(args, item, func(c int) bool { return c < 0 })
	case "<=", "lte":
		return compareOp(args, item, func(c int) bool { return c <= 0 })
	case ">", "gt":
		return compareOp(args, item, func(c int) bool { return c > 0 })
	case ">=", "gte":
		return compareOp(args, item, func(c int) bool { return c >= 0 })
	case "in":
		return evalIn(args, item)
	case "like":
		return evalLike(args, item)
	default:
		return false, fmt.Errorf("%w: operator %q", ErrUnsupportedFilter, opVal)
	}
}

func compareOp(args []any, item *stac.Item, accept func(int) bool) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("%w: comparison requires exactly 2 arguments", ErrUnsupportedFilter)
	}
	left, ok := resolveValue(args[0], item)
	if !ok {
		return false, nil
	}
	right, ok := resolveValue(args[1], item)
	if !ok {
		return false, nil
	}
	cmp, ok := compareValues(left, right)
	if !ok {
		return false, nil
	}
	return accept(cmp), nil
}

func evalIn(args []any, item *stac.Item) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("%w: 'in' requires exactly 2 arguments", ErrUnsupportedFilter)
	}
	left, ok := resolveValue(args[0], item)
	if !ok {
		return false, nil
	}
	list, ok := args[1].([]any)
	if !ok {
		return false, fmt.Errorf("%w: 'in' second argument must be an array", ErrUnsupportedFilter)
	}
	for _, v := range list {
		if cmp, ok := compareValues(left, v); ok && cmp == 0 {
			return true, nil
		}
	}
	return false, nil
}

func evalLike(args []any, item *stac.Item) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("%w: 'like' requires exactly 2 arguments", ErrUnsupportedFilter)
	}
	left, ok := resolveValue(args[0], item)
	if !ok {
		return false, nil
	}
	pattern, ok := resolveValue(args[1], item)
	if !ok {
		return false, nil
	}
	ls, lok := left.(string)
	ps, pok := pattern.(string)
	if !lok || !pok {
		return false, nil
	}
	return matchLike(ls, ps), nil
}

// matchLike implements SQL-style LIKE with "%" wildcards; "_" is treated literally.
func matchLike(s, pattern string) bool {
	parts := strings.Split(pattern, "%")
	if len(parts) == 1 {
		return s == pattern
	}
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(s, part)
		if idx < 0 {
			return false
		}
		s = s[idx+len(part):]
	}
	return strings.HasSuffix(s, parts[len(parts)-1])
}

// resolveValue resolves a CQL2 argument: a literal, or a {"property": name}
// reference looked up against item's structural fields or properties.
func resolveValue(arg any, item *stac.Item) (any, bool) {
	if obj, ok := arg.(map[string]any); ok {
		if name, ok := obj["property"].(string); ok {
			return propertyValue(name, item)
		}
	}
	return arg, true
}

func propertyValue(name string, item *stac.Item) (any, bool) {
	switch name {
	case "id":
		return item.Id, true
	case "collection":
		return item.Collection, true
	}
	if item.Properties == nil {
		return nil, false
	}
	switch name {
	case "datetime":
		if item.Properties.Datetime == nil {
			return nil, false
		}
		return *item.Properties.Datetime, true
	case "start_datetime":
		if item.Properties.StartDatetime == nil {
			return nil, false
		}
		return *item.Properties.StartDatetime, true
	case "end_datetime":
		if item.Properties.EndDatetime == nil {
			return nil, false
		}
		return *item.Properties.EndDatetime, true
	}
	raw, ok := item.Properties.Field(name)
	if !ok {
		return nil, false
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false
	}
	return value, true
}

func compareValues(a, b any) (int, bool) {
	as, aok := asFloat(a)
	bs, bok := asFloat(b)
	if aok && bok {
		switch {
		case as < bs:
			return -1, true
		case as > bs:
			return 1, true
		default:
			return 0, true
		}
	}
	astr, aok := a.(string)
	bstr, bok := b.(string)
	if aok && bok {
		return strings.Compare(astr, bstr), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
