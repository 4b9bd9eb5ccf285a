// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/msgidx/msgidx/internal/attrs"
	"github.com/msgidx/msgidx/internal/driller"
	"github.com/msgidx/msgidx/internal/log"
)

// filterRegex splits an expression into key, optional (negated) operator
// and target.
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter spec. Malformed expressions are logged and
// skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv("MSGIDX_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		operand, negate := strings.CutPrefix(parts[2], "!")
		if operand == "" {
			log.Errorf("invalid filter: missing operator in %s", filterSpec)
			continue
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	return filters
}

// FilterDataset keeps the rows of candidates matching every filter in spec
// and projects each kept row onto attrs. Transforms are left to the output
// phase.
func FilterDataset(candidates gjson.Result, attrList attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var filtered []map[string]interface{}

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, attrList, filters) {
			continue
		}

		row := make(map[string]interface{}, len(attrList))
		for _, attr := range attrList {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = driller.Drill(candidate, attr.Key).Value()
		}
		filtered = append(filtered, row)
	}

	return filtered
}

// applyFilters reports whether candidate satisfies every filter.
func applyFilters(candidate gjson.Result, attrList attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := filter.Key
		for _, attr := range attrList {
			if attr.OutputKey == filter.Key {
				key = attr.Key
				break
			}
		}

		value := driller.Drill(candidate, key).Value()
		if value == nil {
			// A missing value only satisfies a negated filter.
			if filter.Negate {
				continue
			}
			return false
		}

		var ok bool
		switch v := value.(type) {
		case string:
			ok = checkStringOperand(v, filter)
		case bool:
			ok = checkStringOperand(strconv.FormatBool(v), filter)
		default:
			if num, isNum := toFloat64(value); isNum {
				ok = checkNumericOperand(num, filter)
			} else if filter.Operand == "@" {
				ok = checkContainsOperand(value, filter)
			} else {
				ok = checkStringOperand(fmt.Sprintf("%v", value), filter)
			}
		}

		if !ok {
			return false
		}
	}

	return true
}

// checkContainsOperand evaluates @ against list and object values.
func checkContainsOperand(value interface{}, filter Filter) bool {
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprintf("%v", item) == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]any:
		_, found := val[filter.Value]
		return found != filter.Negate
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
}

// checkNumericOperand compares numerically. Operands other than =, < and >
// fall back to string comparison of the integral value.
func checkNumericOperand(value float64, filter Filter) bool {
	switch filter.Operand {
	case "=", "<", ">":
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	default:
		return (value < tgt) == !filter.Negate
	}
}

// checkStringOperand evaluates a string comparison.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return (value == filter.Value) == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return (value > filter.Value) == !filter.Negate
	case "<":
		return (value < filter.Value) == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

// toFloat64 normalizes numeric types to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
