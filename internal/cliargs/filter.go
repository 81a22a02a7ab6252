package cliargs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Filter is a structured query constraint: field name to either a bare
// scalar (equality) or a single-key operator object like {"gt": 10000}.
type Filter map[string]any

// Sort maps a single field name to "asc" or "desc".
type Sort map[string]string

// filterPattern matches `field<op>value`. Longer operators come first so
// `>=` is never read as `>` with a value starting in `=`.
var filterPattern = regexp.MustCompile(`^(\w+)(>=|<=|!=|>|<|=)(.+)$`)

// operator tags for the non-equality comparisons.
var operatorTags = map[string]string{
	">":  "gt",
	"<":  "lt",
	">=": "gte",
	"<=": "lte",
	"!=": "ne",
}

// ParseFilter converts a comparison expression such as "stage=Lead" or
// "value>10000" into a Filter. Equality yields the coerced value directly;
// the other operators yield an operator object. Input that does not match
// the expression grammar yields an empty Filter — callers must treat an
// empty result as "no filter applied".
func ParseFilter(expr string) Filter {
	m := filterPattern.FindStringSubmatch(expr)
	if m == nil {
		return Filter{}
	}
	field, op, raw := m[1], m[2], m[3]

	value := coerceValue(raw)
	if op == "=" {
		return Filter{field: value}
	}
	return Filter{field: map[string]any{operatorTags[op]: value}}
}

// ParseFilterStrict is ParseFilter with an error for input that does not
// match the expression grammar. It exists for the CLI's --strict mode; the
// lenient ParseFilter remains the default behavior.
func ParseFilterStrict(expr string) (Filter, error) {
	f := ParseFilter(expr)
	if len(f) == 0 {
		return nil, fmt.Errorf("cliargs: invalid filter expression %q (want field<op>value)", expr)
	}
	return f, nil
}

// ParseSort converts "field:direction" into a Sort. A missing or
// unrecognized direction defaults to "asc"; an empty field yields an empty
// Sort. The direction comparison is case-sensitive.
func ParseSort(spec string) Sort {
	field, dir := spec, ""
	if i := strings.IndexByte(spec, ':'); i >= 0 {
		field, dir = spec[:i], spec[i+1:]
	}
	if field == "" {
		return Sort{}
	}
	if dir != "desc" {
		dir = "asc"
	}
	return Sort{field: dir}
}

// coerceValue attempts numeric then boolean interpretation before falling
// back to the raw string.
func coerceValue(raw string) any {
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) {
		return f
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}
