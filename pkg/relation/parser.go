// Package relation parses the process expressions and parameter strings of
// the flat pipeline table: "parent -> child" relations and "k=v|k2=v2"
// attribute lists.
package relation

import (
	"sort"
	"strings"
	"unicode"

	"github.com/aretw0/espalier/pkg/domain"
)

// Delimiter separates the parent and child segments of a process expression.
const Delimiter = "->"

// ParamSeparator separates segments of a parameter string.
const ParamSeparator = "|"

// Normalize removes all whitespace from a process expression, so that
// "A -> B", "A->B" and "A ->  B" are the same relation.
func Normalize(expr string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, expr)
}

// HasDelimiter reports whether expr declares a relation at all. Rows without
// a delimiter carry no structural information and are skipped during the
// linking pass.
func HasDelimiter(expr string) bool {
	return strings.Contains(expr, Delimiter)
}

// Parse normalizes expr and splits it into its parent and child names.
// An empty parent ("-> A") is a root declaration and is valid. Expressions
// with zero or more than one delimiter fail with a *domain.RelationError.
func Parse(expr string) (parent, child string, err error) {
	norm := Normalize(expr)
	segments := strings.Split(norm, Delimiter)
	if len(segments) != 2 {
		return "", "", &domain.RelationError{Expr: norm, Segments: len(segments)}
	}
	return segments[0], segments[1], nil
}

// Param is one key=value attribute in declaration order.
type Param struct {
	Key   string
	Value string
}

// ParseParamList parses a "key=value|key2=value2" attribute string into an
// ordered list. An empty or all-whitespace input yields nil. Keys and values
// have all whitespace removed. A segment with no "=" fails with a
// *domain.MalformedParameterError; a segment with several takes the first
// key/value pair and ignores the rest.
func ParseParamList(s string) ([]Param, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var list []Param
	for _, segment := range strings.Split(s, ParamSeparator) {
		parts := strings.Split(segment, "=")
		if len(parts) < 2 {
			return nil, &domain.MalformedParameterError{Segment: segment}
		}
		list = append(list, Param{Key: Normalize(parts[0]), Value: Normalize(parts[1])})
	}
	return list, nil
}

// ParseParams parses like ParseParamList but collapses the result into a map.
// The map is never nil. Duplicate keys keep the last value.
func ParseParams(s string) (map[string]string, error) {
	list, err := ParseParamList(s)
	if err != nil {
		return nil, err
	}
	params := make(map[string]string, len(list))
	for _, p := range list {
		params[p.Key] = p.Value
	}
	return params, nil
}

// FormatParams serializes a parameter map back into "key=value|key2=value2"
// form with keys sorted, so the output is stable and round-trips through
// ParseParams.
func FormatParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	segments := make([]string, 0, len(keys))
	for _, k := range keys {
		segments = append(segments, k+"="+params[k])
	}
	return strings.Join(segments, ParamSeparator)
}
