package web

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// FormatPath substitutes {name} placeholders in template with the values
// from (name, value) pairs, path-escaping each value. Every pair must match
// a placeholder and every placeholder must be filled:
//
//	p, err := web.FormatPath("demands/{subscriptionId}/proposals/{proposalId}",
//		"subscriptionId", subID,
//		"proposalId", propID,
//	)
//
// Literal template text, including text that merely resembles a placeholder
// name, is never touched.
func FormatPath(template string, pairs ...any) (string, error) {
	if len(pairs)%2 != 0 {
		return "", fmt.Errorf("format path %q: odd number of placeholder arguments", template)
	}

	out := template
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return "", fmt.Errorf("format path %q: placeholder name %v must be a string", template, pairs[i])
		}

		value, ok := stringify(pairs[i+1])
		if !ok {
			return "", fmt.Errorf("format path %q: placeholder {%s} has nil value", template, name)
		}

		marker := "{" + name + "}"
		if !strings.Contains(out, marker) {
			return "", fmt.Errorf("format path %q: no placeholder %s", template, marker)
		}

		out = strings.ReplaceAll(out, marker, url.PathEscape(value))
	}

	if open := strings.IndexByte(out, '{'); open >= 0 {
		if end := strings.IndexByte(out[open:], '}'); end >= 0 {
			return "", fmt.Errorf("format path %q: unfilled placeholder %s", template, out[open:open+end+1])
		}
	}

	return out, nil
}

// Query accumulates URL query parameters, preserving insertion order.
// The zero value is ready to use.
type Query struct {
	pairs []queryPair
}

type queryPair struct {
	name  string
	value string
}

// NewQuery returns an empty parameter set.
func NewQuery() *Query {
	return &Query{}
}

// Put records name=value. A nil value, or a nil typed pointer, drops the
// parameter entirely so it never appears in the encoded output. Pointers
// are dereferenced, time values are rendered as RFC 3339 in UTC, and any
// fmt.Stringer is rendered via its String method.
func (q *Query) Put(name string, value any) *Query {
	s, ok := stringify(value)
	if !ok {
		return q
	}

	q.pairs = append(q.pairs, queryPair{name: name, value: s})

	return q
}

// Encode renders the recorded parameters as a query string in insertion
// order. An empty set encodes to "".
func (q *Query) Encode() string {
	if q == nil || len(q.pairs) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range q.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}

	return b.String()
}

// Apply appends the encoded parameters to path. When no parameters are
// present the path is returned unchanged, without a trailing '?'.
func (q *Query) Apply(path string) string {
	encoded := q.Encode()
	if encoded == "" {
		return path
	}

	return path + "?" + encoded
}

// stringify renders a parameter value, reporting false for values that
// should be omitted (nil, or a nil typed pointer).
func stringify(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		value = rv.Elem().Interface()
	}

	switch v := value.(type) {
	case string:
		return v, true
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(value), true
	}
}
