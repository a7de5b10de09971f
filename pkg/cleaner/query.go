package cleaner

import (
	"net/url"
	"strings"
)

// QueryParameterSet is an ordered multi-map of query parameters.
// Names keep the order of their first appearance; values keep the order in
// which they appeared. Blank values are stored as "".
type QueryParameterSet struct {
	names  []string
	values map[string][]string
}

// NewQueryParameterSet returns an empty set.
func NewQueryParameterSet() *QueryParameterSet {
	return &QueryParameterSet{values: make(map[string][]string)}
}

// ParseQuery decodes a raw query string (without the leading '?').
//
// Pairs are separated by '&' only. A pair without '=' has the value "".
// Empty segments are skipped. Names and values are form-decoded, so '+'
// becomes a space; a '%' that does not start a valid escape is kept as a
// literal '%'.
func ParseQuery(rawQuery string) *QueryParameterSet {
	q := NewQueryParameterSet()
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(pair, "=")
		q.Add(unescape(rawName), unescape(rawValue))
	}
	return q
}

// unescape form-decodes s, leaving malformed escapes as written.
func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			sb.WriteByte(' ')
		case c == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			sb.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func ishex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// Add appends value to the values of name.
func (q *QueryParameterSet) Add(name, value string) {
	if _, ok := q.values[name]; !ok {
		q.names = append(q.names, name)
	}
	q.values[name] = append(q.values[name], value)
}

// Names returns the distinct parameter names in order.
func (q *QueryParameterSet) Names() []string {
	out := make([]string, len(q.names))
	copy(out, q.names)
	return out
}

// Values returns the values of name in order, or nil if absent.
func (q *QueryParameterSet) Values(name string) []string {
	vs, ok := q.values[name]
	if !ok {
		return nil
	}
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// Len returns the number of distinct names.
func (q *QueryParameterSet) Len() int {
	return len(q.names)
}

// Filter returns a new set holding only the names for which keep returns
// true, and the names that were dropped, both in original order.
func (q *QueryParameterSet) Filter(keep func(name string) bool) (*QueryParameterSet, []string) {
	out := NewQueryParameterSet()
	var dropped []string
	for _, name := range q.names {
		if !keep(name) {
			dropped = append(dropped, name)
			continue
		}
		out.names = append(out.names, name)
		out.values[name] = append([]string(nil), q.values[name]...)
	}
	return out, dropped
}

// Encode renders the set as "key=value" pairs joined by '&'.
// Multi-valued names expand into repeated pairs in their original order.
func (q *QueryParameterSet) Encode() string {
	var sb strings.Builder
	for _, name := range q.names {
		key := url.QueryEscape(name)
		for _, v := range q.values[name] {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(key)
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return sb.String()
}
