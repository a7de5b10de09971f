package cleaner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIPv6 is returned for an authority with unbalanced '[' or ']'.
var ErrInvalidIPv6 = errors.New("invalid IPv6 host")

// ParsedURL is a URL split into its six components.
//
// Components hold the original bytes of the input, so String reproduces the
// input exactly when RawQuery is left untouched (except that an empty query
// drops its '?').
type ParsedURL struct {
	Scheme    string
	Authority string // userinfo@host:port, as written
	Path      string
	Params    string // ";params" on the last path segment, without ';'
	RawQuery  string
	Fragment  string

	// Host and User split Authority at its last '@'.
	Host string
	User string

	hasAuthority bool
	hasParams    bool
	hasQuery     bool
	hasFragment  bool
}

// Parse decomposes raw into its components.
//
// Decomposition is purely lexical and accepts anything a browser address bar
// would hand over, including unescaped spaces. The only rejected input is an
// authority whose IPv6 brackets do not pair up, since its extent cannot be
// determined.
func Parse(raw string) (*ParsedURL, error) {
	p := &ParsedURL{}

	rest := raw
	if i := schemeEnd(rest); i > 0 {
		p.Scheme = rest[:i]
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		p.hasAuthority = true
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		p.Authority, rest = rest[:end], rest[end:]
		if strings.Contains(p.Authority, "[") != strings.Contains(p.Authority, "]") {
			return nil, fmt.Errorf("parse url %q: %w", raw, ErrInvalidIPv6)
		}
		p.Host = p.Authority
		if at := strings.LastIndexByte(p.Authority, '@'); at >= 0 {
			p.User, p.Host = p.Authority[:at], p.Authority[at+1:]
		}
	}

	rest, p.Fragment, p.hasFragment = strings.Cut(rest, "#")
	rest, p.RawQuery, p.hasQuery = strings.Cut(rest, "?")

	last := strings.LastIndexByte(rest, '/') + 1
	if i := strings.IndexByte(rest[last:], ';'); i >= 0 {
		p.hasParams = true
		p.Params = rest[last+i+1:]
		rest = rest[:last+i]
	}
	p.Path = rest

	return p, nil
}

// schemeEnd returns the index of the ':' ending a scheme prefix of s, or -1.
// A scheme starts with an ASCII letter followed by letters, digits, '+',
// '-' or '.'.
func schemeEnd(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return -1
			}
		case c == ':':
			if i == 0 {
				return -1
			}
			return i
		default:
			return -1
		}
	}
	return -1
}

// HasQuery reports whether the input contained a '?'.
func (p *ParsedURL) HasQuery() bool {
	return p.hasQuery
}

// String recomposes the URL.
func (p *ParsedURL) String() string {
	var sb strings.Builder
	if p.Scheme != "" {
		sb.WriteString(p.Scheme)
		sb.WriteByte(':')
	}
	if p.hasAuthority {
		sb.WriteString("//")
		sb.WriteString(p.Authority)
	}
	sb.WriteString(p.Path)
	if p.hasParams {
		sb.WriteByte(';')
		sb.WriteString(p.Params)
	}
	if p.RawQuery != "" {
		sb.WriteByte('?')
		sb.WriteString(p.RawQuery)
	}
	if p.hasFragment {
		sb.WriteByte('#')
		sb.WriteString(p.Fragment)
	}
	return sb.String()
}
