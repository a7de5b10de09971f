package cleaner

import (
	"regexp"
	"strings"
)

// defaultTrackingNames are parameter names stripped on exact (lowercased) match.
var defaultTrackingNames = []string{
	// Google Analytics & Ads
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"gclid", "gclsrc",
	// Facebook
	"fbclid",
	// Microsoft/Bing
	"msclkid",
	// HubSpot, Mailchimp, Zanox
	"_hsenc", "_hsmi", "mc_cid", "mc_eid", "zanpid",
	// Amazon
	"ref", "tag",
	// General
	"source", "affiliate", "campaign", "track",
}

// defaultTrackingPatterns flag parameter names that look like tracking IDs.
// Order matters only for MatchPattern reporting.
//
// The patterns are intentionally loose: ^ref_?.*$ also matches "referee_code"
// and ^camp(aign)?_?.*$ matches "campground".
var defaultTrackingPatterns = []string{
	`^_.*id$`,
	`^ref_?.*$`,
	`^track(ing)?_?.*$`,
	`^affiliate_?.*$`,
	`^camp(aign)?_?.*$`,
}

var defaultRules = NewRules(defaultTrackingNames, defaultTrackingPatterns)

// Rules classifies query parameter names as tracking or not.
// A Rules value is immutable after construction and safe for concurrent use.
type Rules struct {
	names    map[string]struct{}
	patterns []*regexp.Regexp
	sources  []string
}

// NewRules builds a rule set from exact names and case-insensitive patterns.
// Names are lowercased. It panics if a pattern does not compile, so it is
// meant for package-level construction from constants.
func NewRules(names []string, patterns []string) *Rules {
	r := &Rules{
		names:    make(map[string]struct{}, len(names)),
		patterns: make([]*regexp.Regexp, 0, len(patterns)),
		sources:  make([]string, 0, len(patterns)),
	}
	for _, n := range names {
		r.names[strings.ToLower(n)] = struct{}{}
	}
	for _, p := range patterns {
		r.patterns = append(r.patterns, regexp.MustCompile("(?i)"+p))
		r.sources = append(r.sources, p)
	}
	return r
}

// DefaultRules returns the built-in tracking rules.
func DefaultRules() *Rules {
	return defaultRules
}

// IsTrackingParameter reports whether name is a tracking parameter under the
// default rules.
func IsTrackingParameter(name string) bool {
	return defaultRules.IsTracking(name)
}

// IsTracking reports whether name matches an exact tracking name
// (case-insensitively) or any heuristic pattern.
func (r *Rules) IsTracking(name string) bool {
	if r.IsKnownName(name) {
		return true
	}
	_, ok := r.MatchPattern(name)
	return ok
}

// IsKnownName reports whether the lowercased name is in the exact-name set.
func (r *Rules) IsKnownName(name string) bool {
	_, ok := r.names[strings.ToLower(name)]
	return ok
}

// MatchPattern returns the first heuristic pattern matching name.
func (r *Rules) MatchPattern(name string) (string, bool) {
	for i, re := range r.patterns {
		if re.MatchString(name) {
			return r.sources[i], true
		}
	}
	return "", false
}

// Patterns returns the heuristic patterns in evaluation order.
func (r *Rules) Patterns() []string {
	out := make([]string, len(r.sources))
	copy(out, r.sources)
	return out
}

// NameCount returns the number of exact tracking names.
func (r *Rules) NameCount() int {
	return len(r.names)
}
