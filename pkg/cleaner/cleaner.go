// Package cleaner strips tracking query parameters from URLs.
//
// Cleaning never fails from the caller's point of view: a URL that cannot be
// decomposed comes back unchanged and the problem is logged. Malformed
// percent escapes in a query are kept as literal text and re-escaped.
package cleaner

import (
	"github.com/jmylchreest/urlclean/internal/logger"
)

// Result describes the outcome of cleaning one URL.
type Result struct {
	Original string
	Cleaned  string

	// Removed lists the stripped parameter names in query order.
	Removed []string

	// Err is set when the URL could not be processed and Cleaned fell back
	// to Original.
	Err error
}

// Changed reports whether cleaning altered the URL.
func (r Result) Changed() bool {
	return r.Original != r.Cleaned
}

// Cleaner removes tracking parameters according to a set of Rules.
type Cleaner struct {
	rules *Rules
}

// New creates a cleaner. A nil rules value selects DefaultRules.
func New(rules *Rules) *Cleaner {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Cleaner{rules: rules}
}

var defaultCleaner = New(nil)

// Clean strips tracking parameters from rawURL using the default rules.
func Clean(rawURL string) string {
	return defaultCleaner.Clean(rawURL)
}

// CleanBatch cleans each URL using the default rules.
func CleanBatch(urls []string) []string {
	return defaultCleaner.CleanBatch(urls)
}

// Rules returns the rules used by c.
func (c *Cleaner) Rules() *Rules {
	return c.rules
}

// Clean strips tracking parameters from rawURL. On failure it logs the error
// and returns rawURL unchanged.
func (c *Cleaner) Clean(rawURL string) string {
	return c.Inspect(rawURL).Cleaned
}

// CleanBatch cleans each URL, returning one result per input in order.
func (c *Cleaner) CleanBatch(urls []string) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = c.Clean(u)
	}
	return out
}

// Inspect cleans rawURL and reports which parameters were removed.
func (c *Cleaner) Inspect(rawURL string) Result {
	res := Result{Original: rawURL, Cleaned: rawURL}

	parsed, err := Parse(rawURL)
	if err != nil {
		return recovered(res, err)
	}
	if !parsed.HasQuery() {
		return res
	}

	kept, removed := ParseQuery(parsed.RawQuery).Filter(func(name string) bool {
		return !c.rules.IsTracking(name)
	})
	parsed.RawQuery = kept.Encode()

	res.Cleaned = parsed.String()
	res.Removed = removed
	if len(removed) > 0 {
		logger.Debug("stripped tracking parameters", "url", rawURL, "removed", removed, "kept", kept.Len())
	}
	return res
}

func recovered(res Result, err error) Result {
	logger.Error("failed to clean URL", "url", res.Original, "error", err)
	res.Err = err
	return res
}
