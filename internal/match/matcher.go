// Package match maps arbitrary form field keys onto canonical lead concepts
// using a fuzzy-search capability plus a domain tie-break.
package match

import (
	"sort"
	"strings"

	"github.com/Gordoburrito/tracking-script/internal/domain"
)

// Keyword classes used to re-rank fuzzy candidates. Raw similarity alone
// confuses "Phone" with fields that merely share letters, most notably
// anti-spam tokens like "wpcf7-recaptcha-response", so phone-looking keys are
// pulled to the front and known offenders pushed to the back. Hand-tuned
// against field names observed on customer sites.
var (
	phoneIndicative   = []string{"phone", "mobile", "cell", "telephone", "contact"}
	phoneExclusionary = []string{"recaptcha", "captcha", "token", "response", "email", "name"}
)

// Matcher resolves canonical concept names against one form's field set. A
// Matcher is built fresh per submission; it never outlives the form data it
// was built from.
type Matcher struct {
	fields   []domain.FormField
	keys     []string
	searcher Searcher
}

// NewMatcher builds a matcher over the given fields
func NewMatcher(fields []domain.FormField, searcher Searcher) *Matcher {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}

	return &Matcher{
		fields:   fields,
		keys:     keys,
		searcher: searcher,
	}
}

// Match returns the value of the field best matching query, or false when no
// field matches at all.
func (m *Matcher) Match(query string) (string, bool) {
	results := m.searcher.Search(m.keys, query)
	if len(results) == 0 {
		return "", false
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri := keywordRank(m.keys[results[i].Index])
		rj := keywordRank(m.keys[results[j].Index])
		if ri != rj {
			return ri < rj
		}
		return results[i].Score < results[j].Score
	})

	return m.fields[results[0].Index].Value, true
}

// keywordRank orders candidates: phone-indicative keys first, neutral keys
// next, phone-exclusionary keys last.
func keywordRank(key string) int {
	lower := strings.ToLower(key)

	for _, kw := range phoneIndicative {
		if strings.Contains(lower, kw) {
			return 0
		}
	}
	for _, kw := range phoneExclusionary {
		if strings.Contains(lower, kw) {
			return 2
		}
	}
	return 1
}
