package match

import "github.com/sahilm/fuzzy"

// FuzzySearcher implements Searcher on top of github.com/sahilm/fuzzy.
type FuzzySearcher struct{}

// NewFuzzySearcher creates the default search capability
func NewFuzzySearcher() *FuzzySearcher {
	return &FuzzySearcher{}
}

// Search returns the keys matching query, best first. sahilm/fuzzy scores
// higher-is-better, so scores are negated to fit the lower-is-better
// convention callers sort by.
func (s *FuzzySearcher) Search(keys []string, query string) []Result {
	matches := fuzzy.Find(query, keys)

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, Result{
			Index: m.Index,
			Score: -float64(m.Score),
		})
	}

	return results
}
