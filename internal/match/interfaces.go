package match

// Result is one ranked hit from a search capability. Score follows the
// convention of the underlying search libraries: lower is better.
type Result struct {
	Index int
	Score float64
}

// Searcher defines the interface for the fuzzy-search capability. Given a
// set of keys and a query, it returns matching keys ranked best-first.
type Searcher interface {
	Search(keys []string, query string) []Result
}
