// Package search provides the web-search collaborator used by fallback
// enrichment and company-name resolution.
package search

import (
	"context"
	"errors"
)

// ErrNoResult is returned when a query completed but produced no usable
// result. It is distinct from transport failures so callers can tell
// "nothing found" apart from "search was unreachable".
var ErrNoResult = errors.New("search: no result")

// Searcher returns up to max result URLs for a query, best first.
// An empty slice with a nil error means the query ran and found nothing.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]string, error)
}

// First runs the query and returns the first result URL, or ErrNoResult.
func First(ctx context.Context, s Searcher, query string) (string, error) {
	urls, err := s.Search(ctx, query, 1)
	if err != nil {
		return "", err
	}
	if len(urls) == 0 {
		return "", ErrNoResult
	}
	return urls[0], nil
}
