package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/prospectkit/prospect/config"
)

// DDG queries the DuckDuckGo HTML endpoint and scrapes result anchors.
// No API key, no SDK; one GET per query.
type DDG struct {
	endpoint string
	client   *http.Client
}

// NewDDG creates a DDG searcher from the search configuration.
func NewDDG(cfg config.SearchConfig) *DDG {
	return &DDG{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Search implements Searcher. Result hrefs are decoded through DDG's
// redirect wrapper so callers get the target URL, not the hop.
func (d *DDG) Search(ctx context.Context, query string, max int) ([]string, error) {
	if max <= 0 {
		max = 1
	}

	u := d.endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search: HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search: parse results: %w", err)
	}

	var results []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		results = append(results, decodeRedirect(href))
		return len(results) < max
	})

	return results, nil
}

// decodeRedirect unwraps DDG's /l/?uddg=<urlencoded> redirect links.
func decodeRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}
