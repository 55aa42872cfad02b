// Package enrich implements the search-driven fallback pass that fills
// lead fields direct scraping could not.
package enrich

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/prospectkit/prospect/models"
	"github.com/prospectkit/prospect/scraper"
	"github.com/prospectkit/prospect/search"
)

// revenueRe matches a dollar amount with a magnitude word,
// e.g. "$4.2 million" or "$1,200 billion".
var revenueRe = regexp.MustCompile(`(?i)\$[0-9.,]+ (million|billion)`)

// Enricher recovers missing lead fields via web search. Every search or
// fetch failure is absorbed: the field keeps its prior value and the
// pipeline moves on. Nothing here ever returns an error to the caller.
type Enricher struct {
	searcher search.Searcher
	fetcher  *scraper.Fetcher
}

// New creates an Enricher over the given search and fetch collaborators.
func New(searcher search.Searcher, fetcher *scraper.Fetcher) *Enricher {
	return &Enricher{searcher: searcher, fetcher: fetcher}
}

// Enrich applies the per-field fallback strategies to the lead in place.
//
// Emails and phones are fill-only: the search pass runs only when the set
// is empty, and a populated set is never overwritten. Revenue and founders
// re-query unconditionally but assign only when extraction finds a usable
// value.
func (e *Enricher) Enrich(ctx context.Context, lead *models.Lead) {
	bare := scraper.BareHost(lead.Domain)
	if bare == "" {
		return
	}

	if len(lead.Emails) == 0 {
		if body, ok := e.firstResultBody(ctx, "@"+bare+" email"); ok {
			lead.Emails = scraper.ExtractEmails(body)
		}
	}

	if len(lead.Phones) == 0 {
		if body, ok := e.firstResultBody(ctx, bare+" phone number"); ok {
			lead.Phones = scraper.ExtractPhones(body)
		}
	}

	if body, ok := e.firstResultBody(ctx, bare+" revenue"); ok {
		if m := revenueRe.FindString(body); m != "" {
			lead.Revenue = m
		}
	}

	e.enrichFounders(ctx, lead, bare)
}

// firstResultBody searches for the query and fetches the raw body of the
// first result. ok is false when either step failed or found nothing.
func (e *Enricher) firstResultBody(ctx context.Context, query string) (string, bool) {
	url, err := search.First(ctx, e.searcher, query)
	if err != nil {
		slog.Debug("fallback search skipped", "query", query, "error", err)
		return "", false
	}
	body, err := e.fetcher.Raw(ctx, url)
	if err != nil {
		slog.Debug("fallback fetch skipped", "url", url, "error", err)
		return "", false
	}
	return body, true
}

// enrichFounders looks for the first paragraph on the top search result
// that mentions a founder or CEO and assigns it verbatim.
func (e *Enricher) enrichFounders(ctx context.Context, lead *models.Lead, bare string) {
	url, err := search.First(ctx, e.searcher, bare+" founder")
	if err != nil {
		slog.Debug("fallback search skipped", "query", bare+" founder", "error", err)
		return
	}

	page, err := e.fetcher.Page(ctx, url)
	if err != nil {
		slog.Debug("fallback fetch skipped", "url", url, "error", err)
		return
	}

	page.Doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		lower := strings.ToLower(text)
		if strings.Contains(lower, "founder") || strings.Contains(lower, "ceo") {
			lead.Founders = text
			return false
		}
		return true
	})
}
