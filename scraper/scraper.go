package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/prospectkit/prospect/models"
	"github.com/prospectkit/prospect/simhash"
)

// pagePaths are the fixed relative paths probed under every domain,
// in order.
var pagePaths = []string{"", "/about", "/contact"}

// nearDupThreshold is the max simhash distance at which a page's text is
// considered a near-duplicate of an already-visited page (e.g. /about
// redirecting back to the homepage) and skipped from text accumulation.
const nearDupThreshold = 3

// Enricher fills empty lead fields from a secondary source after the page
// visits. Implementations never return an error: enrichment failures are
// absorbed, the lead keeps its prior values.
type Enricher interface {
	Enrich(ctx context.Context, lead *models.Lead)
}

// ContentRenderer turns raw page HTML into a cleaned markdown digest.
type ContentRenderer interface {
	Markdown(rawHTML string, sourceURL string) (string, error)
}

// Scraper turns a bare domain string into a populated Lead by probing a
// fixed set of pages and running the extractor primitives over each.
// It is safe for concurrent use.
type Scraper struct {
	fetcher  *Fetcher
	enricher Enricher
	renderer ContentRenderer
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithEnricher attaches the fallback enricher invoked after the page visits.
func WithEnricher(e Enricher) Option {
	return func(s *Scraper) { s.enricher = e }
}

// WithContentRenderer attaches the markdown digest renderer applied to the
// homepage for LLM prompt context.
func WithContentRenderer(r ContentRenderer) Option {
	return func(s *Scraper) { s.renderer = r }
}

// New creates a Scraper over the given fetcher.
func New(fetcher *Fetcher, opts ...Option) *Scraper {
	s := &Scraper{fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeDomain canonicalizes raw user input into an absolute URL:
// lowercased, trimmed, "https://" prepended when no scheme is present,
// trailing slashes stripped.
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	if d == "" {
		return ""
	}
	if !strings.HasPrefix(d, "http") {
		d = "https://" + d
	}
	return strings.TrimRight(d, "/")
}

// BareHost strips the scheme and path from a normalized domain, leaving
// just the host. Used to build search queries.
func BareHost(domain string) string {
	d := strings.TrimPrefix(domain, "https://")
	d = strings.TrimPrefix(d, "http://")
	if i := strings.IndexByte(d, '/'); i >= 0 {
		d = d[:i]
	}
	return d
}

// ScrapeDomain runs the full per-domain extraction sequence and returns the
// populated lead. Individual page failures are skipped; a domain whose every
// page is unreachable still yields a structurally complete lead so the
// fallback enricher can have a go at it.
func (s *Scraper) ScrapeDomain(ctx context.Context, domain string) (*models.Lead, error) {
	base := NormalizeDomain(domain)
	if base == "" {
		return nil, models.NewLeadError(models.ErrCodeInvalidInput, "empty domain", nil)
	}
	if _, err := url.Parse(base); err != nil {
		return nil, models.NewLeadError(models.ErrCodeInvalidInput, fmt.Sprintf("invalid domain %q", domain), err)
	}

	lead := models.NewLead(base)
	lead.Favicon = s.fetcher.ResolveFavicon(ctx, base)

	var textAccum strings.Builder
	var seenPrints []uint64

	for _, path := range pagePaths {
		page, err := s.fetcher.Page(ctx, base+path)
		if err != nil {
			slog.Debug("page skipped", "url", base+path, "error", err)
			continue
		}

		if lead.Title == "" {
			lead.Title = ExtractTitle(page.Doc)
		}
		if lead.Description == "" {
			lead.Description = ExtractMetaDescription(page.Doc)
		}

		text := VisibleText(page.Body)

		// Skip text accumulation when this page is a near-duplicate of
		// one already visited (/about redirecting home is common on
		// small sites). Field extraction still runs: set unions are
		// idempotent.
		fp := simhash.Fingerprint(text)
		dup := false
		for _, prev := range seenPrints {
			if simhash.Similar(fp, prev, nearDupThreshold) {
				dup = true
				break
			}
		}
		if !dup {
			seenPrints = append(seenPrints, fp)
			textAccum.WriteString(text)
			textAccum.WriteByte(' ')
		}

		lead.Emails = uniq(append(lead.Emails, ExtractEmails(text)...))
		lead.Phones = uniq(append(lead.Phones, ExtractPhones(text)...))
		lead.SocialLinks = uniq(append(lead.SocialLinks, ExtractSocialLinks(page.Doc)...))

		if path == "" && s.renderer != nil {
			if md, err := s.renderer.Markdown(string(page.Body), base); err == nil {
				lead.ContentMarkdown = truncateRunes(md, models.MaxContentMarkdown)
			} else {
				slog.Debug("content digest skipped", "url", base, "error", err)
			}
		}
	}

	lead.ScrapedText = truncateRunes(textAccum.String(), models.MaxScrapedText)

	if s.enricher != nil {
		s.enricher.Enrich(ctx, lead)
	}

	return lead, nil
}
