package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ResolveFavicon fetches the site root within the favicon timeout and
// resolves the first icon declared in the page's link metadata to an
// absolute URL. Returns "" on any failure; a missing favicon is never an
// error worth surfacing.
func (f *Fetcher) ResolveFavicon(ctx context.Context, baseURL string) string {
	page, err := f.pageWithin(ctx, baseURL, f.cfg.FaviconTimeout)
	if err != nil {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	var icon string
	page.Doc.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "icon") {
			return true
		}
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		resolved, err := base.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		icon = resolved.String()
		return false
	})

	return icon
}
