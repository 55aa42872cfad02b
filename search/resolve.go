package search

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
)

// domainBlocklist excludes aggregators and social platforms that outrank a
// company's own site in search results but are useless to scrape for leads.
var domainBlocklist = []string{
	"linkedin.com",
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"youtube.com",
	"wikipedia.org",
	"crunchbase.com",
	"bloomberg.com",
	"glassdoor.com",
	"indeed.com",
	"yelp.com",
}

// ResolveCompanyDomain finds a company's own website host by searching
// "{name} official site" and taking the first result whose host is not a
// known aggregator. Returns ErrNoResult when nothing usable comes back.
func ResolveCompanyDomain(ctx context.Context, s Searcher, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", ErrNoResult
	}

	urls, err := s.Search(ctx, sanitizeCompany(company)+" official site", 5)
	if err != nil {
		return "", err
	}

	for _, raw := range urls {
		host := hostOf(raw)
		if host == "" || isBlockedDomain(host) {
			continue
		}
		return host, nil
	}
	return "", ErrNoResult
}

// ResolveAll resolves many company names concurrently, at most limit
// in flight. The result slice is positionally aligned with companies;
// failed entries hold an empty domain and the error.
func ResolveAll(ctx context.Context, s Searcher, companies []string, limit int) ([]string, []error) {
	if limit <= 0 {
		limit = 5
	}

	domains := make([]string, len(companies))
	errs := make([]error, len(companies))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, name := range companies {
		g.Go(func() error {
			domains[i], errs[i] = ResolveCompanyDomain(ctx, s, name)
			return nil
		})
	}
	_ = g.Wait()

	return domains, errs
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(u.Host, "www."))
}

func isBlockedDomain(host string) bool {
	for _, b := range domainBlocklist {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}

// sanitizeCompany strips legal suffixes that add noise to search queries.
func sanitizeCompany(s string) string {
	repls := []string{
		", Inc.", "", " Inc.", "", " Inc", "",
		", LLC", "", " LLC", "",
		", Ltd.", "", " Ltd.", "", " Ltd", "",
		" GmbH", "",
	}
	s = strings.NewReplacer(repls...).Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
