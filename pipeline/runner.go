// Package pipeline runs the per-domain processing sequence
// (scrape → enrich → score → tag) for many domains in parallel.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/prospectkit/prospect/cache"
	"github.com/prospectkit/prospect/models"
	"github.com/prospectkit/prospect/rank"
	"github.com/prospectkit/prospect/scraper"
)

// LeadScraper produces a lead for one domain.
type LeadScraper interface {
	ScrapeDomain(ctx context.Context, domain string) (*models.Lead, error)
}

// Tagger classifies a lead with industry tags. Optional: when absent or
// failing, leads simply carry no tags.
type Tagger interface {
	Tags(ctx context.Context, lead *models.Lead) ([]string, error)
}

// Runner fans the pipeline out over a bounded worker pool. One domain's
// failure, including a panic, never aborts its siblings; it becomes an
// error outcome instead.
type Runner struct {
	Scraper LeadScraper
	Tagger  Tagger       // optional
	Cache   *cache.Cache // optional
	Workers int          // concurrent domains; <= 0 means 10
}

// Run processes all domains and returns one outcome per input, positionally
// aligned with domains. maxAgeMs > 0 allows serving a domain from cache.
// onProgress, when non-nil, is called with the running completion count as
// each domain finishes.
func (r *Runner) Run(ctx context.Context, domains []string, maxAgeMs int, onProgress func(completed int)) []*models.Outcome {
	workers := r.Workers
	if workers <= 0 {
		workers = 10
	}

	outcomes := make([]*models.Outcome, len(domains))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	var completed atomic.Int32

	for i, domain := range domains {
		wg.Add(1)
		go func(idx int, domain string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[idx] = r.processOne(ctx, domain, maxAgeMs)

			n := int(completed.Add(1))
			if onProgress != nil {
				onProgress(n)
			}
		}(i, domain)
	}

	wg.Wait()
	return outcomes
}

// processOne runs the full sequence for a single domain. A panic anywhere
// below is captured into an error outcome.
func (r *Runner) processOne(ctx context.Context, domain string, maxAgeMs int) (out *models.Outcome) {
	norm := scraper.NormalizeDomain(domain)

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("pipeline panic", "domain", domain, "panic", rec)
			out = &models.Outcome{
				Domain: norm,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInternal,
					Message: fmt.Sprintf("pipeline panic: %v", rec),
				},
			}
		}
	}()
	if norm == "" {
		norm = domain
	}

	if r.Cache != nil {
		if lead, ok := r.Cache.Get(norm, maxAgeMs); ok {
			return &models.Outcome{Domain: lead.Domain, Lead: lead}
		}
	}

	lead, err := r.Scraper.ScrapeDomain(ctx, domain)
	if err != nil {
		return &models.Outcome{Domain: norm, Error: errorDetail(err)}
	}

	lead.Score = rank.Score(lead)

	if r.Tagger != nil {
		tags, err := r.Tagger.Tags(ctx, lead)
		if err != nil {
			slog.Warn("tagging failed", "domain", lead.Domain, "error", err)
		} else {
			lead.Tags = tags
		}
	}

	if r.Cache != nil {
		r.Cache.Set(lead.Domain, lead)
	}

	return &models.Outcome{Domain: lead.Domain, Lead: lead}
}

func errorDetail(err error) *models.ErrorDetail {
	var le *models.LeadError
	if errors.As(err, &le) {
		return le.ToDetail()
	}
	return &models.ErrorDetail{Code: models.ErrCodeInternal, Message: err.Error()}
}
