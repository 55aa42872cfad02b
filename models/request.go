package models

// ScrapeLeadsRequest is the payload for POST /api/v1/leads/scrape.
type ScrapeLeadsRequest struct {
	// Domains is the list of company domains to process. Required.
	// Entries may be bare hosts ("acme.com") or full URLs.
	Domains []string `json:"domains" binding:"required,min=1,max=100"`

	// WebhookURL, when set, receives a signed job.completed event once
	// every domain has been processed.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`

	// MaxAge is the maximum acceptable age, in milliseconds, of a cached
	// lead for the same domain. 0 disables cache lookups.
	MaxAge int `json:"max_age_ms,omitempty" binding:"omitempty,min=0"`
}

// ResolveDomainsRequest is the payload for POST /api/v1/domains/resolve.
type ResolveDomainsRequest struct {
	// Companies is the list of company names to resolve to websites.
	Companies []string `json:"companies" binding:"required,min=1,max=50"`
}

// SummaryRequest is the payload for POST /api/v1/leads/:id/summary.
type SummaryRequest struct {
	Domain string `json:"domain" binding:"required"`
}

// ColdEmailRequest is the payload for POST /api/v1/leads/:id/email.
type ColdEmailRequest struct {
	Domain string `json:"domain" binding:"required"`

	// Summary is an optional pre-generated company summary to base the
	// email on. When empty, a summary is generated first.
	Summary string `json:"summary,omitempty"`
}

// ChatRequest is the payload for POST /api/v1/leads/:id/chat.
type ChatRequest struct {
	Domain  string `json:"domain" binding:"required"`
	Message string `json:"message" binding:"required"`
}
