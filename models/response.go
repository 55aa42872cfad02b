package models

// ScrapeLeadsResponse is the immediate response for POST /api/v1/leads/scrape.
type ScrapeLeadsResponse struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Total  int          `json:"total"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

// JobStatusResponse is the response for GET /api/v1/leads/:id.
type JobStatusResponse struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	Completed int        `json:"completed"`
	Total     int        `json:"total"`
	Outcomes  []*Outcome `json:"outcomes,omitempty"`
}

// ResolvedCompany is one entry of a ResolveDomainsResponse.
type ResolvedCompany struct {
	Company string       `json:"company"`
	Domain  string       `json:"domain,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ResolveDomainsResponse is the response for POST /api/v1/domains/resolve.
type ResolveDomainsResponse struct {
	Results []ResolvedCompany `json:"results"`
}

// ImportDomainsResponse is the response for POST /api/v1/domains/import.
type ImportDomainsResponse struct {
	Domains []string     `json:"domains"`
	Total   int          `json:"total"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// TextResponse wraps a single LLM-generated text (summary, email, chat turn).
type TextResponse struct {
	Success bool         `json:"success"`
	Text    string       `json:"text,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Workers int    `json:"workers"`
	Version string `json:"version"`
}
