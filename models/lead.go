package models

// Lead is the central record produced for each processed domain.
//
// Emails, Phones and SocialLinks are sets: no duplicates, order not
// significant. Callers that need a stable ordering (CSV export) sort at
// the boundary, never here.
type Lead struct {
	// Domain is the normalized absolute URL the lead was scraped from.
	// Always carries a scheme and no trailing slash.
	Domain string `json:"domain"`

	Emails      []string `json:"emails"`
	Phones      []string `json:"phones"`
	SocialLinks []string `json:"social_links"`

	// Title and Description are taken from the first page that has them.
	Title       string `json:"title"`
	Description string `json:"description"`

	// Favicon is the resolved icon URL, empty when none was found.
	Favicon string `json:"favicon,omitempty"`

	// Revenue and Founders come either from page text or the search
	// fallback. Empty means unknown.
	Revenue  string `json:"revenue,omitempty"`
	Founders string `json:"founders,omitempty"`

	// ScrapedText is the accumulated visible text of all fetched pages,
	// capped at MaxScrapedText runes.
	ScrapedText string `json:"scraped_text"`

	// ContentMarkdown is a readability-cleaned markdown rendition of the
	// homepage, capped at MaxContentMarkdown runes. Used as richer LLM
	// prompt context; empty when the homepage could not be cleaned.
	ContentMarkdown string `json:"content_markdown,omitempty"`

	// Score is the 0-100 contact-data completeness score.
	Score int `json:"lead_score"`

	// Tags are LLM-assigned industry labels.
	Tags []string `json:"tags,omitempty"`
}

const (
	// MaxScrapedText caps Lead.ScrapedText, in runes.
	MaxScrapedText = 2000

	// MaxContentMarkdown caps Lead.ContentMarkdown, in runes.
	MaxContentMarkdown = 6000
)

// NewLead creates an empty Lead for the given normalized domain.
func NewLead(domain string) *Lead {
	return &Lead{
		Domain:      domain,
		Emails:      []string{},
		Phones:      []string{},
		SocialLinks: []string{},
	}
}

// Outcome is the per-domain result collected by the pipeline: either a
// populated Lead or an error detail when the whole pipeline failed for
// that domain. Exactly one of Lead and Error is set.
type Outcome struct {
	Domain string       `json:"domain"`
	Lead   *Lead        `json:"lead,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}
