package models

// Job statuses.
const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusPartial    = "partial"
	JobStatusFailed     = "failed"
)

// ScrapeJob tracks an in-progress or completed batch scrape.
// Results is pre-sized; each pipeline worker writes only its own index,
// so no locking is needed around the slice itself.
type ScrapeJob struct {
	ID        string
	Status    string
	Total     int
	Completed int
	Outcomes  []*Outcome
	Webhook   string // optional webhook URL notified on completion
	CreatedAt int64  // unix timestamp
}

// LeadByDomain returns the successful outcome for the given domain, or nil.
func (j *ScrapeJob) LeadByDomain(domain string) *Lead {
	for _, o := range j.Outcomes {
		if o != nil && o.Lead != nil && o.Domain == domain {
			return o.Lead
		}
	}
	return nil
}
