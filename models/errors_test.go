package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestLeadError(t *testing.T) {
	cause := errors.New("connection refused")
	le := NewLeadError(ErrCodeFetchFailed, "page fetch failed", cause)

	if !errors.Is(le, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}

	var target *LeadError
	wrapped := fmt.Errorf("outer: %w", le)
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As failed through wrapping")
	}
	if target.Code != ErrCodeFetchFailed {
		t.Errorf("code = %q", target.Code)
	}

	d := le.ToDetail()
	if d.Code != ErrCodeFetchFailed || d.Message != "page fetch failed" {
		t.Errorf("detail = %+v", d)
	}
}

func TestLeadError_ErrorString(t *testing.T) {
	with := NewLeadError(ErrCodeFetchTimeout, "deadline exceeded", errors.New("ctx"))
	if got := with.Error(); got != "FETCH_TIMEOUT: deadline exceeded: ctx" {
		t.Errorf("Error() = %q", got)
	}

	without := NewLeadError(ErrCodeInvalidInput, "empty domain", nil)
	if got := without.Error(); got != "INVALID_INPUT: empty domain" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNewLead(t *testing.T) {
	lead := NewLead("https://acme.com")

	if lead.Domain != "https://acme.com" {
		t.Errorf("domain = %q", lead.Domain)
	}
	// Sets start empty but non-nil so JSON renders [] instead of null.
	if lead.Emails == nil || lead.Phones == nil || lead.SocialLinks == nil {
		t.Error("contact sets must be initialized")
	}
	if len(lead.Emails)+len(lead.Phones)+len(lead.SocialLinks) != 0 {
		t.Error("contact sets must start empty")
	}
}

func TestScrapeJob_LeadByDomain(t *testing.T) {
	a := NewLead("https://a.com")
	job := &ScrapeJob{
		Outcomes: []*Outcome{
			{Domain: "https://a.com", Lead: a},
			{Domain: "https://b.com", Error: &ErrorDetail{Code: ErrCodeFetchFailed}},
			nil,
		},
	}

	if got := job.LeadByDomain("https://a.com"); got != a {
		t.Error("expected the stored lead for a.com")
	}
	if got := job.LeadByDomain("https://b.com"); got != nil {
		t.Error("error outcome must not yield a lead")
	}
	if got := job.LeadByDomain("https://c.com"); got != nil {
		t.Error("unknown domain must yield nil")
	}
}
