package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/prospectkit/prospect/config"
	"github.com/prospectkit/prospect/models"
)

func testScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		PageTimeout:    5 * time.Second,
		FaviconTimeout: 3 * time.Second,
		MaxBodyBytes:   10 << 20,
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare host", "acme.com", "https://acme.com"},
		{"uppercase", "ACME.COM", "https://acme.com"},
		{"whitespace", "  acme.com  ", "https://acme.com"},
		{"existing scheme kept", "http://acme.com", "http://acme.com"},
		{"https kept", "https://acme.com", "https://acme.com"},
		{"trailing slash stripped", "acme.com/", "https://acme.com"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDomain(tt.in); got != tt.want {
				t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBareHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://acme.com", "acme.com"},
		{"http://acme.com", "acme.com"},
		{"https://acme.com/about", "acme.com"},
		{"acme.com", "acme.com"},
	}

	for _, tt := range tests {
		if got := BareHost(tt.in); got != tt.want {
			t.Errorf("BareHost(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScrapeDomain(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head>
			<title>Acme Corp</title>
			<meta name="description" content="We make widgets">
			<link rel="icon" href="/favicon.png">
		</head><body>
			<p>Contact info@acme.com</p>
			<a href="https://linkedin.com/company/acme">LinkedIn</a>
		</body></html>`))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>About Acme</title></head><body>
			<p>Founded in 2001. Call +1 (555) 123-4567.</p>
			<p>Also reach sales@acme.com or info@acme.com</p>
		</body></html>`))
	})
	mux.HandleFunc("/contact", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	sc := New(NewFetcher(testScraperConfig()))
	lead, err := sc.ScrapeDomain(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ScrapeDomain: %v", err)
	}

	if lead.Domain != ts.URL {
		t.Errorf("domain = %q, want %q", lead.Domain, ts.URL)
	}
	// First page wins for title and description.
	if lead.Title != "Acme Corp" {
		t.Errorf("title = %q, want %q", lead.Title, "Acme Corp")
	}
	if lead.Description != "We make widgets" {
		t.Errorf("description = %q", lead.Description)
	}
	// Emails from both pages, deduplicated.
	wantEmails := map[string]bool{"info@acme.com": true, "sales@acme.com": true}
	if len(lead.Emails) != len(wantEmails) {
		t.Errorf("emails = %v, want exactly %v", lead.Emails, wantEmails)
	}
	for _, e := range lead.Emails {
		if !wantEmails[e] {
			t.Errorf("unexpected email %q", e)
		}
	}
	if len(lead.Phones) != 1 {
		t.Errorf("phones = %v, want one match", lead.Phones)
	}
	if len(lead.SocialLinks) != 1 || lead.SocialLinks[0] != "https://linkedin.com/company/acme" {
		t.Errorf("social links = %v", lead.SocialLinks)
	}
	if !strings.HasSuffix(lead.Favicon, "/favicon.png") {
		t.Errorf("favicon = %q, want /favicon.png resolved against base", lead.Favicon)
	}
	if lead.ScrapedText == "" {
		t.Error("scraped text should not be empty")
	}
}

func TestScrapeDomain_TextCap(t *testing.T) {
	// A homepage far beyond the cap; /about and /contact 404.
	filler := strings.Repeat("lorem ipsum dolor sit amet ", 500)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>" + filler + "</p></body></html>"))
	}))
	defer ts.Close()

	sc := New(NewFetcher(testScraperConfig()))
	lead, err := sc.ScrapeDomain(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ScrapeDomain: %v", err)
	}

	if n := utf8.RuneCountInString(lead.ScrapedText); n > models.MaxScrapedText {
		t.Errorf("scraped text length = %d runes, cap is %d", n, models.MaxScrapedText)
	}
}

func TestScrapeDomain_NearDuplicatePagesAccumulateOnce(t *testing.T) {
	// Every path serves the same page, as on small sites where /about
	// and /contact render the homepage.
	page := `<html><body><p>` + strings.Repeat("acme widgets and more ", 20) + `</p></body></html>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer ts.Close()

	sc := New(NewFetcher(testScraperConfig()))
	lead, err := sc.ScrapeDomain(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ScrapeDomain: %v", err)
	}

	single := VisibleText([]byte(page))
	if got := strings.TrimSpace(lead.ScrapedText); got != single {
		t.Errorf("duplicate pages accumulated more than once:\ngot  %d chars\nwant %d chars", len(got), len(single))
	}
}

func TestScrapeDomain_AllPagesUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	sc := New(NewFetcher(testScraperConfig()))
	lead, err := sc.ScrapeDomain(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unreachable pages must not fail the domain: %v", err)
	}

	if lead.Domain != ts.URL {
		t.Errorf("domain = %q, want %q", lead.Domain, ts.URL)
	}
	if lead.Emails == nil || lead.Phones == nil || lead.SocialLinks == nil {
		t.Error("contact sets must be initialized even when no page loads")
	}
	if len(lead.Emails)+len(lead.Phones)+len(lead.SocialLinks) != 0 {
		t.Errorf("expected empty sets, got %v %v %v", lead.Emails, lead.Phones, lead.SocialLinks)
	}
	if lead.Favicon != "" {
		t.Errorf("favicon = %q, want empty", lead.Favicon)
	}
}

func TestScrapeDomain_EmptyInput(t *testing.T) {
	sc := New(NewFetcher(testScraperConfig()))

	_, err := sc.ScrapeDomain(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected error for empty domain")
	}
	le, ok := err.(*models.LeadError)
	if !ok {
		t.Fatalf("expected *models.LeadError, got %T", err)
	}
	if le.Code != models.ErrCodeInvalidInput {
		t.Errorf("error code = %q, want %q", le.Code, models.ErrCodeInvalidInput)
	}
}

type stubEnricher struct {
	called bool
}

func (s *stubEnricher) Enrich(ctx context.Context, lead *models.Lead) {
	s.called = true
	if len(lead.Emails) == 0 {
		lead.Emails = []string{"found@elsewhere.com"}
	}
}

func TestScrapeDomain_EnricherRuns(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>no contact data here</p></body></html>"))
	}))
	defer ts.Close()

	en := &stubEnricher{}
	sc := New(NewFetcher(testScraperConfig()), WithEnricher(en))

	lead, err := sc.ScrapeDomain(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ScrapeDomain: %v", err)
	}
	if !en.called {
		t.Error("enricher was not invoked")
	}
	if len(lead.Emails) != 1 || lead.Emails[0] != "found@elsewhere.com" {
		t.Errorf("enriched emails = %v", lead.Emails)
	}
}
