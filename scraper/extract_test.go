package scraper

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestExtractEmails(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"single email",
			"Reach us at info@acme.com for details",
			[]string{"info@acme.com"},
		},
		{
			"duplicates collapse",
			"info@acme.com or info@acme.com or sales@acme.com",
			[]string{"info@acme.com", "sales@acme.com"},
		},
		{
			"plus and dots",
			"billing+invoices@sub.acme.co.uk",
			[]string{"billing+invoices@sub.acme.co.uk"},
		},
		{
			"no emails",
			"nothing to see here",
			nil,
		},
		{
			"short tld rejected",
			"broken@acme.c",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEmails(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractEmails(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractEmails_Idempotent(t *testing.T) {
	text := "a@b.com c@d.org a@b.com"
	first := ExtractEmails(text)
	second := ExtractEmails(strings.Join(first, " "))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-extraction changed the set: %v vs %v", first, second)
	}
}

func TestExtractPhones(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int // number of matches; the exact shapes are regex-defined
	}{
		{"international", "Call +1 (555) 123-4567 today", 1},
		{"plain digits", "tel: 5551234567", 1},
		{"too short", "room 12345", 0},
		{"duplicate collapses", "+44 20 7946 0958 and +44 20 7946 0958", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPhones(tt.text)
			if len(got) != tt.want {
				t.Errorf("ExtractPhones(%q) = %v (%d matches), want %d", tt.text, got, len(got), tt.want)
			}
		})
	}
}

func TestExtractSocialLinks(t *testing.T) {
	html := `<html><body>
		<a href="https://linkedin.com/company/acme">LinkedIn</a>
		<a href="https://twitter.com/acme">Twitter</a>
		<a href="https://facebook.com/acme">Facebook</a>
		<a href="https://linkedin.com/company/acme">LinkedIn again</a>
		<a href="https://example.com/blog">Blog</a>
		<a href="/about">About</a>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	got := ExtractSocialLinks(doc)
	want := []string{
		"https://linkedin.com/company/acme",
		"https://twitter.com/acme",
		"https://facebook.com/acme",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSocialLinks = %v, want %v", got, want)
	}
}

func TestExtractTitleAndMeta(t *testing.T) {
	html := `<html><head>
		<title>  Acme Corp - Widgets  </title>
		<meta name="description" content=" Widgets for every occasion ">
	</head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	if got := ExtractTitle(doc); got != "Acme Corp - Widgets" {
		t.Errorf("ExtractTitle = %q", got)
	}
	if got := ExtractMetaDescription(doc); got != "Widgets for every occasion" {
		t.Errorf("ExtractMetaDescription = %q", got)
	}
}

func TestExtractTitleAndMeta_Absent(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>hi</p></body></html>"))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	if got := ExtractTitle(doc); got != "" {
		t.Errorf("ExtractTitle on page without title = %q, want empty", got)
	}
	if got := ExtractMetaDescription(doc); got != "" {
		t.Errorf("ExtractMetaDescription on page without meta = %q, want empty", got)
	}
}
