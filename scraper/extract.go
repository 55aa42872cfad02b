package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-()]{7,}\d`)
)

// socialHosts are the platform fragments a link must contain to count as a
// social profile.
var socialHosts = []string{
	"linkedin.com",
	"twitter.com",
	"facebook.com",
}

// ExtractEmails returns the unique email-shaped matches in text.
// Pure and deterministic: same input, same output.
func ExtractEmails(text string) []string {
	return uniq(emailRe.FindAllString(text, -1))
}

// ExtractPhones returns the unique phone-shaped matches in text.
// Best-effort: over-matching is acceptable, no real-world validation.
func ExtractPhones(text string) []string {
	return uniq(phoneRe.FindAllString(text, -1))
}

// ExtractSocialLinks scans every hyperlink in the document and keeps those
// targeting a known social platform.
func ExtractSocialLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		for _, host := range socialHosts {
			if strings.Contains(href, host) {
				links = append(links, href)
				break
			}
		}
	})
	return uniq(links)
}

// ExtractTitle returns the page title, or "" if absent.
func ExtractTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// ExtractMetaDescription returns the meta description, or "" if absent.
func ExtractMetaDescription(doc *goquery.Document) string {
	content, ok := doc.Find(`meta[name="description"]`).First().Attr("content")
	if !ok {
		return ""
	}
	return strings.TrimSpace(content)
}

// uniq deduplicates while keeping first-appearance order. The order is not
// part of the contract (these are sets); it just keeps output deterministic.
func uniq(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
