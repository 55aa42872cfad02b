package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/prospectkit/prospect/models"
)

// promptContext picks the best available text context for a lead:
// the cleaned markdown digest when the homepage rendered, otherwise the
// raw accumulated page text, capped to keep prompts small.
func promptContext(lead *models.Lead, maxRunes int) string {
	text := lead.ContentMarkdown
	if text == "" {
		text = lead.ScrapedText
	}
	runes := []rune(text)
	if len(runes) > maxRunes {
		return string(runes[:maxRunes])
	}
	return text
}

// Summary generates a concise company summary grounded in the lead's
// scraped data.
func (c *Client) Summary(ctx context.Context, lead *models.Lead) (string, error) {
	prompt := fmt.Sprintf(`You are an assistant helping with lead generation.

Here is information about a company:
Title: %s
Meta Description: %s
Revenue: %s
Founder/CEO: %s
Scraped Website Text: %s

Some fields may contain stray words scraped in place of real values. Ignore
anything that looks like noise.
Based on this, write a concise summary (~5 lines) covering:
- What the company does
- Which domain or sector it's in
- Who its customers likely are
- How big it is (if revenue or other hints are present)
- Any unique traits`,
		lead.Title, lead.Description, orNA(lead.Revenue), orNA(lead.Founders),
		promptContext(lead, 1500),
	)
	return c.Generate(ctx, prompt)
}

// ColdEmail generates a personalized outreach email from a company summary.
func (c *Client) ColdEmail(ctx context.Context, summary, companyName string) (string, error) {
	prompt := fmt.Sprintf(`Write a personalized cold outreach email to %s.

Start with a light, respectful tone. Reference their business (based on the
summary below), and offer an AI-based tool that helps improve operations,
save time, or grow leads. End with a call to action to schedule a chat.

Company Summary:
%s`, companyName, summary)
	return c.Generate(ctx, prompt)
}

// Tags asks for 2-5 industry tags and parses the comma-separated reply.
// Implements the pipeline Tagger.
func (c *Client) Tags(ctx context.Context, lead *models.Lead) ([]string, error) {
	prompt := fmt.Sprintf(`Based on the following company information, return a comma-separated list
of 2 to 5 industry or sector tags that describe what the company does.
Be specific and avoid generic terms like 'company' or 'business'.

Example tags: SaaS, FinTech, HealthTech, CRM, AI, Cybersecurity, Logistics, HRTech, Ecommerce
Some fields may be empty or unclear; infer from what is available. Do not
output "unknown" or "generic company".

Company Title: %s
Description: %s
About Text: %s

Tags:`, lead.Title, lead.Description, promptContext(lead, 1000))

	reply, err := c.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseTags(reply), nil
}

// ParseTags splits a comma-separated tag reply into clean tag strings.
func ParseTags(reply string) []string {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "Tags:")

	var tags []string
	for _, t := range strings.Split(reply, ",") {
		t = strings.TrimSpace(strings.Trim(strings.TrimSpace(t), "."))
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// CompanyChat opens a grounded Q&A session restricted to the lead's data.
func (c *Client) CompanyChat(lead *models.Lead) *Session {
	system := fmt.Sprintf(`You are a B2B lead intelligence assistant.

Your ONLY goal is to answer questions about the following company using ONLY
the information provided.

---
Company domain: %s
Title: %s
Meta Description: %s
Revenue: %s
Founder/CEO: %s
Scraped Website Text: %s
---

STRICT RULES:
1. If the user asks anything not related to this company, politely respond:
   "I'm here to help you understand this company only. Please ask something related to it."
2. Do not guess or fabricate details. If unsure, respond with:
   "That information isn't available from the data I have."
3. Keep responses factual and concise; this is for lead generation.
4. If the information is insufficient, say "Some details were unavailable,
   but here's what I can infer..." and work from what is present.

Respond in a professional tone suitable for B2B sales research.`,
		lead.Domain, lead.Title, lead.Description, orNA(lead.Revenue), orNA(lead.Founders),
		promptContext(lead, 2000),
	)
	return c.StartSession(system)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
