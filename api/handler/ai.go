package handler

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prospectkit/prospect/llm"
	"github.com/prospectkit/prospect/models"
	"github.com/prospectkit/prospect/scraper"
)

// sessionStore holds chat sessions keyed by "<jobID>|<domain>". Sessions are
// evicted together with their job.
var sessionStore sync.Map

func splitSessionKey(key string) (jobID, domain string, ok bool) {
	jobID, domain, ok = strings.Cut(key, "|")
	return
}

// Summary returns a handler for POST /api/v1/leads/:id/summary.
// Generates a short company summary from the lead's scraped content.
func Summary(llmClient *llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondAIError(c, models.NewLeadError(models.ErrCodeInvalidInput, err.Error(), err))
			return
		}

		lead, lerr := lookupLead(c.Param("id"), req.Domain)
		if lerr != nil {
			respondAIError(c, lerr)
			return
		}

		text, err := llmClient.Summary(c.Request.Context(), lead)
		if err != nil {
			respondAIError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.TextResponse{Success: true, Text: text})
	}
}

// ColdEmail returns a handler for POST /api/v1/leads/:id/email.
// When the request carries no summary, one is generated first.
func ColdEmail(llmClient *llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ColdEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondAIError(c, models.NewLeadError(models.ErrCodeInvalidInput, err.Error(), err))
			return
		}

		lead, lerr := lookupLead(c.Param("id"), req.Domain)
		if lerr != nil {
			respondAIError(c, lerr)
			return
		}

		summary := req.Summary
		if summary == "" {
			var err error
			summary, err = llmClient.Summary(c.Request.Context(), lead)
			if err != nil {
				respondAIError(c, err)
				return
			}
		}

		text, err := llmClient.ColdEmail(c.Request.Context(), summary, scraper.BareHost(lead.Domain))
		if err != nil {
			respondAIError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.TextResponse{Success: true, Text: text})
	}
}

// Chat returns a handler for POST /api/v1/leads/:id/chat.
// Conversation history is kept per job and domain, so follow-up questions
// see earlier turns. Replies are grounded in the lead's data only.
func Chat(llmClient *llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondAIError(c, models.NewLeadError(models.ErrCodeInvalidInput, err.Error(), err))
			return
		}

		jobID := c.Param("id")
		lead, lerr := lookupLead(jobID, req.Domain)
		if lerr != nil {
			respondAIError(c, lerr)
			return
		}

		if !llmClient.Enabled() {
			respondAIError(c, models.NewLeadError(models.ErrCodeLLMDisabled, "no LLM API key configured", nil))
			return
		}

		key := jobID + "|" + lead.Domain
		val, ok := sessionStore.Load(key)
		if !ok {
			val, _ = sessionStore.LoadOrStore(key, llmClient.CompanyChat(lead))
		}
		session := val.(*llm.Session)

		text, err := session.Send(c.Request.Context(), req.Message)
		if err != nil {
			respondAIError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.TextResponse{Success: true, Text: text})
	}
}

// lookupLead finds the successful lead for domain inside job id.
func lookupLead(jobID, domain string) (*models.Lead, *models.LeadError) {
	job, ok := loadJob(jobID)
	if !ok {
		return nil, models.NewLeadError(models.ErrCodeInvalidInput, "job not found", nil)
	}

	norm := scraper.NormalizeDomain(domain)
	lead := job.LeadByDomain(norm)
	if lead == nil {
		return nil, models.NewLeadError(models.ErrCodeInvalidInput, "no lead for domain "+domain+" in this job", nil)
	}
	return lead, nil
}

// respondAIError maps a LeadError to the correct HTTP status and writes a
// structured JSON error response.
func respondAIError(c *gin.Context, err error) {
	var le *models.LeadError
	if !errors.As(err, &le) {
		le = models.NewLeadError(models.ErrCodeInternal, err.Error(), err)
	}

	status := http.StatusInternalServerError
	switch le.Code {
	case models.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case models.ErrCodeLLMDisabled:
		status = http.StatusServiceUnavailable
	case models.ErrCodeLLMRateLimited:
		status = http.StatusTooManyRequests
	case models.ErrCodeLLMAuthFailure, models.ErrCodeLLMFailure:
		status = http.StatusBadGateway
	}

	c.JSON(status, models.TextResponse{Success: false, Error: le.ToDetail()})
}
