package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prospectkit/prospect/export"
	"github.com/prospectkit/prospect/models"
	"github.com/prospectkit/prospect/search"
)

// ResolveDomains returns a handler for POST /api/v1/domains/resolve.
// Company names are resolved to websites via web search; directory and
// social-network hosts are skipped.
func ResolveDomains(searcher search.Searcher, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResolveDomainsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		domains, errs := search.ResolveAll(c.Request.Context(), searcher, req.Companies, limit)

		results := make([]models.ResolvedCompany, len(req.Companies))
		for i, company := range req.Companies {
			results[i] = models.ResolvedCompany{Company: company, Domain: domains[i]}
			if errs[i] != nil {
				results[i].Error = resolveErrorDetail(errs[i])
			}
		}

		c.JSON(http.StatusOK, models.ResolveDomainsResponse{Results: results})
	}
}

// ImportDomains returns a handler for POST /api/v1/domains/import.
// Accepts a multipart upload of a CSV or XLSX file with a "Domain" column
// and returns the extracted domain list, ready for a scrape request.
func ImportDomains() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "missing multipart file field \"file\"",
				},
			})
			return
		}
		defer file.Close()

		domains, err := export.ParseUpload(header.Filename, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusOK, models.ImportDomainsResponse{
			Domains: domains,
			Total:   len(domains),
		})
	}
}

func resolveErrorDetail(err error) *models.ErrorDetail {
	code := models.ErrCodeInternal
	if errors.Is(err, search.ErrNoResult) {
		code = models.ErrCodeSearchNoResult
	}
	return &models.ErrorDetail{Code: code, Message: err.Error()}
}
