package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prospectkit/prospect/export"
	"github.com/prospectkit/prospect/models"
	"github.com/prospectkit/prospect/pipeline"
	"github.com/prospectkit/prospect/webhook"
)

// jobStore holds all in-flight and completed scrape jobs.
var jobStore sync.Map

func init() {
	// Background goroutine to expire jobs older than 1 hour.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-1 * time.Hour).Unix()
			jobStore.Range(func(key, value any) bool {
				job := value.(*models.ScrapeJob)
				if job.CreatedAt < cutoff {
					jobStore.Delete(key)
					sessionStore.Range(func(skey, _ any) bool {
						if jobID, _, ok := splitSessionKey(skey.(string)); ok && jobID == job.ID {
							sessionStore.Delete(skey)
						}
						return true
					})
				}
				return true
			})
		}
	}()
}

// PostScrape returns a handler for POST /api/v1/leads/scrape.
// It validates the request, registers a job, and launches the pipeline in
// the background. The response carries the job ID for polling.
func PostScrape(runner *pipeline.Runner, webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeLeadsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		jobID := "job-" + randomID()
		job := &models.ScrapeJob{
			ID:        jobID,
			Status:    models.JobStatusProcessing,
			Total:     len(req.Domains),
			Webhook:   req.WebhookURL,
			CreatedAt: time.Now().Unix(),
		}
		jobStore.Store(jobID, job)

		go runJob(runner, job, req, webhookSecret)

		c.JSON(http.StatusOK, models.ScrapeLeadsResponse{
			ID:     jobID,
			Status: job.Status,
			Total:  job.Total,
		})
	}
}

// GetJob returns a handler for GET /api/v1/leads/:id.
func GetJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		job, ok := loadJob(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "job not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, models.JobStatusResponse{
			ID:        job.ID,
			Status:    job.Status,
			Completed: job.Completed,
			Total:     job.Total,
			Outcomes:  job.Outcomes,
		})
	}
}

// ExportJob returns a handler for GET /api/v1/leads/:id/export.
// It streams the job's leads as a CSV attachment.
func ExportJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		job, ok := loadJob(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "job not found",
				},
			})
			return
		}

		if job.Status == models.JobStatusProcessing {
			c.JSON(http.StatusConflict, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "job is still processing",
				},
			})
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "leads-"+job.ID+".csv"))
		if err := export.WriteCSV(c.Writer, job.Outcomes); err != nil {
			slog.Error("csv export failed", "job_id", job.ID, "error", err)
		}
	}
}

// runJob executes the pipeline for one job and notifies the webhook, if any.
func runJob(runner *pipeline.Runner, job *models.ScrapeJob, req models.ScrapeLeadsRequest, webhookSecret string) {
	outcomes := runner.Run(context.Background(), req.Domains, req.MaxAge, func(completed int) {
		job.Completed = completed
	})
	job.Outcomes = outcomes

	failed := 0
	for _, o := range outcomes {
		if o == nil || o.Error != nil {
			failed++
		}
	}
	switch {
	case failed == job.Total:
		job.Status = models.JobStatusFailed
	case failed > 0:
		job.Status = models.JobStatusPartial
	default:
		job.Status = models.JobStatusCompleted
	}
	job.Completed = job.Total

	slog.Info("scrape job finished",
		"id", job.ID,
		"status", job.Status,
		"failed", failed,
		"total", job.Total,
	)

	if job.Webhook != "" {
		webhook.DeliverAsync(job.Webhook, webhookSecret, &webhook.Event{
			Type:      "job.completed",
			JobID:     job.ID,
			Timestamp: time.Now().Unix(),
			Data: models.JobStatusResponse{
				ID:        job.ID,
				Status:    job.Status,
				Completed: job.Completed,
				Total:     job.Total,
				Outcomes:  job.Outcomes,
			},
		})
	}
}

// loadJob fetches a job from the store by ID.
func loadJob(id string) (*models.ScrapeJob, bool) {
	val, ok := jobStore.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*models.ScrapeJob), true
}

// randomID generates a short random hex string for job IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
