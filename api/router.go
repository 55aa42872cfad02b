package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prospectkit/prospect/api/handler"
	"github.com/prospectkit/prospect/api/middleware"
	"github.com/prospectkit/prospect/config"
	"github.com/prospectkit/prospect/llm"
	"github.com/prospectkit/prospect/pipeline"
	"github.com/prospectkit/prospect/search"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(runner *pipeline.Runner, searcher search.Searcher, llmClient *llm.Client, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health, no auth required.
	v1.GET("/health", handler.Health(cfg.Pool.Workers, startTime))

	// Protected group: auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Leads
	protected.POST("/leads/scrape", handler.PostScrape(runner, cfg.Webhook.Secret))
	protected.GET("/leads/:id", handler.GetJob())
	protected.GET("/leads/:id/export", handler.ExportJob())

	// Domains
	protected.POST("/domains/resolve", handler.ResolveDomains(searcher, cfg.Pool.Workers))
	protected.POST("/domains/import", handler.ImportDomains())

	// AI surface
	protected.POST("/leads/:id/summary", handler.Summary(llmClient))
	protected.POST("/leads/:id/email", handler.ColdEmail(llmClient))
	protected.POST("/leads/:id/chat", handler.Chat(llmClient))

	return r
}
