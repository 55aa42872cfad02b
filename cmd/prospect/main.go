package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prospectkit/prospect/api"
	"github.com/prospectkit/prospect/cache"
	"github.com/prospectkit/prospect/config"
	"github.com/prospectkit/prospect/content"
	"github.com/prospectkit/prospect/enrich"
	"github.com/prospectkit/prospect/llm"
	"github.com/prospectkit/prospect/pipeline"
	"github.com/prospectkit/prospect/scraper"
	"github.com/prospectkit/prospect/search"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("prospect starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"workers", cfg.Pool.Workers,
		"llm", cfg.LLM.Enabled(),
	)

	// ── 3. Build the scraping pipeline ──────────────────────────────
	fetcher := scraper.NewFetcher(cfg.Scraper)
	searcher := search.NewDDG(cfg.Search)
	enricher := enrich.New(searcher, fetcher)
	renderer := content.NewRenderer()

	sc := scraper.New(fetcher,
		scraper.WithEnricher(enricher),
		scraper.WithContentRenderer(renderer),
	)

	llmClient := llm.NewClient(cfg.LLM, nil)
	if !llmClient.Enabled() {
		slog.Warn("no LLM API key configured: tagging, summaries, emails and chat are disabled")
	}

	cc := cache.New(cfg.Cache.MaxEntries)

	runner := &pipeline.Runner{
		Scraper: sc,
		Cache:   cc,
		Workers: cfg.Pool.Workers,
	}
	if llmClient.Enabled() {
		runner.Tagger = llmClient
	}

	// ── 4. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(runner, searcher, llmClient, cfg, startTime)

	// ── 5. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 6. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("prospect stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
