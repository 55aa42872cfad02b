package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// scrapeLeadsRequest mirrors the Prospect API request model.
type scrapeLeadsRequest struct {
	Domains []string `json:"domains"`
	MaxAge  int      `json:"max_age_ms,omitempty"`
}

// scrapeLeadsResponse mirrors the Prospect API response model.
type scrapeLeadsResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// resolveDomainsRequest mirrors the Prospect API request model.
type resolveDomainsRequest struct {
	Companies []string `json:"companies"`
}

// summaryRequest mirrors the Prospect API request model.
type summaryRequest struct {
	Domain string `json:"domain"`
}

func main() {
	apiURL := os.Getenv("PROSPECT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("PROSPECT_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "PROSPECT_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"prospect",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	scrapeLeadsTool := mcp.NewTool("scrape_leads",
		mcp.WithDescription("Scrape a list of company domains for contact data (emails, phones, social links), enrich missing fields via web search, and score each lead 0-100. Waits for the batch to finish and returns all leads."),
		mcp.WithArray("domains",
			mcp.Required(),
			mcp.Description("List of company domains to process, e.g. [\"acme.com\", \"globex.io\"]"),
		),
	)
	s.AddTool(scrapeLeadsTool, handleScrapeLeads(apiURL, apiKey))

	getLeadsTool := mcp.NewTool("get_leads",
		mcp.WithDescription("Fetch the current status and results of a previously started lead scrape job."),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("The job ID returned by scrape_leads"),
		),
	)
	s.AddTool(getLeadsTool, handleGetLeads(apiURL, apiKey))

	resolveDomainsTool := mcp.NewTool("resolve_domains",
		mcp.WithDescription("Resolve company names to their official website domains via web search. Directory and social-network sites are skipped."),
		mcp.WithArray("companies",
			mcp.Required(),
			mcp.Description("List of company names, e.g. [\"Acme Inc\", \"Globex\"]"),
		),
	)
	s.AddTool(resolveDomainsTool, handleResolveDomains(apiURL, apiKey))

	companySummaryTool := mcp.NewTool("company_summary",
		mcp.WithDescription("Generate a short LLM summary of a scraped company. Requires the job ID of a finished scrape and one of its domains."),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("The job ID of a finished scrape_leads run"),
		),
		mcp.WithString("domain",
			mcp.Required(),
			mcp.Description("The company domain inside that job"),
		),
	)
	s.AddTool(companySummaryTool, handleCompanySummary(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the Prospect API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// apiGet sends a GET request to the Prospect API and returns the response body.
func apiGet(ctx context.Context, client *http.Client, apiURL, apiKey, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// pollJobCompletion polls a job endpoint until status is no longer "processing" or context is cancelled.
func pollJobCompletion(ctx context.Context, client *http.Client, apiURL, apiKey, endpoint string) ([]byte, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			body, err := apiGet(ctx, client, apiURL, apiKey, endpoint)
			if err != nil {
				return nil, fmt.Errorf("poll request failed: %w", err)
			}

			// Quick check if still processing.
			var status struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(body, &status); err != nil {
				return nil, fmt.Errorf("parse poll status: %w", err)
			}

			if status.Status != "processing" {
				return body, nil
			}
		}
	}
}

func handleScrapeLeads(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		domains, err := request.RequireStringSlice("domains")
		if err != nil {
			return mcp.NewToolResultError("domains is required and must be a list of strings"), nil
		}

		body, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/leads/scrape", scrapeLeadsRequest{Domains: domains})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var resp scrapeLeadsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if resp.Error != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %s", resp.Error.Code, resp.Error.Message)), nil
		}
		if resp.ID == "" {
			return mcp.NewToolResultError("API did not return a job ID: " + string(body)), nil
		}

		final, err := pollJobCompletion(ctx, client, apiURL, apiKey, "/api/v1/leads/"+resp.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("waiting for job %s: %v", resp.ID, err)), nil
		}

		return mcp.NewToolResultText(string(final)), nil
	}
}

func handleGetLeads(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jobID, err := request.RequireString("job_id")
		if err != nil {
			return mcp.NewToolResultError("job_id is required"), nil
		}

		body, err := apiGet(ctx, client, apiURL, apiKey, "/api/v1/leads/"+jobID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func handleResolveDomains(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		companies, err := request.RequireStringSlice("companies")
		if err != nil {
			return mcp.NewToolResultError("companies is required and must be a list of strings"), nil
		}

		body, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/domains/resolve", resolveDomainsRequest{Companies: companies})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func handleCompanySummary(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jobID, err := request.RequireString("job_id")
		if err != nil {
			return mcp.NewToolResultError("job_id is required"), nil
		}
		domain, err := request.RequireString("domain")
		if err != nil {
			return mcp.NewToolResultError("domain is required"), nil
		}

		body, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/leads/"+jobID+"/summary", summaryRequest{Domain: domain})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}
