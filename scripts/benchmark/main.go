// Command benchmark runs a batch of domains through a live Prospect API
// and reports per-domain timing, extraction coverage, and lead scores.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// CLI flags
var (
	apiURL  = flag.String("api-url", "http://localhost:8080", "Prospect API base URL")
	apiKey  = flag.String("api-key", "", "API key for authenticated requests")
	domains = flag.String("domains", "example.com,go.dev,github.com", "Comma-separated domains to scrape")
	output  = flag.String("output", "benchmark-results.json", "JSON output file path")
)

// --- Request / Response types (mirrors models package) ---

type scrapeRequest struct {
	Domains []string `json:"domains"`
}

type scrapeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

type jobResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
	Outcomes  []outcome `json:"outcomes"`
}

type outcome struct {
	Domain string       `json:"domain"`
	Lead   *lead        `json:"lead"`
	Error  *errorDetail `json:"error,omitempty"`
}

type lead struct {
	Domain      string   `json:"domain"`
	Emails      []string `json:"emails"`
	Phones      []string `json:"phones"`
	SocialLinks []string `json:"social_links"`
	Title       string   `json:"title"`
	Revenue     string   `json:"revenue"`
	Founders    string   `json:"founders"`
	Score       int      `json:"lead_score"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Benchmark result types ---

type domainResult struct {
	Domain      string `json:"domain"`
	Score       int    `json:"score"`
	Emails      int    `json:"emails"`
	Phones      int    `json:"phones"`
	SocialLinks int    `json:"social_links"`
	HasTitle    bool   `json:"has_title"`
	HasRevenue  bool   `json:"has_revenue"`
	HasFounders bool   `json:"has_founders"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

type benchmarkReport struct {
	Timestamp string         `json:"timestamp"`
	APIURL    string         `json:"api_url"`
	JobID     string         `json:"job_id"`
	TotalMs   int64          `json:"total_ms"`
	Results   []domainResult `json:"results"`
}

func main() {
	flag.Parse()

	domainList := splitDomains(*domains)

	fmt.Println("=== Prospect Benchmark ===")
	fmt.Printf("API URL:  %s\n", *apiURL)
	fmt.Printf("Domains:  %d\n", len(domainList))
	fmt.Printf("Output:   %s\n", *output)
	fmt.Println()

	// Quick connectivity check.
	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure Prospect is running (e.g. make run)\n")
		os.Exit(1)
	}

	start := time.Now()
	job, err := runBatch(domainList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	totalMs := time.Since(start).Milliseconds()

	report := benchmarkReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		APIURL:    *apiURL,
		JobID:     job.ID,
		TotalMs:   totalMs,
	}
	for _, o := range job.Outcomes {
		report.Results = append(report.Results, toResult(o))
	}

	fmt.Printf("Job %s finished: %s in %dms\n\n", job.ID, job.Status, totalMs)
	printTable(report.Results)

	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func splitDomains(raw string) []string {
	var out []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func checkAPI(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/api/v1/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// runBatch submits the scrape job and polls until it leaves "processing".
func runBatch(domainList []string) (*jobResponse, error) {
	bodyBytes, err := json.Marshal(scrapeRequest{Domains: domainList})
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	req, err := http.NewRequest("POST", *apiURL+"/api/v1/leads/scrape", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var sr scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	if sr.ID == "" {
		return nil, fmt.Errorf("no job ID in response (status %d)", resp.StatusCode)
	}

	for {
		time.Sleep(2 * time.Second)

		jr, err := fetchJob(client, sr.ID)
		if err != nil {
			return nil, err
		}
		fmt.Printf("  %d/%d done\n", jr.Completed, jr.Total)
		if jr.Status != "processing" {
			return jr, nil
		}
	}
}

func fetchJob(client *http.Client, id string) (*jobResponse, error) {
	req, err := http.NewRequest("GET", *apiURL+"/api/v1/leads/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll failed: %w", err)
	}
	defer resp.Body.Close()

	var jr jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&jr); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	return &jr, nil
}

func toResult(o outcome) domainResult {
	dr := domainResult{Domain: o.Domain}
	if o.Error != nil {
		dr.Error = o.Error.Message
		return dr
	}
	if o.Lead == nil {
		dr.Error = "no lead returned"
		return dr
	}

	dr.Success = true
	dr.Score = o.Lead.Score
	dr.Emails = len(o.Lead.Emails)
	dr.Phones = len(o.Lead.Phones)
	dr.SocialLinks = len(o.Lead.SocialLinks)
	dr.HasTitle = o.Lead.Title != ""
	dr.HasRevenue = o.Lead.Revenue != ""
	dr.HasFounders = o.Lead.Founders != ""
	return dr
}

func printTable(results []domainResult) {
	fmt.Println(strings.Repeat("─", 85))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Domain\tScore\tEmails\tPhones\tSocial\tRevenue\tFounders\n")
	fmt.Fprintf(w, "──────\t─────\t──────\t──────\t──────\t───────\t────────\n")

	for _, r := range results {
		if !r.Success {
			fmt.Fprintf(w, "%s\tFAILED\t-\t-\t-\t-\t-\n", truncate(r.Domain, 40))
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			truncate(r.Domain, 40),
			r.Score,
			r.Emails,
			r.Phones,
			r.SocialLinks,
			yesNo(r.HasRevenue),
			yesNo(r.HasFounders),
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 85))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
