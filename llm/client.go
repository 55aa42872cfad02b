// Package llm is a lightweight OpenAI-compatible chat-completions client.
// Any provider speaking the OpenAI API works (OpenAI, DeepSeek, Groq,
// local gateways).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/prospectkit/prospect/config"
	"github.com/prospectkit/prospect/models"
)

// Client calls the configured chat-completions endpoint. Construct once at
// process start and pass by reference; there is no package-level state.
type Client struct {
	httpClient *http.Client
	cfg        config.LLMConfig
}

// NewClient creates a Client from the LLM configuration. Pass a nil
// httpClient to use a default one with the configured timeout.
func NewClient(cfg config.LLMConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{httpClient: httpClient, cfg: cfg}
}

// Enabled reports whether the client has an API key to work with.
func (c *Client) Enabled() bool { return c.cfg.Enabled() }

// chatMessage is one turn of an OpenAI chat conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the chat completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the minimal chat completion response we need.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatErrorResponse captures an API error from the LLM provider.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Generate sends a single free-text prompt and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, []chatMessage{{Role: "user", Content: prompt}})
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	if !c.Enabled() {
		return "", models.NewLeadError(models.ErrCodeLLMDisabled, "no LLM API key configured", nil)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", models.NewLeadError(models.ErrCodeLLMFailure, "LLM request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", models.NewLeadError(models.ErrCodeLLMFailure, "failed to read LLM response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyError(resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", models.NewLeadError(models.ErrCodeLLMFailure, "failed to parse LLM response", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", models.NewLeadError(models.ErrCodeLLMFailure, "LLM returned no choices", nil)
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// classifyError maps HTTP status codes to appropriate error codes.
func classifyError(statusCode int, body []byte) *models.LeadError {
	var errResp chatErrorResponse
	msg := "LLM API error"
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return models.NewLeadError(models.ErrCodeLLMAuthFailure, msg, nil)
	case statusCode == http.StatusTooManyRequests:
		return models.NewLeadError(models.ErrCodeLLMRateLimited, msg, nil)
	default:
		return models.NewLeadError(models.ErrCodeLLMFailure, fmt.Sprintf("LLM API returned %d: %s", statusCode, msg), nil)
	}
}
