// Package client is an HTTP client for the licensing API, used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/licomply/licomply/internal/report"
	"github.com/licomply/licomply/internal/rules"
	"github.com/licomply/licomply/internal/snapshot"
)

// Client is an HTTP client for the licensing API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// MatchResult is the decoded body of POST /api/match.
type MatchResult struct {
	OK      bool                  `json:"ok"`
	Input   rules.BusinessProfile `json:"input"`
	Matched []rules.Rule          `json:"matched"`
	Error   string                `json:"error,omitempty"`
}

// GenerateResult is the decoded body of POST /api/generate-report.
type GenerateResult struct {
	OK     bool   `json:"ok"`
	Used   string `json:"used"`
	Report string `json:"report"`
	Error  string `json:"error,omitempty"`
}

// ReportResult is the decoded body of POST /api/report.
type ReportResult struct {
	OK     bool          `json:"ok"`
	Report report.Report `json:"report"`
	Error  string        `json:"error,omitempty"`
}

// Match evaluates a profile against the server's rule set.
func (c *Client) Match(ctx context.Context, profile rules.BusinessProfile) (*MatchResult, error) {
	var out MatchResult
	if err := c.post(ctx, "/api/match", profile, &out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("match failed: %s", out.Error)
	}
	return &out, nil
}

// GenerateReport requests a report, narrative when the server has it enabled.
func (c *Client) GenerateReport(ctx context.Context, profile rules.BusinessProfile) (*GenerateResult, error) {
	var out GenerateResult
	if err := c.post(ctx, "/api/generate-report", profile, &out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("report failed: %s", out.Error)
	}
	return &out, nil
}

// Report requests the structured deterministic report.
func (c *Client) Report(ctx context.Context, profile rules.BusinessProfile) (*ReportResult, error) {
	var out ReportResult
	if err := c.post(ctx, "/api/report", profile, &out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("report failed: %s", out.Error)
	}
	return &out, nil
}

// Snapshot fetches the current rule set.
func (c *Client) Snapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/rules/snapshot", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var snap snapshot.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &snap, nil
}

// UpsertRule creates or updates a rule (admin key required).
func (c *Client) UpsertRule(ctx context.Context, rule rules.Rule) error {
	var out struct {
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}
	if err := c.post(ctx, "/v1/rules", rule, &out); err != nil {
		return err
	}
	if !out.OK {
		return fmt.Errorf("upsert failed: %s", out.Error)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, bodyBytes)
}
