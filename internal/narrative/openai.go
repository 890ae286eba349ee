package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/licomply/licomply/internal/rules"
)

const (
	// systemPrompt fixes the assistant persona and report language.
	systemPrompt = "You are a regulatory assistant for Israeli businesses. Answer in Hebrew, be concise and actionable."

	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	maxTokens   = 900
	temperature = 0.2
)

// ErrEmptyCompletion is returned when the service answers 200 with no usable
// choice.
var ErrEmptyCompletion = errors.New("narrative: empty completion")

// OpenAIClient generates reports through the OpenAI chat-completions API.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// Option configures an OpenAIClient.
type Option func(*OpenAIClient)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(c *OpenAIClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at a different API host, e.g. a test server
// or a compatible proxy.
func WithBaseURL(u string) Option {
	return func(c *OpenAIClient) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *OpenAIClient) {
		if h != nil {
			c.httpc = h
		}
	}
}

// NewOpenAIClient creates a narrative generator backed by the OpenAI API.
func NewOpenAIClient(apiKey string, opts ...Option) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate requests a concise actionable Hebrew report for the profile and
// its matched rules. The caller's ctx bounds the call; any transport, status,
// or decoding problem comes back as an error for the fallback path to absorb.
func (c *OpenAIClient) Generate(ctx context.Context, profile rules.BusinessProfile, matched []rules.Rule) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("narrative: marshal profile: %w", err)
	}
	matchedJSON, err := json.MarshalIndent(matched, "", "  ")
	if err != nil {
		return "", fmt.Errorf("narrative: marshal rules: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(
				"Business info:\n%s\n\nMatched rules:\n%s\n\nOutput a concise actionable Hebrew report in clear language.",
				profileJSON, matchedJSON)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("narrative: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("narrative: create request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("narrative: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("narrative generation failed")
		return "", fmt.Errorf("narrative: unexpected status %d: %s", resp.StatusCode, snippet)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("narrative: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	log.Debug().
		Str("request_id", requestID).
		Dur("duration", time.Since(start)).
		Msg("narrative generated")
	return parsed.Choices[0].Message.Content, nil
}
