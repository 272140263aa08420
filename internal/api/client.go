// Package api provides the Gemini generation API client used to translate
// natural language queries into shell commands. It uses the REST
// generateContent endpoint with retry logic for transient failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/oneq-sh/oneq/internal/config"
	"github.com/oneq-sh/oneq/internal/constants"
	"github.com/oneq-sh/oneq/internal/logging"
)

// DefaultBaseURL is the Gemini REST API base URL
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrNetwork marks connectivity failures (DNS, refused connection, timeout)
var ErrNetwork = errors.New("network failure")

// Client defines the interface for the generation API client
type Client interface {
	// Generate sends a prompt and returns the raw model text
	Generate(ctx context.Context, prompt string) (string, error)
}

// Ensure the concrete client implements the interface
var _ Client = (*GeminiClient)(nil)

// generateRequest is the generateContent request body
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the generateContent response body
type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason,omitempty"`
	} `json:"candidates"`
}

// text concatenates all parts of the first candidate
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var out string
	for _, p := range r.Candidates[0].Content.Parts {
		out += p.Text
	}
	return out
}

// geminiErrorResponse represents a Gemini API error
type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// APIError represents an error with status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsAuth reports whether err is an API error caused by a bad or missing key
func IsAuth(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsRateLimit reports whether err is a throttling error
func IsRateLimit(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests
}

// GeminiClient talks to the Gemini generateContent endpoint
type GeminiClient struct {
	httpClient *http.Client
	config     *config.Config
	baseURL    string
}

// NewClient creates a Gemini client from configuration
func NewClient(cfg *config.Config) *GeminiClient {
	transport := http.DefaultTransport
	if cfg.Debug {
		transport = logging.NewLoggingRoundTripper(http.DefaultTransport, logging.DefaultLogger, true)
	}

	return &GeminiClient{
		httpClient: &http.Client{
			Timeout:   constants.DefaultAPITimeout,
			Transport: transport,
		},
		config:  cfg,
		baseURL: DefaultBaseURL,
	}
}

// SetBaseURL overrides the API base URL. Used in tests.
func (c *GeminiClient) SetBaseURL(url string) {
	c.baseURL = url
}

// generateURL builds the full URL for the generateContent call
func (c *GeminiClient) generateURL() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.config.Model)
}

// Generate sends the prompt and returns the raw model text
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// Use retry logic for transient failures
	resp, err := WithRetry(ctx, func() (*generateResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.generateURL(), bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.config.APIKey)

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		defer func() { _ = httpResp.Body.Close() }()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if httpResp.StatusCode != http.StatusOK {
			var errResp geminiErrorResponse
			errMsg := fmt.Sprintf("status code %d", httpResp.StatusCode)
			if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
				errMsg = errResp.Error.Message
			}
			return nil, &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("Gemini API error: %s", errMsg),
			}
		}

		var genResp generateResponse
		if err := json.Unmarshal(body, &genResp); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		return &genResp, nil
	})
	if err != nil {
		return "", err
	}

	return resp.text(), nil
}
