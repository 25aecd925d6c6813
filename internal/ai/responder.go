// Package ai wraps the external generative-AI collaborator behind a narrow
// text-in/text-out interface. The rest of the application never sees the wire
// format; callers treat Generate as an opaque call that may fail and must be
// recovered with a fixed fallback.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Responder produces an assistant reply for a prompt. Implementations must be
// safe for concurrent use and honor the context for cancellation.
type Responder interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client calls a Gemini-style generateContent REST endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

// NewClient builds a Client for the given endpoint. timeout bounds the whole
// HTTP exchange; values <= 0 fall back to 30s.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// generateRequest / generateResponse mirror the minimal subset of the
// generateContent wire format the client needs.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's text. Any
// transport error, non-2xx status, or empty candidate list is returned as an
// error for the caller to recover from.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a bounded slice of the body for the error message.
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ai responder: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ai responder: decode: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("ai responder: empty response")
	}

	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("ai responder: blank candidate text")
	}
	return text, nil
}

// ResponderFunc adapts a function to the Responder interface. Used by tests
// and by wiring code that needs a stub.
type ResponderFunc func(ctx context.Context, prompt string) (string, error)

// Generate implements Responder.
func (f ResponderFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
