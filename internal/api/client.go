package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks JSON over HTTP to the assist backend.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client for the given base URL. The key is sent as a
// bearer token when non-empty.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(data))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetCall fetches the call record. Used for the initial load and the 3s
// status poll.
func (c *Client) GetCall(ctx context.Context, sessionID string) (CallRecord, error) {
	var rec CallRecord
	err := c.do(ctx, http.MethodGet, "/v1/calls/"+url.PathEscape(sessionID), nil, &rec)
	return rec, err
}

// PatchCall issues a call-control action (hold, resume, transfer, end).
func (c *Client) PatchCall(ctx context.Context, sessionID string, req PatchCallRequest) (PatchCallResponse, error) {
	var resp PatchCallResponse
	err := c.do(ctx, http.MethodPatch, "/v1/calls/"+url.PathEscape(sessionID), req, &resp)
	return resp, err
}

// MatchPlaybook picks a conversation playbook for the transcript so far.
func (c *Client) MatchPlaybook(ctx context.Context, req PlaybookMatchRequest) (PlaybookMatch, error) {
	var match PlaybookMatch
	err := c.do(ctx, http.MethodPost, "/v1/assist/playbook", req, &match)
	return match, err
}

// GenerateSuggestions asks for ranked agent talking points.
func (c *Client) GenerateSuggestions(ctx context.Context, req SuggestionRequest) ([]SuggestionItem, error) {
	var out struct {
		Suggestions []SuggestionItem `json:"suggestions"`
	}
	err := c.do(ctx, http.MethodPost, "/v1/assist/suggestions", req, &out)
	return out.Suggestions, err
}

// SendTelemetry records a suggestion outcome. Callers treat this as
// fire-and-forget and only log failures.
func (c *Client) SendTelemetry(ctx context.Context, ev TelemetryEvent) error {
	return c.do(ctx, http.MethodPost, "/v1/assist/telemetry", ev, nil)
}

// LookupCustomer resolves the caller's identity and profile summary from the
// phone number.
func (c *Client) LookupCustomer(ctx context.Context, phone string) (CustomerProfile, error) {
	var prof CustomerProfile
	err := c.do(ctx, http.MethodGet, "/v1/customers/lookup?phone="+url.QueryEscape(phone), nil, &prof)
	return prof, err
}

// DeepAnalysis mines the customer's prior interactions. One-shot per call.
func (c *Client) DeepAnalysis(ctx context.Context, req DeepAnalysisRequest) (DeepAnalysisResult, error) {
	var res DeepAnalysisResult
	err := c.do(ctx, http.MethodPost, "/v1/customers/deep-analysis", req, &res)
	return res, err
}

// GetWrapup fetches the post-call summarization record.
func (c *Client) GetWrapup(ctx context.Context, sessionID string) (WrapupRecord, error) {
	var rec WrapupRecord
	err := c.do(ctx, http.MethodGet, "/v1/calls/"+url.PathEscape(sessionID)+"/wrapup", nil, &rec)
	return rec, err
}

// GetRoster fetches the transfer-target presence roster.
func (c *Client) GetRoster(ctx context.Context) ([]TransferTarget, error) {
	var out struct {
		Targets []TransferTarget `json:"targets"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/presence/roster", nil, &out)
	return out.Targets, err
}
