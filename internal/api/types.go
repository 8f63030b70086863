// Package api is the HTTP client for the agentdesk assist backend: call
// records and control, playbook matching, suggestion generation, customer
// intelligence, deep analysis, wrap-up records, the presence roster, and
// fire-and-forget telemetry.
package api

import "time"

// CallRecord is the authoritative call-record service view of a call.
type CallRecord struct {
	SessionID   string     `json:"sessionId"`
	PhoneNumber string     `json:"phoneNumber"`
	Direction   string     `json:"direction"` // "inbound" or "outbound"
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
}

// PatchCallRequest is a call-control action sent to the call-record service.
type PatchCallRequest struct {
	Action          string `json:"action"` // hold, resume, transfer, end
	TargetExtension string `json:"targetExtension,omitempty"`
	Blind           *bool  `json:"blind,omitempty"`
}

// PatchCallResponse acknowledges a call-control action.
type PatchCallResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// PlaybookMatchRequest asks the AI service to pick a conversation playbook.
type PlaybookMatchRequest struct {
	Transcript string `json:"transcript"`
	Direction  string `json:"direction"`
}

// PlaybookMatch is the playbook-match result; Found false means no playbook
// fits the conversation yet.
type PlaybookMatch struct {
	Found    bool   `json:"found"`
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Content  string `json:"content,omitempty"`
}

// SuggestionRequest asks for ranked agent talking points.
type SuggestionRequest struct {
	Transcript     string `json:"transcript"`
	ProfileSummary string `json:"profileSummary,omitempty"`
	PlaybookID     string `json:"playbookId,omitempty"`
}

// SuggestionItem is one ranked talking point.
type SuggestionItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// TelemetryEvent records a suggestion outcome. Fire-and-forget.
type TelemetryEvent struct {
	EventID      string `json:"eventId"`
	SuggestionID string `json:"suggestionId,omitempty"`
	PlaybookID   string `json:"playbookId,omitempty"`
	Action       string `json:"action"` // used or dismissed
	Feedback     string `json:"feedback,omitempty"`
}

// CustomerProfile is the customer-intelligence view of the caller.
type CustomerProfile struct {
	Found          bool   `json:"found"`
	CustomerID     string `json:"customerId,omitempty"`
	Name           string `json:"name,omitempty"`
	Summary        string `json:"summary,omitempty"`
	CustomerSince  int    `json:"customerSince,omitempty"` // year
	PolicyCount    int    `json:"policyCount,omitempty"`
	LongtimeCaller bool   `json:"longtimeCaller,omitempty"`
}

// DeepAnalysisRequest asks the deep-analysis service to mine prior
// interactions for the current caller.
type DeepAnalysisRequest struct {
	CustomerID string `json:"customerId"`
	Phone      string `json:"phone"`
	SessionID  string `json:"sessionId"`
}

// Insight is one deep-analysis finding.
type Insight struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// DeepAnalysisResult is the optional insight bundle mined from prior
// interactions.
type DeepAnalysisResult struct {
	Found     bool      `json:"found"`
	Narrative string    `json:"narrative,omitempty"`
	Insights  []Insight `json:"insights,omitempty"`
}

// WrapupRecord is the post-call summarization record.
type WrapupRecord struct {
	Status       string            `json:"status"` // pending_transcript, pending_processing, ready, error
	Summary      string            `json:"summary,omitempty"`
	CleanSummary string            `json:"cleanSummary,omitempty"`
	Disposition  string            `json:"disposition,omitempty"`
	FollowUp     string            `json:"followUp,omitempty"`
	Extraction   map[string]string `json:"extraction,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// TransferTarget is one presence-roster entry.
type TransferTarget struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Status    string `json:"status"` // available, busy, offline
}

// Online reports whether the target can receive a transfer.
func (t TransferTarget) Online() bool { return t.Status != "offline" }

// BoolPtr returns a pointer to b. Convenience for building patch requests.
func BoolPtr(b bool) *bool { return &b }
