package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetCall(t *testing.T) {
	started := time.Now().Add(-90 * time.Second).UTC().Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/v1/calls/sess-1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Errorf("auth = %q", got)
		}
		json.NewEncoder(w).Encode(CallRecord{
			SessionID:   "sess-1",
			PhoneNumber: "+15551230000",
			Direction:   "inbound",
			Status:      "connected",
			StartedAt:   started,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-1")
	rec, err := c.GetCall(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("GetCall: %v", err)
	}
	if rec.Status != "connected" {
		t.Errorf("status = %q", rec.Status)
	}
	if rec.PhoneNumber != "+15551230000" {
		t.Errorf("phone = %q", rec.PhoneNumber)
	}
}

func TestPatchCallSendsAction(t *testing.T) {
	var got PatchCallRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(PatchCallResponse{OK: true, Status: "on_hold"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	resp, err := c.PatchCall(context.Background(), "sess-1", PatchCallRequest{Action: "hold"})
	if err != nil {
		t.Fatalf("PatchCall: %v", err)
	}
	if !resp.OK || resp.Status != "on_hold" {
		t.Errorf("resp = %+v", resp)
	}
	if got.Action != "hold" {
		t.Errorf("sent action = %q", got.Action)
	}
}

func TestPatchCallTransferCarriesTarget(t *testing.T) {
	var got PatchCallRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(PatchCallResponse{OK: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.PatchCall(context.Background(), "sess-1", PatchCallRequest{
		Action:          "transfer",
		TargetExtension: "2204",
		Blind:           BoolPtr(true),
	})
	if err != nil {
		t.Fatalf("PatchCall: %v", err)
	}
	if got.TargetExtension != "2204" {
		t.Errorf("target = %q", got.TargetExtension)
	}
	if got.Blind == nil || !*got.Blind {
		t.Error("blind flag not sent")
	}
}

func TestMatchPlaybookAndSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/assist/playbook":
			var req PlaybookMatchRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Direction != "inbound" {
				t.Errorf("direction = %q", req.Direction)
			}
			json.NewEncoder(w).Encode(PlaybookMatch{Found: true, ID: "pb-claims", Name: "Claims intake"})
		case "/v1/assist/suggestions":
			var req SuggestionRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.PlaybookID != "pb-claims" {
				t.Errorf("playbookId = %q", req.PlaybookID)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"suggestions": []SuggestionItem{{ID: "s1", Title: "Confirm policy number"}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	match, err := c.MatchPlaybook(context.Background(), PlaybookMatchRequest{Transcript: "hi", Direction: "inbound"})
	if err != nil {
		t.Fatalf("MatchPlaybook: %v", err)
	}
	if !match.Found || match.ID != "pb-claims" {
		t.Errorf("match = %+v", match)
	}

	sugs, err := c.GenerateSuggestions(context.Background(), SuggestionRequest{Transcript: "hi", PlaybookID: match.ID})
	if err != nil {
		t.Fatalf("GenerateSuggestions: %v", err)
	}
	if len(sugs) != 1 || sugs[0].ID != "s1" {
		t.Errorf("suggestions = %+v", sugs)
	}
}

func TestLookupCustomerEscapesPhone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("phone"); got != "+1555123" {
			t.Errorf("phone = %q", got)
		}
		json.NewEncoder(w).Encode(CustomerProfile{Found: true, CustomerID: "cust-9", Name: "R. Alvarez"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	prof, err := c.LookupCustomer(context.Background(), "+1555123")
	if err != nil {
		t.Fatalf("LookupCustomer: %v", err)
	}
	if prof.CustomerID != "cust-9" {
		t.Errorf("customerId = %q", prof.CustomerID)
	}
}

func TestGetWrapup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/calls/sess-1/wrapup" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(WrapupRecord{Status: "pending_processing"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	rec, err := c.GetWrapup(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("GetWrapup: %v", err)
	}
	if rec.Status != "pending_processing" {
		t.Errorf("status = %q", rec.Status)
	}
}

func TestGetRoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"targets": []TransferTarget{
			{ID: "a1", Name: "Billing desk", Extension: "2201", Status: "available"},
			{ID: "a2", Name: "Claims desk", Extension: "2202", Status: "offline"},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	targets, err := c.GetRoster(context.Background())
	if err != nil {
		t.Fatalf("GetRoster: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("targets = %d, want 2", len(targets))
	}
	if !targets[0].Online() {
		t.Error("available target should be online")
	}
	if targets[1].Online() {
		t.Error("offline target should not be online")
	}
}

func TestErrorStatusSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "call not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.GetCall(context.Background(), "missing"); err == nil {
		t.Error("expected error for 404")
	}
}
