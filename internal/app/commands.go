package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/mkoller/agentdesk/internal/api"
	"github.com/mkoller/agentdesk/internal/config"
	"github.com/mkoller/agentdesk/internal/db"
	"github.com/mkoller/agentdesk/internal/push"
	"github.com/mkoller/agentdesk/internal/session"
)

// fetchCallCmd fetches the call record. Used for the initial load and every
// poll tick.
func fetchCallCmd(c *api.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		rec, err := c.GetCall(context.Background(), sessionID)
		return CallRecordMsg{Record: rec, Err: err}
	}
}

// pollTickCmd schedules the next status poll.
func pollTickCmd() tea.Cmd {
	return tea.Tick(statusPollInterval, func(time.Time) tea.Msg {
		return PollTickMsg{}
	})
}

// clockTickCmd schedules the next duration tick.
func clockTickCmd() tea.Cmd {
	return tea.Tick(clockTickInterval, func(time.Time) tea.Msg {
		return ClockTickMsg{}
	})
}

// connectPushCmd dials the transcript/coaching push channel.
func connectPushCmd(pushURL, sessionID string) tea.Cmd {
	return func() tea.Msg {
		client, err := push.Dial(pushURL, sessionID)
		if err != nil {
			return PushErrorMsg{Err: err}
		}
		return PushConnectedMsg{Client: client}
	}
}

// readPushCmd reads the next push event.
func readPushCmd(client *push.Client) tea.Cmd {
	return func() tea.Msg {
		ev, err := client.ReadEvent()
		if err != nil {
			return PushErrorMsg{Err: err}
		}
		return PushEventMsg{Event: ev}
	}
}

// quietTimerCmd schedules the debouncer's quiet-period timer for gen.
func quietTimerCmd(gen int) tea.Cmd {
	return tea.Tick(session.QuietPeriod, func(time.Time) tea.Msg {
		return DebounceFiredMsg{Gen: gen}
	})
}

// assistCmd runs the two-stage assist request: playbook match first, then
// suggestion generation carrying the matched playbook id. The length-mark
// travels with the result so stale completions can be discarded.
func assistCmd(c *api.Client, mark int, transcript, direction, profileSummary string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		match, err := c.MatchPlaybook(ctx, api.PlaybookMatchRequest{
			Transcript: transcript,
			Direction:  direction,
		})
		if err != nil {
			return AssistResultMsg{Mark: mark, Err: err}
		}

		req := api.SuggestionRequest{Transcript: transcript, ProfileSummary: profileSummary}
		var pb *session.Playbook
		if match.Found {
			req.PlaybookID = match.ID
			pb = &session.Playbook{ID: match.ID, Name: match.Name, Content: match.Content}
		}

		items, err := c.GenerateSuggestions(ctx, req)
		if err != nil {
			return AssistResultMsg{Mark: mark, Err: err}
		}

		sugs := make([]session.Suggestion, 0, len(items))
		for _, it := range items {
			sugs = append(sugs, session.Suggestion{ID: it.ID, Title: it.Title, Body: it.Body})
		}
		return AssistResultMsg{Mark: mark, Playbook: pb, Suggestions: sugs}
	}
}

// lookupCustomerCmd resolves caller identity from the phone number.
func lookupCustomerCmd(c *api.Client, phone string) tea.Cmd {
	return func() tea.Msg {
		prof, err := c.LookupCustomer(context.Background(), phone)
		return CustomerMsg{Profile: prof, Err: err}
	}
}

// recentCallsCmd loads local call history for the caller's number.
func recentCallsCmd(store *db.Store, phone string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		calls, err := store.RecentCalls(phone, recentCallsShown)
		if err != nil {
			config.LogWarn("recent calls lookup failed: %v", err)
			return RecentCallsMsg{}
		}
		return RecentCallsMsg{Calls: calls}
	}
}

// deepThinkCmd dispatches the one-time deep background analysis.
func deepThinkCmd(c *api.Client, customerID, phone, sessionID string) tea.Cmd {
	return func() tea.Msg {
		res, err := c.DeepAnalysis(context.Background(), api.DeepAnalysisRequest{
			CustomerID: customerID,
			Phone:      phone,
			SessionID:  sessionID,
		})
		return DeepThinkMsg{Result: res, Err: err}
	}
}

// controlCmd issues one call-control request.
func controlCmd(c *api.Client, sessionID string, action session.ControlAction, target string, blind bool) tea.Cmd {
	return func() tea.Msg {
		req := api.PatchCallRequest{Action: string(action)}
		if action == session.ActionTransfer {
			req.TargetExtension = target
			req.Blind = api.BoolPtr(blind)
		}
		resp, err := c.PatchCall(context.Background(), sessionID, req)
		return ControlResultMsg{Action: action, Resp: resp, Err: err}
	}
}

// rosterCmd fetches the transfer-target presence roster.
func rosterCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		targets, err := c.GetRoster(context.Background())
		return RosterMsg{Targets: targets, Err: err}
	}
}

// wrapupFetchCmd fetches the wrap-up record.
func wrapupFetchCmd(c *api.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		rec, err := c.GetWrapup(context.Background(), sessionID)
		return WrapupMsg{Record: rec, Err: err}
	}
}

// wrapupTickCmd schedules the next wrap-up poll.
func wrapupTickCmd() tea.Cmd {
	return tea.Tick(session.WrapupPollInterval, func(time.Time) tea.Msg {
		return WrapupTickMsg{}
	})
}

// clearTransientErrorCmd fires after a delay to clear the transient error of
// generation gen.
func clearTransientErrorCmd(gen int) tea.Cmd {
	return tea.Tick(transientErrorTTL, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{Gen: gen}
	})
}

// reconnectPushCmd schedules a push reconnect attempt with exponential
// backoff.
func reconnectPushCmd(attempt int) tea.Cmd {
	delay := time.Duration(1<<min(attempt, 4)) * time.Second // 1s, 2s, 4s, 8s, 16s cap
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return PushReconnectTickMsg{}
	})
}

// telemetryCmd records a suggestion outcome. Fire-and-forget: failures are
// logged and ignored.
func telemetryCmd(c *api.Client, suggestionID, playbookID, action string) tea.Cmd {
	return func() tea.Msg {
		ev := api.TelemetryEvent{
			EventID:      uuid.NewString(),
			SuggestionID: suggestionID,
			PlaybookID:   playbookID,
			Action:       action,
		}
		if err := c.SendTelemetry(context.Background(), ev); err != nil {
			config.LogWarn("telemetry send failed: %v", err)
		}
		return nil
	}
}

// saveDraftCmd persists the wrap-up draft note locally.
func saveDraftCmd(store *db.Store, sessionID, note string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if err := store.SaveDraft(sessionID, note); err != nil {
			config.LogWarn("draft save failed: %v", err)
		}
		return nil
	}
}

// loadDraftCmd loads a previously persisted draft note.
func loadDraftCmd(store *db.Store, sessionID string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		note, err := store.Draft(sessionID)
		if err != nil {
			config.LogWarn("draft load failed: %v", err)
			return draftLoadedMsg{}
		}
		return draftLoadedMsg{note: note}
	}
}

// logCallCmd records the completed call in the local call log.
func logCallCmd(store *db.Store, entry db.CallLogEntry) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if err := store.SaveCallLog(entry); err != nil {
			config.LogWarn("call log save failed: %v", err)
		}
		return nil
	}
}
