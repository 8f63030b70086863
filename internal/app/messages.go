package app

import (
	"github.com/mkoller/agentdesk/internal/api"
	"github.com/mkoller/agentdesk/internal/db"
	"github.com/mkoller/agentdesk/internal/push"
	"github.com/mkoller/agentdesk/internal/session"
)

// CallRecordMsg carries a call-record fetch result (initial load and the 3s
// status poll). Errors are swallowed by the poll loop.
type CallRecordMsg struct {
	Record api.CallRecord
	Err    error
}

// PollTickMsg drives the status poll cadence.
type PollTickMsg struct{}

// ClockTickMsg drives the 1s duration clock.
type ClockTickMsg struct{}

// PushConnectedMsg is sent when the push channel is established.
type PushConnectedMsg struct {
	Client *push.Client
}

// PushEventMsg wraps a streamed transcript/coaching event.
type PushEventMsg struct {
	Event push.Event
}

// PushErrorMsg is sent when the push channel drops. Status tracking degrades
// to poll-only until a reconnect succeeds.
type PushErrorMsg struct {
	Err error
}

// PushReconnectTickMsg fires when the backoff delay before the next push
// reconnect attempt elapses.
type PushReconnectTickMsg struct{}

// DebounceFiredMsg is the quiet-period timer firing for a debounce
// generation. Stale generations are ignored.
type DebounceFiredMsg struct {
	Gen int
}

// AssistResultMsg carries a completed two-stage assist run tagged with the
// length-mark it was dispatched at.
type AssistResultMsg struct {
	Mark        int
	Playbook    *session.Playbook
	Suggestions []session.Suggestion
	Err         error
}

// CustomerMsg carries the customer-intelligence lookup result.
type CustomerMsg struct {
	Profile api.CustomerProfile
	Err     error
}

// RecentCallsMsg carries local call history for the caller's number.
type RecentCallsMsg struct {
	Calls []db.CallLogEntry
}

// DeepThinkMsg carries the one-time deep-analysis result.
type DeepThinkMsg struct {
	Result api.DeepAnalysisResult
	Err    error
}

// ControlResultMsg acknowledges a call-control action.
type ControlResultMsg struct {
	Action session.ControlAction
	Resp   api.PatchCallResponse
	Err    error
}

// RosterMsg carries the transfer-target presence roster.
type RosterMsg struct {
	Targets []api.TransferTarget
	Err     error
}

// WrapupMsg carries a wrap-up record fetch result.
type WrapupMsg struct {
	Record api.WrapupRecord
	Err    error
}

// WrapupTickMsg drives the 5s wrap-up poll while the record is pending.
type WrapupTickMsg struct{}

// ClearTransientErrorMsg clears the visible call-control error after its
// timeout. Gen guards against a timer armed for an earlier error wiping a
// newer one.
type ClearTransientErrorMsg struct {
	Gen int
}

// draftLoadedMsg carries the persisted wrap-up draft, if any.
type draftLoadedMsg struct{ note string }
