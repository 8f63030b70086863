package session

import "time"

// WrapupPollInterval is the re-fetch cadence while the wrap-up record is
// still being produced.
const WrapupPollInterval = 5 * time.Second

// WrapupStatus is the summarization service's record status.
type WrapupStatus string

const (
	WrapupPendingTranscript WrapupStatus = "pending_transcript"
	WrapupPendingProcessing WrapupStatus = "pending_processing"
	WrapupReady             WrapupStatus = "ready"
	WrapupError             WrapupStatus = "error"
)

// Pending reports whether the record is still being produced.
func (s WrapupStatus) Pending() bool {
	return s == WrapupPendingTranscript || s == WrapupPendingProcessing
}

// WrapupPoller drives post-call summary retrieval: fetch when the wrap-up
// view first opens, re-fetch every WrapupPollInterval while the service
// reports a pending status, halt on ready or error. Error is manually
// retryable; retry simply re-requests and lets the service's own status
// decide what happens next.
type WrapupPoller struct {
	opened   bool
	status   WrapupStatus
	errorMsg string
}

// Open marks the wrap-up view opened. It returns true exactly once, when the
// first fetch should be issued.
func (p *WrapupPoller) Open() bool {
	if p.opened {
		return false
	}
	p.opened = true
	return true
}

// Apply records a fetched record status and returns true when another fetch
// should be scheduled after WrapupPollInterval.
func (p *WrapupPoller) Apply(s WrapupStatus) bool {
	p.status = s
	if s != WrapupError {
		p.errorMsg = ""
	}
	return s.Pending()
}

// Fail records a fetch failure. Polling halts; the error stays visible until
// the agent retries.
func (p *WrapupPoller) Fail(msg string) {
	p.status = WrapupError
	p.errorMsg = msg
}

// Retry returns true when a manual re-fetch should be issued.
func (p *WrapupPoller) Retry() bool {
	if !p.opened {
		return false
	}
	p.errorMsg = ""
	return true
}

// ShouldPoll reports whether a poll tick firing now should fetch. Guards
// against ticks that outlive the pending state.
func (p *WrapupPoller) ShouldPoll() bool {
	return p.opened && p.status.Pending()
}

// Status returns the last known record status.
func (p *WrapupPoller) Status() WrapupStatus { return p.status }

// Opened reports whether the wrap-up view has been opened.
func (p *WrapupPoller) Opened() bool { return p.opened }

// Error returns the persistent fetch error, or "".
func (p *WrapupPoller) Error() string { return p.errorMsg }
