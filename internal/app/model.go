// Package app is the live-call dashboard: a bubbletea model that owns all
// session state and coordinates status reconciliation, the transcript
// debouncer, the assist pipeline, the deep-think gate, call control, and
// wrap-up polling. Update runs on a single goroutine; timers and network
// completions arrive as messages and never touch state directly.
package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkoller/agentdesk/internal/api"
	"github.com/mkoller/agentdesk/internal/config"
	"github.com/mkoller/agentdesk/internal/db"
	"github.com/mkoller/agentdesk/internal/push"
	"github.com/mkoller/agentdesk/internal/session"
)

const (
	statusPollInterval = 3 * time.Second
	clockTickInterval  = time.Second
	transientErrorTTL  = 5 * time.Second
	recentCallsShown   = 5
)

// TranscriptEntry is a finalized transcript line for display.
type TranscriptEntry struct {
	Speaker   string
	Text      string
	Timestamp time.Time
	SeqNum    int
}

// Model is the root bubbletea model: the single source of truth for one call
// session.
type Model struct {
	api       *api.Client
	store     *db.Store // nil when the local store is unavailable
	pushURL   string
	sessionID string

	// Call identity and reconciled status
	call       api.CallRecord
	loaded     bool
	reconciler *session.StatusReconciler
	wrappingUp bool
	clock      session.SessionClock

	// Push channel
	push         *push.Client
	pushLive     bool
	pushDegraded bool
	pushAttempt  int

	// Transcript
	entries []TranscriptEntry
	lastSeq int

	// Assist
	debouncer       session.TranscriptDebouncer
	assist          *session.AssistPipeline
	suggestionIndex int

	// Customer enrichment
	customer    *api.CustomerProfile
	recentCalls []db.CallLogEntry
	deepGate    session.DeepThinkGate
	deepResult  *api.DeepAnalysisResult

	// Call control
	control      session.CallControlMachine
	showTransfer bool
	roster       []api.TransferTarget
	rosterAsked  bool
	rosterIndex  int

	// Wrap-up
	wrapup      session.WrapupPoller
	wrapupRec   api.WrapupRecord
	showWrapup  bool
	draftNote   string
	draftSeeded bool
	editingNote bool

	// Errors
	errorMessage   string
	errorTransient bool
	errorGen       int

	// UI state
	statusText    string
	width, height int
}

// New creates a dashboard model for one session id. store may be nil.
func New(client *api.Client, store *db.Store, pushURL, sessionID string) Model {
	return Model{
		api:        client,
		store:      store,
		pushURL:    pushURL,
		sessionID:  sessionID,
		assist:     session.NewAssistPipeline(),
		statusText: "Loading call...",
	}
}

// Init starts the initial load, the push channel, and the periodic timers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchCallCmd(m.api, m.sessionID),
		connectPushCmd(m.pushURL, m.sessionID),
		clockTickCmd(),
		pollTickCmd(),
	)
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CallRecordMsg:
		return m.handleCallRecord(msg)

	case PollTickMsg:
		if m.reconciler != nil && !m.reconciler.PollingActive() {
			return m, nil // terminal: the chain ends here, permanently
		}
		return m, tea.Batch(fetchCallCmd(m.api, m.sessionID), pollTickCmd())

	case ClockTickMsg:
		return m.handleClockTick()

	case PushConnectedMsg:
		if m.wrappingUp {
			// Reconnect raced the call end; the stream is no longer wanted.
			msg.Client.Close()
			return m, nil
		}
		m.push = msg.Client
		m.pushLive = true
		m.pushDegraded = false
		m.pushAttempt = 0
		return m, readPushCmd(m.push)

	case PushErrorMsg:
		m.pushLive = false
		m.pushDegraded = true
		if m.wrappingUp {
			return m, nil
		}
		config.LogWarn("push channel lost, reconnecting: %v", msg.Err)
		return m, reconnectPushCmd(m.pushAttempt)

	case PushReconnectTickMsg:
		if m.wrappingUp || m.pushLive {
			return m, nil
		}
		m.pushAttempt++
		return m, connectPushCmd(m.pushURL, m.sessionID)

	case PushEventMsg:
		cmd := m.handleEvent(msg.Event)
		if !m.pushLive {
			return m, cmd
		}
		return m, tea.Batch(cmd, readPushCmd(m.push))

	case DebounceFiredMsg:
		return m.handleDebounceFired(msg.Gen)

	case AssistResultMsg:
		if msg.Err != nil {
			config.LogWarn("assist pipeline failed at mark %d: %v", msg.Mark, msg.Err)
			return m, nil
		}
		if m.assist.Apply(msg.Mark, msg.Playbook, msg.Suggestions) {
			if n := len(m.assist.Suggestions()); m.suggestionIndex >= n {
				m.suggestionIndex = max(0, n-1)
			}
		}
		return m, nil

	case CustomerMsg:
		if msg.Err != nil {
			config.LogWarn("customer lookup failed: %v", msg.Err)
			return m, nil
		}
		if msg.Profile.Found {
			prof := msg.Profile
			m.customer = &prof
		}
		return m, nil

	case RecentCallsMsg:
		m.recentCalls = msg.Calls
		return m, nil

	case DeepThinkMsg:
		if msg.Err != nil {
			config.LogWarn("deep analysis failed: %v", msg.Err)
			return m, nil
		}
		if msg.Result.Found {
			res := msg.Result
			m.deepResult = &res
		}
		return m, nil

	case ControlResultMsg:
		return m.handleControlResult(msg)

	case RosterMsg:
		if msg.Err != nil {
			m.rosterAsked = false // allow the next open to refetch
			return m.transientError("Could not load transfer targets: " + msg.Err.Error())
		}
		m.roster = msg.Targets
		m.rosterIndex = 0
		return m, nil

	case WrapupMsg:
		return m.handleWrapup(msg)

	case WrapupTickMsg:
		if m.wrapup.ShouldPoll() {
			return m, wrapupFetchCmd(m.api, m.sessionID)
		}
		return m, nil

	case ClearTransientErrorMsg:
		if m.errorTransient && msg.Gen == m.errorGen {
			m.errorMessage = ""
			m.errorTransient = false
			m.control.ClearError()
		}
		return m, nil

	case draftLoadedMsg:
		if msg.note != "" {
			m.draftNote = msg.note
			m.draftSeeded = true
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleCallRecord(msg CallRecordMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		// Poll failures are retried on the next tick.
		config.LogWarn("call record fetch failed: %v", msg.Err)
		return *m, nil
	}

	rec := msg.Record
	var cmds []tea.Cmd
	if !m.loaded {
		m.loaded = true
		m.call = rec
		m.reconciler = session.NewStatusReconciler(session.Status(rec.Status))
		m.reconciler.ObservePoll(session.Status(rec.Status), rec.EndedAt)
		m.statusText = ""
		cmds = append(cmds,
			lookupCustomerCmd(m.api, rec.PhoneNumber),
			recentCallsCmd(m.store, rec.PhoneNumber),
			loadDraftCmd(m.store, m.sessionID),
		)
	} else {
		m.reconciler.ObservePoll(session.Status(rec.Status), rec.EndedAt)
	}

	if m.reconciler.Terminal() {
		cmds = append(cmds, m.onTerminal())
	}
	return *m, tea.Batch(cmds...)
}

func (m *Model) handleClockTick() (Model, tea.Cmd) {
	terminal := m.reconciler != nil && m.reconciler.Terminal()
	if terminal {
		// The clock chain dies with the call; wrap-up has its own timer.
		return *m, nil
	}

	elapsed := m.clock.Tick(clockTickInterval)

	var cmds []tea.Cmd
	customerID := ""
	if m.customer != nil {
		customerID = m.customer.CustomerID
	}
	if m.deepGate.ShouldFire(terminal, customerID, elapsed) {
		cmds = append(cmds, deepThinkCmd(m.api, customerID, m.call.PhoneNumber, m.sessionID))
	}
	cmds = append(cmds, clockTickCmd())
	return *m, tea.Batch(cmds...)
}

func (m *Model) handleDebounceFired(gen int) (Model, tea.Cmd) {
	mark, ok := m.debouncer.Fire(gen)
	if !ok {
		return *m, nil // superseded by newer input
	}
	if m.reconciler != nil && m.reconciler.Terminal() {
		return *m, nil
	}
	if !m.assist.BeginDispatch(mark) {
		return *m, nil
	}
	profile := ""
	if m.customer != nil {
		profile = m.customer.Summary
	}
	return *m, assistCmd(m.api, mark, m.joinedTranscript(), m.call.Direction, profile)
}

func (m *Model) handleControlResult(msg ControlResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil || !msg.Resp.OK {
		reason := msg.Resp.Error
		if msg.Err != nil {
			reason = msg.Err.Error()
		}
		if reason == "" {
			reason = "request rejected"
		}
		m.control.Fail(reason)
		return m.transientError(string(msg.Action) + " failed: " + reason)
	}

	confirmed := m.control.Succeed()
	if confirmed == "" || m.reconciler == nil {
		return *m, nil
	}
	m.reconciler.ObserveLocal(confirmed)
	if m.reconciler.Terminal() {
		return *m, m.onTerminal()
	}
	return *m, nil
}

func (m *Model) handleWrapup(msg WrapupMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.wrapup.Fail(msg.Err.Error())
		return *m, nil
	}

	rec := msg.Record
	m.wrapupRec = rec
	again := m.wrapup.Apply(session.WrapupStatus(rec.Status))
	if rec.Status == string(session.WrapupError) && rec.Error != "" {
		m.wrapup.Fail(rec.Error)
	}

	var cmds []tea.Cmd
	if again {
		cmds = append(cmds, wrapupTickCmd())
	}
	if session.WrapupStatus(rec.Status) == session.WrapupReady {
		if !m.draftSeeded && m.draftNote == "" {
			// Prefer the cleaned summary over the raw one.
			if rec.CleanSummary != "" {
				m.draftNote = rec.CleanSummary
			} else {
				m.draftNote = rec.Summary
			}
			m.draftSeeded = true
		}
		cmds = append(cmds, logCallCmd(m.store, db.CallLogEntry{
			SessionID:    m.sessionID,
			PhoneNumber:  m.call.PhoneNumber,
			Direction:    m.call.Direction,
			Disposition:  rec.Disposition,
			Summary:      m.draftNote,
			StartedAt:    m.call.StartedAt,
			DurationSecs: int(m.clock.Elapsed() / time.Second),
		}))
	}
	return *m, tea.Batch(cmds...)
}

// onTerminal runs once when the effective status first turns terminal: the
// clock freezes, the assist pipeline halts, the push channel closes, and the
// wrap-up view opens and starts polling.
func (m *Model) onTerminal() tea.Cmd {
	if m.wrappingUp {
		return nil
	}
	m.wrappingUp = true

	m.clock.Stop()
	m.assist.Halt()
	if m.push != nil {
		m.push.Close()
	}
	m.pushLive = false
	m.showTransfer = false
	m.showWrapup = true

	if m.wrapup.Open() {
		return wrapupFetchCmd(m.api, m.sessionID)
	}
	return nil
}

// handleEvent processes one push event and returns any resulting command.
func (m *Model) handleEvent(ev push.Event) tea.Cmd {
	switch ev.Event {
	case "segment":
		if ev.Segment == nil || ev.Segment.SequenceNumber <= m.lastSeq {
			return nil // duplicate or replayed segment
		}
		m.lastSeq = ev.Segment.SequenceNumber
		m.entries = append(m.entries, TranscriptEntry{
			Speaker:   ev.Segment.Speaker,
			Text:      ev.Segment.Text,
			Timestamp: ev.Segment.Timestamp,
			SeqNum:    ev.Segment.SequenceNumber,
		})
		if gen, arm := m.debouncer.Observe(len(m.joinedTranscript())); arm {
			return quietTimerCmd(gen)
		}

	case "coaching":
		if ev.Coaching != nil {
			m.assist.AddCoaching(session.Suggestion{
				ID:    ev.Coaching.ID,
				Title: ev.Coaching.Title,
				Body:  ev.Coaching.Body,
			})
		}

	case "status":
		if m.reconciler == nil {
			return nil // push beat the initial record fetch; poll will catch up
		}
		m.reconciler.ObservePush(session.Status(ev.Status))
		if m.reconciler.Terminal() {
			return m.onTerminal()
		}
	}

	return nil
}

func (m *Model) transientError(text string) (Model, tea.Cmd) {
	m.errorMessage = text
	m.errorTransient = true
	m.errorGen++
	return *m, clearTransientErrorCmd(m.errorGen)
}

// joinedTranscript renders the transcript the way the AI services consume
// it; its length is also the debouncer's measure of conversation growth.
func (m Model) joinedTranscript() string {
	var b strings.Builder
	for _, e := range m.entries {
		b.WriteString(e.Speaker)
		b.WriteString(": ")
		b.WriteString(e.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) effectiveStatus() session.Status {
	if m.reconciler == nil {
		return ""
	}
	return m.reconciler.Effective()
}
