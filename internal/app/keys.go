package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkoller/agentdesk/internal/session"
)

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Note editing captures most keys while active.
	if m.showWrapup && m.editingNote {
		return m.handleNoteKey(msg)
	}

	switch key {
	case KeyQuit, KeyCtrlC:
		if m.push != nil {
			m.push.Close()
		}
		if m.draftNote != "" {
			return m, tea.Sequence(saveDraftCmd(m.store, m.sessionID, m.draftNote), tea.Quit)
		}
		return m, tea.Quit

	case KeyEscape:
		if m.showTransfer {
			m.showTransfer = false
		}
		return m, nil

	case KeyHoldToggle:
		if !m.loaded || m.showWrapup {
			return m, nil
		}
		action := session.ActionHold
		if m.control.OnHold() {
			action = session.ActionResume
		}
		if err := m.control.Begin(action, false); err != nil {
			return m.transientError(err.Error())
		}
		return m, controlCmd(m.api, m.sessionID, action, "", false)

	case KeyEndCall:
		if !m.loaded || m.showWrapup {
			return m, nil
		}
		if err := m.control.Begin(session.ActionEnd, false); err != nil {
			return m.transientError(err.Error())
		}
		return m, controlCmd(m.api, m.sessionID, session.ActionEnd, "", false)

	case KeyTransfer:
		if !m.loaded || m.showWrapup {
			return m, nil
		}
		m.showTransfer = !m.showTransfer
		// The roster is fetched lazily, the first time the overlay opens.
		if m.showTransfer && !m.rosterAsked {
			m.rosterAsked = true
			return m, rosterCmd(m.api)
		}
		return m, nil

	case KeyConfirm, KeyBlindTransfer:
		if !m.showTransfer || m.rosterIndex >= len(m.roster) {
			return m, nil
		}
		target := m.roster[m.rosterIndex]
		if !target.Online() {
			return m, nil
		}
		blind := key == KeyBlindTransfer
		if err := m.control.Begin(session.ActionTransfer, blind); err != nil {
			return m.transientError(err.Error())
		}
		m.showTransfer = false
		return m, controlCmd(m.api, m.sessionID, session.ActionTransfer, target.Extension, blind)

	case KeyDown:
		if m.showTransfer {
			if m.rosterIndex < len(m.roster)-1 {
				m.rosterIndex++
			}
		} else if m.suggestionIndex < len(m.assist.Suggestions())-1 {
			m.suggestionIndex++
		}
		return m, nil

	case KeyUp:
		if m.showTransfer {
			if m.rosterIndex > 0 {
				m.rosterIndex--
			}
		} else if m.suggestionIndex > 0 {
			m.suggestionIndex--
		}
		return m, nil

	case KeyUse, KeyDismiss:
		if m.showTransfer || m.showWrapup {
			return m, nil
		}
		sugs := m.assist.Suggestions()
		if m.suggestionIndex >= len(sugs) {
			return m, nil
		}
		sug := sugs[m.suggestionIndex]
		action := "used"
		if key == KeyDismiss {
			action = "dismissed"
			m.assist.Dismiss(sug.ID)
		} else {
			m.assist.Use(sug.ID)
		}
		if m.suggestionIndex >= len(m.assist.Suggestions()) {
			m.suggestionIndex = max(0, len(m.assist.Suggestions())-1)
		}
		playbookID := ""
		if pb := m.assist.Playbook(); pb != nil {
			playbookID = pb.ID
		}
		return m, telemetryCmd(m.api, sug.ID, playbookID, action)

	case KeyWrapup:
		if m.reconciler != nil && m.reconciler.Terminal() {
			m.showWrapup = true
			if m.wrapup.Open() {
				return m, wrapupFetchCmd(m.api, m.sessionID)
			}
		}
		return m, nil

	case KeyRetry:
		if m.showWrapup && m.wrapup.Error() != "" && m.wrapup.Retry() {
			return m, wrapupFetchCmd(m.api, m.sessionID)
		}
		return m, nil

	case KeyEditNote:
		if m.showWrapup {
			m.editingNote = true
		}
		return m, nil
	}

	return m, nil
}

// handleNoteKey edits the wrap-up draft note.
func (m Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEscape:
		m.editingNote = false
		return m, saveDraftCmd(m.store, m.sessionID, m.draftNote)

	case KeySaveNote:
		return m, saveDraftCmd(m.store, m.sessionID, m.draftNote)

	case KeyBackspace:
		if len(m.draftNote) > 0 {
			runes := []rune(m.draftNote)
			m.draftNote = string(runes[:len(runes)-1])
		}
		return m, nil

	case KeyCtrlC:
		if m.push != nil {
			m.push.Close()
		}
		return m, tea.Sequence(saveDraftCmd(m.store, m.sessionID, m.draftNote), tea.Quit)
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.draftNote += string(msg.Runes)
	case tea.KeySpace:
		m.draftNote += " "
	case tea.KeyEnter:
		m.draftNote += "\n"
	}
	return m, nil
}
