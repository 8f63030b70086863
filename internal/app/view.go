package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkoller/agentdesk/internal/session"
	"github.com/mkoller/agentdesk/internal/ui"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.showWrapup {
		sections = append(sections, m.renderWrapup())
	} else {
		sections = append(sections, m.renderMainContent())
		if m.showTransfer {
			sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
			sections = append(sections, m.renderTransferOverlay())
		}
	}

	if m.errorMessage != "" {
		sections = append(sections, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.errorMessage))
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("AGENTDESK")

	var caller string
	if m.call.PhoneNumber != "" {
		caller = "  " + m.call.PhoneNumber + " (" + m.call.Direction + ")"
	}

	var who string
	if m.customer != nil {
		who = ui.DimStyle.Render("  " + m.customer.Name)
		if n := len(m.recentCalls); n > 0 {
			who += ui.DimStyle.Render(fmt.Sprintf(" · %d recent calls", n))
		}
	}
	return title + ui.DimStyle.Render(caller) + who
}

func (m Model) renderStatusBar() string {
	var dot string
	switch m.effectiveStatus() {
	case session.StatusConnected:
		dot = ui.LiveDotStyle.Render("● LIVE")
	case session.StatusOnHold:
		dot = ui.HoldDotStyle.Render("● HOLD")
	case session.StatusRinging:
		dot = ui.RingDotStyle.Render("◌ RINGING")
	case session.StatusEnded, session.StatusCompleted:
		dot = ui.EndedDotStyle.Render("○ ENDED")
	default:
		dot = ui.DimStyle.Render(m.statusText)
	}

	clock := ui.TimestampStyle.Render("  " + formatDuration(m.clock.Elapsed()))

	var pending string
	if a := m.control.Pending(); a != "" {
		pending = "  " + ui.SpinnerStyle.Render("⟳ "+string(a))
	}

	var channel string
	if m.pushDegraded && !m.wrappingUp {
		channel = "  " + ui.DimStyle.Render("[poll-only]")
	}

	var deep string
	if m.deepGate.Fired() && m.deepResult == nil && !m.wrappingUp {
		deep = "  " + ui.SpinnerStyle.Render("⟳ background check")
	}

	return dot + clock + pending + channel + deep
}

func (m Model) renderMainContent() string {
	assistW := m.assistPanelWidth()
	transcriptW := m.width - assistW - 1
	contentH := m.contentHeight()

	transcript := m.renderTranscriptPanel(transcriptW, contentH)
	assist := m.renderAssistPanel(assistW, contentH)

	tLines := strings.Split(transcript, "\n")
	aLines := strings.Split(assist, "\n")
	divider := ui.DividerStyle.Render("│")

	var rows []string
	for i := 0; i < contentH; i++ {
		var tl, al string
		if i < len(tLines) {
			tl = tLines[i]
		}
		if i < len(aLines) {
			al = aLines[i]
		}
		rows = append(rows, padRight(tl, transcriptW)+divider+al)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderTranscriptPanel(width, height int) string {
	lines := []string{ui.PanelTitleStyle.Render("TRANSCRIPT")}

	if len(m.entries) == 0 {
		lines = append(lines, ui.DimStyle.Render("  Waiting for conversation..."))
	} else {
		prefixWidth := 20
		textWidth := max(10, width-prefixWidth-2)
		indent := strings.Repeat(" ", prefixWidth)

		var display []string
		for _, e := range m.entries {
			ts := ui.TimestampStyle.Render(e.Timestamp.Format("[15:04:05]"))
			var who string
			if e.Speaker == "agent" {
				who = ui.AgentLabelStyle.Render("[AGENT] ")
			} else {
				who = ui.CallerLabelStyle.Render("[CALLER]")
			}
			wrapped := wrapText(e.Text, textWidth)
			display = append(display, ts+" "+who+" "+wrapped[0])
			for _, wl := range wrapped[1:] {
				display = append(display, indent+wl)
			}
		}

		// Tail the transcript; live scrollback is not worth the keys.
		start := 0
		if len(display) > height-1 {
			start = len(display) - (height - 1)
		}
		for _, l := range display[start:] {
			lines = append(lines, "  "+l)
		}
	}

	return strings.Join(clampLines(lines, height), "\n")
}

func (m Model) renderAssistPanel(width, height int) string {
	lines := []string{ui.PanelTitleStyle.Render("ASSIST")}

	if pb := m.assist.Playbook(); pb != nil {
		lines = append(lines, ui.PlaybookStyle.Render(" ▸ "+pb.Name))
	}

	sugs := m.assist.Suggestions()
	if len(sugs) == 0 {
		lines = append(lines, ui.DimStyle.Render("  Suggestions appear as the"))
		lines = append(lines, ui.DimStyle.Render("  conversation develops"))
	}
	for i, s := range sugs {
		marker := "  "
		if i == m.suggestionIndex {
			marker = ui.SelectedStyle.Render("> ")
		}
		title := s.Title
		if s.Source == "coaching" {
			title = ui.CoachingStyle.Render("tip: " + title)
		}
		lines = append(lines, truncateToWidth(marker+title, width))
		for _, wl := range wrapText(s.Body, max(10, width-4)) {
			lines = append(lines, ui.DimStyle.Render("    "+wl))
		}
	}

	if m.deepResult != nil {
		lines = append(lines, "")
		lines = append(lines, ui.InsightStyle.Render(" ✦ BACKGROUND"))
		for _, in := range m.deepResult.Insights {
			lines = append(lines, truncateToWidth("  "+in.Title, width))
			for _, wl := range wrapText(in.Detail, max(10, width-4)) {
				lines = append(lines, ui.DimStyle.Render("    "+wl))
			}
		}
	}

	return strings.Join(clampLines(lines, height), "\n")
}

func (m Model) renderTransferOverlay() string {
	lines := []string{ui.PanelTitleActiveStyle.Render("TRANSFER TO")}

	if len(m.roster) == 0 {
		lines = append(lines, ui.DimStyle.Render("  Loading roster..."))
	}
	for i, t := range m.roster {
		marker := "  "
		if i == m.rosterIndex {
			marker = ui.SelectedStyle.Render("> ")
		}
		entry := fmt.Sprintf("%s%s (x%s) %s", marker, t.Name, t.Extension, t.Status)
		if !t.Online() {
			entry = ui.OfflineStyle.Render(entry)
		}
		lines = append(lines, entry)
	}
	lines = append(lines, ui.DimStyle.Render("  enter warm · b blind · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m Model) renderWrapup() string {
	lines := []string{ui.PanelTitleActiveStyle.Render("WRAP-UP")}

	switch session.WrapupStatus(m.wrapupRec.Status) {
	case session.WrapupReady:
		if m.wrapupRec.Disposition != "" {
			lines = append(lines, "  Disposition: "+m.wrapupRec.Disposition)
		}
		if m.wrapupRec.FollowUp != "" {
			lines = append(lines, "  Follow-up:   "+m.wrapupRec.FollowUp)
		}
	case session.WrapupError:
		lines = append(lines, ui.ErrorTextStyle.Render("  Summary failed: "+m.wrapup.Error()))
		lines = append(lines, ui.DimStyle.Render("  Press r to retry"))
	default:
		lines = append(lines, ui.SpinnerStyle.Render("  ⟳ Summarizing call..."))
	}

	lines = append(lines, "")
	noteTitle := "NOTE"
	if m.editingNote {
		noteTitle = "NOTE (editing, esc to finish)"
	}
	lines = append(lines, ui.PanelTitleStyle.Render("  "+noteTitle))
	note := m.draftNote
	if m.editingNote {
		note += "▌"
	}
	if note == "" {
		note = ui.DimStyle.Render("press i to write a note")
	}
	for _, para := range strings.Split(note, "\n") {
		for _, wl := range wrapText(para, max(10, m.width-4)) {
			lines = append(lines, "  "+wl)
		}
	}

	return strings.Join(clampLines(lines, m.contentHeight()), "\n")
}

func (m Model) renderFooter() string {
	var parts []string
	add := func(key, desc string) {
		parts = append(parts, ui.FooterKeyStyle.Render(key)+ui.FooterDescStyle.Render(" "+desc))
	}

	switch {
	case m.showWrapup:
		if m.wrapup.Error() != "" {
			add("r", "Retry")
		}
		add("i", "Edit note")
		add("ctrl+s", "Save")
	case m.showTransfer:
		add("j/k", "Nav")
		add("enter", "Warm")
		add("b", "Blind")
		add("esc", "Cancel")
	default:
		if m.control.OnHold() {
			add("h", "Resume")
		} else {
			add("h", "Hold")
		}
		add("t", "Transfer")
		add("e", "End")
		add("j/k", "Nav")
		add("u", "Use")
		add("x", "Dismiss")
	}
	add("q", "Quit")
	return strings.Join(parts, "  ")
}

func (m Model) assistPanelWidth() int {
	if m.width == 0 {
		return 34
	}
	return max(24, m.width*38/100)
}

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// header(1) + status(1) + divider(1) + error(1) + footer(1) + padding
	return max(5, m.height-6)
}

// Helpers

func formatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func clampLines(lines []string, height int) []string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return lines
}

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
