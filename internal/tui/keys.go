package tui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/tui/commands"
	"github.com/javiermolinar/matchmaker/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logKeyPress(m.log, msg, m.mode)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeCarry:
		return m.handleCarryKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNavigation moves the cursor and reports whether msg was a movement key.
func (m *Model) handleNavigation(msg tea.KeyMsg) bool {
	rows := len(m.ws.Buyers())
	cols := len(m.ws.Sessions())

	switch msg.String() {
	case "h", "left":
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case "l", "right":
		if m.cursor.Col < cols-1 {
			m.cursor.Col++
		}
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "j", "down":
		if m.cursor.Row < rows-1 {
			m.cursor.Row++
		}
	case "g", "home":
		m.cursor.Row = 0
	case "G", "end":
		m.cursor.Row = max(rows-1, 0)
	case "0":
		m.cursor.Col = 0
	case "$":
		m.cursor.Col = max(cols-1, 0)
	case "pgdown", "ctrl+d":
		m.cursor.Row = min(m.cursor.Row+max(m.visibleRows(), 1), max(rows-1, 0))
	case "pgup", "ctrl+u":
		m.cursor.Row = max(m.cursor.Row-max(m.visibleRows(), 1), 0)
	default:
		return false
	}
	m.ensureCursorVisible()
	logCursorMove(m.log, m.cursor, msg.String())
	return true
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleNavigation(msg) {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case " ", "enter":
		return m.pickUp()

	case "a":
		warnings, err := m.ws.AutoSchedule()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.clampCursor()
		if len(warnings) == 0 {
			m.setStatus(fmt.Sprintf("Auto-scheduled: %s", m.fillText()))
			return m, commands.ClearStatusAfter(statusDuration)
		}
		lines := make([]string, 0, len(warnings))
		for _, w := range warnings {
			lines = append(lines, w.String())
		}
		m.setStatus(fmt.Sprintf("Auto-scheduled with %d warnings", len(warnings)))
		m.openModal("Auto-schedule warnings", lines)
		return m, nil

	case "u":
		if !m.ws.Undo() {
			m.setStatus("Nothing to undo")
			return m, commands.ClearStatusAfter(statusDuration)
		}
		m.clampCursor()
		m.setStatus("Undone")
		return m, commands.ClearStatusAfter(statusDuration)

	case "r", "ctrl+r":
		if !m.ws.Redo() {
			m.setStatus("Nothing to redo")
			return m, commands.ClearStatusAfter(statusDuration)
		}
		m.clampCursor()
		m.setStatus("Redone")
		return m, commands.ClearStatusAfter(statusDuration)

	case "y":
		var buf bytes.Buffer
		if err := m.ws.WriteCSV(&buf); err != nil {
			m.setError(err)
			return m, nil
		}
		return m, commands.CopyToClipboard(buf.String())

	case "s":
		m.openModal("Summary", m.summaryLines())
		return m, nil

	case "c":
		m.openModal("Conflicts", m.conflictLines())
		return m, nil

	case "p":
		m.openModal("Preferences", m.preferenceLines())
		return m, nil

	case "?":
		m.openModal("Help", helpLines())
		return m, nil

	case "/", ":":
		m.setMode(ModePrompt, "open prompt")
		m.prompt.SetValue("/")
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()
	}

	return m, nil
}

// pickUp starts carrying the seller under the cursor.
func (m Model) pickUp() (tea.Model, tea.Cmd) {
	buyer, sess, ok := m.cursorCell()
	if !ok {
		m.setStatus("Add buyers with /buyer first")
		return m, nil
	}
	seller, _ := m.ws.Schedule().Get(buyer.ID, sess.ID)
	if seller == schedule.Empty {
		m.setError(event.Reject("move", event.ErrEmptySource))
		return m, nil
	}
	m.carry = schedule.Cell{BuyerID: buyer.ID, SessionID: sess.ID}
	m.setMode(ModeCarry, "pick up")
	m.setStatus(fmt.Sprintf("Carrying %s from %s, space to drop, esc to cancel", m.sellerName(seller), sess.Name))
	return m, nil
}

// handleCarryKeys handles keys while a seller is picked up.
func (m Model) handleCarryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleNavigation(msg) {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.setMode(ModeNormal, "cancel carry")
		m.setStatus("Move cancelled")
		return m, commands.ClearStatusAfter(statusDuration)

	case " ", "enter":
		buyer, sess, ok := m.cursorCell()
		if !ok {
			m.setMode(ModeNormal, "drop outside grid")
			return m, nil
		}
		target := schedule.Cell{BuyerID: buyer.ID, SessionID: sess.ID}
		if target == m.carry {
			m.setMode(ModeNormal, "drop on source")
			m.setStatus("Move cancelled")
			return m, commands.ClearStatusAfter(statusDuration)
		}
		if err := m.ws.Move(m.carry, target); err != nil {
			// Stay in carry mode so the user can pick another target.
			m.setError(err)
			return m, nil
		}
		m.setMode(ModeNormal, "drop")
		if n := m.ws.Conflicts().Len(); n > 0 {
			m.setStatus(fmt.Sprintf("Moved, %d conflicts", n))
		} else {
			m.setStatus("Moved")
		}
		return m, commands.ClearStatusAfter(statusDuration)
	}

	return m, nil
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q", " ":
		m.modalTitle = ""
		m.modalLines = nil
		m.setMode(ModeNormal, "close modal")
	case "y":
		if len(m.modalLines) > 0 {
			return m, commands.CopyToClipboard(strings.Join(m.modalLines, "\n"))
		}
	}
	return m, nil
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setMode(ModeNormal, "close prompt")
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil

	case "enter":
		value := m.prompt.Value()
		m.setMode(ModeNormal, "submit prompt")
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m.handlePromptSubmit(value)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	if m.prompt.Value() == "" {
		m.setMode(ModeNormal, "prompt cleared")
		m.prompt.Blur()
	}
	return m, cmd
}

func (m Model) sellerName(id string) string {
	for _, s := range m.ws.Sellers() {
		if s.ID == id {
			return s.Name
		}
	}
	return "?"
}

var errNoArgument = errors.New("missing argument")
