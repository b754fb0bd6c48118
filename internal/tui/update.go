package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/matchmaker/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case commands.ErrMsg:
		m.setError(msg.Err)
		return m, nil

	case commands.StatusMsg:
		m.setStatus(msg.Msg)
		return m, commands.ClearStatusAfter(statusDuration)

	case commands.ClearStatusMsg:
		if !m.nowFunc().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case commands.ExportedMsg:
		m.setStatus(fmt.Sprintf("Exported %s (%d bytes)", msg.Path, msg.Bytes))
		return m, commands.ClearStatusAfter(statusDuration)

	case commands.CopiedMsg:
		m.setStatus("Copied to clipboard")
		return m, commands.ClearStatusAfter(statusDuration)

	case commands.SellerListMsg:
		added, dups := m.ws.ImportSellers(msg.Text)
		m.setStatus(fmt.Sprintf("Imported %d sellers from %s, %d already present", len(added), msg.Path, dups))
		return m, commands.ClearStatusAfter(statusDuration)

	case commands.ArchivedMsg:
		m.setStatus(fmt.Sprintf("Archived export #%d (%d meetings) to %s", msg.ID, msg.Meetings, msg.Path))
		return m, commands.ClearStatusAfter(statusDuration)
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}
