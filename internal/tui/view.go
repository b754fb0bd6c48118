package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/tui/view"
)

const (
	emptyCell    = "·"
	modalHint    = "esc close · y copy"
	maxPromptLen = 6
)

// View renders the TUI.
func (m Model) View() string {
	if len(m.ws.Buyers()) == 0 && m.width > 0 && m.height > 0 && m.mode != ModeModal {
		return m.renderEmpty()
	}

	state := view.ViewState{
		Width:       m.width,
		Height:      m.height,
		BaseContent: m.renderAppContent(),
		ShowModal:   m.mode == ModeModal,
		ModalBg:     m.styles.colorModalBg,
	}
	if state.ShowModal {
		state.ModalContent = view.RenderModal(m.modalTitle, m.modalLines, modalHint, m.styles.Modal,
			max(m.width*3/4, 20), max(m.height-8, 3))
	}
	return view.Render(state)
}

// renderEmpty shows the title, a hint and the footer so /buyer stays usable.
func (m Model) renderEmpty() string {
	hint := m.styles.MetaStyle.Render("No buyers yet. Press / and use /buyer NAME, COUNTRY, BLOCK or /import FILE.")
	gridH := m.gridHeight()
	body := view.PlaceBox(m.width, gridH, lipgloss.Center, hint, m.styles.colorBg)
	content := lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), body, view.RenderFooter(m.footerState()))
	return view.PadLinesWithBackground(content, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderAppContent() string {
	grid := view.RenderGrid(view.GridViewState{
		InnerW:       m.width,
		GridH:        m.gridHeight(),
		Headers:      view.HeaderLabels(m.ws.Sessions()),
		HeaderStyles: m.headerStyles(),
		Content:      m.tableContent(),
		Offset:       m.offset,
		BorderStyle:  m.styles.BorderStyle,
		Bg:           m.styles.colorBg,
	})
	content := lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), grid, view.RenderFooter(m.footerState()))
	return view.PadLinesWithBackground(content, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render("matchmaker")
	meta := fmt.Sprintf("  %d buyers · %d sellers · %d sessions · %s", len(m.ws.Buyers()), len(m.ws.Sellers()), len(m.ws.Sessions()), m.mode)
	if m.eventPath != "" {
		meta += " · " + m.eventPath
	}
	line := title + m.styles.MetaStyle.Render(meta)
	return view.Truncate(line, m.width)
}

func (m Model) headerStyles() []lipgloss.Style {
	sessions := m.ws.Sessions()
	styles := make([]lipgloss.Style, 0, len(sessions)+1)
	styles = append(styles, m.styles.HeaderStyle)
	for _, s := range sessions {
		styles = append(styles, m.styles.blockHeaderStyle(s.Block))
	}
	return styles
}

// tableContent builds every row of the grid with its cell styles. Conflicted
// sellers win over block colors; the cursor and the carried cell win over both.
func (m Model) tableContent() view.TableContent {
	buyers := m.ws.Buyers()
	sessions := m.ws.Sessions()
	sched := m.ws.Schedule()
	conflicts := m.ws.Conflicts()
	names := event.SellerNames(m.ws.Sellers())

	content := view.TableContent{
		Rows:       make([][]string, len(buyers)),
		CellStyles: make([][]lipgloss.Style, len(buyers)),
	}
	for r, buyer := range buyers {
		row := make([]string, 0, len(sessions)+1)
		styles := make([]lipgloss.Style, 0, len(sessions)+1)
		row = append(row, view.BuyerLabel(buyer))
		styles = append(styles, m.styles.buyerStyle(buyer.Block))

		for c, sess := range sessions {
			seller, _ := sched.Get(buyer.ID, sess.ID)
			text := emptyCell
			if seller != schedule.Empty {
				text = names[seller]
			}

			var style lipgloss.Style
			switch {
			case sess.Block != buyer.Block:
				style = m.styles.CellOutOfBlockStyle
				if seller == schedule.Empty {
					text = ""
				}
			case seller == schedule.Empty:
				style = m.styles.CellEmptyStyle
			case conflicts.Has(sess.ID, seller):
				style = m.styles.CellConflictStyle
			default:
				style = m.styles.filledStyle(buyer.Block)
			}
			if m.mode == ModeCarry && m.carry == (schedule.Cell{BuyerID: buyer.ID, SessionID: sess.ID}) {
				style = m.styles.CarryStyle
			}
			if m.cursor.Row == r && m.cursor.Col == c {
				style = m.styles.CursorStyle
			}
			row = append(row, text)
			styles = append(styles, style)
		}
		content.Rows[r] = row
		content.CellStyles[r] = styles
	}
	return content
}

func (m Model) footerState() view.FooterState {
	state := view.FooterState{
		InnerW:      m.width,
		StatsText:   m.statsText(),
		StatusText:  m.statusMsg,
		HelpText:    m.helpText(),
		ShowPrompt:  m.mode == ModePrompt,
		StatsStyle:  m.styles.StatsStyle,
		StatusStyle: m.styles.StatusStyle,
		HelpStyle:   m.styles.HelpStyle,
		PromptStyle: m.styles.PromptFocusedStyle,
	}
	if m.statusErr {
		state.StatusStyle = m.styles.StatusErrorStyle
	}
	if state.ShowPrompt {
		frameW, _ := state.PromptStyle.GetFrameSize()
		contentW := max(m.width-frameW, 1)
		lines := view.PromptLines(view.PromptState{
			Value:  m.prompt.Value(),
			Cursor: "█",
			Active: true,
		}, contentW, promptCommands)
		state.PromptLines = view.ClampPromptLines(lines, maxPromptLen, contentW)
	}
	return state
}

func (m Model) statsText() string {
	parts := []string{m.fillText()}
	if n := m.ws.Conflicts().Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d conflicts", n))
	}
	if buyer, sess, ok := m.cursorCell(); ok {
		parts = append(parts, fmt.Sprintf("%s @ %s", buyer.Name, sess.Label()))
	}
	return strings.Join(parts, " · ")
}

func (m Model) helpText() string {
	switch m.mode {
	case ModeCarry:
		return "move to a cell · space drop · esc cancel"
	case ModePrompt:
		return "enter run · tab complete · esc close"
	case ModeModal:
		return modalHint
	default:
		return "space pick · a auto · u undo · r redo · s summary · c conflicts · / command · ? help · q quit"
	}
}

// gridHeight is what is left for the grid once title and footer are laid out.
func (m Model) gridHeight() int {
	return max(m.height-1-view.FooterHeight(m.footerState()), 0)
}

// visibleRows is how many buyer rows the grid can show at once.
func (m Model) visibleRows() int {
	return view.VisibleRows(m.gridHeight())
}
