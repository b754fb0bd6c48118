package view

import "github.com/charmbracelet/lipgloss"

// FooterState holds the lines and styles of the footer.
type FooterState struct {
	InnerW      int
	StatsText   string
	StatusText  string
	HelpText    string
	PromptLines []string
	ShowPrompt  bool
	StatsStyle  lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style
}

// FooterHeight returns how many lines RenderFooter produces for state.
func FooterHeight(state FooterState) int {
	h := 3
	if state.ShowPrompt {
		_, frameH := state.PromptStyle.GetFrameSize()
		h += max(len(state.PromptLines), 1) + frameH
	}
	return h
}

// RenderFooter renders stats, the optional prompt, status and help lines.
func RenderFooter(state FooterState) string {
	lines := []string{footerLine(state.InnerW, state.StatsStyle, state.StatsText)}
	if state.ShowPrompt {
		lines = append(lines, RenderPrompt(state.InnerW, state.PromptStyle, state.PromptLines))
	}
	lines = append(lines,
		footerLine(state.InnerW, state.StatusStyle, state.StatusText),
		footerLine(state.InnerW, state.HelpStyle, state.HelpText),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(width-frameW, 0)
	return style.Width(contentWidth).Render(Truncate(content, contentWidth))
}
