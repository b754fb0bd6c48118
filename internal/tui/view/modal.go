package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render a modal.
type ModalStyles struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Hint  lipgloss.Style
}

// RenderModal renders a titled box of text lines. Lines wider than maxW are
// truncated and at most maxH body lines are shown.
func RenderModal(title string, lines []string, hint string, styles ModalStyles, maxW, maxH int) string {
	frameW, _ := styles.Frame.GetFrameSize()
	contentW := max(maxW-frameW, 1)

	body := lines
	if maxH > 0 && len(body) > maxH {
		body = append(append([]string(nil), body[:maxH-1]...), "…")
	}
	rendered := make([]string, len(body))
	for i, line := range body {
		rendered[i] = styles.Body.Render(Truncate(line, contentW))
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(Truncate(title, contentW)))
	if len(rendered) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(rendered, "\n"))
	}
	if hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Hint.Render(Truncate(hint, contentW)))
	}
	return styles.Frame.Render(b.String())
}
