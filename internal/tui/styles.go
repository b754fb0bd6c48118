package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/tui/theme"
	"github.com/javiermolinar/matchmaker/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg      lipgloss.Color
	colorModalBg lipgloss.Color

	TitleStyle lipgloss.Style
	MetaStyle  lipgloss.Style

	// Grid
	BorderStyle          lipgloss.Style
	HeaderStyle          lipgloss.Style
	HeaderMorningStyle   lipgloss.Style
	HeaderAfternoonStyle lipgloss.Style
	BuyerMorningStyle    lipgloss.Style
	BuyerAfternoonStyle  lipgloss.Style

	// Cells
	CellEmptyStyle      lipgloss.Style
	CellMorningStyle    lipgloss.Style
	CellAfternoonStyle  lipgloss.Style
	CellOutOfBlockStyle lipgloss.Style
	CellConflictStyle   lipgloss.Style
	CursorStyle         lipgloss.Style
	CarryStyle          lipgloss.Style // source cell while a seller is picked up

	// Footer
	StatsStyle         lipgloss.Style
	StatusStyle        lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	HelpStyle          lipgloss.Style
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style

	Modal view.ModalStyles
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)
	cell := base.Padding(0, 1)

	return &Styles{
		colorBg:      p.Bg,
		colorModalBg: p.Modal.Bg,

		TitleStyle: base.Foreground(p.Accent).Bold(true),
		MetaStyle:  base.Foreground(p.FgMuted),

		BorderStyle:          lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg),
		HeaderStyle:          cell.Bold(true),
		HeaderMorningStyle:   cell.Foreground(p.Morning).Bold(true),
		HeaderAfternoonStyle: cell.Foreground(p.Afternoon).Bold(true),
		BuyerMorningStyle:    cell.Foreground(p.Morning),
		BuyerAfternoonStyle:  cell.Foreground(p.Afternoon),

		CellEmptyStyle:      cell.Foreground(p.FgMuted),
		CellMorningStyle:    cell.Background(p.MorningBg).Foreground(p.TextOnMorning),
		CellAfternoonStyle:  cell.Background(p.AfternoonBg).Foreground(p.TextOnAfternoon),
		CellOutOfBlockStyle: cell.Background(p.OutOfBlockBg).Foreground(p.FgMuted),
		CellConflictStyle:   cell.Background(p.ConflictBg).Foreground(p.TextOnConflict).Bold(true),
		CursorStyle:         cell.Background(p.BgSelection).Foreground(p.Fg).Bold(true).Underline(true),
		CarryStyle:          cell.Background(p.Warning).Foreground(p.TextOnWarning).Bold(true),

		StatsStyle:       base.Foreground(p.Fg),
		StatusStyle:      base.Foreground(p.Accent),
		StatusErrorStyle: base.Foreground(p.Conflict).Bold(true),
		HelpStyle:        base.Foreground(p.FgMuted),
		PromptStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.FgMuted).
			BorderBackground(p.Bg).
			Background(p.Bg).
			Foreground(p.Fg),
		PromptFocusedStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			BorderBackground(p.Bg).
			Background(p.Bg).
			Foreground(p.Fg),

		Modal: view.ModalStyles{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.Modal.Border).
				BorderBackground(p.Modal.Bg).
				Background(p.Modal.Bg).
				Foreground(p.Modal.Text).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Background(p.Modal.Bg).Foreground(p.Accent).Bold(true),
			Body:  lipgloss.NewStyle().Background(p.Modal.Bg).Foreground(p.Modal.Text),
			Hint:  lipgloss.NewStyle().Background(p.Modal.Bg).Foreground(p.Modal.Muted),
		},
	}
}

// blockHeaderStyle returns the column header style of a session's block.
func (s *Styles) blockHeaderStyle(b event.Block) lipgloss.Style {
	if b == event.BlockAfternoon {
		return s.HeaderAfternoonStyle
	}
	return s.HeaderMorningStyle
}

// buyerStyle returns the row heading style of a buyer's block.
func (s *Styles) buyerStyle(b event.Block) lipgloss.Style {
	if b == event.BlockAfternoon {
		return s.BuyerAfternoonStyle
	}
	return s.BuyerMorningStyle
}

// filledStyle returns the style of a filled in-block cell.
func (s *Styles) filledStyle(b event.Block) lipgloss.Style {
	if b == event.BlockAfternoon {
		return s.CellAfternoonStyle
	}
	return s.CellMorningStyle
}
