package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableContent contains table rows and cell styles.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// GridViewState holds data needed to render the buyer x session grid.
type GridViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	// Offset is the first content row shown. Rows that do not fit below it
	// are cut.
	Offset      int
	BorderStyle lipgloss.Style
	Bg          lipgloss.Color
}

// VisibleRows returns how many content rows fit in a grid of height h:
// the frame and header take four lines.
func VisibleRows(h int) int {
	return max(h-4, 0)
}

// RenderGrid renders the visible window of the grid using a lipgloss table.
func RenderGrid(state GridViewState) string {
	if state.GridH <= 0 || state.InnerW <= 0 {
		return ""
	}

	first := min(max(state.Offset, 0), len(state.Content.Rows))
	last := min(first+VisibleRows(state.GridH), len(state.Content.Rows))
	rows := state.Content.Rows[first:last]
	styles := state.Content.CellStyles

	t := table.New().
		Headers(state.Headers...).
		Width(state.InnerW).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.BorderStyle).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col >= 0 && col < len(state.HeaderStyles) {
					return state.HeaderStyles[col]
				}
				return lipgloss.NewStyle()
			}
			row += first
			if row < 0 || row >= len(styles) || col < 0 || col >= len(styles[row]) {
				return lipgloss.NewStyle()
			}
			return styles[row][col]
		})

	return PlaceBox(state.InnerW, state.GridH, lipgloss.Top, t.Render(), state.Bg)
}
