package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func gridState(rows ...string) GridViewState {
	content := TableContent{}
	for _, r := range rows {
		content.Rows = append(content.Rows, []string{r, "-"})
		content.CellStyles = append(content.CellStyles, []lipgloss.Style{lipgloss.NewStyle(), lipgloss.NewStyle()})
	}
	return GridViewState{
		InnerW:       30,
		GridH:        6,
		Headers:      []string{"Buyer", "M1 09:30"},
		HeaderStyles: []lipgloss.Style{lipgloss.NewStyle(), lipgloss.NewStyle()},
		Content:      content,
		BorderStyle:  lipgloss.NewStyle(),
	}
}

func TestRenderGridIncludesHeader(t *testing.T) {
	out := RenderGrid(gridState("Acme"))
	if !strings.Contains(out, "Buyer") || !strings.Contains(out, "M1 09:30") {
		t.Fatalf("expected headers in output: %q", out)
	}
	if !strings.Contains(out, "Acme") {
		t.Fatalf("expected row in output: %q", out)
	}
}

func TestRenderGridScrollsFromOffset(t *testing.T) {
	state := gridState("Acme", "Globex", "Initech", "Umbrella")
	state.Offset = 1

	out := RenderGrid(state)
	if strings.Contains(out, "Acme") {
		t.Fatalf("row above the offset should be hidden: %q", out)
	}
	if !strings.Contains(out, "Globex") || !strings.Contains(out, "Initech") {
		t.Fatalf("expected visible rows: %q", out)
	}
	if strings.Contains(out, "Umbrella") {
		t.Fatalf("row past the grid height should be cut: %q", out)
	}
}

func TestRenderGridEmptyArea(t *testing.T) {
	state := gridState("Acme")
	state.GridH = 0
	if out := RenderGrid(state); out != "" {
		t.Fatalf("expected nothing, got %q", out)
	}
}
