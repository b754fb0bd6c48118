package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/matchmaker/internal/event"
)

func (m Model) fillText() string {
	sum := m.ws.Summary()
	return fmt.Sprintf("%d/%d slots filled (%.0f%%)", sum.Filled(), sum.Slots(), sum.FillRate())
}

// summaryLines describes the current schedule's fill statistics.
func (m Model) summaryLines() []string {
	sum := m.ws.Summary()
	lines := []string{m.fillText()}
	for _, b := range sum.Blocks {
		lines = append(lines, fmt.Sprintf("  %-9s %2d buyers  %3d/%-3d filled", b.Block, b.Buyers, b.Filled, b.Slots))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Main preferences met:   %d", sum.PrimaryHits),
		fmt.Sprintf("Backup preferences met: %d", sum.BackupHits),
		fmt.Sprintf("Unrequested meetings:   %d", sum.Unrequested),
		fmt.Sprintf("Conflicts:              %d", sum.Conflicts),
	)
	if len(sum.BuyersWithGaps) > 0 {
		lines = append(lines, "", "Buyers with empty slots: "+strings.Join(sum.BuyersWithGaps, ", "))
	}
	return lines
}

// conflictLines lists every double-booked seller by session.
func (m Model) conflictLines() []string {
	conflicts := m.ws.Conflicts()
	if conflicts.Empty() {
		return []string{"No conflicts"}
	}
	names := event.SellerNames(m.ws.Sellers())
	sessions := event.SessionIndex(m.ws.Sessions())

	var lines []string
	for _, sessionID := range conflicts.Sessions() {
		sellers := conflicts.Sellers(sessionID)
		labels := make([]string, len(sellers))
		for i, id := range sellers {
			labels[i] = names[id]
		}
		lines = append(lines, fmt.Sprintf("%s: %s", sessions[sessionID].Label(), strings.Join(labels, ", ")))
	}
	return lines
}

// preferenceLines shows the ranked sellers of the buyer under the cursor.
func (m Model) preferenceLines() []string {
	buyer, _, ok := m.cursorCell()
	if !ok {
		return []string{"No buyer selected"}
	}
	names := event.SellerNames(m.ws.Sellers())
	prefs := m.ws.Preferences(buyer.ID)

	lines := []string{buyer.Name}
	for i, id := range prefs {
		tier := "main  "
		if i >= event.PrimaryCount {
			tier = "backup"
		}
		name := names[id]
		if id == "" {
			name = "-"
		}
		lines = append(lines, fmt.Sprintf("%2d %s %s", i+1, tier, name))
	}
	return lines
}

func helpLines() []string {
	lines := []string{
		"h j k l / arrows   move the cursor",
		"g G 0 $            first/last row, first/last column",
		"space / enter      pick up a seller, then drop it on another cell",
		"esc                cancel a move",
		"a                  auto-schedule",
		"u / r              undo / redo",
		"y                  copy the CSV export",
		"s  c  p            summary, conflicts, preferences of the buyer",
		"/                  command prompt (tab completes)",
		"q                  quit",
		"",
	}
	for _, cmd := range promptCommands {
		lines = append(lines, strings.TrimSpace(cmd.Name+" "+cmd.Usage)+"  "+cmd.Description)
	}
	return lines
}
