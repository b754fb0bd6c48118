package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/matchmaker/internal/db"
	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/summary"
	"github.com/javiermolinar/matchmaker/internal/tui/view"
	"github.com/javiermolinar/matchmaker/internal/workspace"
)

const (
	minCellWidth = 6
	maxCellWidth = 18
	conflictMark = "*"
)

// fit pads or truncates s to exactly width display cells.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// printSessions lists the session grid.
func printSessions(w io.Writer, sessions []event.Session) {
	for _, s := range sessions {
		fmt.Fprintf(w, "  %-6s %s  %s-%s\n", s.ID, formatBlock(s.Block, fit(s.Name, 14)), s.Start, s.End)
	}
}

// printGrid prints one row per buyer and one column per session. Sessions
// outside a buyer's block stay blank and double-booked sellers are marked.
func printGrid(w io.Writer, ws *workspace.Workspace, width int) {
	buyers := ws.Buyers()
	sessions := ws.Sessions()
	sched := ws.Schedule()
	conflicts := ws.Conflicts()
	names := event.SellerNames(ws.Sellers())

	labelW := runewidth.StringWidth(view.BuyerColumnLabel)
	for _, b := range buyers {
		labelW = max(labelW, runewidth.StringWidth(view.BuyerLabel(b)))
	}
	cellW := maxCellWidth
	if len(sessions) > 0 {
		cellW = min(max((width-labelW-2)/len(sessions)-1, minCellWidth), maxCellWidth)
	}

	headers := view.HeaderLabels(sessions)
	var hdr strings.Builder
	hdr.WriteString("  " + fit(headers[0], labelW))
	for i, s := range sessions {
		hdr.WriteString(" " + formatBlock(s.Block, fit(headers[i+1], cellW)))
	}
	fmt.Fprintln(w, formatHeader(hdr.String()))
	fmt.Fprintln(w, "  "+strings.Repeat("─", labelW+len(sessions)*(cellW+1)))

	for _, b := range buyers {
		var row strings.Builder
		row.WriteString("  " + formatBlock(b.Block, fit(view.BuyerLabel(b), labelW)))
		for _, s := range sessions {
			row.WriteString(" ")
			seller, _ := sched.Get(b.ID, s.ID)
			switch {
			case s.Block != b.Block && seller == schedule.Empty:
				row.WriteString(fit("", cellW))
			case seller == schedule.Empty:
				row.WriteString(formatMuted(fit("·", cellW)))
			case conflicts.Has(s.ID, seller):
				row.WriteString(formatConflict(fit(names[seller]+conflictMark, cellW)))
			default:
				row.WriteString(fit(names[seller], cellW))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}
}

// printConflicts lists double-booked sellers per session.
func printConflicts(w io.Writer, ws *workspace.Workspace) {
	conflicts := ws.Conflicts()
	if conflicts.Empty() {
		return
	}
	names := event.SellerNames(ws.Sellers())
	sessions := event.SessionIndex(ws.Sessions())

	fmt.Fprintf(w, "\n  %s\n", formatConflict(fmt.Sprintf("CONFLICTS (%d)", conflicts.Len())))
	for _, id := range conflicts.Sessions() {
		sellers := conflicts.Sellers(id)
		labels := make([]string, len(sellers))
		for i, s := range sellers {
			labels[i] = names[s]
		}
		fmt.Fprintf(w, "  %s%s: %s\n", sessions[id].Label(), conflictMark, strings.Join(labels, ", "))
	}
}

// printWarnings lists the auto-scheduler's advisories.
func printWarnings(w io.Writer, warnings []event.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  %s\n", formatWarning(fmt.Sprintf("WARNINGS (%d)", len(warnings))))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  - %s\n", warning)
	}
}

// printSummary prints fill statistics.
func printSummary(w io.Writer, sum summary.Summary) {
	fmt.Fprintf(w, "\n  %s\n", formatHeader("SUMMARY"))
	fmt.Fprintf(w, "  Filled: %s %s\n",
		FillBar(sum.Filled(), sum.Slots(), 20),
		formatStats(fmt.Sprintf("%d/%d", sum.Filled(), sum.Slots())))
	for _, b := range sum.Blocks {
		fmt.Fprintf(w, "  %s %2d buyers  %d/%d slots\n", formatBlock(b.Block, fit(string(b.Block), 10)), b.Buyers, b.Filled, b.Slots)
	}
	fmt.Fprintf(w, "  Main: %d  |  Backup: %d  |  Unrequested: %d  |  Conflicts: %d\n",
		sum.PrimaryHits, sum.BackupHits, sum.Unrequested, sum.Conflicts)
	if len(sum.BuyersWithGaps) > 0 {
		fmt.Fprintf(w, "  %s\n", formatMuted("Empty slots: "+strings.Join(sum.BuyersWithGaps, ", ")))
	}
}

// FillBar creates an ASCII progress bar of filled slots.
func FillBar(filled, total, width int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", width) + "]   0%"
	}
	n := (filled * width) / total
	bar := strings.Repeat("█", n) + strings.Repeat("░", width-n)
	return fmt.Sprintf("[%s] %3d%%", formatStats(bar), (filled*100)/total)
}

// printMeetings lists one seller's meetings.
func printMeetings(w io.Writer, seller event.Seller, meetings []workspace.Meeting) {
	fmt.Fprintf(w, "  %s\n", formatHeader(fmt.Sprintf("%s: %d meetings", seller.Name, len(meetings))))
	if len(meetings) == 0 {
		fmt.Fprintln(w, formatMuted("  No meetings scheduled."))
		return
	}
	for _, m := range meetings {
		fmt.Fprintf(w, "  %s  %s-%s  %s\n",
			formatBlock(m.Session.Block, fit(m.Session.Name, 14)), m.Session.Start, m.Session.End, view.BuyerLabel(m.Buyer))
	}
}

// printExports lists archived exports, newest first.
func printExports(w io.Writer, exports []db.Export) {
	if len(exports) == 0 {
		fmt.Fprintln(w, "No archived schedules.")
		return
	}
	for _, e := range exports {
		fmt.Fprintf(w, "  #%-4d %s  %-24s %3d buyers  %d/%d filled  %s\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), fit(e.Label, 24),
			e.Buyers, e.Filled, e.Slots, conflictCount(e.Conflicts))
	}
}

func conflictCount(n int) string {
	if n == 0 {
		return formatMuted("no conflicts")
	}
	return formatConflict(fmt.Sprintf("%d conflicts", n))
}

// printArchivedMeetings lists the meetings stored with one export.
func printArchivedMeetings(w io.Writer, meetings []db.Meeting) {
	if len(meetings) == 0 {
		fmt.Fprintln(w, "No meetings in this export.")
		return
	}
	var current string
	for _, m := range meetings {
		if m.SessionID != current {
			fmt.Fprintf(w, "  %s\n", formatBlock(m.Block, fmt.Sprintf("%s (%s-%s)", m.SessionName, m.Start, m.End)))
			current = m.SessionID
		}
		fmt.Fprintf(w, "    %s  %s\n", fit(m.SellerName, maxCellWidth), formatMuted(m.BuyerName+" ("+m.BuyerCountry+")"))
	}
}
