package tui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/roster"
	"github.com/javiermolinar/matchmaker/internal/tui/commands"
	"github.com/javiermolinar/matchmaker/internal/tui/input"
	"github.com/javiermolinar/matchmaker/internal/tui/view"
)

var promptCommands = []input.PromptCommand{
	{Name: "/buyer", Usage: "NAME, COUNTRY, BLOCK", Description: "Add a buyer"},
	{Name: "/seller", Usage: "NAME", Description: "Add a seller"},
	{Name: "/prefs", Usage: "BUYER = SELLER, SELLER, ...", Description: "Set a buyer's ranked sellers"},
	{Name: "/rm-buyer", Usage: "NAME", Description: "Remove a buyer"},
	{Name: "/rm-seller", Usage: "NAME", Description: "Remove a seller and clear its meetings"},
	{Name: "/import", Usage: "FILE", Description: "Merge a seller list file"},
	{Name: "/export", Usage: "FILE", Description: "Write the schedule as CSV"},
	{Name: "/archive", Usage: "[LABEL]", Description: "Store the schedule in the archive"},
	{Name: "/save", Usage: "[FILE]", Description: "Write the event file"},
	{Name: "/find", Usage: "SELLER", Description: "List a seller's meetings"},
	{Name: "/sessions", Usage: "COUNT", Description: "Change the sessions per block"},
	{Name: "/summary", Description: "Show fill statistics"},
	{Name: "/help", Description: "Show keys and commands"},
	{Name: "/quit", Description: "Leave the editor"},
}

// handlePromptSubmit runs a prompt command.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	name, arg, ok := input.ParsePrompt(value)
	if !ok {
		if strings.TrimSpace(value) != "" {
			m.setStatus("Commands start with /, try /help")
		}
		return m, nil
	}
	m.log.Debug().Str("command", name).Str("arg", arg).Msg("prompt submit")

	switch name {
	case "/buyer":
		return m.addBuyer(arg)
	case "/seller":
		if arg == "" {
			m.setError(fmt.Errorf("/seller: %w", errNoArgument))
			return m, nil
		}
		s, err := m.ws.AddSeller(arg)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		return m.done(fmt.Sprintf("Added seller %s", s.Name))
	case "/prefs":
		return m.setPreferences(arg)
	case "/rm-buyer":
		b, ok := m.ws.FindBuyer(arg)
		if !ok {
			m.setError(fmt.Errorf("%w: %s", event.ErrBuyerNotFound, arg))
			return m, nil
		}
		if err := m.ws.RemoveBuyer(b.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.clampCursor()
		return m.done(fmt.Sprintf("Removed buyer %s", b.Name))
	case "/rm-seller":
		s, ok := m.ws.FindSeller(arg)
		if !ok {
			m.setError(fmt.Errorf("%w: %s", event.ErrSellerNotFound, arg))
			return m, nil
		}
		if err := m.ws.RemoveSeller(s.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		return m.done(fmt.Sprintf("Removed seller %s", s.Name))
	case "/import":
		return m, commands.ReadSellerList(arg)
	case "/export":
		var buf bytes.Buffer
		if err := m.ws.WriteCSV(&buf); err != nil {
			m.setError(err)
			return m, nil
		}
		return m, commands.WriteExport(arg, buf.Bytes())
	case "/archive":
		label := arg
		if label == "" {
			label = m.nowFunc().Format(time.DateTime)
		}
		exp, meetings := m.ws.ArchiveRecord(label)
		if exp.Buyers == 0 {
			m.setError(fmt.Errorf("/archive: %w", event.ErrNoBuyers))
			return m, nil
		}
		return m, commands.Archive(m.config.Storage.ArchivePath, exp, meetings)
	case "/save":
		path := arg
		if path == "" {
			path = m.eventPath
		}
		if path == "" {
			m.setError(roster.ErrNoEventFile)
			return m, nil
		}
		if err := roster.SaveFile(path, m.ws.EventFile()); err != nil {
			m.setError(err)
			return m, nil
		}
		m.eventPath = path
		return m.done("Saved " + path)
	case "/find":
		return m.findSeller(arg)
	case "/sessions":
		n, err := strconv.Atoi(arg)
		if err != nil {
			m.setError(fmt.Errorf("/sessions needs a number, got %q", arg))
			return m, nil
		}
		st := m.ws.Settings()
		st.Count = n
		if err := m.ws.UpdateSettings(st); err != nil {
			m.setError(err)
			return m, nil
		}
		m.clampCursor()
		return m.done(fmt.Sprintf("%d sessions per block", n))
	case "/summary":
		m.openModal("Summary", m.summaryLines())
		return m, nil
	case "/help":
		m.openModal("Help", helpLines())
		return m, nil
	case "/quit", "/q":
		return m, tea.Quit
	}

	m.setStatus(fmt.Sprintf("Unknown command %s, try /help", name))
	return m, nil
}

func (m Model) done(status string) (tea.Model, tea.Cmd) {
	m.setStatus(status)
	return m, commands.ClearStatusAfter(statusDuration)
}

// addBuyer parses "NAME, COUNTRY, BLOCK".
func (m Model) addBuyer(arg string) (tea.Model, tea.Cmd) {
	parts := input.SplitArgs(arg)
	if len(parts) != 3 {
		m.setError(fmt.Errorf("/buyer needs NAME, COUNTRY, BLOCK"))
		return m, nil
	}
	block, err := event.ParseBlock(parts[2])
	if err != nil {
		m.setError(err)
		return m, nil
	}
	b, err := m.ws.AddBuyer(parts[0], parts[1], block)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.clampCursor()
	return m.done(fmt.Sprintf("Added buyer %s (%s, %s)", b.Name, b.Country, b.Block))
}

// setPreferences parses "BUYER = SELLER, SELLER, ...". Empty positions leave
// the slot unset.
func (m Model) setPreferences(arg string) (tea.Model, tea.Cmd) {
	buyerName, list, found := strings.Cut(arg, "=")
	if !found {
		m.setError(fmt.Errorf("/prefs needs BUYER = SELLER, SELLER, ..."))
		return m, nil
	}
	buyer, ok := m.ws.FindBuyer(buyerName)
	if !ok {
		m.setError(fmt.Errorf("%w: %s", event.ErrBuyerNotFound, strings.TrimSpace(buyerName)))
		return m, nil
	}

	names := input.SplitArgs(list)
	ids := make([]string, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		s, ok := m.ws.FindSeller(name)
		if !ok {
			m.setError(fmt.Errorf("%w: %s", event.ErrSellerNotFound, name))
			return m, nil
		}
		ids[i] = s.ID
	}
	prefs, err := event.NewPreferences(ids...)
	if err != nil {
		m.setError(event.Reject("set preferences", err))
		return m, nil
	}
	if err := m.ws.SetPreferences(buyer.ID, prefs); err != nil {
		m.setError(err)
		return m, nil
	}
	return m.done(fmt.Sprintf("Saved %d preferences for %s", len(prefs.Primary())+len(prefs.Backup()), buyer.Name))
}

// findSeller opens a modal with a seller's meetings, or with the scheduled
// sellers matching the query when no seller has that name.
func (m Model) findSeller(query string) (tea.Model, tea.Cmd) {
	seller, meetings, err := m.ws.MeetingsForSeller(query)
	if err != nil {
		matches := m.ws.ScheduledSellers(query)
		if len(matches) == 0 {
			m.setError(err)
			return m, nil
		}
		m.openModal(fmt.Sprintf("Sellers matching %q", query), matches)
		return m, nil
	}

	lines := make([]string, 0, len(meetings))
	for _, mt := range meetings {
		lines = append(lines, fmt.Sprintf("%s  %s-%s  %s", mt.Session.Name, mt.Session.Start, mt.Session.End, view.BuyerLabel(mt.Buyer)))
	}
	if len(lines) == 0 {
		lines = []string{"No meetings scheduled"}
	}
	m.openModal(fmt.Sprintf("%s: %d meetings", seller.Name, len(meetings)), lines)
	return m, nil
}
