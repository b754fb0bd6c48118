package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/matchmaker/internal/config"
	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/roster"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/scheduler"
	"github.com/javiermolinar/matchmaker/internal/tui/commands"
	"github.com/javiermolinar/matchmaker/internal/workspace"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	st := event.DefaultSettings()
	st.Count = 2
	ws, err := workspace.New(st, roster.New(roster.DefaultRules()), workspace.WithShuffler(scheduler.InOrder))
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	return ws
}

// seededModel returns a sized model over two morning buyers and one
// afternoon buyer with ranked sellers.
func seededModel(t *testing.T) Model {
	t.Helper()
	ws := newTestWorkspace(t)
	acme, _ := ws.AddBuyer("Acme", "FR", event.BlockMorning)
	globex, _ := ws.AddBuyer("Globex", "DE", event.BlockMorning)
	initech, _ := ws.AddBuyer("Initech", "US", event.BlockAfternoon)
	s1, _ := ws.AddSeller("Orbit")
	s2, _ := ws.AddSeller("Zenith")
	s3, _ := ws.AddSeller("Nova")
	for id, ids := range map[string][]string{
		acme.ID:    {s1.ID, s2.ID},
		globex.ID:  {s2.ID, s3.ID},
		initech.ID: {s1.ID, s3.ID},
	} {
		p, err := event.NewPreferences(ids...)
		if err != nil {
			t.Fatal(err)
		}
		if err := ws.SetPreferences(id, p); err != nil {
			t.Fatal(err)
		}
	}

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	m := New(ws, config.Default(), WithNow(func() time.Time { return now }))
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func autoScheduled(t *testing.T) Model {
	t.Helper()
	m := send(t, seededModel(t), keyRunes("a"))
	if m.Mode() == ModeModal {
		m = send(t, m, keyEsc)
	}
	if m.ws.Schedule().Filled() == 0 {
		t.Fatal("expected auto-schedule to fill cells")
	}
	return m
}

func TestNavigation(t *testing.T) {
	m := seededModel(t)
	tests := []struct {
		key  tea.KeyMsg
		want Position
	}{
		{keyRunes("j"), Position{Row: 1}},
		{keyRunes("l"), Position{Row: 1, Col: 1}},
		{keyRunes("G"), Position{Row: 2, Col: 1}},
		{keyRunes("j"), Position{Row: 2, Col: 1}},
		{keyRunes("$"), Position{Row: 2, Col: 3}},
		{keyRunes("l"), Position{Row: 2, Col: 3}},
		{keyRunes("0"), Position{Row: 2}},
		{keyRunes("g"), Position{}},
		{keyRunes("k"), Position{}},
	}
	for _, tt := range tests {
		m = send(t, m, tt.key)
		if m.Cursor() != tt.want {
			t.Fatalf("after %q cursor = %+v, want %+v", tt.key.String(), m.Cursor(), tt.want)
		}
	}
}

func TestAutoScheduleKey(t *testing.T) {
	m := autoScheduled(t)
	if !m.ws.CanUndo() {
		t.Error("auto-schedule should be undoable")
	}
	if m.Mode() != ModeNormal {
		t.Errorf("mode = %s, want normal", m.Mode())
	}
}

func TestPickUpEmptyCell(t *testing.T) {
	m := seededModel(t)
	m = send(t, m, keySpace)
	if m.Mode() != ModeNormal {
		t.Fatalf("picking an empty cell should not enter carry mode, got %s", m.Mode())
	}
	if !m.statusErr {
		t.Errorf("expected error status, got %q", m.Status())
	}
}

func TestCarryAndDrop(t *testing.T) {
	m := autoScheduled(t)
	acme := m.ws.Buyers()[0]
	sessions := m.ws.Sessions()
	before, _ := m.ws.Schedule().Get(acme.ID, sessions[0].ID)
	if before == schedule.Empty {
		t.Fatal("expected Acme to meet someone in the first session")
	}
	other, _ := m.ws.Schedule().Get(acme.ID, sessions[1].ID)

	m = send(t, m, keySpace)
	if m.Mode() != ModeCarry {
		t.Fatalf("mode = %s, want carry", m.Mode())
	}
	m = send(t, m, keyRunes("l"), keySpace)
	if m.Mode() != ModeNormal {
		t.Fatalf("mode = %s, want normal after drop", m.Mode())
	}

	got, _ := m.ws.Schedule().Get(acme.ID, sessions[1].ID)
	if got != before {
		t.Errorf("target holds %q, want %q", got, before)
	}
	back, _ := m.ws.Schedule().Get(acme.ID, sessions[0].ID)
	if back != other {
		t.Errorf("source holds %q, want displaced %q", back, other)
	}

	m = send(t, m, keyRunes("u"))
	restored, _ := m.ws.Schedule().Get(acme.ID, sessions[0].ID)
	if restored != before {
		t.Errorf("undo restored %q, want %q", restored, before)
	}
	m = send(t, m, keyRunes("r"))
	redone, _ := m.ws.Schedule().Get(acme.ID, sessions[1].ID)
	if redone != before {
		t.Errorf("redo gave %q, want %q", redone, before)
	}
}

func TestDropOnSourceCancels(t *testing.T) {
	m := autoScheduled(t)
	n := m.ws.HistoryLen()

	m = send(t, m, keySpace, keySpace)
	if m.Mode() != ModeNormal {
		t.Fatalf("mode = %s, want normal", m.Mode())
	}
	if m.Status() != "Move cancelled" {
		t.Errorf("status = %q", m.Status())
	}
	if m.ws.HistoryLen() != n {
		t.Error("dropping on the source cell must not add a history step")
	}
}

func TestDropOutsideBlockStaysInCarry(t *testing.T) {
	m := autoScheduled(t)
	snapshot := m.ws.Schedule()

	m = send(t, m, keySpace, keyRunes("$"), keySpace)
	if m.Mode() != ModeCarry {
		t.Fatalf("rejected drop should keep carry mode, got %s", m.Mode())
	}
	if !m.statusErr || !strings.Contains(m.Status(), "block") {
		t.Errorf("expected block error, got %q", m.Status())
	}
	if !m.ws.Schedule().Equal(snapshot) {
		t.Error("rejected drop must not change the schedule")
	}

	m = send(t, m, keyEsc)
	if m.Mode() != ModeNormal {
		t.Errorf("esc should cancel carry, got %s", m.Mode())
	}
}

func TestUndoNothing(t *testing.T) {
	m := seededModel(t)
	m = send(t, m, keyRunes("u"))
	if m.Status() != "Nothing to undo" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModals(t *testing.T) {
	tests := []struct {
		key   string
		title string
	}{
		{"s", "Summary"},
		{"c", "Conflicts"},
		{"p", "Preferences"},
		{"?", "Help"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			m := send(t, seededModel(t), keyRunes(tt.key))
			if m.Mode() != ModeModal || m.modalTitle != tt.title {
				t.Fatalf("mode %s title %q", m.Mode(), m.modalTitle)
			}
			m = send(t, m, keyEsc)
			if m.Mode() != ModeNormal {
				t.Errorf("esc should close the modal")
			}
		})
	}
}

func TestPreferenceLines(t *testing.T) {
	m := seededModel(t)
	lines := m.preferenceLines()
	if lines[0] != "Acme" {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "main") || !strings.Contains(lines[1], "Orbit") {
		t.Errorf("rank 1 = %q", lines[1])
	}
	if !strings.Contains(lines[7], "backup") || !strings.Contains(lines[7], "-") {
		t.Errorf("rank 7 = %q", lines[7])
	}
}

func TestPromptTyping(t *testing.T) {
	m := seededModel(t)
	m = send(t, m, keyRunes("/"))
	if m.Mode() != ModePrompt {
		t.Fatalf("mode = %s, want prompt", m.Mode())
	}
	m = send(t, m, keyRunes("seller Apex"), keyEnter)
	if m.Mode() != ModeNormal {
		t.Fatalf("mode = %s after submit", m.Mode())
	}
	if _, ok := m.ws.FindSeller("Apex"); !ok {
		t.Fatal("seller not added")
	}
	if m.Status() != "Added seller Apex" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestPromptAutocomplete(t *testing.T) {
	m := send(t, seededModel(t), keyRunes("/"), keyRunes("sum"), keyTab)
	if got := m.prompt.Value(); got != "/summary" {
		t.Fatalf("value = %q, want /summary", got)
	}
	m = send(t, m, keyEnter)
	if m.Mode() != ModeModal || m.modalTitle != "Summary" {
		t.Errorf("mode %s title %q", m.Mode(), m.modalTitle)
	}
}

func TestPromptCommands(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		check  func(t *testing.T, m Model)
		errors bool
	}{
		{
			name:  "add buyer",
			input: "/buyer Umbrella, UK, pm",
			check: func(t *testing.T, m Model) {
				b, ok := m.ws.FindBuyer("Umbrella")
				if !ok || b.Block != event.BlockAfternoon {
					t.Errorf("buyer = %+v, %v", b, ok)
				}
			},
		},
		{name: "buyer missing fields", input: "/buyer Umbrella", errors: true},
		{name: "buyer bad block", input: "/buyer Umbrella, UK, evening", errors: true},
		{name: "seller without name", input: "/seller", errors: true},
		{
			name:  "set preferences",
			input: "/prefs Globex = Nova, , Orbit",
			check: func(t *testing.T, m Model) {
				b, _ := m.ws.FindBuyer("Globex")
				p := m.ws.Preferences(b.ID)
				nova, _ := m.ws.FindSeller("Nova")
				orbit, _ := m.ws.FindSeller("Orbit")
				if p[0] != nova.ID || p[1] != "" || p[2] != orbit.ID {
					t.Errorf("preferences = %v", p)
				}
			},
		},
		{name: "preferences unknown seller", input: "/prefs Globex = Nobody", errors: true},
		{name: "preferences unknown buyer", input: "/prefs Nobody = Orbit", errors: true},
		{name: "preferences duplicate", input: "/prefs Globex = Orbit, Orbit", errors: true},
		{
			name:  "remove buyer",
			input: "/rm-buyer initech",
			check: func(t *testing.T, m Model) {
				if _, ok := m.ws.FindBuyer("Initech"); ok {
					t.Error("buyer still present")
				}
			},
		},
		{
			name:  "remove seller",
			input: "/rm-seller Nova",
			check: func(t *testing.T, m Model) {
				if _, ok := m.ws.FindSeller("Nova"); ok {
					t.Error("seller still present")
				}
			},
		},
		{
			name:  "sessions",
			input: "/sessions 3",
			check: func(t *testing.T, m Model) {
				if n := len(m.ws.Sessions()); n != 6 {
					t.Errorf("sessions = %d, want 6", n)
				}
			},
		},
		{name: "sessions not a number", input: "/sessions many", errors: true},
		{
			name:  "find",
			input: "/find orbit",
			check: func(t *testing.T, m Model) {
				if m.Mode() != ModeModal || !strings.HasPrefix(m.modalTitle, "Orbit") {
					t.Errorf("mode %s title %q", m.Mode(), m.modalTitle)
				}
			},
		},
		{name: "find unknown", input: "/find nobody", errors: true},
		{name: "save without path", input: "/save", errors: true},
		{
			name:  "unknown command",
			input: "/frobnicate",
			check: func(t *testing.T, m Model) {
				if !strings.Contains(m.Status(), "Unknown command") {
					t.Errorf("status = %q", m.Status())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := seededModel(t).handlePromptSubmit(tt.input)
			m := next.(Model)
			if m.statusErr != tt.errors {
				t.Fatalf("statusErr = %v, status %q", m.statusErr, m.Status())
			}
			if tt.check != nil {
				tt.check(t, m)
			}
		})
	}
}

func TestPromptSave(t *testing.T) {
	path := t.TempDir() + "/event.toml"
	next, _ := seededModel(t).handlePromptSubmit("/save " + path)
	m := next.(Model)
	if m.statusErr {
		t.Fatalf("save failed: %s", m.Status())
	}
	f, err := roster.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(f.Buyers) != 3 || len(f.Sellers) != 3 {
		t.Errorf("saved %d buyers %d sellers", len(f.Buyers), len(f.Sellers))
	}
	if m.eventPath != path {
		t.Errorf("eventPath = %q", m.eventPath)
	}
}

func TestSellerListMsg(t *testing.T) {
	m := send(t, seededModel(t), commands.SellerListMsg{Path: "list.txt", Text: "Orbit\nApex\n\nBolt\n"})
	if len(m.ws.Sellers()) != 5 {
		t.Fatalf("sellers = %d, want 5", len(m.ws.Sellers()))
	}
	if !strings.Contains(m.Status(), "Imported 2 sellers") || !strings.Contains(m.Status(), "1 already present") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestClearStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	m := seededModel(t)
	m.nowFunc = func() time.Time { return now }
	m = send(t, m, commands.StatusMsg{Msg: "hello"})

	m = send(t, m, commands.ClearStatusMsg{})
	if m.Status() != "hello" {
		t.Fatalf("status cleared too early")
	}
	now = now.Add(statusDuration)
	m = send(t, m, commands.ClearStatusMsg{})
	if m.Status() != "" {
		t.Errorf("status = %q, want cleared", m.Status())
	}
}
