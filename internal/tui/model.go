// Package tui provides the interactive grid editor for matchmaker.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/matchmaker/internal/config"
	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/tui/theme"
	"github.com/javiermolinar/matchmaker/internal/workspace"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCarry       // A seller is picked up and follows the cursor
	ModePrompt
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModeCarry:
		return "carry"
	case ModePrompt:
		return "prompt"
	case ModeModal:
		return "modal"
	default:
		return "normal"
	}
}

// Position is a cursor position in the grid.
type Position struct {
	Row int // buyer index
	Col int // session index
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ws        *workspace.Workspace
	config    *config.Config
	log       zerolog.Logger
	eventPath string

	styles *Styles

	// State
	cursor Position
	offset int // first visible buyer row
	mode   Mode
	carry  schedule.Cell // source cell in ModeCarry

	// Modal state
	modalTitle string
	modalLines []string

	// Components
	prompt textinput.Model

	statusMsg  string
	statusErr  bool
	statusTime time.Time

	width   int
	height  int
	nowFunc func() time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the debug logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l.With().Str("component", "tui").Logger() }
}

// WithEventPath sets the event file /save writes to by default.
func WithEventPath(path string) Option {
	return func(m *Model) { m.eventPath = path }
}

// WithNow overrides the clock used for status expiry.
func WithNow(now func() time.Time) Option {
	return func(m *Model) { m.nowFunc = now }
}

// New creates a new TUI model over ws.
func New(ws *workspace.Workspace, cfg *config.Config, opts ...Option) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("")
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "/help"
	ti.CharLimit = 256

	m := Model{
		ws:      ws,
		config:  cfg,
		log:     zerolog.Nop(),
		styles:  NewStyles(t),
		prompt:  ti,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI.
func Run(ws *workspace.Workspace, cfg *config.Config, opts ...Option) error {
	model := New(ws, cfg, opts...)
	model.log.Debug().Int("buyers", len(ws.Buyers())).Int("sessions", len(ws.Sessions())).Msg("editor started")

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	model.log.Debug().Err(err).Msg("editor stopped")
	return err
}

// Mode returns the current interaction mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Cursor returns the cursor position.
func (m Model) Cursor() Position {
	return m.cursor
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.statusMsg
}

// cursorCell returns the buyer and session under the cursor.
func (m Model) cursorCell() (event.Buyer, event.Session, bool) {
	buyers := m.ws.Buyers()
	sessions := m.ws.Sessions()
	if m.cursor.Row < 0 || m.cursor.Row >= len(buyers) || m.cursor.Col < 0 || m.cursor.Col >= len(sessions) {
		return event.Buyer{}, event.Session{}, false
	}
	return buyers[m.cursor.Row], sessions[m.cursor.Col], true
}

// clampCursor keeps the cursor inside the grid after roster or grid changes.
func (m *Model) clampCursor() {
	rows := len(m.ws.Buyers())
	cols := len(m.ws.Sessions())
	m.cursor.Row = min(max(m.cursor.Row, 0), max(rows-1, 0))
	m.cursor.Col = min(max(m.cursor.Col, 0), max(cols-1, 0))
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls so the cursor row is inside the grid window.
func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.cursor.Row < m.offset {
		m.offset = m.cursor.Row
	}
	if m.cursor.Row >= m.offset+visible {
		m.offset = m.cursor.Row - visible + 1
	}
	m.offset = max(m.offset, 0)
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
	m.statusTime = m.nowFunc().Add(statusDuration)
}

func (m *Model) setError(err error) {
	m.statusMsg = "Error: " + err.Error()
	m.statusErr = true
	m.statusTime = m.nowFunc().Add(errorDuration)
	m.log.Debug().Err(err).Msg("status error")
}

func (m *Model) openModal(title string, lines []string) {
	m.modalTitle = title
	m.modalLines = lines
	m.setMode(ModeModal, "modal "+title)
}

func (m *Model) setMode(mode Mode, reason string) {
	if m.mode != mode {
		logModeChange(m.log, m.mode, mode, reason)
	}
	m.mode = mode
}

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)
