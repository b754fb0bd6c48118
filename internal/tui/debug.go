package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// logKeyPress logs a key press event.
func logKeyPress(l zerolog.Logger, msg tea.KeyMsg, mode Mode) {
	l.Debug().Str("key", msg.String()).Stringer("mode", mode).Msg("key press")
}

// logModeChange logs a mode change.
func logModeChange(l zerolog.Logger, from, to Mode, reason string) {
	l.Debug().Stringer("from", from).Stringer("to", to).Str("reason", reason).Msg("mode change")
}

// logCursorMove logs cursor movement.
func logCursorMove(l zerolog.Logger, pos Position, reason string) {
	l.Debug().Int("row", pos.Row).Int("col", pos.Col).Str("reason", reason).Msg("cursor move")
}
