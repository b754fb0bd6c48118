// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/matchmaker/internal/db"
)

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ExportedMsg is sent when the CSV export has been written.
type ExportedMsg struct {
	Path  string
	Bytes int
}

// CopiedMsg is sent when the CSV export is on the clipboard.
type CopiedMsg struct {
	Bytes int
}

// SellerListMsg carries the contents of a seller list file.
type SellerListMsg struct {
	Path string
	Text string
}

// ArchivedMsg is sent when the schedule has been stored in the archive.
type ArchivedMsg struct {
	Path     string
	ID       int64
	Meetings int
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// WriteExport writes an already rendered CSV export to path.
func WriteExport(path string, data []byte) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return ErrMsg{Err: fmt.Errorf("export needs a file path")}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return ErrMsg{Err: fmt.Errorf("writing export: %w", err)}
		}
		return ExportedMsg{Path: path, Bytes: len(data)}
	}
}

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{Bytes: len(text)}
	}
}

// ReadSellerList loads a seller list file for import.
func ReadSellerList(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return ErrMsg{Err: fmt.Errorf("import needs a file path")}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("reading seller list: %w", err)}
		}
		return SellerListMsg{Path: path, Text: string(data)}
	}
}

// Archive stores an export in the SQLite archive at path.
func Archive(path string, exp db.Export, meetings []db.Meeting) tea.Cmd {
	return func() tea.Msg {
		store, err := db.New(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("opening archive: %w", err)}
		}
		defer func() { _ = store.Close() }()

		if err := store.WriteExport(context.Background(), &exp, meetings); err != nil {
			return ErrMsg{Err: fmt.Errorf("archiving schedule: %w", err)}
		}
		return ArchivedMsg{Path: path, ID: exp.ID, Meetings: len(meetings)}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
