package ui

import (
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/matchmaker/internal/logging"
	"github.com/javiermolinar/matchmaker/internal/tui"
)

func (a *App) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the grid editor",
		Long: `Open the interactive buyer x session grid.

Without an event file the editor starts empty; add buyers and sellers
from the prompt and write them with /save FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEditor(cmd)
		},
	}
}

// runEditor starts the TUI. The console logger would draw over the grid, so
// the editor logs to a file with --debug and nowhere otherwise.
func (a *App) runEditor(_ *cobra.Command) error {
	log := zerolog.Nop()
	if a.debug {
		l, f, err := logging.OpenFile(logging.DebugLogPath)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		log = l
	}

	path := a.eventFile()
	a.log = log
	load := path
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		// /save creates it.
		load = ""
	}
	ws, err := a.loadWorkspace(load)
	if err != nil {
		return err
	}
	return tui.Run(ws, a.config, tui.WithLogger(log), tui.WithEventPath(path))
}
