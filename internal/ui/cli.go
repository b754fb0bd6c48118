package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/matchmaker/internal/config"
	"github.com/javiermolinar/matchmaker/internal/logging"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config    *config.Config
	root      *cobra.Command
	log       zerolog.Logger
	debug     bool   // Enable debug logging
	eventPath string // --event, falls back to config
	noColor   bool
	stdin     io.Reader
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{config: cfg, log: zerolog.Nop(), stdin: os.Stdin}

	a.root = &cobra.Command{
		Use:   "matchmaker",
		Short: "Schedule one-to-one meetings between buyers and sellers",
		Long: `Matchmaker builds the meeting grid of a buyer/seller event.

Buyers attend a morning or an afternoon block and rank up to ten sellers.
The auto-scheduler fills each buyer's sessions from those rankings; the
grid editor lets you move meetings around with undo and redo.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noColor {
				DisableColor()
			}
			l, err := logging.New(logging.Options{
				Level:  a.config.Log.Level,
				Format: a.config.Log.Format,
				Out:    cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEditor(cmd)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (editor logs to "+logging.DebugLogPath+")")
	a.root.PersistentFlags().StringVarP(&a.eventPath, "event", "e", "", "Event file (default from config or MATCHMAKER_EVENT_FILE)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.sessionsCmd())
	a.root.AddCommand(a.scheduleCmd())
	a.root.AddCommand(a.meetingsCmd())
	a.root.AddCommand(a.sellersCmd())
	a.root.AddCommand(a.archiveCmd())
	a.root.AddCommand(a.editCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "matchmaker %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
