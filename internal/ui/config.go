package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/matchmaker/internal/config"
	"github.com/javiermolinar/matchmaker/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  matchmaker config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(config.DefaultConfigPath(), a.stdin, cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	p := prompter{r: reader, w: out}

	// Ask if user wants to edit
	if !p.yesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	cfg.Sessions.Count = p.number("Sessions per block", cfg.Sessions.Count)
	cfg.Sessions.DurationMinutes = p.number("Session length (minutes)", cfg.Sessions.DurationMinutes)
	cfg.Sessions.BreakMinutes = p.number("Break between sessions (minutes)", cfg.Sessions.BreakMinutes)
	cfg.Sessions.MorningStart = p.value("Morning start", cfg.Sessions.MorningStart)
	cfg.Sessions.AfternoonStart = p.value("Afternoon start", cfg.Sessions.AfternoonStart)
	cfg.Rules.MaxBuyersPerBlock = p.number("Max buyers per block", cfg.Rules.MaxBuyersPerBlock)
	cfg.Rules.MaxCountriesPerBlock = p.number("Max countries per block", cfg.Rules.MaxCountriesPerBlock)
	cfg.Event.File = p.value("Default event file (empty for none)", cfg.Event.File)
	cfg.Storage.ArchivePath = p.value("Archive database path", cfg.Storage.ArchivePath)
	cfg.Log.Level = p.value("Log level", cfg.Log.Level)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[sessions]")
	fmt.Fprintf(w, "  count                   = %d\n", cfg.Sessions.Count)
	fmt.Fprintf(w, "  duration_minutes        = %d\n", cfg.Sessions.DurationMinutes)
	fmt.Fprintf(w, "  break_minutes           = %d\n", cfg.Sessions.BreakMinutes)
	fmt.Fprintf(w, "  morning_start           = %s\n", cfg.Sessions.MorningStart)
	fmt.Fprintf(w, "  afternoon_start         = %s\n", cfg.Sessions.AfternoonStart)
	fmt.Fprintln(w, "\n[rules]")
	fmt.Fprintf(w, "  max_buyers_per_block    = %d\n", cfg.Rules.MaxBuyersPerBlock)
	fmt.Fprintf(w, "  max_countries_per_block = %d\n", cfg.Rules.MaxCountriesPerBlock)
	if cfg.Event.File != "" {
		fmt.Fprintln(w, "\n[event]")
		fmt.Fprintf(w, "  file                    = %s\n", cfg.Event.File)
	}
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  archive_path            = %s\n", cfg.Storage.ArchivePath)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level                   = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format                  = %s\n", cfg.Log.Format)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme                   = %s\n", cfg.UI.Theme)
}

// prompter reads answers line by line. EOF keeps the current values.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p prompter) read() string {
	input, _ := p.r.ReadString('\n')
	return strings.TrimSpace(input)
}

func (p prompter) yesNo(question string) bool {
	fmt.Fprintf(p.w, "%s [y/N]: ", question)
	input := strings.ToLower(p.read())
	return input == "y" || input == "yes"
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.w, "  %s: ", label)
	} else {
		fmt.Fprintf(p.w, "  %s [%s]: ", label, current)
	}
	input := p.read()
	if input == "" {
		return current
	}
	return input
}

func (p prompter) number(label string, current int) int {
	for {
		value := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.w, "  %q is not a number\n", value)
	}
}

func (p prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	if !theme.IsAvailable(current) {
		current = theme.Available()[0]
	}
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.w, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
