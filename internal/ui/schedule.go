package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/matchmaker/internal/db"
	"github.com/javiermolinar/matchmaker/internal/workspace"
)

func (a *App) sessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "Print the session grid",
		Long: `Print the morning and afternoon sessions built from the [sessions]
section of the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := a.loadWorkspace("")
			if err != nil {
				return err
			}
			printSessions(cmd.OutOrStdout(), ws.Sessions())
			return nil
		},
	}
}

func (a *App) scheduleCmd() *cobra.Command {
	var (
		seed    uint64
		out     string
		archive bool
		label   string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Auto-schedule an event file and print the grid",
		Long: `Load the event file, run the auto-scheduler and print the resulting grid,
conflicts, warnings and summary.

Every run is random unless --seed is given; the same seed and event file
always give the same schedule.`,
		Example: `  matchmaker schedule --event expo.toml
  matchmaker schedule --event expo.toml --seed 42 --out expo.csv
  matchmaker schedule --event expo.toml --archive --label "final draft"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.requireEventFile()
			if err != nil {
				return err
			}
			ws, err := a.autoSchedule(cmd, path, seed)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSummary(w, ws.Summary())

			if out != "" {
				if err := writeCSVFile(out, ws); err != nil {
					return err
				}
				fmt.Fprintf(w, "\nWrote %s\n", out)
			}

			if archive {
				if label == "" {
					label = time.Now().Format(time.DateTime)
				}
				exp, err := a.archive(cmd.Context(), ws, label)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Archived as #%d in %s\n", exp.ID, a.config.Storage.ArchivePath)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible schedule (0 = random)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the schedule as CSV to this file")
	cmd.Flags().BoolVar(&archive, "archive", false, "Store the schedule in the archive database")
	cmd.Flags().StringVar(&label, "label", "", "Archive label (default: current time)")
	return cmd
}

// autoSchedule loads path, runs the auto-scheduler and prints the grid,
// conflicts and warnings.
func (a *App) autoSchedule(cmd *cobra.Command, path string, seed uint64) (*workspace.Workspace, error) {
	ws, err := a.loadWorkspace(path, seeded(seed)...)
	if err != nil {
		return nil, err
	}
	warnings, err := ws.AutoSchedule()
	if err != nil {
		return nil, err
	}

	w := cmd.OutOrStdout()
	printGrid(w, ws, termWidth())
	printConflicts(w, ws)
	printWarnings(w, warnings)
	return ws, nil
}

func (a *App) archive(ctx context.Context, ws *workspace.Workspace, label string) (db.Export, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := db.New(a.config.Storage.ArchivePath)
	if err != nil {
		return db.Export{}, err
	}
	defer func() { _ = store.Close() }()
	return ws.Archive(ctx, store, label)
}

func writeCSVFile(path string, ws *workspace.Workspace) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return ws.WriteCSV(f)
}

func (a *App) meetingsCmd() *cobra.Command {
	var (
		seller string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "meetings",
		Short: "List one seller's meetings",
		Long: `Auto-schedule the event file and list the meetings of one seller.

Pass the same --seed used with "schedule" to look at that schedule.`,
		Example: `  matchmaker meetings --event expo.toml --seller "Orbit Labs" --seed 42`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.requireEventFile()
			if err != nil {
				return err
			}
			ws, err := a.loadWorkspace(path, seeded(seed)...)
			if err != nil {
				return err
			}
			if _, err := ws.AutoSchedule(); err != nil {
				return err
			}
			s, meetings, err := ws.MeetingsForSeller(seller)
			if err != nil {
				return err
			}
			printMeetings(cmd.OutOrStdout(), s, meetings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&seller, "seller", "s", "", "Seller name (case-insensitive)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible schedule (0 = random)")
	_ = cmd.MarkFlagRequired("seller")
	return cmd
}
