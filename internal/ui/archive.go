package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/matchmaker/internal/db"
)

func (a *App) archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Browse schedules stored with --archive",
	}
	cmd.AddCommand(a.archiveListCmd())
	return cmd
}

func (a *App) archiveListCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived schedules, or the meetings of one",
		Example: `  matchmaker archive list
  matchmaker archive list --id 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, err := db.New(a.config.Storage.ArchivePath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			w := cmd.OutOrStdout()
			if id == 0 {
				exports, err := store.ListExports(ctx)
				if err != nil {
					return fmt.Errorf("listing archive: %w", err)
				}
				printExports(w, exports)
				return nil
			}

			meetings, err := store.ListMeetings(ctx, id)
			if err != nil {
				return fmt.Errorf("listing export #%d: %w", id, err)
			}
			printArchivedMeetings(w, meetings)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Show the meetings of this export")
	return cmd
}
