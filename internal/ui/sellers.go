package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/matchmaker/internal/exchange"
	"github.com/javiermolinar/matchmaker/internal/roster"
)

func (a *App) sellersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sellers",
		Short: "Manage the sellers of an event file",
	}
	cmd.AddCommand(a.sellersImportCmd())
	cmd.AddCommand(a.sellersListCmd())
	return cmd
}

func (a *App) sellersImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [list_file]",
		Short: "Merge a text list of sellers into the event file",
		Long: `Read one seller name per line and add the names the event file does not
have yet. A first line containing "name" is treated as a header. Quoted
names are unwrapped and blank lines skipped.

The event file is created if it does not exist.`,
		Example: `  matchmaker sellers import exhibitors.txt --event expo.toml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.requireEventFile()
			if err != nil {
				return err
			}

			r := roster.New(a.config.RosterRules())
			f, err := roster.LoadFile(path)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				a.log.Info().Str("path", path).Msg("creating event file")
			case err != nil:
				return err
			default:
				if err := f.Apply(r); err != nil {
					return fmt.Errorf("loading %s: %w", path, err)
				}
			}

			list, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening seller list: %w", err)
			}
			defer func() { _ = list.Close() }()
			names, err := exchange.ReadSellerNames(list)
			if err != nil {
				return err
			}

			added, dups := r.MergeNames(names)
			if err := roster.SaveFile(path, roster.ToFile(r)); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, s := range added {
				fmt.Fprintf(w, "  + %s\n", s.Name)
			}
			fmt.Fprintf(w, "Added %s sellers, skipped %d already present (%d total)\n",
				formatStats(fmt.Sprint(len(added))), dups, len(r.Sellers()))
			return nil
		},
	}
}

func (a *App) sellersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the sellers of the event file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.requireEventFile()
			if err != nil {
				return err
			}
			ws, err := a.loadWorkspace(path)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			sellers := ws.Sellers()
			if len(sellers) == 0 {
				fmt.Fprintln(w, "No sellers.")
				return nil
			}
			// How many buyers rank each seller.
			ranked := make(map[string]int)
			for _, b := range ws.Buyers() {
				for _, id := range ws.Preferences(b.ID) {
					if id != "" {
						ranked[id]++
					}
				}
			}
			for _, s := range sellers {
				fmt.Fprintf(w, "  %s %s\n", fit(s.Name, 30), formatMuted(fmt.Sprintf("ranked by %d", ranked[s.ID])))
			}
			return nil
		},
	}
}
