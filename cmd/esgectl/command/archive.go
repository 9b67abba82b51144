package command

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pixil98/go-esge/internal/archive"
	"github.com/pixil98/go-esge/internal/storage"
)

func NewArchiveCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage archived world snapshots",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "archive.db", "archive database")

	open := func() (*archive.SQLiteArchive, error) {
		return archive.OpenSQLite(dbPath)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "put <name> <world-file>",
		Short: "Archive a world file under name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := storage.LoadFile(args[1])
			if err != nil {
				return err
			}
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Put(cmd.Context(), args[0], s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archived %s as %s\n", args[1], args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <name> <world-file>",
		Short: "Write an archived world to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := storage.SaveFile(args[1], s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s to %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived worlds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.Entries(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tWORLD\tRECORDS\tSAVED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Name, e.WorldId, e.Records, e.SavedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Remove an archived world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	return cmd
}
