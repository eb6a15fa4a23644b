package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID...",
		Short: "Remove entries from an index",
		Long: `Remove deletes the given ids and rewrites the index. If any id is
missing, nothing is removed and the index file is left untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, name, err := a.open(cmd)
			if err != nil {
				return err
			}
			if err := db.Remove(args...); err != nil {
				return err
			}
			if err := db.Save(cmd.Context(), store, name); err != nil {
				return err
			}

			n, err := db.Size()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d ids, %d entries left\n", len(args), n)
			return nil
		},
	}
}
