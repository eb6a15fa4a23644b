package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the configuration and size of an index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, _, err := a.open(cmd)
			if err != nil {
				return err
			}
			n, err := db.Size()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "index:       %s\n", a.v.GetString("index"))
			fmt.Fprintf(out, "entries:     %d\n", n)
			fmt.Fprintf(out, "dimension:   %d\n", db.Dimension())
			fmt.Fprintf(out, "bucket size: %d\n", db.BucketSize())
			fmt.Fprintf(out, "compressor:  %s\n", db.Compressor().Name())
			return nil
		},
	}
}
