package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show the user's lists in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(func(a *app) error {
				lists, err := a.lists.Lists(cmd.Context(), a.userID)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tITEMS\tPINNED")
				for _, l := range lists {
					pinned := ""
					if l.Pinned {
						pinned = "yes"
					}
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", l.ID, l.Name, len(l.Items), pinned)
				}
				return w.Flush()
			})
		},
	}
}
