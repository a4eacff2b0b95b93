package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jadenzaleski/bible-translations/internal/translation"
)

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ABBR\tNAME\tLANGUAGE\tCOPYRIGHT")
			for _, tr := range translation.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tr.Abbreviation, tr.Name, tr.Language, tr.Copyright)
			}
			return w.Flush()
		},
	}
}
