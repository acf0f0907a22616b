package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trknhr/cooktime/internal/catalog"
)

func newIngredientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingredients",
		Short: "List known ingredients and their unit weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := catalog.Default().ByCategory()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, c := range catalog.Categories() {
				fmt.Fprintf(w, "%s\t\n", c)
				for _, e := range groups[c] {
					fmt.Fprintf(w, "  %s\t%gg\n", e.Name, e.Weight)
				}
			}
			return w.Flush()
		},
	}
}
