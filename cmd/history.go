package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trknhr/cooktime/internal"
	"github.com/trknhr/cooktime/internal/chat"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit int
		top   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled estimates",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := internal.OpenDB(a.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := store.Migrate(db); err != nil {
				return err
			}
			js := store.NewSQLJournalStore(db)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if top {
				recipes, err := js.TopRecipes(limit)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "COUNT\tMINUTES\tMETHOD\tINGREDIENTS")
				for _, r := range recipes {
					fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", r.Count, r.Minutes, r.Method, describe(r.Ingredients))
				}
				return w.Flush()
			}

			entries, err := js.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no estimates yet")
				return nil
			}
			fmt.Fprintln(w, "TIME\tMINUTES\tMETHOD\tINGREDIENTS")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Minutes, e.Method, describe(e.Ingredients))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of rows to show")
	cmd.Flags().BoolVar(&top, "top", false, "group by recipe, most frequent first")
	return cmd
}

func describe(ingredients map[string]int) string {
	return chat.DescribeSelection(feature.Selection{Quantities: ingredients})
}
