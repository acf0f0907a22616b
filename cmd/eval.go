package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/model/dataset"
	"github.com/trknhr/cooktime/internal/model/tuning"
)

func newEvalCmd(a *app) *cobra.Command {
	var folds int

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Cross-validate every forest configuration of the search grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Builtin()
			if err != nil {
				return err
			}
			X, y, err := ds.Matrix(feature.SchemaFor(catalog.Default()))
			if err != nil {
				return err
			}

			res, err := tuning.GridSearch(X, y, tuning.DefaultGrid().Candidates(a.cfg.Forest.Seed), folds)
			if err != nil {
				return fmt.Errorf("grid search failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d-fold cross validation on %d rows\n\n", folds, ds.Len())

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TREES\tMAX_DEPTH\tMIN_LEAF\tCV_MSE\t")
			for _, s := range res.Scores {
				mark := ""
				if s.Params == res.Best {
					mark = "*"
				}
				fmt.Fprintf(w, "%d\t%d\t%d\t%.3f\t%s\n", s.Params.Trees, s.Params.MaxDepth, s.Params.MinSamplesLeaf, s.MSE, mark)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nbest: %s cv_mse=%.3f\n", res.Best, res.MSE)
			return nil
		},
	}

	cmd.Flags().IntVar(&folds, "folds", 3, "number of cross-validation folds")
	return cmd
}
