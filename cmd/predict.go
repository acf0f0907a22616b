package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trknhr/cooktime/internal/chat"
	"github.com/trknhr/cooktime/internal/estimator"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/logger"
	"github.com/trknhr/cooktime/internal/model"
)

func newPredictCmd(a *app) *cobra.Command {
	var (
		method  string
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "predict Name=qty [Name=qty ...]",
		Short: "Estimate the cooking time of a recipe",
		Example: `  cooktime predict Chicken=1 Carrots=1 Potatoes=1
  cooktime predict -m boil Eggs=2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := feature.ParseMethod(method)
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown method %q, using simmer\n", method)
			}

			est, detail, err := model.TrainNow(a.cfg.ModelOptions())
			if err != nil {
				logger.WarnOnce(err)
				return err
			}
			logger.Debug("model: %s", detail)

			rec, closeJournal := a.openJournal()
			defer closeJournal()

			session := a.newSession(estimator.Resolved(est), rec)
			session.SetMethod(m)
			for _, arg := range args {
				name, qty, err := chat.ParseItem(arg)
				if err != nil {
					return err
				}
				canonical, known, err := session.Add(name, qty)
				if err != nil {
					return err
				}
				if !known {
					fmt.Fprintf(cmd.ErrOrStderr(), "unknown ingredient %q contributes nothing\n", canonical)
				}
			}

			res, err := session.Predict(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Estimated cooking time: %d minutes (%s, %s)\n",
				res.Minutes, chat.DescribeSelection(res.Selection), strings.ToLower(m.String()))

			if explain {
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for i, field := range res.Vector.Fields {
					fmt.Fprintf(w, "  %s\t%g\n", field, res.Vector.Values[i])
				}
				return w.Flush()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "simmer", "preparation method: simmer, boil, fry")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the feature vector used for the estimate")
	return cmd
}
