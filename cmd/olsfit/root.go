package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	mylm "github.com/syl051088/MyLM"
	"github.com/syl051088/MyLM/design"
)

// Execute builds the command tree and runs it.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configPath string
	flags := defaultOptions()

	root := &cobra.Command{
		Use:           "olsfit",
		Short:         "Fit ordinary least squares regressions from CSV data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	bindFlags(root, &flags)

	load := func(cmd *cobra.Command) (options, error) {
		o, err := resolve(cmd, configPath, flags)
		if err != nil {
			return o, err
		}
		level, err := zerolog.ParseLevel(o.LogLevel)
		if err != nil {
			return o, fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
		}
		zerolog.SetGlobalLevel(level)
		return o, nil
	}

	root.AddCommand(fitCmd(load), predictCmd(load))
	return root
}

type optionLoader func(cmd *cobra.Command) (options, error)

func fitCmd(load optionLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "fit",
		Short: "Fit a model and print the coefficient table",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := load(cmd)
			if err != nil {
				return err
			}
			model, err := fitFromFile(o)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), model)
		},
	}
}

func predictCmd(load optionLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "predict",
		Short: "Fit a model and predict rows of --new",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := load(cmd)
			if err != nil {
				return err
			}
			if o.NewData == "" {
				return errors.New("predict requires --new")
			}
			kind, err := mylm.ParseInterval(o.Interval)
			if err != nil {
				return err
			}
			model, err := fitFromFile(o)
			if err != nil {
				return err
			}

			newOpts := o
			newOpts.Columns = predictorNames(model)
			newD, _, err := design.LoadCSV(o.NewData, newOpts.csvOptions(""))
			if err != nil {
				return fmt.Errorf("load %s: %w", o.NewData, err)
			}
			pred, err := model.PredictDesign(newD, kind, o.Level)
			if err != nil {
				return err
			}
			log.Info().Int("rows", len(pred.Fit)).Str("interval", kind.String()).Msg("predictions computed")
			return printPrediction(cmd.OutOrStdout(), pred)
		},
	}
}

func fitFromFile(o options) (*mylm.Model, error) {
	if o.Data == "" {
		return nil, errors.New("missing --data")
	}
	d, y, err := design.LoadCSV(o.Data, o.csvOptions(o.Response))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", o.Data, err)
	}

	cfg := mylm.NewDefaultConfig()
	cfg.MaxCondition = o.MaxCondition
	cfg.Verbose = true
	cfg.Logger = log.Logger

	n, p := d.Dims()
	log.Info().Str("data", o.Data).Int("rows", n).Int("columns", p).Msg("design loaded")
	return mylm.FitDesign(d, y, cfg)
}

// predictorNames returns the training columns without the intercept.
func predictorNames(m *mylm.Model) []string {
	var names []string
	for _, n := range m.Names() {
		if n != design.InterceptName {
			names = append(names, n)
		}
	}
	return names
}

func printSummary(w io.Writer, m *mylm.Model) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tEstimate\tStd. Error\tt value\tPr(>|t|)\t")
	for _, row := range m.Summary() {
		fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%.4g\t%.4g\t\n", row.Name, row.Estimate, row.StdError, row.TValue, row.PValue)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nResidual standard error: %.4g on %d degrees of freedom\n", m.Sigma(), m.DFResidual())
	fmt.Fprintf(w, "Multiple R-squared: %.4g,\tAdjusted R-squared: %.4g\n", m.RSquared(), m.AdjustedRSquared())
	if m.HasIntercept() && m.P() > 1 {
		fmt.Fprintf(w, "F-statistic: %.4g on %d and %d DF,  p-value: %.4g\n", m.FStatistic(), m.P()-1, m.DFResidual(), m.FPValue())
	}
	_, err := fmt.Fprintf(w, "AIC: %.4f  BIC: %.4f\n", m.AIC(), m.BIC())
	return err
}

func printPrediction(w io.Writer, p *mylm.Prediction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if p.Interval == mylm.IntervalNone {
		fmt.Fprintln(tw, "\tfit\t")
		for i, v := range p.Fit {
			fmt.Fprintf(tw, "%d\t%.6g\t\n", i+1, v)
		}
		return tw.Flush()
	}
	fmt.Fprintln(tw, "\tfit\tlwr\tupr\t")
	for i := range p.Fit {
		fmt.Fprintf(tw, "%d\t%.6g\t%.6g\t%.6g\t\n", i+1, p.Fit[i], p.Lower[i], p.Upper[i])
	}
	return tw.Flush()
}
