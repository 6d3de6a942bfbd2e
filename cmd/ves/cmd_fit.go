package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/fit"
	"github.com/terraprobe/ves/sounding"
)

var fitFlags struct {
	model    string
	auto     bool
	maxEvals int
	relErr   float64
	out      string
}

var fitCmd = &cobra.Command{
	Use:   "fit <data.csv>",
	Short: "Score a trial model against observed data",
	Long: `Compare a hand-built layered model to an observed sounding and report
chi-squared and RMS misfits. With --auto the model is also polished by
a derivative-free search before scoring, the curve-matching workflow.

Examples:
  ves fit lab3.csv --model guess.yaml
  ves fit lab3.csv --model guess.yaml --auto -o refined.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runFit,
}

func init() {
	f := fitCmd.Flags()
	f.StringVarP(&fitFlags.model, "model", "m", "", "Trial model YAML (required)")
	f.BoolVar(&fitFlags.auto, "auto", false, "Refine the trial model before scoring")
	f.IntVar(&fitFlags.maxEvals, "max-evals", 0, "Evaluation budget for --auto (0 = default)")
	f.Float64Var(&fitFlags.relErr, "rel-err", 0, "Assumed relative error when the CSV has none (0 = default)")
	f.StringVarP(&fitFlags.out, "out", "o", "", "Write the (refined) model YAML here")
	_ = fitCmd.MarkFlagRequired("model")
}

func runFit(cmd *cobra.Command, args []string) error {
	s, err := sounding.LoadFile(args[0])
	if err != nil {
		return err
	}
	em, err := earth.LoadFile(fitFlags.model)
	if err != nil {
		return err
	}

	opts := fit.DefaultOptions()
	if fitFlags.maxEvals > 0 {
		opts.MaxEvals = fitFlags.maxEvals
	}
	if fitFlags.relErr > 0 {
		opts.DefaultRelErr = fitFlags.relErr
	}

	var trial *fit.Trial
	if fitFlags.auto {
		trial, err = fit.Auto(s, em, opts)
	} else {
		trial, err = fit.Evaluate(s, em, opts)
	}
	if err != nil {
		return err
	}
	logger.Debug("fit finished",
		zap.String("sounding", s.Name),
		zap.Float64("chi2n", trial.Chi2N))

	err = withOutput("", func(w io.Writer) error {
		fmt.Fprintf(w, "sounding:   %s (%s, %d points)\n", s.Name, s.Array, s.Len())
		fmt.Fprintf(w, "chi2:       %.4g\n", trial.Chi2)
		fmt.Fprintf(w, "chi2/N:     %.4g\n", trial.Chi2N)
		fmt.Fprintf(w, "rms (log):  %.4g\n", trial.RMSLog)
		fmt.Fprintf(w, "rms:        %.2f%%\n", trial.RMSPercent)
		fmt.Fprintln(w)
		return printModel(w, trial.Model)
	})
	if err != nil {
		return err
	}

	if fitFlags.out != "" {
		if err := trial.Model.SaveFile(fitFlags.out); err != nil {
			return err
		}
		fmt.Printf("\nmodel written to %s\n", fitFlags.out)
	}
	return nil
}
