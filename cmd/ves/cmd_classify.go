package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terraprobe/ves/curves"
	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/sounding"
)

var classifyFlags struct {
	band    int
	penalty float64
	out     string
}

var classifyCmd = &cobra.Command{
	Use:   "classify <data.csv>",
	Short: "Rank the canonical curve classes against observed data",
	Long: `Compare the shape of an observed sounding curve to the four canonical
three-layer classes (H, K, A, Q) and rank them by warp distance. With
--out the best class is scaled to the data's resistivity level and
spacing range and written as a starting model for 'ves invert --layers 3'
or 'ves fit'.

Examples:
  ves classify lab3.csv
  ves classify lab3.csv -o start.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.IntVar(&classifyFlags.band, "band", 0, "Alignment band |i-j| cap (0 = unconstrained)")
	f.Float64Var(&classifyFlags.penalty, "penalty", 0, "Stretch-step penalty (0 = default)")
	f.StringVarP(&classifyFlags.out, "out", "o", "", "Write the suggested start model YAML here")
}

func runClassify(cmd *cobra.Command, args []string) error {
	s, err := sounding.LoadFile(args[0])
	if err != nil {
		return err
	}

	opts := curves.DefaultOptions()
	if classifyFlags.band > 0 {
		opts.Band = classifyFlags.band
	}
	if classifyFlags.penalty > 0 {
		opts.StepPenalty = classifyFlags.penalty
	}

	matches, err := curves.Classify(s, opts)
	if err != nil {
		return err
	}
	logger.Debug("classification finished",
		zap.String("sounding", s.Name),
		zap.String("best", matches[0].Type.String()),
		zap.Float64("distance", matches[0].Distance))

	var start earth.Model
	if classifyFlags.out != "" {
		start, err = curves.Suggest(s, matches[0])
		if err != nil {
			return err
		}
	}

	err = withOutput("", func(w io.Writer) error {
		fmt.Fprintf(w, "sounding: %s (%s, %d points)\n\n", s.Name, s.Array, s.Len())
		for i, m := range matches {
			marker := "  "
			if i == 0 {
				marker = "* "
			}
			fmt.Fprintf(w, "%s%s-type  distance %.4f\n", marker, m.Type, m.Distance)
		}
		if start != nil {
			fmt.Fprintf(w, "\nsuggested start (%s-type):\n", matches[0].Type)
			return printModel(w, start)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if classifyFlags.out != "" {
		if err := start.SaveFile(classifyFlags.out); err != nil {
			return err
		}
		fmt.Printf("\nstart model written to %s\n", classifyFlags.out)
	}
	return nil
}
