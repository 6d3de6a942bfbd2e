package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/sounding"
)

var forwardFlags struct {
	model     string
	array     string
	spacings  string
	min, max  float64
	perDecade int
	format    string
	out       string
}

var forwardCmd = &cobra.Command{
	Use:   "forward",
	Short: "Predict an apparent-resistivity curve for a layered model",
	Long: `Compute the apparent-resistivity curve a given layered model would
produce, either on a log-spaced spacing layout or at explicit spacings.

Examples:
  ves forward --model aquifer.yaml
  ves forward --model aquifer.yaml --array wenner --min 1 --max 500
  ves forward --model aquifer.yaml --spacings 1,2,5,10,20 --format csv -o pred.csv`,
	RunE: runForward,
}

func init() {
	f := forwardCmd.Flags()
	f.StringVarP(&forwardFlags.model, "model", "m", "", "Layered model YAML (required)")
	f.StringVarP(&forwardFlags.array, "array", "a", "schlumberger", "Array: wenner, schlumberger, pole-pole")
	f.StringVar(&forwardFlags.spacings, "spacings", "", "Explicit spacings in m, comma-separated")
	f.Float64Var(&forwardFlags.min, "min", 1, "Smallest spacing in m")
	f.Float64Var(&forwardFlags.max, "max", 1000, "Largest spacing in m")
	f.IntVar(&forwardFlags.perDecade, "per-decade", 6, "Points per decade of spacing")
	f.StringVar(&forwardFlags.format, "format", "table", "Output: table, csv, json")
	f.StringVarP(&forwardFlags.out, "out", "o", "", "Output file (default stdout)")
	_ = forwardCmd.MarkFlagRequired("model")
}

func runForward(cmd *cobra.Command, args []string) error {
	em, err := earth.LoadFile(forwardFlags.model)
	if err != nil {
		return err
	}
	arr, err := sounding.ParseArray(forwardFlags.array)
	if err != nil {
		return err
	}
	spacings, err := spacingsFromFlags(forwardFlags.spacings,
		forwardFlags.min, forwardFlags.max, forwardFlags.perDecade)
	if err != nil {
		return err
	}

	curve, err := forward.Curve(em, arr, spacings, nil)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(forwardFlags.model), filepath.Ext(forwardFlags.model))
	s := &sounding.Sounding{Name: name, Array: arr, Spacing: spacings, Rhoa: curve}

	return withOutput(forwardFlags.out, func(w io.Writer) error {
		switch forwardFlags.format {
		case "table":
			return printCurve(w, s)
		case "csv":
			return s.WriteCSV(w)
		case "json":
			return writeJSON(w, s)
		default:
			return fmt.Errorf("unknown format %q", forwardFlags.format)
		}
	})
}
