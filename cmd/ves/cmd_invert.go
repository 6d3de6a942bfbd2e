package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/invert"
	"github.com/terraprobe/ves/sounding"
	"github.com/terraprobe/ves/store"
)

var invertFlags struct {
	layers   int
	start    string
	cells    int
	maxIter  int
	chi      float64
	relErr   float64
	out      string
	showPath bool
	save     bool
}

var invertCmd = &cobra.Command{
	Use:   "invert <data.csv>",
	Short: "Invert a sounding for a resistivity-depth model",
	Long: `Invert observed apparent resistivities. The default is a smooth
fixed-mesh inversion; --layers switches to a few-layer parametric
inversion seeded from --start (or from a stack of equal log-spaced
layers when no start model is given).

Examples:
  ves invert lab3.csv
  ves invert lab3.csv --layers 3 --start guess.yaml -o model.yaml
  ves invert lab3.csv --save --db project.db`,
	Args: cobra.ExactArgs(1),
	RunE: runInvert,
}

func init() {
	f := invertCmd.Flags()
	f.IntVar(&invertFlags.layers, "layers", 0, "Parametric inversion with this many layers (0 = smooth)")
	f.StringVar(&invertFlags.start, "start", "", "Start model YAML for --layers")
	f.IntVar(&invertFlags.cells, "cells", 0, "Mesh cells for the smooth style (0 = default)")
	f.IntVar(&invertFlags.maxIter, "max-iter", 0, "Iteration cap (0 = default)")
	f.Float64Var(&invertFlags.chi, "chi", 0, "Target chi-squared factor (0 = default)")
	f.Float64Var(&invertFlags.relErr, "rel-err", 0, "Assumed relative error when the CSV has none (0 = default)")
	f.StringVarP(&invertFlags.out, "out", "o", "", "Write the recovered model YAML here")
	f.BoolVar(&invertFlags.showPath, "show-path", false, "Print the per-iteration convergence path")
	f.BoolVar(&invertFlags.save, "save", false, "Record sounding and run in the project database")
}

func runInvert(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := sounding.LoadFile(args[0])
	if err != nil {
		return err
	}
	opts := cfg.invertOptions()
	if invertFlags.cells > 0 {
		opts.Cells = invertFlags.cells
	}
	if invertFlags.maxIter > 0 {
		opts.MaxIterations = invertFlags.maxIter
	}
	if invertFlags.chi > 0 {
		opts.Sched.ChiFact = invertFlags.chi
	}
	if invertFlags.relErr > 0 {
		opts.DefaultRelErr = invertFlags.relErr
	}

	kind := "smooth"
	var res *invert.Result
	var runErr error
	if invertFlags.layers > 0 {
		kind = "parametric"
		start, err := startModel(s, invertFlags.layers, invertFlags.start)
		if err != nil {
			return err
		}
		res, runErr = invert.Parametric(ctx, s, start, opts)
	} else {
		res, runErr = invert.Smooth(ctx, s, opts)
	}
	if runErr != nil {
		if res == nil || !errors.Is(runErr, context.Canceled) {
			return runErr
		}
		fmt.Fprintln(os.Stderr, "interrupted; reporting the best model so far")
	}

	err = withOutput("", func(w io.Writer) error {
		return printResult(w, s, res)
	})
	if err != nil {
		return err
	}

	if invertFlags.out != "" {
		if err := res.Model.SaveFile(invertFlags.out); err != nil {
			return err
		}
		fmt.Printf("\nmodel written to %s\n", invertFlags.out)
	}
	if invertFlags.save {
		id, err := saveRun(ctx, s, res, kind, invertFlags.layers, opts)
		if err != nil {
			return err
		}
		fmt.Printf("run %s saved to %s\n", id, effectiveDB())
	}
	return nil
}

// startModel loads the parametric start or builds a bland default:
// geometric-mean resistivity over log-spaced layer interfaces between
// half the smallest and a third of the largest spacing.
func startModel(s *sounding.Sounding, layers int, path string) (earth.Model, error) {
	if path != "" {
		m, err := earth.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if m.NumLayers() != layers {
			return nil, fmt.Errorf("start model has %d layers, --layers asked for %d",
				m.NumLayers(), layers)
		}
		return m, nil
	}

	var sum float64
	for _, r := range s.Rhoa {
		sum += math.Log(r)
	}
	gm := math.Exp(sum / float64(s.Len()))
	if layers == 1 {
		return earth.Uniform(gm), nil
	}

	zTop := s.MinSpacing() / 2
	zBot := s.MaxSpacing() / 3
	if zBot <= zTop {
		zBot = zTop * 10
	}
	depths := make([]float64, layers-1)
	if layers == 2 {
		depths[0] = math.Sqrt(zTop * zBot)
	} else {
		r := math.Pow(zBot/zTop, 1/float64(layers-2))
		for k := range depths {
			depths[k] = zTop * math.Pow(r, float64(k))
		}
	}
	rhos := make([]float64, layers)
	for i := range rhos {
		rhos[i] = gm
	}
	th := make([]float64, layers-1)
	prev := 0.0
	for k, d := range depths {
		th[k] = d - prev
		prev = d
	}
	return earth.New(rhos, th)
}

func printResult(w io.Writer, s *sounding.Sounding, res *invert.Result) error {
	status := "stopped"
	if res.Converged {
		status = "converged"
	}
	fmt.Fprintf(w, "sounding:   %s (%s, %d points)\n", s.Name, s.Array, s.Len())
	fmt.Fprintf(w, "status:     %s after %d iterations\n", status, res.Iterations)
	fmt.Fprintf(w, "chi2/N:     %.4g\n", res.Chi2N)
	fmt.Fprintf(w, "rms:        %.2f%%\n", res.RMSPercent)
	fmt.Fprintf(w, "beta:       %.4g\n", res.Beta)
	fmt.Fprintln(w)
	if err := printModel(w, res.Model); err != nil {
		return err
	}
	if invertFlags.showPath && len(res.Path) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "iter\tbeta\tphi_d\tphi_m\talpha")
		for _, st := range res.Path {
			fmt.Fprintf(w, "%d\t%.4g\t%.4g\t%.4g\t%.4g\n",
				st.Iteration, st.Beta, st.PhiD, st.PhiM, st.Alpha)
		}
	}
	return nil
}

// saveRun upserts the sounding and records the run.
func saveRun(ctx context.Context, s *sounding.Sounding, res *invert.Result,
	kind string, layers int, opts *invert.Options) (string, error) {

	db, err := store.Open(effectiveDB())
	if err != nil {
		return "", err
	}
	defer db.Close()

	if err := db.SaveSounding(ctx, s); err != nil {
		return "", err
	}
	snapshot := struct {
		Kind          string  `yaml:"kind"`
		Layers        int     `yaml:"layers,omitempty"`
		Cells         int     `yaml:"cells,omitempty"`
		MaxIterations int     `yaml:"max_iterations"`
		ChiFactor     float64 `yaml:"chi_factor"`
		DefaultRelErr float64 `yaml:"default_rel_err"`
		AlphaS        float64 `yaml:"alpha_s"`
		AlphaZ        float64 `yaml:"alpha_z"`
	}{
		Kind:          kind,
		Layers:        layers,
		Cells:         opts.Cells,
		MaxIterations: opts.MaxIterations,
		ChiFactor:     opts.Sched.ChiFact,
		DefaultRelErr: opts.DefaultRelErr,
		AlphaS:        opts.Reg.AlphaS,
		AlphaZ:        opts.Reg.AlphaZ,
	}
	conf, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return db.SaveRun(ctx, &store.Run{
		SoundingName: s.Name,
		Kind:         kind,
		Config:       string(conf),
		Model:        res.Model,
		PhiD:         res.PhiD,
		RMSPercent:   res.RMSPercent,
		Iterations:   res.Iterations,
		Converged:    res.Converged,
	})
}
