package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/terraprobe/ves/invert"
	"github.com/terraprobe/ves/sounding"
	"github.com/terraprobe/ves/store"
)

var batchFlags struct {
	workers int
	cells   int
	maxIter int
	chi     float64
	outDir  string
	save    bool
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Invert every sounding CSV in a directory",
	Long: `Run the smooth inversion over every *.csv file in a directory,
several soundings at a time, and print a one-line summary per file.
With --out-dir the recovered models are written as YAML next to each
other; with --save every sounding and run lands in the project
database.

Example:
  ves batch ./survey --workers 4 --out-dir ./models --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.IntVar(&batchFlags.workers, "workers", runtime.NumCPU(), "Concurrent inversions")
	f.IntVar(&batchFlags.cells, "cells", 0, "Mesh cells (0 = default)")
	f.IntVar(&batchFlags.maxIter, "max-iter", 0, "Iteration cap (0 = default)")
	f.Float64Var(&batchFlags.chi, "chi", 0, "Target chi-squared factor (0 = default)")
	f.StringVar(&batchFlags.outDir, "out-dir", "", "Write recovered model YAMLs here")
	f.BoolVar(&batchFlags.save, "save", false, "Record soundings and runs in the project database")
}

// batchItem is one file's outcome, errors included, so a single broken
// CSV does not sink the rest of the survey.
type batchItem struct {
	path    string
	name    string
	elapsed time.Duration
	res     *invert.Result
	err     error
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := filepath.Glob(filepath.Join(args[0], "*.csv"))
	if err != nil {
		return err
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return fmt.Errorf("no *.csv files in %s", args[0])
	}
	if batchFlags.outDir != "" {
		if err := os.MkdirAll(batchFlags.outDir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}

	opts := cfg.invertOptions()
	if batchFlags.cells > 0 {
		opts.Cells = batchFlags.cells
	}
	if batchFlags.maxIter > 0 {
		opts.MaxIterations = batchFlags.maxIter
	}
	if batchFlags.chi > 0 {
		opts.Sched.ChiFact = batchFlags.chi
	}
	logger.Info("batch inversion",
		zap.Int("files", len(paths)), zap.Int("workers", batchFlags.workers))

	items := make([]batchItem, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchFlags.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			items[i] = invertOne(gctx, path, opts)
			return nil
		})
	}
	_ = g.Wait() // per-file errors live in items

	if err := printBatch(items); err != nil {
		return err
	}
	if batchFlags.save {
		if err := saveBatch(ctx, items, opts); err != nil {
			return err
		}
	}

	var failed int
	for _, it := range items {
		if it.err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d soundings failed", failed, len(items))
	}
	return ctx.Err()
}

// invertOne loads, inverts and optionally writes one sounding. All
// failures are folded into the returned item.
func invertOne(ctx context.Context, path string, opts *invert.Options) batchItem {
	it := batchItem{path: path}
	startedAt := time.Now()

	s, err := sounding.LoadFile(path)
	if err != nil {
		it.err = err
		return it
	}
	it.name = s.Name

	res, err := invert.Smooth(ctx, s, opts)
	it.elapsed = time.Since(startedAt)
	if err != nil {
		it.err = err
		return it
	}
	it.res = res

	if batchFlags.outDir != "" {
		out := filepath.Join(batchFlags.outDir, s.Name+".yaml")
		if err := res.Model.SaveFile(out); err != nil {
			it.err = err
		}
	}
	return it
}

func printBatch(items []batchItem) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "file\tstatus\tchi2/N\trms_%\titer\ttime")
	for _, it := range items {
		base := filepath.Base(it.path)
		if it.err != nil {
			msg := strings.ReplaceAll(it.err.Error(), "\t", " ")
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\n", base, msg)
			continue
		}
		status := "stopped"
		if it.res.Converged {
			status = "ok"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.3g\t%.2f\t%d\t%s\n",
			base, status, it.res.Chi2N, it.res.RMSPercent,
			it.res.Iterations, it.elapsed.Round(time.Millisecond))
	}
	return tw.Flush()
}

// saveBatch records the successful items in the project database.
func saveBatch(ctx context.Context, items []batchItem, opts *invert.Options) error {
	db, err := store.Open(effectiveDB())
	if err != nil {
		return err
	}
	defer db.Close()

	for _, it := range items {
		if it.err != nil || it.res == nil {
			continue
		}
		s, err := sounding.LoadFile(it.path)
		if err != nil {
			return err
		}
		if err := db.SaveSounding(ctx, s); err != nil {
			return err
		}
		id, err := db.SaveRun(ctx, &store.Run{
			SoundingName: s.Name,
			Kind:         "smooth",
			Model:        it.res.Model,
			PhiD:         it.res.PhiD,
			RMSPercent:   it.res.RMSPercent,
			Iterations:   it.res.Iterations,
			Converged:    it.res.Converged,
		})
		if err != nil {
			return err
		}
		logger.Debug("run saved", zap.String("sounding", s.Name), zap.String("id", id))
	}
	return nil
}
