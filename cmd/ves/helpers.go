package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/sounding"
)

// withOutput runs fn against stdout, or against a freshly created file
// when path is set.
func withOutput(path string, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseFloats parses a comma-separated float list ("1,2.5,10").
func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// spacingsFromFlags resolves either an explicit list or a log layout.
func spacingsFromFlags(list string, min, max float64, perDecade int) ([]float64, error) {
	if list != "" {
		return parseFloats(list)
	}
	return sounding.LogSpacings(min, max, perDecade)
}

// printCurve writes the sounding as an aligned spacing/ρa table.
func printCurve(w io.Writer, s *sounding.Sounding) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if s.HasStdDev() {
		fmt.Fprintln(tw, "spacing_m\trhoa_ohm_m\trel_err")
		for i := range s.Spacing {
			fmt.Fprintf(tw, "%g\t%.4g\t%g\n", s.Spacing[i], s.Rhoa[i], s.StdDev[i])
		}
	} else {
		fmt.Fprintln(tw, "spacing_m\trhoa_ohm_m")
		for i := range s.Spacing {
			fmt.Fprintf(tw, "%g\t%.4g\n", s.Spacing[i], s.Rhoa[i])
		}
	}
	return tw.Flush()
}

// printModel writes a layer table with depth ranges.
func printModel(w io.Writer, m earth.Model) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "layer\ttop_m\tbottom_m\trho_ohm_m")
	top := 0.0
	for i, l := range m {
		bottom := "∞"
		if l.Thickness > 0 {
			bottom = fmt.Sprintf("%.4g", top+l.Thickness)
		}
		fmt.Fprintf(tw, "%d\t%.4g\t%s\t%.4g\n", i+1, top, bottom, l.Rho)
		top += l.Thickness
	}
	return tw.Flush()
}
