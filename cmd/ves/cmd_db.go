package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/terraprobe/ves/sounding"
	"github.com/terraprobe/ves/store"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage soundings and runs in the project database",
}

var dbSaveCmd = &cobra.Command{
	Use:   "save <data.csv>",
	Short: "Store (or replace) a sounding from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBSave,
}

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored soundings",
	RunE:  runDBList,
}

var dbShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored sounding as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBShow,
}

var dbRunsCmd = &cobra.Command{
	Use:   "runs <name>",
	Short: "List inversion runs for a sounding, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBRuns,
}

var dbRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Show one run: configuration and recovered model",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBRun,
}

func init() {
	dbCmd.AddCommand(dbSaveCmd)
	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbShowCmd)
	dbCmd.AddCommand(dbRunsCmd)
	dbCmd.AddCommand(dbRunCmd)
}

func openDB() (*store.Store, error) {
	return store.Open(effectiveDB())
}

func runDBSave(cmd *cobra.Command, args []string) error {
	s, err := sounding.LoadFile(args[0])
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveSounding(cmd.Context(), s); err != nil {
		return err
	}
	fmt.Printf("sounding %q saved (%s, %d points)\n", s.Name, s.Array, s.Len())
	return nil
}

func runDBList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	infos, err := db.ListSoundings(cmd.Context())
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("no soundings stored")
		return nil
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tarray\tpoints\tupdated")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			info.Name, info.Array, info.Points,
			info.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func runDBShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.GetSounding(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return s.WriteCSV(os.Stdout)
}

func runDBRuns(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("no runs stored for %q\n", args[0])
		return nil
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tkind\tphi_d\trms_%\titer\tconverged\tcreated")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%.4g\t%.2f\t%d\t%v\t%s\n",
			r.ID, r.Kind, r.PhiD, r.RMSPercent, r.Iterations, r.Converged,
			r.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func runDBRun(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := db.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return withOutput("", func(w io.Writer) error {
		fmt.Fprintf(w, "run:        %s\n", r.ID)
		fmt.Fprintf(w, "sounding:   %s\n", r.SoundingName)
		fmt.Fprintf(w, "kind:       %s\n", r.Kind)
		fmt.Fprintf(w, "phi_d:      %.4g\n", r.PhiD)
		fmt.Fprintf(w, "rms:        %.2f%%\n", r.RMSPercent)
		fmt.Fprintf(w, "iterations: %d\n", r.Iterations)
		fmt.Fprintf(w, "converged:  %v\n", r.Converged)
		fmt.Fprintf(w, "created:    %s\n", r.CreatedAt.Local().Format(time.DateTime))
		if r.Config != "" {
			fmt.Fprintf(w, "\nconfig:\n%s", r.Config)
		}
		fmt.Fprintln(w)
		return printModel(w, r.Model)
	})
}
