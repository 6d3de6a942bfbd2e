package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
	dbPath     string

	cfg    Config
	logger *zap.Logger
)

// effectiveDB resolves the project database path: flag, then config.
func effectiveDB() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DB
}

var rootCmd = &cobra.Command{
	Use:   "ves",
	Short: "1D DC resistivity soundings: forward modeling, fitting, inversion",
	Long: `ves models and interprets vertical electrical soundings (VES).

It predicts apparent-resistivity curves over layered earth models
(Wenner, Schlumberger, pole-pole), fits trial models to field data,
runs smooth and few-layer inversions with depth-of-investigation
estimates, and keeps soundings and runs in a project SQLite database.

Sounding data travels as CSV, models and configuration as YAML.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log solver progress")
	pf.StringVar(&configPath, "config", "", "Config file (default: ./ves.yaml if present)")
	pf.StringVar(&dbPath, "db", "", "Project database path (default from config)")

	rootCmd.AddCommand(forwardCmd)
	rootCmd.AddCommand(synthCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(invertCmd)
	rootCmd.AddCommand(doiCmd)
	rootCmd.AddCommand(cylinderCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
