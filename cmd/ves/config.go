package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/terraprobe/ves/invert"
)

// defaultConfigFile is picked up from the working directory when
// --config is not given.
const defaultConfigFile = "ves.yaml"

// Config carries project-wide defaults. Zero fields fall back to the
// library defaults, so an empty or missing file is fine.
type Config struct {
	// DB is the project database path.
	DB string `yaml:"db"`

	// Inversion defaults, applied to invert/doi/batch unless flags
	// override them.
	Cells         int     `yaml:"cells"`
	MaxIterations int     `yaml:"max_iterations"`
	ChiFactor     float64 `yaml:"chi_factor"`
	DefaultRelErr float64 `yaml:"default_rel_err"`
	AlphaS        float64 `yaml:"alpha_s"`
	AlphaZ        float64 `yaml:"alpha_z"`
}

func loadConfig(path string) (Config, error) {
	c := Config{DB: "ves.db"}

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	if c.DB == "" {
		c.DB = "ves.db"
	}
	return c, nil
}

// invertOptions builds inversion options from the config and the
// logger. Commands apply their own flag overrides on top.
func (c Config) invertOptions() *invert.Options {
	o := invert.DefaultOptions()
	if c.Cells > 0 {
		o.Cells = c.Cells
	}
	if c.MaxIterations > 0 {
		o.MaxIterations = c.MaxIterations
	}
	if c.ChiFactor > 0 {
		o.Sched.ChiFact = c.ChiFactor
	}
	if c.DefaultRelErr > 0 {
		o.DefaultRelErr = c.DefaultRelErr
	}
	if c.AlphaS > 0 {
		o.Reg.AlphaS = c.AlphaS
	}
	if c.AlphaZ > 0 {
		o.Reg.AlphaZ = c.AlphaZ
	}
	o.Logger = logger
	return o
}
