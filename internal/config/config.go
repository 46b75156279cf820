package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	TrainSamples int     `yaml:"train_samples"`
	EvalSamples  int     `yaml:"eval_samples"`
	LearningRate float64 `yaml:"learning_rate"`
	Optimizer    string  `yaml:"optimizer"`
	Seed         int64   `yaml:"seed"`
	Reshuffle    bool    `yaml:"reshuffle"`
	CheckFinite  bool    `yaml:"check_finite"`
	ModelPath    string  `yaml:"model_path"`
	PlotPath     string  `yaml:"plot_path"`
	LogEvery     int     `yaml:"log_every"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Epochs       int
	BatchSize    int
	TrainSamples int
	EvalSamples  int
	LearningRate float64
	Optimizer    string
	Seed         int64
	Reshuffle    bool
	CheckFinite  bool
	ModelPath    string
	PlotPath     string
	LogEvery     int
}

// Default returns the documented configuration: 20 epochs of batch 20 over 5000 samples.
func Default() *Config {
	return &Config{
		Epochs:       20,
		BatchSize:    20,
		TrainSamples: 5000,
		EvalSamples:  100,
		LearningRate: 0.001,
		Optimizer:    "adam",
		Seed:         42,
		ModelPath:    "model.bin",
		PlotPath:     "training.png",
	}
}

// Load reads and validates a Config from YAML. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.TrainSamples > 0 {
		c.TrainSamples = o.TrainSamples
	}
	if o.EvalSamples > 0 {
		c.EvalSamples = o.EvalSamples
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Reshuffle {
		c.Reshuffle = true
	}
	if o.CheckFinite {
		c.CheckFinite = true
	}
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.PlotPath != "" {
		c.PlotPath = o.PlotPath
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.TrainSamples < c.BatchSize {
		return fmt.Errorf("train_samples must be >= batch_size (got %d < %d)", c.TrainSamples, c.BatchSize)
	}
	if c.EvalSamples < 0 {
		return fmt.Errorf("eval_samples must be >= 0 (got %d)", c.EvalSamples)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	switch strings.ToLower(c.Optimizer) {
	case "adam", "sgd":
	case "":
		c.Optimizer = "adam"
	default:
		return fmt.Errorf("unknown optimizer %q", c.Optimizer)
	}
	if c.LogEvery < 0 {
		c.LogEvery = 0
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}
