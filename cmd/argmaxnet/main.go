package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"argmaxnet/internal/config"
	"argmaxnet/internal/dataset"
	"argmaxnet/internal/report"
	"argmaxnet/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults to the built-in demo config)")
	epochs := flag.Int("epochs", 0, "Number of epochs")
	batchSize := flag.Int("batch-size", 0, "Batch size")
	trainSamples := flag.Int("train-samples", 0, "Number of generated training samples")
	evalSamples := flag.Int("eval-samples", 0, "Number of generated samples per evaluation")
	lr := flag.Float64("lr", 0, "Learning rate")
	optimizer := flag.String("optimizer", "", "Optimizer: adam or sgd")
	seed := flag.Int64("seed", 0, "PRNG seed")
	reshuffle := flag.Bool("reshuffle", false, "Reshuffle the training set before every epoch")
	checkFinite := flag.Bool("check-finite", false, "Abort when a batch loss is NaN or Inf")
	modelOut := flag.String("model-out", "", "Where to save the trained parameters")
	plotOut := flag.String("plot-out", "", "Where to render the acc/loss chart (.png, .svg, .pdf)")
	logEvery := flag.Int("log-every", 0, "Log throughput every N batches")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(config.Overrides{
		Epochs:       *epochs,
		BatchSize:    *batchSize,
		TrainSamples: *trainSamples,
		EvalSamples:  *evalSamples,
		LearningRate: *lr,
		Optimizer:    *optimizer,
		Seed:         *seed,
		Reshuffle:    *reshuffle,
		CheckFinite:  *checkFinite,
		ModelPath:    *modelOut,
		PlotPath:     *plotOut,
		LogEvery:     *logEvery,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := trainer.RunConfig{
		Epochs:       cfg.Epochs,
		BatchSize:    cfg.BatchSize,
		TrainSamples: cfg.TrainSamples,
		EvalSamples:  cfg.EvalSamples,
		InputSize:    dataset.DefaultDim,
		Classes:      dataset.DefaultDim,
		LearningRate: cfg.LearningRate,
		Optimizer:    cfg.Optimizer,
		Seed:         cfg.Seed,
		Reshuffle:    cfg.Reshuffle,
		CheckFinite:  cfg.CheckFinite,
		ModelPath:    cfg.ModelPath,
		LogEvery:     cfg.LogEvery,
	}

	res, err := trainer.Run(ctx, runCfg)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	if err := report.Print(os.Stdout, res.Log); err != nil {
		log.Fatalf("print log: %v", err)
	}
	if err := report.Plot(res.Log, cfg.PlotPath); err != nil {
		log.Fatalf("plot: %v", err)
	}
	if cfg.PlotPath != "" {
		log.Printf("plot=%s", cfg.PlotPath)
	}
}
