package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"argmaxnet/internal/dataset"
	"argmaxnet/internal/metrics"
	"argmaxnet/internal/model"
	"argmaxnet/internal/optim"
)

// ErrNonFiniteLoss is returned when CheckFinite is set and a batch loss is NaN or Inf.
var ErrNonFiniteLoss = errors.New("trainer: non-finite loss")

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Epochs       int
	BatchSize    int
	TrainSamples int
	EvalSamples  int
	InputSize    int
	Classes      int
	LearningRate float64
	Optimizer    string
	Seed         int64
	Reshuffle    bool
	CheckFinite  bool
	ModelPath    string
	LogEvery     int
}

// DefaultRunConfig returns the documented 20 epoch configuration without a model file.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Epochs:       20,
		BatchSize:    20,
		TrainSamples: 5000,
		EvalSamples:  100,
		InputSize:    dataset.DefaultDim,
		Classes:      dataset.DefaultDim,
		LearningRate: 0.001,
		Optimizer:    "adam",
		Seed:         42,
	}
}

// Result is the trained model and its per-epoch log.
type Result struct {
	Model *model.Linear
	Log   []metrics.EpochStat
}

// Run executes the training workload.
func Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Epochs <= 0 {
		return nil, errors.New("trainer: epochs must be > 0")
	}
	if cfg.BatchSize <= 0 {
		return nil, errors.New("trainer: batch size must be > 0")
	}
	if cfg.TrainSamples < cfg.BatchSize {
		return nil, fmt.Errorf("trainer: train samples (%d) must be >= batch size (%d)", cfg.TrainSamples, cfg.BatchSize)
	}
	if cfg.InputSize <= 0 {
		cfg.InputSize = dataset.DefaultDim
	}
	if cfg.Classes <= 0 {
		cfg.Classes = dataset.DefaultDim
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}

	opt, err := optim.New(cfg.Optimizer, cfg.LearningRate)
	if err != nil {
		return nil, err
	}

	// Independent streams so that toggling Reshuffle leaves data, init and eval unchanged.
	dataRng := rand.New(rand.NewSource(cfg.Seed))
	initRng := rand.New(rand.NewSource(cfg.Seed + 1))
	evalRng := rand.New(rand.NewSource(cfg.Seed + 2))
	shuffleRng := rand.New(rand.NewSource(cfg.Seed + 3))

	train := dataset.Build(dataRng, cfg.TrainSamples, cfg.InputSize)
	batches := train.Batches(cfg.BatchSize)
	mdl := model.NewLinear(cfg.InputSize, cfg.Classes, initRng)
	log.Printf("train samples=%d batches=%d optimizer=%s lr=%g reshuffle=%t",
		train.Len(), len(batches), cfg.Optimizer, cfg.LearningRate, cfg.Reshuffle)

	var history metrics.History
	var window metrics.Window

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if cfg.Reshuffle {
			// Batches are views, so they see the new row order.
			train.Shuffle(shuffleRng)
		}

		lossSum := 0.0
		for i, batch := range batches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			start := time.Now()
			out, err := mdl.Forward(model.TrainMode, batch)
			if err != nil {
				return nil, fmt.Errorf("epoch %d batch %d: %w", epoch, i, err)
			}
			if cfg.CheckFinite && (math.IsNaN(out.Loss) || math.IsInf(out.Loss, 0)) {
				return nil, fmt.Errorf("%w: epoch=%d batch=%d loss=%v", ErrNonFiniteLoss, epoch, i, out.Loss)
			}
			opt.Step(mdl.Params(), out.Grads)
			window.Record(batch.Len(), time.Since(start), out.Loss)
			lossSum += out.Loss

			if cfg.LogEvery > 0 && (i+1)%cfg.LogEvery == 0 {
				snap := window.Snapshot()
				log.Printf("epoch=%d batch=%d samples_per_sec=%.1f compute_ms=%.3f loss=%.4f",
					epoch, i+1, snap.SamplesPerSec, snap.AvgComputeMS, snap.MeanLoss)
			}
		}
		window.Snapshot()

		meanLoss := lossSum / float64(len(batches))
		log.Printf("epoch=%d mean_loss=%.6f", epoch, meanLoss)

		eval, err := Evaluate(mdl, evalRng, cfg.EvalSamples)
		if err != nil {
			return nil, fmt.Errorf("epoch %d eval: %w", epoch, err)
		}
		history.Append(eval.Accuracy, meanLoss)
	}

	if cfg.ModelPath != "" {
		if err := mdl.SaveFile(cfg.ModelPath); err != nil {
			return nil, fmt.Errorf("save model: %w", err)
		}
		log.Printf("saved model=%s", cfg.ModelPath)
	}

	return &Result{Model: mdl, Log: history.Stats()}, nil
}
