package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"argmaxnet/internal/metrics"
)

// ErrEmptyLog is returned when there is nothing to plot.
var ErrEmptyLog = errors.New("report: empty training log")

// Print writes one line per epoch followed by the log as [[acc, loss], ...].
func Print(w io.Writer, stats []metrics.EpochStat) error {
	for _, s := range stats {
		if _, err := fmt.Fprintf(w, "epoch=%d acc=%.4f loss=%.6f\n", s.Epoch, s.Accuracy, s.MeanLoss); err != nil {
			return err
		}
	}
	pairs := lo.Map(stats, func(s metrics.EpochStat, _ int) string {
		return fmt.Sprintf("[%g, %g]", s.Accuracy, s.MeanLoss)
	})
	_, err := fmt.Fprintf(w, "[%s]\n", strings.Join(pairs, ", "))
	return err
}

// Plot renders the acc and loss curves against the epoch index into path.
// The image format follows the file extension. An empty path is a no-op.
func Plot(stats []metrics.EpochStat, path string) error {
	if path == "" {
		return nil
	}
	if len(stats) == 0 {
		return ErrEmptyLog
	}

	p := plot.New()
	p.Title.Text = "training"
	p.X.Label.Text = "epoch"
	p.Legend.Top = true

	acc := series(stats, func(s metrics.EpochStat) float64 { return s.Accuracy })
	loss := series(stats, func(s metrics.EpochStat) float64 { return s.MeanLoss })
	if err := plotutil.AddLines(p, "acc", acc, "loss", loss); err != nil {
		return fmt.Errorf("add lines: %w", err)
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

func series(stats []metrics.EpochStat, value func(metrics.EpochStat) float64) plotter.XYs {
	return lo.Map(stats, func(s metrics.EpochStat, i int) plotter.XY {
		return plotter.XY{X: float64(i), Y: value(s)}
	})
}
