package predictor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"argmaxnet/internal/dataset"
	"argmaxnet/internal/model"
)

// DemoInputs are four fixed vectors used to sanity check a trained model.
var DemoInputs = [][]float64{
	{0.07889086, 0.15229675, 0.31082123, 0.03504317, 0.88920843},
	{0.74963533, 0.5524256, 0.95758807, 0.95520434, 0.84890681},
	{0.00797868, 0.67482528, 0.13625847, 0.34675372, 0.19871392},
	{0.09349776, 0.59416669, 0.92579291, 0.41567412, 0.1358894},
}

// Prediction is the model output for one input vector.
type Prediction struct {
	Input []float64
	Probs []float64
	Class int
}

// Predict loads the parameters at path into a fresh model and classifies inputs.
// Load failures surface as *model.FileLoadError or *model.ShapeMismatchError.
func Predict(path string, inputs [][]float64) ([]Prediction, error) {
	m := model.NewLinear(dataset.DefaultDim, dataset.DefaultDim, nil)
	if err := m.LoadFile(path); err != nil {
		return nil, err
	}
	return Classify(m, inputs)
}

// Classify runs inputs through m in inference mode.
func Classify(m *model.Linear, inputs [][]float64) ([]Prediction, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	x := mat.NewDense(len(inputs), m.Inputs(), nil)
	for i, in := range inputs {
		if len(in) != m.Inputs() {
			return nil, fmt.Errorf("%w: input %d has %d values, want %d", model.ErrShape, i, len(in), m.Inputs())
		}
		x.SetRow(i, in)
	}
	probs, err := m.Predict(x)
	if err != nil {
		return nil, err
	}
	return lo.Map(inputs, func(in []float64, i int) Prediction {
		row := mat.Row(nil, i, probs)
		return Prediction{Input: in, Probs: row, Class: model.Argmax(row)}
	}), nil
}

// Print writes one line per prediction.
func Print(w io.Writer, preds []Prediction) error {
	for _, p := range preds {
		if _, err := fmt.Fprintf(w, "input=%v class=%d prob=%.4f\n", p.Input, p.Class, p.Probs[p.Class]); err != nil {
			return err
		}
	}
	return nil
}

// ParseVector parses a comma-separated list of floats.
func ParseVector(s string) ([]float64, error) {
	fields := lo.Filter(strings.Split(s, ","), func(f string, _ int) bool {
		return strings.TrimSpace(f) != ""
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
