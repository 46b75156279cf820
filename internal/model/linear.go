package model

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Linear is a single linear layer with softmax cross-entropy.
type Linear struct {
	inputs  int
	classes int
	params  *Params
}

// NewLinear constructs the model with random initialization.
func NewLinear(inputs, classes int, rng *rand.Rand) *Linear {
	if inputs <= 0 {
		inputs = 5
	}
	if classes <= 0 {
		classes = 5
	}
	p := NewParams(inputs, classes)
	if rng != nil {
		p.initUniform(rng)
	}
	return &Linear{inputs: inputs, classes: classes, params: p}
}

// Inputs returns the expected feature width.
func (m *Linear) Inputs() int { return m.inputs }

// Classes returns the number of output classes.
func (m *Linear) Classes() int { return m.classes }

// Params returns the live parameters. Optimizers mutate them in place.
func (m *Linear) Params() *Params { return m.params }

// Forward runs the batch through the layer.
//
// In TrainMode it returns the mean cross-entropy loss and the gradients of
// that loss with respect to W and B. The loss is computed per row as
// logsumexp(z) - z[y], so probabilities are never materialized for it.
// In InferenceMode it returns the row-wise softmax of the logits.
func (m *Linear) Forward(mode Mode, batch Batch) (Output, error) {
	n := batch.Len()
	if n == 0 {
		if mode == TrainMode {
			return Output{Grads: NewGradients(m.params)}, nil
		}
		return Output{}, nil
	}
	if _, c := batch.Inputs.Dims(); c != m.inputs {
		return Output{}, fmt.Errorf("%w: got %d features, want %d", ErrShape, c, m.inputs)
	}

	z := m.logits(batch.Inputs)

	switch mode {
	case InferenceMode:
		for i := 0; i < n; i++ {
			row := z.RawRowView(i)
			Softmax(row, row)
		}
		return Output{Probs: z}, nil
	case TrainMode:
		if len(batch.Labels) != n {
			return Output{}, fmt.Errorf("%w: %d labels for %d rows", ErrMissingLabels, len(batch.Labels), n)
		}
		scale := 1 / float64(n)
		loss := 0.0
		for i := 0; i < n; i++ {
			y := batch.Labels[i]
			if y < 0 || y >= m.classes {
				return Output{}, fmt.Errorf("%w: %d not in [0,%d)", ErrLabelRange, y, m.classes)
			}
			row := z.RawRowView(i)
			lse := floats.LogSumExp(row)
			loss += lse - row[y]

			// row becomes dL/dz for this sample: (softmax - onehot) / n.
			Softmax(row, row)
			row[y] -= 1
			floats.Scale(scale, row)
		}
		grads := NewGradients(m.params)
		grads.W.Mul(z.T(), batch.Inputs)
		ones := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			ones.SetVec(i, 1)
		}
		grads.B.MulVec(z.T(), ones)
		return Output{Loss: loss * scale, Grads: grads}, nil
	default:
		return Output{}, fmt.Errorf("model: unknown mode %v", mode)
	}
}

// Predict returns class probabilities for x.
func (m *Linear) Predict(x mat.Matrix) (*mat.Dense, error) {
	out, err := m.Forward(InferenceMode, Batch{Inputs: x})
	if err != nil {
		return nil, err
	}
	return out.Probs, nil
}

// logits returns x*Wᵀ + b as a fresh n x classes matrix.
func (m *Linear) logits(x mat.Matrix) *mat.Dense {
	n, _ := x.Dims()
	z := mat.NewDense(n, m.classes, nil)
	z.Mul(x, m.params.W.T())
	bias := m.params.B.RawVector().Data
	for i := 0; i < n; i++ {
		floats.Add(z.RawRowView(i), bias)
	}
	return z
}
