package model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Params holds the weights (classes x inputs) and bias (classes) of a linear layer.
type Params struct {
	W *mat.Dense
	B *mat.VecDense
}

// Gradients mirrors Params.
type Gradients struct {
	W *mat.Dense
	B *mat.VecDense
}

// NewParams returns zeroed parameters.
func NewParams(inputs, classes int) *Params {
	return &Params{
		W: mat.NewDense(classes, inputs, nil),
		B: mat.NewVecDense(classes, nil),
	}
}

// NewGradients returns zeroed gradients shaped like p.
func NewGradients(p *Params) *Gradients {
	classes, inputs := p.W.Dims()
	return &Gradients{
		W: mat.NewDense(classes, inputs, nil),
		B: mat.NewVecDense(classes, nil),
	}
}

// initUniform fills W and B from U(-k, k) with k = 1/sqrt(inputs).
func (p *Params) initUniform(rng *rand.Rand) {
	_, inputs := p.W.Dims()
	bound := 1 / math.Sqrt(float64(inputs))
	raw := p.W.RawMatrix()
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j := range row {
			row[j] = (rng.Float64()*2 - 1) * bound
		}
	}
	for i := 0; i < p.B.Len(); i++ {
		p.B.SetVec(i, (rng.Float64()*2-1)*bound)
	}
}

// Clone returns a deep copy of p.
func (p *Params) Clone() *Params {
	return &Params{
		W: mat.DenseCopyOf(p.W),
		B: mat.VecDenseCopyOf(p.B),
	}
}

// Slices exposes the backing storage of W and B, in that order.
func (p *Params) Slices() [][]float64 {
	return [][]float64{p.W.RawMatrix().Data, p.B.RawVector().Data}
}

// Slices exposes the backing storage of W and B, in that order.
func (g *Gradients) Slices() [][]float64 {
	return [][]float64{g.W.RawMatrix().Data, g.B.RawVector().Data}
}
