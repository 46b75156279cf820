package optim

import (
	"gonum.org/v1/gonum/floats"

	"argmaxnet/internal/model"
)

// SGD is plain gradient descent.
type SGD struct {
	LR float64
}

// NewSGD returns SGD with the given learning rate.
func NewSGD(lr float64) *SGD {
	if lr <= 0 {
		lr = 0.01
	}
	return &SGD{LR: lr}
}

// Step updates p in place.
func (s *SGD) Step(p *model.Params, g *model.Gradients) {
	grads := g.Slices()
	for i, ps := range p.Slices() {
		floats.AddScaled(ps, -s.LR, grads[i])
	}
}
