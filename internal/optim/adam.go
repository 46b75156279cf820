package optim

import (
	"math"

	"argmaxnet/internal/model"
)

// Adam keeps bias-corrected first and second moment estimates per parameter.
type Adam struct {
	LR      float64
	Beta1   float64
	Beta2   float64
	Epsilon float64

	step int
	m    [][]float64
	v    [][]float64
}

// NewAdam returns Adam with the usual defaults.
func NewAdam(lr float64) *Adam {
	if lr <= 0 {
		lr = 0.001
	}
	return &Adam{LR: lr, Beta1: 0.9, Beta2: 0.999, Epsilon: 1e-8}
}

// Step updates p in place. Moment buffers are allocated on the first call.
func (a *Adam) Step(p *model.Params, g *model.Gradients) {
	params := p.Slices()
	grads := g.Slices()
	if a.m == nil {
		a.m = make([][]float64, len(params))
		a.v = make([][]float64, len(params))
		for i, ps := range params {
			a.m[i] = make([]float64, len(ps))
			a.v[i] = make([]float64, len(ps))
		}
	}
	a.step++
	c1 := 1 - math.Pow(a.Beta1, float64(a.step))
	c2 := 1 - math.Pow(a.Beta2, float64(a.step))
	for i, ps := range params {
		gs, ms, vs := grads[i], a.m[i], a.v[i]
		for j := range ps {
			ms[j] = a.Beta1*ms[j] + (1-a.Beta1)*gs[j]
			vs[j] = a.Beta2*vs[j] + (1-a.Beta2)*gs[j]*gs[j]
			mHat := ms[j] / c1
			vHat := vs[j] / c2
			ps[j] -= a.LR * mHat / (math.Sqrt(vHat) + a.Epsilon)
		}
	}
}

// Steps returns how many updates have been applied.
func (a *Adam) Steps() int { return a.step }
