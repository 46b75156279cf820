package optim

import (
	"fmt"
	"strings"

	"argmaxnet/internal/model"
)

// Optimizer applies one update to p using g.
type Optimizer interface {
	Step(p *model.Params, g *model.Gradients)
}

// New returns the optimizer registered under name ("adam" or "sgd").
func New(name string, lr float64) (Optimizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "adam":
		return NewAdam(lr), nil
	case "sgd":
		return NewSGD(lr), nil
	default:
		return nil, fmt.Errorf("optim: unknown optimizer %q", name)
	}
}
