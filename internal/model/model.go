package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Batch represents a minibatch of features and labels.
type Batch struct {
	Inputs mat.Matrix
	Labels []int
}

// Len returns the number of rows in the batch.
func (b Batch) Len() int {
	if b.Inputs == nil {
		return 0
	}
	r, _ := b.Inputs.Dims()
	return r
}

// Mode selects what a forward pass computes.
type Mode int

const (
	// TrainMode returns the loss and its gradients. Labels are required.
	TrainMode Mode = iota
	// InferenceMode returns class probabilities and leaves gradients nil.
	InferenceMode
)

func (m Mode) String() string {
	switch m {
	case TrainMode:
		return "train"
	case InferenceMode:
		return "inference"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Output is the result of a forward pass. Which fields are set depends on the Mode.
type Output struct {
	Loss  float64
	Grads *Gradients
	Probs *mat.Dense
}

// Model defines the minimal training functionality required by the trainer.
type Model interface {
	Forward(mode Mode, batch Batch) (Output, error)
	Params() *Params
}

var (
	// ErrShape indicates the batch width does not match the model inputs.
	ErrShape = errors.New("model: input shape mismatch")
	// ErrMissingLabels indicates a train pass without one label per row.
	ErrMissingLabels = errors.New("model: labels required in train mode")
	// ErrLabelRange indicates a label outside [0, classes).
	ErrLabelRange = errors.New("model: label out of range")
)
