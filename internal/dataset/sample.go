package dataset

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// DefaultDim is the width of a generated feature vector.
const DefaultDim = 5

// Sample is one labeled feature vector. Label is the index of the largest
// feature, the first one on ties.
type Sample struct {
	Features []float64
	Label    int
}

// BuildSample draws dim features uniform in [0,1) and labels them with their argmax.
func BuildSample(rng *rand.Rand, dim int) Sample {
	if dim <= 0 {
		dim = DefaultDim
	}
	features := make([]float64, dim)
	for i := range features {
		features[i] = rng.Float64()
	}
	return Sample{Features: features, Label: floats.MaxIdx(features)}
}
