package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Softmax writes the softmax of src into dst and returns dst. dst may alias src.
func Softmax(dst, src []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(src))
	}
	if len(src) == 0 {
		return dst
	}
	lse := floats.LogSumExp(src)
	for i, v := range src {
		dst[i] = math.Exp(v - lse)
	}
	return dst
}

// Argmax returns the index of the largest value, the first one on ties.
func Argmax(v []float64) int {
	return floats.MaxIdx(v)
}
