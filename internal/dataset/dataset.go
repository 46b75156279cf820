package dataset

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"argmaxnet/internal/model"
)

// Dataset holds N samples as two aligned arrays.
type Dataset struct {
	Inputs *mat.Dense
	Labels []int
}

// Build generates count samples of width dim.
func Build(rng *rand.Rand, count, dim int) *Dataset {
	if dim <= 0 {
		dim = DefaultDim
	}
	if count <= 0 {
		return &Dataset{Labels: []int{}}
	}
	inputs := mat.NewDense(count, dim, nil)
	labels := make([]int, count)
	for i := 0; i < count; i++ {
		s := BuildSample(rng, dim)
		inputs.SetRow(i, s.Features)
		labels[i] = s.Label
	}
	return &Dataset{Inputs: inputs, Labels: labels}
}

// FromRows copies rows and labels into a Dataset.
func FromRows(rows [][]float64, labels []int) *Dataset {
	if len(rows) == 0 {
		return &Dataset{Labels: []int{}}
	}
	inputs := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		inputs.SetRow(i, row)
	}
	return &Dataset{Inputs: inputs, Labels: append([]int(nil), labels...)}
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Labels)
}

// Dim returns the feature width, or 0 for an empty dataset.
func (d *Dataset) Dim() int {
	if d.Inputs == nil {
		return 0
	}
	_, c := d.Inputs.Dims()
	return c
}

// Batch returns rows [start, end) as a view sharing storage with d.
func (d *Dataset) Batch(start, end int) model.Batch {
	if start < 0 {
		start = 0
	}
	if end > d.Len() {
		end = d.Len()
	}
	if start >= end {
		return model.Batch{}
	}
	return model.Batch{
		Inputs: d.Inputs.Slice(start, end, 0, d.Dim()),
		Labels: d.Labels[start:end],
	}
}

// Batches splits d into Len()/size contiguous batches in dataset order.
// Trailing samples that do not fill a batch are skipped.
func (d *Dataset) Batches(size int) []model.Batch {
	if size <= 0 {
		return nil
	}
	n := d.Len() / size
	out := make([]model.Batch, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.Batch(i*size, (i+1)*size))
	}
	return out
}

// ClassCounts returns how many samples carry each label in [0, classes).
func (d *Dataset) ClassCounts(classes int) []int {
	counts := make([]int, classes)
	for _, label := range d.Labels {
		if label >= 0 && label < classes {
			counts[label]++
		}
	}
	return counts
}
