package dataset

import "math/rand"

// Shuffle permutes the rows of d in place, keeping each label with its row.
func (d *Dataset) Shuffle(rng *rand.Rand) {
	if rng == nil || d.Len() < 2 {
		return
	}
	tmp := make([]float64, d.Dim())
	rng.Shuffle(d.Len(), func(i, j int) {
		ri := d.Inputs.RawRowView(i)
		rj := d.Inputs.RawRowView(j)
		copy(tmp, ri)
		copy(ri, rj)
		copy(rj, tmp)
		d.Labels[i], d.Labels[j] = d.Labels[j], d.Labels[i]
	})
}
