package metrics

// EpochStat is one entry of the training log.
type EpochStat struct {
	Epoch    int
	Accuracy float64
	MeanLoss float64
}

// History is the ordered per-epoch training log.
type History struct {
	stats []EpochStat
}

// Append records the result of the next epoch.
func (h *History) Append(accuracy, meanLoss float64) EpochStat {
	s := EpochStat{Epoch: len(h.stats) + 1, Accuracy: accuracy, MeanLoss: meanLoss}
	h.stats = append(h.stats, s)
	return s
}

// Len returns the number of recorded epochs.
func (h *History) Len() int { return len(h.stats) }

// Stats returns a copy of the log.
func (h *History) Stats() []EpochStat {
	return append([]EpochStat(nil), h.stats...)
}

// Accuracies returns the accuracy series in epoch order.
func (h *History) Accuracies() []float64 {
	out := make([]float64, len(h.stats))
	for i, s := range h.stats {
		out[i] = s.Accuracy
	}
	return out
}

// Losses returns the mean loss series in epoch order.
func (h *History) Losses() []float64 {
	out := make([]float64, len(h.stats))
	for i, s := range h.stats {
		out[i] = s.MeanLoss
	}
	return out
}
