package trainer

import (
	"log"
	"math/rand"

	"argmaxnet/internal/dataset"
	"argmaxnet/internal/model"
)

// Classifier is the model surface the trainer needs.
type Classifier interface {
	model.Model
	Inputs() int
	Classes() int
}

// EvalResult summarizes one evaluation pass.
type EvalResult struct {
	ClassCounts []int
	Correct     int
	Total       int
	Accuracy    float64
}

// Evaluate scores m on size freshly generated samples in inference mode.
func Evaluate(m Classifier, rng *rand.Rand, size int) (EvalResult, error) {
	return EvaluateDataset(m, dataset.Build(rng, size, m.Inputs()))
}

// EvaluateDataset scores m on d. Parameters are not modified.
func EvaluateDataset(m Classifier, d *dataset.Dataset) (EvalResult, error) {
	res := EvalResult{ClassCounts: d.ClassCounts(m.Classes()), Total: d.Len()}
	log.Printf("eval class_counts=%v", res.ClassCounts)
	if d.Len() == 0 {
		log.Printf("eval correct=0 total=0 accuracy=0")
		return res, nil
	}

	out, err := m.Forward(model.InferenceMode, d.Batch(0, d.Len()))
	if err != nil {
		return EvalResult{}, err
	}
	for i, label := range d.Labels {
		if model.Argmax(out.Probs.RawRowView(i)) == label {
			res.Correct++
		}
	}
	res.Accuracy = float64(res.Correct) / float64(res.Total)
	log.Printf("eval correct=%d total=%d accuracy=%.4f", res.Correct, res.Total, res.Accuracy)
	return res, nil
}
