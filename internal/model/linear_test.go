package model

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func testBatch() Batch {
	return Batch{
		Inputs: mat.NewDense(3, 4, []float64{
			0.1, 0.2, 0.3, 0.4,
			0.4, 0.3, 0.2, 0.1,
			0.9, 0.1, 0.5, 0.2,
		}),
		Labels: []int{3, 0, 0},
	}
}

func sgdStep(p *Params, g *Gradients, lr float64) {
	var dw mat.Dense
	dw.Scale(lr, g.W)
	p.W.Sub(p.W, &dw)
	var db mat.VecDense
	db.ScaleVec(lr, g.B)
	p.B.SubVec(p.B, &db)
}

func TestLinearTrainStepReducesLoss(t *testing.T) {
	m := NewLinear(4, 4, rand.New(rand.NewSource(1)))
	batch := testBatch()
	out1, err := m.Forward(TrainMode, batch)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	sgdStep(m.Params(), out1.Grads, 0.5)
	out2, err := m.Forward(TrainMode, batch)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if out2.Loss > out1.Loss {
		t.Fatalf("expected loss to decrease; loss1=%f loss2=%f", out1.Loss, out2.Loss)
	}
	if out1.Probs != nil {
		t.Fatal("train mode should not return probabilities")
	}
}

func TestLinearInferenceRowsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	m := NewLinear(5, 5, rng)
	x := mat.NewDense(50, 5, nil)
	for i := 0; i < 50; i++ {
		for j := 0; j < 5; j++ {
			x.Set(i, j, rng.Float64()*10-5)
		}
	}
	out, err := m.Forward(InferenceMode, Batch{Inputs: x})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if out.Grads != nil {
		t.Fatal("inference mode should not compute gradients")
	}
	r, c := out.Probs.Dims()
	if r != 50 || c != 5 {
		t.Fatalf("unexpected probs shape %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		row := out.Probs.RawRowView(i)
		for _, p := range row {
			if p < 0 || p > 1 {
				t.Fatalf("row %d has probability %f", i, p)
			}
		}
		if sum := floats.Sum(row); math.Abs(sum-1) > 1e-6 {
			t.Fatalf("row %d sums to %f", i, sum)
		}
	}
}

func TestLinearLossMatchesCrossEntropy(t *testing.T) {
	m := NewLinear(4, 4, rand.New(rand.NewSource(3)))
	batch := testBatch()
	out, err := m.Forward(TrainMode, batch)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	probs, err := m.Predict(batch.Inputs)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := 0.0
	for i, y := range batch.Labels {
		want -= math.Log(probs.At(i, y))
	}
	want /= float64(len(batch.Labels))
	if math.Abs(out.Loss-want) > 1e-12 {
		t.Fatalf("loss %f, want %f", out.Loss, want)
	}
}

func TestLinearGradientsMatchFiniteDifferences(t *testing.T) {
	m := NewLinear(4, 4, rand.New(rand.NewSource(4)))
	batch := testBatch()
	out, err := m.Forward(TrainMode, batch)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}

	base := m.Params().Clone()
	classes, inputs := base.W.Dims()
	flat := append(append([]float64(nil), base.W.RawMatrix().Data...), base.B.RawVector().Data...)
	loss := func(x []float64) float64 {
		probe := &Linear{inputs: inputs, classes: classes, params: &Params{
			W: mat.NewDense(classes, inputs, append([]float64(nil), x[:classes*inputs]...)),
			B: mat.NewVecDense(classes, append([]float64(nil), x[classes*inputs:]...)),
		}}
		o, err := probe.Forward(TrainMode, batch)
		if err != nil {
			t.Fatalf("probe forward: %v", err)
		}
		return o.Loss
	}
	numeric := fd.Gradient(nil, loss, flat, &fd.Settings{Formula: fd.Central})

	analytic := append(append([]float64(nil), out.Grads.W.RawMatrix().Data...), out.Grads.B.RawVector().Data...)
	for i := range numeric {
		if math.Abs(numeric[i]-analytic[i]) > 1e-6 {
			t.Fatalf("grad[%d]: analytic %g numeric %g", i, analytic[i], numeric[i])
		}
	}
}

func TestLinearForwardErrors(t *testing.T) {
	m := NewLinear(4, 4, rand.New(rand.NewSource(5)))
	batch := testBatch()

	if _, err := m.Forward(TrainMode, Batch{Inputs: batch.Inputs}); !errors.Is(err, ErrMissingLabels) {
		t.Fatalf("expected ErrMissingLabels, got %v", err)
	}
	if _, err := m.Forward(TrainMode, Batch{Inputs: batch.Inputs, Labels: []int{0, 1, 9}}); !errors.Is(err, ErrLabelRange) {
		t.Fatalf("expected ErrLabelRange, got %v", err)
	}
	wide := mat.NewDense(1, 5, nil)
	if _, err := m.Forward(InferenceMode, Batch{Inputs: wide}); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
	if _, err := m.Forward(Mode(7), batch); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLinearEmptyBatch(t *testing.T) {
	m := NewLinear(5, 5, rand.New(rand.NewSource(6)))
	out, err := m.Forward(TrainMode, Batch{})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if out.Loss != 0 || out.Grads == nil {
		t.Fatalf("unexpected empty-batch output %+v", out)
	}
}

func TestNewLinearInitBounds(t *testing.T) {
	m := NewLinear(5, 5, rand.New(rand.NewSource(7)))
	bound := 1 / math.Sqrt(5)
	for _, v := range m.Params().W.RawMatrix().Data {
		if math.Abs(v) > bound {
			t.Fatalf("weight %f outside ±%f", v, bound)
		}
	}
	for _, v := range m.Params().B.RawVector().Data {
		if math.Abs(v) > bound {
			t.Fatalf("bias %f outside ±%f", v, bound)
		}
	}
}

func TestArgmaxFirstOnTies(t *testing.T) {
	if got := Argmax([]float64{0.2, 0.9, 0.9, 0.1}); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}
