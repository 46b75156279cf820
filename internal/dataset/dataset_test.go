package dataset

import (
	"math/rand"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestBuildSampleLabelIsArgmax(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		s := BuildSample(rng, DefaultDim)
		if len(s.Features) != DefaultDim {
			t.Fatalf("expected %d features, got %d", DefaultDim, len(s.Features))
		}
		want := 0
		for j, v := range s.Features {
			if v < 0 || v >= 1 {
				t.Fatalf("feature out of range: %f", v)
			}
			if v > s.Features[want] {
				want = j
			}
		}
		if s.Label != want {
			t.Fatalf("sample %d: label %d, argmax %d (%v)", i, s.Label, want, s.Features)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	d := Build(rand.New(rand.NewSource(1)), 0, DefaultDim)
	if d.Len() != 0 || d.Inputs != nil || len(d.Labels) != 0 {
		t.Fatalf("expected empty dataset, got len=%d", d.Len())
	}
	if got := d.Batches(20); len(got) != 0 {
		t.Fatalf("expected no batches, got %d", len(got))
	}
}

func TestBuildAligned(t *testing.T) {
	d := Build(rand.New(rand.NewSource(2)), 37, DefaultDim)
	if d.Len() != 37 {
		t.Fatalf("expected 37 samples, got %d", d.Len())
	}
	r, c := d.Inputs.Dims()
	if r != 37 || c != DefaultDim {
		t.Fatalf("unexpected inputs shape %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, d.Inputs)
		best := 0
		for j := range row {
			if row[j] > row[best] {
				best = j
			}
		}
		if d.Labels[i] != best {
			t.Fatalf("row %d misaligned: label %d, argmax %d", i, d.Labels[i], best)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(rand.New(rand.NewSource(7)), 10, DefaultDim)
	b := Build(rand.New(rand.NewSource(7)), 10, DefaultDim)
	if !mat.Equal(a.Inputs, b.Inputs) || !reflect.DeepEqual(a.Labels, b.Labels) {
		t.Fatal("same seed produced different datasets")
	}
}

func TestBatchesContiguous(t *testing.T) {
	d := Build(rand.New(rand.NewSource(3)), 45, DefaultDim)
	batches := d.Batches(20)
	if len(batches) != 2 {
		t.Fatalf("expected 2 full batches, got %d", len(batches))
	}
	for bi, b := range batches {
		if b.Len() != 20 {
			t.Fatalf("batch %d has %d rows", bi, b.Len())
		}
		for i := 0; i < 20; i++ {
			src := bi*20 + i
			if b.Labels[i] != d.Labels[src] {
				t.Fatalf("batch %d row %d: label %d want %d", bi, i, b.Labels[i], d.Labels[src])
			}
			if b.Inputs.At(i, 0) != d.Inputs.At(src, 0) {
				t.Fatalf("batch %d row %d is not the dataset row %d", bi, i, src)
			}
		}
	}
}

func TestShuffleKeepsPairs(t *testing.T) {
	d := Build(rand.New(rand.NewSource(4)), 200, DefaultDim)
	before := d.ClassCounts(DefaultDim)
	original := mat.DenseCopyOf(d.Inputs)

	d.Shuffle(rand.New(rand.NewSource(5)))

	if !reflect.DeepEqual(before, d.ClassCounts(DefaultDim)) {
		t.Fatal("shuffle changed class counts")
	}
	for i := 0; i < d.Len(); i++ {
		row := mat.Row(nil, i, d.Inputs)
		best := 0
		for j := range row {
			if row[j] > row[best] {
				best = j
			}
		}
		if best != d.Labels[i] {
			t.Fatalf("row %d lost its label after shuffle", i)
		}
	}
	if mat.Equal(original, d.Inputs) {
		t.Fatal("expected rows to be permuted")
	}
}

func TestClassCounts(t *testing.T) {
	d := FromRows([][]float64{{1, 0}, {0, 1}, {0, 2}}, []int{0, 1, 1})
	if got := d.ClassCounts(2); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("unexpected counts %v", got)
	}
}
