package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch matches any *ShapeMismatchError via errors.Is.
var ErrShapeMismatch = errors.New("model: parameter shape mismatch")

// FileLoadError reports a parameter file that could not be opened or decoded.
type FileLoadError struct {
	Path string
	Err  error
}

func (e *FileLoadError) Error() string {
	return fmt.Sprintf("load params %s: %v", e.Path, e.Err)
}

func (e *FileLoadError) Unwrap() error { return e.Err }

// ShapeMismatchError reports a stored parameter whose shape differs from the model's.
type ShapeMismatchError struct {
	Param string
	Want  [2]int
	Got   [2]int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("param %s: shape %dx%d, want %dx%d", e.Param, e.Got[0], e.Got[1], e.Want[0], e.Want[1])
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }

// WriteTo encodes W then B using gonum's binary matrix format.
func (p *Params) WriteTo(w io.Writer) (int64, error) {
	n, err := p.W.MarshalBinaryTo(w)
	total := int64(n)
	if err != nil {
		return total, fmt.Errorf("write weights: %w", err)
	}
	n, err = p.B.MarshalBinaryTo(w)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("write bias: %w", err)
	}
	return total, nil
}

// ReadParams decodes parameters written by WriteTo.
func ReadParams(r io.Reader) (*Params, error) {
	var w mat.Dense
	if _, err := w.UnmarshalBinaryFrom(r); err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	var b mat.VecDense
	if _, err := b.UnmarshalBinaryFrom(r); err != nil {
		return nil, fmt.Errorf("read bias: %w", err)
	}
	return &Params{W: &w, B: &b}, nil
}

// SaveFile writes the model parameters to path, replacing any existing file.
func (m *Linear) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if _, err := m.params.WriteTo(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// LoadFile replaces the model parameters with those stored at path.
// The model is left untouched on error.
func (m *Linear) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &FileLoadError{Path: path, Err: err}
	}
	defer f.Close()

	p, err := ReadParams(bufio.NewReader(f))
	if err != nil {
		return &FileLoadError{Path: path, Err: err}
	}
	if err := m.checkShape(p); err != nil {
		return err
	}
	m.params = p
	return nil
}

func (m *Linear) checkShape(p *Params) error {
	if r, c := p.W.Dims(); r != m.classes || c != m.inputs {
		return &ShapeMismatchError{Param: "weight", Want: [2]int{m.classes, m.inputs}, Got: [2]int{r, c}}
	}
	if n := p.B.Len(); n != m.classes {
		return &ShapeMismatchError{Param: "bias", Want: [2]int{m.classes, 1}, Got: [2]int{n, 1}}
	}
	return nil
}
