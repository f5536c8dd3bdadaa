package schema

import (
	"github.com/matzehuels/gridplace/pkg/errors"
)

// Matrix is a symmetric N×N table of non-negative connection weights.
// Entry [i][j] is the weight between elements i+1 and j+1; the diagonal is
// unused.
type Matrix [][]int

// NewMatrix returns an all-zero n×n matrix.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// Size returns the number of rows.
func (m Matrix) Size() int { return len(m) }

// Weight returns the weight between elements a and b (1-based).
func (m Matrix) Weight(a, b int) int { return m[a-1][b-1] }

// Connect sets a symmetric weight between elements a and b (1-based).
func (m Matrix) Connect(a, b, w int) {
	m[a-1][b-1] = w
	m[b-1][a-1] = w
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// ValidateMatrix rejects matrices that would silently produce wrong costs:
// wrong dimensions, ragged rows, negative weights, or asymmetric entries.
// Diagonal values are ignored.
func ValidateMatrix(m Matrix, n int) error {
	if len(m) != n {
		return errors.New(errors.ErrCodeMalformedMatrix, "matrix has %d rows, want %d", len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return errors.New(errors.ErrCodeMalformedMatrix, "matrix row %d has %d columns, want %d", i+1, len(row), n)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m[i][j] < 0 || m[j][i] < 0 {
				return errors.New(errors.ErrCodeMalformedMatrix, "negative weight between elements %d and %d", i+1, j+1)
			}
			if m[i][j] != m[j][i] {
				return errors.New(errors.ErrCodeMalformedMatrix,
					"asymmetric weight between elements %d and %d (%d != %d)", i+1, j+1, m[i][j], m[j][i])
			}
		}
	}
	return nil
}
