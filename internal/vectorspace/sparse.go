// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package vectorspace

import "math"

// CSR is a compressed sparse row matrix. Row i occupies the half-open
// range RowPtr[i]:RowPtr[i+1] of ColIdx/Values, with column indices
// strictly increasing within a row.
type CSR struct {
	NumCols int       `json:"num_cols"`
	RowPtr  []int     `json:"row_ptr"`
	ColIdx  []int     `json:"col_idx"`
	Values  []float64 `json:"values"`
}

// NewCSR returns an empty matrix with the given column count.
func NewCSR(numCols int) *CSR {
	return &CSR{NumCols: numCols, RowPtr: []int{0}}
}

// NumRows returns the number of rows.
func (m *CSR) NumRows() int {
	return len(m.RowPtr) - 1
}

// AppendRow adds a row from parallel, column-sorted slices.
func (m *CSR) AppendRow(cols []int, vals []float64) {
	m.ColIdx = append(m.ColIdx, cols...)
	m.Values = append(m.Values, vals...)
	m.RowPtr = append(m.RowPtr, len(m.ColIdx))
}

// Row returns the column indices and values of row i. The returned
// slices alias the matrix storage.
func (m *CSR) Row(i int) (cols []int, vals []float64) {
	start, end := m.RowPtr[i], m.RowPtr[i+1]
	return m.ColIdx[start:end], m.Values[start:end]
}

// RowNorm returns the L2 norm of row i.
func (m *CSR) RowNorm(i int) float64 {
	_, vals := m.Row(i)
	var sum float64
	for _, v := range vals {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// NormalizeRows scales every row to unit L2 norm in place. Rows with
// zero norm are left untouched; their indices are returned so callers
// can treat them as absent rather than divide by zero.
func (m *CSR) NormalizeRows() (zeroRows []int) {
	for i := 0; i < m.NumRows(); i++ {
		norm := m.RowNorm(i)
		if norm == 0 {
			zeroRows = append(zeroRows, i)
			continue
		}
		start, end := m.RowPtr[i], m.RowPtr[i+1]
		for j := start; j < end; j++ {
			m.Values[j] /= norm
		}
	}
	return zeroRows
}

// DotSparse computes the dot product of two column-sorted sparse rows.
func DotSparse(aCols []int, aVals []float64, bCols []int, bVals []float64) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(aCols) && j < len(bCols) {
		switch {
		case aCols[i] == bCols[j]:
			dot += aVals[i] * bVals[j]
			i++
			j++
		case aCols[i] < bCols[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// Dot computes the dot product of two equal-length dense vectors.
func Dot(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// Norm returns the L2 norm of a dense vector.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// NormalizeDense scales a dense vector to unit L2 norm in place.
// Returns false for zero vectors, which are left untouched.
func NormalizeDense(v []float64) bool {
	norm := Norm(v)
	if norm == 0 {
		return false
	}
	for i := range v {
		v[i] /= norm
	}
	return true
}
