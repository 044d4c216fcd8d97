// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intmat

import "math/big"

// Mat is a dense matrix of arbitrary-precision integers. Rows are
// individually addressable slices, so row swaps and sub-matrix views
// do not copy element data.
type Mat struct {
	nr, nc int
	rows   [][]big.Int
}

// NewMat returns a zero matrix with r rows and c columns.
func NewMat(r, c int) *Mat {
	m := &Mat{nr: r, nc: c, rows: make([][]big.Int, r)}
	data := make([]big.Int, r*c)
	for i := range m.rows {
		m.rows[i] = data[i*c : (i+1)*c : (i+1)*c]
	}
	return m
}

// NewMatInts returns a matrix holding the given row-major values.
func NewMatInts(r, c int, v []int64) *Mat {
	if len(v) != r*c {
		panic(ErrShape)
	}
	m := NewMat(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.rows[i][j].SetInt64(v[i*c+j])
		}
	}
	return m
}

// Identity returns the n by n identity matrix.
func Identity(n int) *Mat {
	m := NewMat(n, n)
	for i := 0; i < n; i++ {
		m.rows[i][i].SetInt64(1)
	}
	return m
}

// SubMatrix returns a matrix whose rows alias cols [firstCol,
// firstCol+nCol) of rows [firstRow, firstRow+nRow) of the given row
// set. Mutating the result mutates the underlying rows.
func SubMatrix(rows [][]big.Int, firstRow, nRow, firstCol, nCol int) *Mat {
	m := &Mat{nr: nRow, nc: nCol, rows: make([][]big.Int, nRow)}
	for i := 0; i < nRow; i++ {
		m.rows[i] = rows[firstRow+i][firstCol : firstCol+nCol : firstCol+nCol]
	}
	return m
}

// Dims returns the number of rows and columns of m.
func (m *Mat) Dims() (r, c int) { return m.nr, m.nc }

// At returns a pointer to the element at row i, column j.
func (m *Mat) At(i, j int) *big.Int { return &m.rows[i][j] }

// Row returns row i of m. The slice aliases the matrix data.
func (m *Mat) Row(i int) []big.Int { return m.rows[i] }

// SwapRows exchanges rows i and j of m.
func (m *Mat) SwapRows(i, j int) {
	m.rows[i], m.rows[j] = m.rows[j], m.rows[i]
}

// Clone returns a copy of m that shares no storage with it.
func (m *Mat) Clone() *Mat {
	w := NewMat(m.nr, m.nc)
	for i := range m.rows {
		Set(w.rows[i], m.rows[i])
	}
	return w
}

// DropCols returns a copy of m without columns [first, first+n).
func (m *Mat) DropCols(first, n int) *Mat {
	w := NewMat(m.nr, m.nc-n)
	for i := range m.rows {
		Set(w.rows[i][:first], m.rows[i][:first])
		Set(w.rows[i][first:], m.rows[i][first+n:])
	}
	return w
}

// Concat returns the vertical concatenation of m and bot. The column
// counts must agree.
func (m *Mat) Concat(bot *Mat) *Mat {
	if m.nc != bot.nc {
		panic(ErrShape)
	}
	w := NewMat(m.nr+bot.nr, m.nc)
	for i := range m.rows {
		Set(w.rows[i], m.rows[i])
	}
	for i := range bot.rows {
		Set(w.rows[m.nr+i], bot.rows[i])
	}
	return w
}

// LinToAff promotes the linear map m to an affine map by prepending a
// homogenizing row and column: the result is the (1+r) by (1+c)
// matrix with a 1 in the corner and m in the lower right block.
func (m *Mat) LinToAff() *Mat {
	w := NewMat(1+m.nr, 1+m.nc)
	w.rows[0][0].SetInt64(1)
	for i := range m.rows {
		Set(w.rows[1+i][1:], m.rows[i])
	}
	return w
}

// Mul returns the matrix product m n. The inner dimensions must
// agree.
func (m *Mat) Mul(n *Mat) *Mat {
	if m.nc != n.nr {
		panic(ErrShape)
	}
	var t big.Int
	w := NewMat(m.nr, n.nc)
	for i := 0; i < m.nr; i++ {
		for k := 0; k < m.nc; k++ {
			if m.rows[i][k].Sign() == 0 {
				continue
			}
			for j := 0; j < n.nc; j++ {
				t.Mul(&m.rows[i][k], &n.rows[k][j])
				w.rows[i][j].Add(&w.rows[i][j], &t)
			}
		}
	}
	return w
}

// VecProduct returns the product m v. The length of v must equal the
// number of columns of m.
func (m *Mat) VecProduct(v Vec) Vec {
	if len(v) != m.nc {
		panic(ErrShape)
	}
	w := NewVec(m.nr)
	for i := range m.rows {
		Dot(&w[i], m.rows[i], v, m.nc)
	}
	return w
}

// VecMatProduct returns the product vᵀ m as a vector. The length of v
// must equal the number of rows of m.
func VecMatProduct(v Vec, m *Mat) Vec {
	if len(v) != m.nr {
		panic(ErrShape)
	}
	var t big.Int
	w := NewVec(m.nc)
	for j := 0; j < m.nc; j++ {
		for i := 0; i < m.nr; i++ {
			t.Mul(&v[i], &m.rows[i][j])
			w[j].Add(&w[j], &t)
		}
	}
	return w
}

// VecInverseProduct returns the solution x of m x = v. The matrix must
// be square and nonsingular and the solution must be integral, which
// holds in particular for unimodular m; VecInverseProduct panics with
// ErrSingular or ErrNotInteger otherwise.
func (m *Mat) VecInverseProduct(v Vec) Vec {
	if m.nr != m.nc || len(v) != m.nr {
		panic(ErrShape)
	}
	n := m.nr
	a := make([][]big.Rat, n)
	for i := range a {
		a[i] = make([]big.Rat, n+1)
		for j := 0; j < n; j++ {
			a[i][j].SetInt(&m.rows[i][j])
		}
		a[i][n].SetInt(&v[i])
	}
	var t big.Rat
	for c := 0; c < n; c++ {
		p := -1
		for r := c; r < n; r++ {
			if a[r][c].Sign() != 0 {
				p = r
				break
			}
		}
		if p < 0 {
			panic(ErrSingular)
		}
		a[c], a[p] = a[p], a[c]
		for r := 0; r < n; r++ {
			if r == c || a[r][c].Sign() == 0 {
				continue
			}
			t.Quo(&a[r][c], &a[c][c])
			for j := c; j <= n; j++ {
				var s big.Rat
				s.Mul(&t, &a[c][j])
				a[r][j].Sub(&a[r][j], &s)
			}
		}
	}
	w := NewVec(n)
	for i := 0; i < n; i++ {
		t.Quo(&a[i][n], &a[i][i])
		if !t.IsInt() {
			panic(ErrNotInteger)
		}
		w[i].Set(t.Num())
	}
	return w
}

// Error is the type of the panic values used by intmat.
type Error struct{ string }

func (err Error) Error() string { return err.string }

var (
	// ErrShape is the panic value for operations on mismatched dimensions.
	ErrShape = Error{"intmat: dimension mismatch"}
	// ErrSingular is the panic value for inverse products with singular matrices.
	ErrSingular = Error{"intmat: matrix is singular"}
	// ErrNotInteger is the panic value for inverse products with non-integral solutions.
	ErrNotInteger = Error{"intmat: solution is not integral"}
)
