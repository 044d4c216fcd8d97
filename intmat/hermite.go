// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intmat

import "math/big"

// LeftHermite computes the left Hermite normal form of m using
// unimodular column operations: H = M U with H lower triangular in
// echelon form, pivots positive and entries right of a pivot zero.
// Entries left of a pivot are reduced to [0, pivot); with neg set they
// are instead reduced to (-pivot, 0]. U is unimodular and Q is its
// inverse, so that M = H Q. The receiver is not modified.
func (m *Mat) LeftHermite(neg bool) (h, u, q *Mat) {
	h = m.Clone()
	n := h.nc
	u = Identity(n)
	q = Identity(n)

	var f big.Int
	col := 0
	for row := 0; row < h.nr && col < n; row++ {
		if pivotCol(h, row, col) < 0 {
			continue
		}
		for {
			first := pivotCol(h, row, col)
			if first != col {
				swapCols(h, u, q, first, col)
			}
			if h.rows[row][col].Sign() < 0 {
				negCol(h, u, q, col)
			}
			done := true
			for j := col + 1; j < n; j++ {
				if h.rows[row][j].Sign() == 0 {
					continue
				}
				FDiv(&f, &h.rows[row][j], &h.rows[row][col])
				combineCols(h, u, q, j, col, &f)
				if h.rows[row][j].Sign() != 0 {
					done = false
				}
			}
			if done {
				break
			}
		}
		for j := 0; j < col; j++ {
			if h.rows[row][j].Sign() == 0 {
				continue
			}
			if neg {
				CDiv(&f, &h.rows[row][j], &h.rows[row][col])
			} else {
				FDiv(&f, &h.rows[row][j], &h.rows[row][col])
			}
			if f.Sign() != 0 {
				combineCols(h, u, q, j, col, &f)
			}
		}
		col++
	}
	return h, u, q
}

// pivotCol returns the column index in [col, nc) holding the non-zero
// entry of row with smallest absolute value, or -1 if the row is zero
// from col on.
func pivotCol(h *Mat, row, col int) int {
	first := -1
	for j := col; j < h.nc; j++ {
		if h.rows[row][j].Sign() == 0 {
			continue
		}
		if first < 0 || h.rows[row][j].CmpAbs(&h.rows[row][first]) < 0 {
			first = j
		}
	}
	return first
}

// swapCols exchanges columns a and b of h and u, and rows a and b of
// the inverse tracker q.
func swapCols(h, u, q *Mat, a, b int) {
	for i := range h.rows {
		h.rows[i][a], h.rows[i][b] = h.rows[i][b], h.rows[i][a]
	}
	for i := range u.rows {
		u.rows[i][a], u.rows[i][b] = u.rows[i][b], u.rows[i][a]
	}
	q.SwapRows(a, b)
}

// negCol negates column c of h and u, and row c of q.
func negCol(h, u, q *Mat, c int) {
	for i := range h.rows {
		h.rows[i][c].Neg(&h.rows[i][c])
	}
	for i := range u.rows {
		u.rows[i][c].Neg(&u.rows[i][c])
	}
	Neg(q.rows[c], q.rows[c])
}

// combineCols subtracts f times column c from column j of h and u,
// and adds f times row j to row c of q, keeping q the inverse of u.
func combineCols(h, u, q *Mat, j, c int, f *big.Int) {
	var t big.Int
	for i := range h.rows {
		t.Mul(f, &h.rows[i][c])
		h.rows[i][j].Sub(&h.rows[i][j], &t)
	}
	for i := range u.rows {
		t.Mul(f, &u.rows[i][c])
		u.rows[i][j].Sub(&u.rows[i][j], &t)
	}
	for i := 0; i < q.nc; i++ {
		t.Mul(f, &q.rows[j][i])
		q.rows[c][i].Add(&q.rows[c][i], &t)
	}
}
