// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

import (
	"math/big"

	"gonum.org/v1/presburger/intmat"
)

// independentBounds selects a maximal linearly independent set of
// inequality constraints of b by row reduction, preferring earlier
// constraints, and returns them below a homogenizing unit row.
func independentBounds(b *BasicSet) *intmat.Mat {
	dim := b.Dim()
	unit := make([]big.Int, 1+dim)
	unit[0].SetInt64(1)
	rows := [][]big.Int{unit}

	if b.NIneq() > 0 {
		var dirs [][]big.Int
		dirs = append(dirs, cloneRow(b.ineq[0][1:]))
		rows = append(rows, cloneRow(b.ineq[0]))
		for j := 1; len(dirs) < dim && j < b.NIneq(); j++ {
			c := cloneRow(b.ineq[j][1:])
			pos := intmat.FirstNonZero(c)
			if pos < 0 {
				continue
			}
			i := 0
			for ; i < len(dirs); i++ {
				pi := intmat.FirstNonZero(dirs[i])
				if pi < pos {
					continue
				}
				if pi > pos {
					break
				}
				intmat.Elim(c, dirs[i], pos, dim)
				pos = intmat.FirstNonZero(c)
				if pos < 0 {
					break
				}
			}
			if pos < 0 {
				continue
			}
			dirs = append(dirs, nil)
			copy(dirs[i+1:], dirs[i:])
			dirs[i] = c
			rows = append(rows, cloneRow(b.ineq[j]))
		}
	}

	bounds := intmat.NewMat(len(rows), 1+dim)
	for i, r := range rows {
		intmat.Set(bounds.Row(i), r)
	}
	return bounds
}

// skewToPositiveOrthant applies a unimodular transformation that turns
// a maximal independent set of bounds of b into non-negativity
// constraints on the leading dimensions, and projects out the
// lineality space by dropping the trailing columns of the
// transformation; the dropped dimensions take the value zero when a
// sample is transformed back. The set must have no parameters, no
// divisions and no equalities.
func skewToPositiveOrthant(b *BasicSet) (*BasicSet, *intmat.Mat, error) {
	if b.nparam != 0 || b.ndiv != 0 || len(b.eq) != 0 {
		return nil, nil, ErrInvalidInput
	}
	b = b.cow()
	oldDim := b.Dim()

	// Hoist multiples of unit rows to the front so they are the
	// preferred bounds.
	j := 0
	for i := 0; i < len(b.ineq); i++ {
		pos := intmat.FirstNonZero(b.ineq[i][1:])
		if pos < 0 {
			continue
		}
		if intmat.FirstNonZero(b.ineq[i][1+pos+1:]) >= 0 {
			continue
		}
		b.ineq[i], b.ineq[j] = b.ineq[j], b.ineq[i]
		j++
	}

	bounds := independentBounds(b)
	nr, _ := bounds.Dims()
	newDim := nr - 1
	_, U, _ := bounds.LeftHermite(true)
	U = U.DropCols(1+newDim, oldDim-newDim)
	b = b.Preimage(U.Clone())
	return b, U, nil
}

// pipStyleSample samples b with the branch-and-bound backend: the set
// is skewed into the positive orthant, an integer point of the skewed
// set is found and the point is transformed back by the skew matrix.
func pipStyleSample(b *BasicSet) (intmat.Vec, error) {
	skewed, T, err := skewToPositiveOrthant(b)
	if err != nil {
		return nil, err
	}
	s, err := branchBoundSample(skewed)
	if err != nil || len(s) == 0 {
		return s, err
	}
	return T.VecProduct(s), nil
}

// branchBoundSample finds an integer point of b by branch and bound
// over the exact tableau. Sets with a non-trivial recession cone are
// routed through the cone-splitting strategy first, since plain
// branching need not terminate on unbounded integer programs.
func branchBoundSample(b *BasicSet) (intmat.Vec, error) {
	if b.FastIsEmpty() {
		return emptySample(), nil
	}
	dim := b.Total()
	if dim == 0 {
		return zeroSample(b), nil
	}
	if dim == 1 {
		return intervalSample(b)
	}

	cone := b.Copy().RecessionCone()
	if cone.NEq() < dim {
		return SampleWithCone(b, cone)
	}

	t := NewTabFromBasicSet(b)
	if t.empty {
		b.setToEmpty()
		return emptySample(), nil
	}
	t.TrackBSet(b.Copy())
	s, err := branchAndBound(t)
	if err != nil {
		return nil, err
	}
	if len(s) > 0 {
		b.sample = s.Clone()
	}
	return s, nil
}

// branchAndBound searches for an integer point in the bounded tableau
// t. At each node the current vertex is inspected; a fractional
// coordinate splits the problem into a floor branch and a ceiling
// branch, explored in that order over a tableau snapshot.
func branchAndBound(t *Tab) (intmat.Vec, error) {
	if t.empty {
		return emptySample(), nil
	}
	s := t.GetSampleValue()
	if s.IsInteger() {
		return s, nil
	}

	var r big.Int
	frac := -1
	for i := 0; i < t.nVar; i++ {
		r.Mod(&s[1+i], &s[0])
		if r.Sign() != 0 {
			frac = i
			break
		}
	}
	if frac < 0 {
		panic(ErrInternal)
	}

	var f big.Int
	intmat.FDiv(&f, &s[1+frac], &s[0])

	st := t.Snap()
	t.Extend(2)

	// Floor branch: x ≤ ⌊v⌋.
	row := make([]big.Int, 1+t.nVar)
	row[0].Set(&f)
	row[1+frac].SetInt64(-1)
	t.AddIneq(row)
	if !t.empty {
		found, err := branchAndBound(t)
		if err != nil || len(found) > 0 {
			return found, err
		}
	}
	t.Rollback(st)

	// Ceiling branch: x ≥ ⌊v⌋+1.
	intmat.Zero(row)
	row[0].Neg(&f)
	row[0].Sub(&row[0], oneBig)
	row[1+frac].SetInt64(1)
	t.AddIneq(row)
	if !t.empty {
		found, err := branchAndBound(t)
		if err != nil || len(found) > 0 {
			return found, err
		}
	}
	t.Rollback(st)

	return emptySample(), nil
}
