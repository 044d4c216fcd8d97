// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

import (
	"math/big"

	"gonum.org/v1/presburger/intmat"
)

// ComputeReducedBasis performs generalized basis reduction on the
// search basis of t, shortening the directions along which the
// depth-first sampler descends. Rows [1+NZero, 1+nVar-NUnbounded) of
// the basis take part; pinned and unbounded directions are neither
// changed nor mixed in. The basis stays unimodular.
//
// For a pair of consecutive directions b and b', the integer shift α
// minimizing the width of b'+α·b over the feasible region is applied,
// and the directions are swapped when the new width of b'+α·b is
// smaller than 3/4 of the width of b, after which reduction steps back
// one pair. With Settings.GBROnlyFirst, reduction returns as soon as
// the first direction in scope is settled.
func (t *Tab) ComputeReducedBasis() error {
	if t.empty || t.basis == nil {
		return nil
	}
	lo := t.NZero
	hi := t.nVar - t.NUnbounded
	if hi-lo < 2 {
		return nil
	}
	onlyFirst := t.ctx.Settings.GBROnlyFirst

	three := big.NewRat(3, 1)
	four := big.NewRat(4, 1)
	var lhs, rhs big.Rat
	for i := lo; i < hi-1; {
		wi, err := t.rowWidth(t.basis.Row(1 + i))
		if err != nil {
			return err
		}
		wj, err := t.reducePair(i)
		if err != nil {
			return err
		}
		lhs.Mul(four, wj)
		rhs.Mul(three, wi)
		if lhs.Cmp(&rhs) < 0 {
			t.basis.SwapRows(1+i, 1+i+1)
			if i > lo {
				i--
			}
			continue
		}
		if onlyFirst && i == lo {
			return nil
		}
		i++
	}
	return nil
}

// reducePair adds to basis row 1+i+1 the integer multiple of row 1+i
// that minimizes its width, returning the minimized width.
func (t *Tab) reducePair(i int) (*big.Rat, error) {
	bi := t.basis.Row(1 + i)
	bj := t.basis.Row(1 + i + 1)

	probe := intmat.GetVecWorkspace(len(bj))
	defer intmat.PutVecWorkspace(probe)

	var alphaMul big.Int
	width := func(alpha *big.Int) (*big.Rat, error) {
		intmat.Set(probe, bj)
		if alpha.Sign() != 0 {
			for k := 1; k < len(probe); k++ {
				alphaMul.Mul(alpha, &bi[k])
				probe[k].Add(&probe[k], &alphaMul)
			}
		}
		return t.rowWidth(probe)
	}

	alpha := new(big.Int)
	cur, err := width(alpha)
	if err != nil {
		return nil, err
	}
	dir, next, err := t.descentDirection(width, cur)
	if err != nil {
		return nil, err
	}
	if dir == 0 {
		return cur, nil
	}
	// The width is convex in the shift: expand the step until the
	// function stops decreasing, then contract onto the minimizer.
	step := big.NewInt(dir)
	var cand big.Int
	for next.Cmp(cur) < 0 {
		alpha.Add(alpha, step)
		cur = next
		step.Lsh(step, 1)
		cand.Add(alpha, step)
		next, err = width(&cand)
		if err != nil {
			return nil, err
		}
	}
	for step.CmpAbs(oneBig) > 0 {
		step.Rsh(step.Abs(step), 1)
		if dir < 0 {
			step.Neg(step)
		}
		cand.Add(alpha, step)
		w, err := width(&cand)
		if err != nil {
			return nil, err
		}
		if w.Cmp(cur) < 0 {
			alpha.Set(&cand)
			cur = w
		}
	}
	// Finish with unit steps: a shift that neither neighbour improves
	// minimizes the convex width.
	for _, d := range [...]int64{1, -1} {
		for {
			cand.Add(alpha, big.NewInt(d))
			w, err := width(&cand)
			if err != nil {
				return nil, err
			}
			if w.Cmp(cur) >= 0 {
				break
			}
			alpha.Set(&cand)
			cur = w
		}
	}

	if alpha.Sign() != 0 {
		var m big.Int
		for k := 1; k < len(bj); k++ {
			m.Mul(alpha, &bi[k])
			bj[k].Add(&bj[k], &m)
		}
	}
	return cur, nil
}

var oneBig = big.NewInt(1)

// descentDirection probes α = ±1 and returns the direction in which
// the width decreases, with the probed width, or 0 when α = 0 is
// already minimal.
func (t *Tab) descentDirection(width func(*big.Int) (*big.Rat, error), cur *big.Rat) (int64, *big.Rat, error) {
	up, err := width(big.NewInt(1))
	if err != nil {
		return 0, nil, err
	}
	if up.Cmp(cur) < 0 {
		return 1, up, nil
	}
	down, err := width(big.NewInt(-1))
	if err != nil {
		return 0, nil, err
	}
	if down.Cmp(cur) < 0 {
		return -1, down, nil
	}
	return 0, nil, nil
}

// rowWidth returns the width max r·x - min r·x of the feasible region
// along the direction part of row r.
func (t *Tab) rowWidth(r []big.Int) (*big.Rat, error) {
	res, lo := t.ratMin(r)
	if res != LPOK {
		return nil, ErrBackend
	}
	neg := intmat.GetVecWorkspace(len(r))
	defer intmat.PutVecWorkspace(neg)
	intmat.Neg(neg, r)
	res, hi := t.ratMin(neg)
	if res != LPOK {
		return nil, ErrBackend
	}
	var w big.Rat
	w.Neg(hi)
	w.Sub(&w, lo)
	return &w, nil
}
