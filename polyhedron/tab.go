// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

import (
	"math/big"

	"gonum.org/v1/presburger/intmat"
)

// LPResult is the outcome of a tableau optimization.
type LPResult int

const (
	// LPOK means an optimum was found.
	LPOK LPResult = iota
	// LPEmpty means the constraint system is infeasible.
	LPEmpty
	// LPUnbounded means the objective is unbounded below.
	LPUnbounded
	// LPError means the computation failed.
	LPError
)

type tabCon struct {
	// row is the constraint r with r·(1,x) ≥ 0, or = 0 for an
	// equality.
	row []big.Int
	eq  bool
}

// Tab is a feasibility tableau over the constraints of a basic set.
// It supports exact rational minimization along affine directions,
// incremental constraint addition with snapshot and rollback, and
// carries the search state of the depth-first sampler: a basis matrix,
// the number of leading basis directions pinned by equalities (NZero)
// and the number of trailing unbounded directions (NUnbounded).
type Tab struct {
	ctx  *Ctx
	nVar int
	// nEq is the number of leading constraints that entered as
	// equalities of the source set. Constraint i ≥ nEq corresponds
	// to inequality i-nEq of the source.
	nEq int
	con []tabCon

	empty bool

	basis      *intmat.Mat
	NZero      int
	NUnbounded int

	bset *BasicSet

	// sample is the current feasible vertex with its common
	// denominator in slot 0. It is replaced, never mutated.
	sample intmat.Vec
}

// Stamp marks a tableau state for Rollback.
type Stamp struct {
	nCon, nEq, nIneq int
	empty            bool
	sample           intmat.Vec
}

// NewTabFromBasicSet builds a tableau from the constraints of b and
// computes an initial feasible vertex, or marks the tableau empty when
// the rational relaxation is infeasible.
func NewTabFromBasicSet(b *BasicSet) *Tab {
	t := &Tab{ctx: b.ctx, nVar: b.Total(), nEq: len(b.eq)}
	for _, e := range b.eq {
		t.con = append(t.con, tabCon{row: cloneRow(e), eq: true})
	}
	for _, in := range b.ineq {
		t.con = append(t.con, tabCon{row: cloneRow(in), eq: false})
	}
	if b.FastIsEmpty() {
		t.empty = true
		return t
	}
	t.refreshSample()
	return t
}

func cloneRow(r []big.Int) []big.Int {
	w := make([]big.Int, len(r))
	intmat.Set(w, r)
	return w
}

// NVar returns the number of tableau variables.
func (t *Tab) NVar() int { return t.nVar }

// IsEmpty reports whether the tableau has been marked empty.
func (t *Tab) IsEmpty() bool { return t.empty }

// Basis returns the current basis matrix, which may be nil.
func (t *Tab) Basis() *intmat.Mat { return t.basis }

// SetBasis installs basis as the search basis of t.
func (t *Tab) SetBasis(basis *intmat.Mat) { t.basis = basis }

// TrackBSet attaches b as the shadow of the tableau. The tableau takes
// ownership; constraints added to the tableau are appended to the
// shadow in the same order.
func (t *Tab) TrackBSet(b *BasicSet) {
	t.bset = b.cow()
}

// PeekBSet returns the tracked shadow, which may be nil.
func (t *Tab) PeekBSet() *BasicSet { return t.bset }

// ExtendCons ensures capacity for k additional constraints.
func (t *Tab) ExtendCons(k int) {
	if cap(t.con)-len(t.con) >= k {
		return
	}
	con := make([]tabCon, len(t.con), len(t.con)+k)
	copy(con, t.con)
	t.con = con
}

// Extend ensures capacity for k additional constraints.
func (t *Tab) Extend(k int) { t.ExtendCons(k) }

// Snap returns a stamp for the current tableau state.
func (t *Tab) Snap() Stamp {
	st := Stamp{nCon: len(t.con), empty: t.empty, sample: t.sample}
	if t.bset != nil {
		st.nEq = len(t.bset.eq)
		st.nIneq = len(t.bset.ineq)
	}
	return st
}

// Rollback restores the tableau to the state marked by st, removing
// every constraint added since. The basis matrix is intentionally not
// restored: a basis reduction survives backtracking.
func (t *Tab) Rollback(st Stamp) {
	t.con = t.con[:st.nCon]
	t.empty = st.empty
	t.sample = st.sample
	if t.bset != nil {
		t.bset.eq = t.bset.eq[:st.nEq]
		t.bset.ineq = t.bset.ineq[:st.nIneq]
	}
}

// AddValidEq adds the equality row·(1,x) = 0 to the tableau and the
// tracked shadow. The caller asserts that the equality is valid for
// the current feasible region.
func (t *Tab) AddValidEq(row []big.Int) {
	r := cloneRow(row)
	t.con = append(t.con, tabCon{row: r, eq: true})
	if t.bset != nil {
		t.bset.eq = append(t.bset.eq, cloneRow(row))
	}
	t.refreshSample()
}

// AddIneq adds the inequality row·(1,x) ≥ 0 to the tableau and the
// tracked shadow, returning the constraint index. The tableau is
// marked empty when the inequality makes it infeasible.
func (t *Tab) AddIneq(row []big.Int) int {
	r := cloneRow(row)
	t.con = append(t.con, tabCon{row: r, eq: false})
	if t.bset != nil {
		t.bset.ineq = append(t.bset.ineq, cloneRow(row))
	}
	t.refreshSample()
	return len(t.con) - 1
}

// IsEquality reports whether constraint i is an equality, either
// original or detected.
func (t *Tab) IsEquality(i int) bool { return t.con[i].eq }

// DetectImplicitEqualities flags every inequality whose maximum over
// the feasible region is zero as an equality. Such an inequality holds
// with equality throughout the region.
func (t *Tab) DetectImplicitEqualities() {
	if t.empty {
		return
	}
	neg := make([]big.Int, 1+t.nVar)
	for i := range t.con {
		if t.con[i].eq {
			continue
		}
		intmat.Neg(neg, t.con[i].row)
		res, opt, _ := t.lp(neg)
		switch res {
		case LPUnbounded:
			continue
		case LPEmpty:
			t.empty = true
			return
		}
		// The minimum of the negated row is the negated maximum.
		if opt.Sign() == 0 {
			t.con[i].eq = true
		}
	}
}

// Equalities returns a matrix whose rows are linearly independent and
// span the coefficient parts of the equality constraints of t,
// implicit equalities included. The rows come from mutual elimination
// and need not equal any single constraint.
func (t *Tab) Equalities() *intmat.Mat {
	var kept [][]big.Int
	var pivots []int
	for i := range t.con {
		if !t.con[i].eq {
			continue
		}
		c := cloneRow(t.con[i].row[1:])
		for k, p := range pivots {
			if c[p].Sign() != 0 {
				eliminateVar(c, kept[k], p)
			}
		}
		pos := intmat.FirstNonZero(c)
		if pos < 0 {
			continue
		}
		for k := range kept {
			if kept[k][pos].Sign() != 0 {
				eliminateVar(kept[k], c, pos)
			}
		}
		kept = append(kept, c)
		pivots = append(pivots, pos)
	}
	eq := intmat.NewMat(len(kept), t.nVar)
	for i, r := range kept {
		intmat.Set(eq.Row(i), r)
	}
	return eq
}

// Min minimizes row·(1,x) over the tableau. On LPOK the optimum,
// divided by denom and rounded up, is stored in opt and the tableau's
// current sample is moved to a minimizing vertex.
func (t *Tab) Min(row []big.Int, denom, opt *big.Int) LPResult {
	if t.empty {
		return LPEmpty
	}
	res, optRat, vx := t.lp(row)
	switch res {
	case LPEmpty:
		t.empty = true
		return LPEmpty
	case LPUnbounded, LPError:
		return res
	}
	var den big.Int
	den.Mul(optRat.Denom(), denom)
	intmat.CDiv(opt, optRat.Num(), &den)
	t.setSampleFromRat(vx)
	return LPOK
}

// ratMin minimizes row·(1,x) over the tableau, returning the exact
// rational optimum. The current sample is not moved.
func (t *Tab) ratMin(row []big.Int) (LPResult, *big.Rat) {
	if t.empty {
		return LPEmpty, nil
	}
	res, opt, _ := t.lp(row)
	return res, opt
}

// SampleIsInteger reports whether the current sample point is an
// integer point.
func (t *Tab) SampleIsInteger() bool {
	return t.sample.IsInteger()
}

// GetSampleValue returns a copy of the current sample point with its
// common denominator in slot 0.
func (t *Tab) GetSampleValue() intmat.Vec {
	return t.sample.Clone()
}

// refreshSample recomputes a feasible vertex after a constraint
// change, marking the tableau empty when none exists.
func (t *Tab) refreshSample() {
	res, _, vx := t.lp(nil)
	if res != LPOK {
		t.empty = true
		return
	}
	t.setSampleFromRat(vx)
}

func (t *Tab) setSampleFromRat(vx []big.Rat) {
	s := intmat.NewVec(1 + t.nVar)
	var d big.Int
	d.SetInt64(1)
	for i := range vx {
		den := vx[i].Denom()
		var g big.Int
		g.GCD(nil, nil, &d, den)
		g.Quo(den, &g)
		d.Mul(&d, &g)
	}
	s[0].Set(&d)
	var q big.Int
	for i := range vx {
		q.Quo(&d, vx[i].Denom())
		s[1+i].Mul(vx[i].Num(), &q)
	}
	t.sample = s
}

// lp minimizes obj·(1,x) over the constraints of t with an exact
// two-phase simplex using Bland's rule. A nil obj solves feasibility
// only. The returned vertex has one entry per tableau variable.
func (t *Tab) lp(obj []big.Int) (LPResult, *big.Rat, []big.Rat) {
	n := t.nVar
	m := len(t.con)
	nIneq := 0
	for i := range t.con {
		if !t.con[i].eq {
			nIneq++
		}
	}
	// Columns: x⁺ (n), x⁻ (n), slacks (nIneq), artificials (m).
	nc := 2*n + nIneq
	tot := nc + m
	T := make([][]big.Rat, m)
	basis := make([]int, m)
	slack := 0
	for i := range t.con {
		row := t.con[i].row
		T[i] = make([]big.Rat, tot+1)
		neg := row[0].Sign() > 0
		// r·(1,x) ≥ 0 becomes Σ r[1+j](x⁺-x⁻) - s = -r[0] with
		// s ≥ 0; the row is negated when the right hand side is
		// negative so that the artificial variable starts at a
		// non-negative value.
		for j := 0; j < n; j++ {
			if neg {
				T[i][j].Neg(ratFromInt(&row[1+j]))
			} else {
				T[i][j].Set(ratFromInt(&row[1+j]))
			}
			T[i][n+j].Neg(&T[i][j])
		}
		if !t.con[i].eq {
			if neg {
				T[i][2*n+slack].SetInt64(1)
			} else {
				T[i][2*n+slack].SetInt64(-1)
			}
			slack++
		}
		T[i][nc+i].SetInt64(1)
		basis[i] = nc + i
		if neg {
			T[i][tot].Set(ratFromInt(&row[0]))
		} else {
			T[i][tot].Neg(ratFromInt(&row[0]))
		}
	}

	// Phase I: minimize the sum of the artificials.
	z := make([]big.Rat, tot+1)
	for i := 0; i < m; i++ {
		for j := 0; j <= tot; j++ {
			if j >= nc && j < nc+m {
				continue
			}
			z[j].Sub(&z[j], &T[i][j])
		}
	}
	if res := pivotLoop(T, z, basis, tot); res != LPOK {
		return LPError, nil, nil
	}
	var objVal big.Rat
	objVal.Neg(&z[tot])
	if objVal.Sign() != 0 {
		return LPEmpty, nil, nil
	}
	// Drive remaining artificials out of the basis; rows that offer
	// no pivot are redundant and dropped.
	for i := 0; i < len(T); i++ {
		if basis[i] < nc {
			continue
		}
		e := -1
		for j := 0; j < nc; j++ {
			if T[i][j].Sign() != 0 {
				e = j
				break
			}
		}
		if e < 0 {
			T = append(T[:i], T[i+1:]...)
			basis = append(basis[:i], basis[i+1:]...)
			i--
			continue
		}
		pivot(T, z, basis, i, e, tot)
	}

	if obj == nil {
		return LPOK, new(big.Rat), t.vertexOf(T, basis)
	}

	// Phase II: minimize the objective over the original columns.
	cost := func(j int) *big.Rat {
		switch {
		case j < n:
			return ratFromInt(&obj[1+j])
		case j < 2*n:
			return new(big.Rat).Neg(ratFromInt(&obj[1+j-n]))
		default:
			return new(big.Rat)
		}
	}
	z = make([]big.Rat, tot+1)
	for j := 0; j < nc; j++ {
		z[j].Set(cost(j))
	}
	var s big.Rat
	for i := range T {
		cb := cost(basis[i])
		if cb.Sign() == 0 {
			continue
		}
		for j := 0; j <= tot; j++ {
			if j >= nc && j < tot {
				continue
			}
			s.Mul(cb, &T[i][j])
			z[j].Sub(&z[j], &s)
		}
	}
	// Artificial columns must not re-enter.
	for j := nc; j < tot; j++ {
		z[j].SetInt64(0)
	}
	if res := pivotLoop(T, z, basis, nc); res != LPOK {
		return res, nil, nil
	}
	var opt big.Rat
	opt.Neg(&z[tot])
	opt.Add(&opt, ratFromInt(&obj[0]))
	return LPOK, &opt, t.vertexOf(T, basis)
}

func (t *Tab) vertexOf(T [][]big.Rat, basis []int) []big.Rat {
	n := t.nVar
	vx := make([]big.Rat, n)
	for i := range T {
		j := basis[i]
		v := &T[i][len(T[i])-1]
		switch {
		case j < n:
			vx[j].Add(&vx[j], v)
		case j < 2*n:
			vx[j-n].Sub(&vx[j-n], v)
		}
	}
	return vx
}

func ratFromInt(x *big.Int) *big.Rat {
	return new(big.Rat).SetInt(x)
}

// pivotLoop performs Bland-rule simplex pivots until optimality or
// unboundedness. Columns at index nc and beyond never enter.
func pivotLoop(T [][]big.Rat, z []big.Rat, basis []int, nc int) LPResult {
	rhs := len(z) - 1
	var ratio, best big.Rat
	for {
		e := -1
		for j := 0; j < nc; j++ {
			if z[j].Sign() < 0 {
				e = j
				break
			}
		}
		if e < 0 {
			return LPOK
		}
		l := -1
		for i := range T {
			if T[i][e].Sign() <= 0 {
				continue
			}
			ratio.Quo(&T[i][rhs], &T[i][e])
			if l < 0 {
				l = i
				best.Set(&ratio)
				continue
			}
			switch ratio.Cmp(&best) {
			case -1:
				l = i
				best.Set(&ratio)
			case 0:
				if basis[i] < basis[l] {
					l = i
				}
			}
		}
		if l < 0 {
			return LPUnbounded
		}
		pivot(T, z, basis, l, e, rhs)
	}
}

// pivot makes column e basic in row l.
func pivot(T [][]big.Rat, z []big.Rat, basis []int, l, e, rhs int) {
	var p big.Rat
	p.Set(&T[l][e])
	for j := 0; j <= rhs; j++ {
		T[l][j].Quo(&T[l][j], &p)
	}
	var f, s big.Rat
	for i := range T {
		if i == l || T[i][e].Sign() == 0 {
			continue
		}
		f.Set(&T[i][e])
		for j := 0; j <= rhs; j++ {
			s.Mul(&f, &T[l][j])
			T[i][j].Sub(&T[i][j], &s)
		}
	}
	if z[e].Sign() != 0 {
		f.Set(&z[e])
		for j := 0; j <= rhs; j++ {
			s.Mul(&f, &T[l][j])
			z[j].Sub(&z[j], &s)
		}
	}
	basis[l] = e
}
