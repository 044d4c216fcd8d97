// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

import (
	"math/big"
	"sync/atomic"

	"gonum.org/v1/presburger/intmat"
)

type bsetFlag uint8

const (
	// flagEmpty marks a set known to contain no integer point.
	flagEmpty bsetFlag = 1 << iota
	// flagNoImplicit marks a set whose implicit equalities have
	// already been surfaced.
	flagNoImplicit
	// flagFinal marks a finalized constraint system.
	flagFinal
)

// BasicSet is a conjunction of linear equalities and inequalities with
// integer coefficients over nparam parameters, dim free dimensions and
// ndiv existentially quantified divisions. A constraint row has length
// 1+Total() with the constant term first: an equality e holds when
// e·(1,x) = 0 and an inequality i when i·(1,x) ≥ 0.
//
// Basic sets are copy-on-write: Copy shares the constraint storage and
// any mutating operation clones it first when it is shared.
type BasicSet struct {
	ctx    *Ctx
	nparam int
	dim    int
	ndiv   int

	eq   [][]big.Int
	ineq [][]big.Int

	// sample caches an integer point: nil means not cached, a
	// zero-length vector means the set is known to be empty.
	sample intmat.Vec

	flags bsetFlag
	ref   *int32
}

// NewBasicSet returns an unconstrained basic set over nparam
// parameters, dim free dimensions and ndiv divisions, in that column
// order.
func NewBasicSet(ctx *Ctx, nparam, dim, ndiv int) *BasicSet {
	ref := int32(1)
	return &BasicSet{ctx: ctx, nparam: nparam, dim: dim, ndiv: ndiv, ref: &ref}
}

// Ctx returns the context the basic set was allocated in.
func (b *BasicSet) Ctx() *Ctx { return b.ctx }

// Total returns the total number of columns following the constant.
func (b *BasicSet) Total() int { return b.nparam + b.dim + b.ndiv }

// Dim returns the number of free dimensions.
func (b *BasicSet) Dim() int { return b.dim }

// NParam returns the number of parameters.
func (b *BasicSet) NParam() int { return b.nparam }

// NDiv returns the number of division variables.
func (b *BasicSet) NDiv() int { return b.ndiv }

// NEq returns the number of equality constraints.
func (b *BasicSet) NEq() int { return len(b.eq) }

// NIneq returns the number of inequality constraints.
func (b *BasicSet) NIneq() int { return len(b.ineq) }

// Equality returns equality row i. The slice aliases the constraint
// storage and must not be modified.
func (b *BasicSet) Equality(i int) []big.Int { return b.eq[i] }

// Inequality returns inequality row i. The slice aliases the
// constraint storage and must not be modified.
func (b *BasicSet) Inequality(i int) []big.Int { return b.ineq[i] }

// FastIsEmpty reports whether the set has been marked empty. It does
// not attempt to decide emptiness.
func (b *BasicSet) FastIsEmpty() bool { return b.flags&flagEmpty != 0 }

// Copy returns a handle sharing the constraint storage of b. The
// storage is cloned as soon as either handle is mutated.
func (b *BasicSet) Copy() *BasicSet {
	atomic.AddInt32(b.ref, 1)
	c := *b
	return &c
}

// Clone returns a basic set sharing no storage with b.
func (b *BasicSet) Clone() *BasicSet {
	c := *b
	c.eq = cloneRows(b.eq)
	c.ineq = cloneRows(b.ineq)
	if b.sample != nil {
		c.sample = b.sample.Clone()
	}
	ref := int32(1)
	c.ref = &ref
	return &c
}

// cow makes b safe to mutate, cloning the shared storage if needed.
func (b *BasicSet) cow() *BasicSet {
	if atomic.LoadInt32(b.ref) == 1 {
		return b
	}
	atomic.AddInt32(b.ref, -1)
	return b.Clone()
}

func cloneRows(rows [][]big.Int) [][]big.Int {
	w := make([][]big.Int, len(rows))
	for i, r := range rows {
		w[i] = make([]big.Int, len(r))
		intmat.Set(w[i], r)
	}
	return w
}

// setToEmpty marks b empty and installs the zero-length sample as the
// emptiness witness.
func (b *BasicSet) setToEmpty() {
	b.flags |= flagEmpty
	b.sample = intmat.Vec{}
}

// AllocEquality appends a zero equality row and returns its index.
func (b *BasicSet) AllocEquality() int {
	b.eq = append(b.eq, make([]big.Int, 1+b.Total()))
	return len(b.eq) - 1
}

// AllocInequality appends a zero inequality row and returns its index.
func (b *BasicSet) AllocInequality() int {
	b.ineq = append(b.ineq, make([]big.Int, 1+b.Total()))
	return len(b.ineq) - 1
}

// AddEquality appends the equality row v·(1,x) = 0.
func (b *BasicSet) AddEquality(v ...int64) *BasicSet {
	b = b.cow()
	if len(v) != 1+b.Total() {
		panic(intmat.ErrShape)
	}
	k := b.AllocEquality()
	for i, x := range v {
		b.eq[k][i].SetInt64(x)
	}
	b.sample = nil
	return b
}

// AddInequality appends the inequality row v·(1,x) ≥ 0.
func (b *BasicSet) AddInequality(v ...int64) *BasicSet {
	b = b.cow()
	if len(v) != 1+b.Total() {
		panic(intmat.ErrShape)
	}
	k := b.AllocInequality()
	for i, x := range v {
		b.ineq[k][i].SetInt64(x)
	}
	b.sample = nil
	return b
}

// DropInequality removes inequality i, moving the last inequality into
// its place.
func (b *BasicSet) DropInequality(i int) *BasicSet {
	b = b.cow()
	n := len(b.ineq)
	b.ineq[i] = b.ineq[n-1]
	b.ineq = b.ineq[:n-1]
	return b
}

// Finalize marks the constraint system complete.
func (b *BasicSet) Finalize() *BasicSet {
	b.flags |= flagFinal
	return b
}

// Contains reports whether the rational point v, with positive
// denominator in element 0, satisfies every constraint of b.
func (b *BasicSet) Contains(v intmat.Vec) bool {
	if len(v) != 1+b.Total() {
		return false
	}
	var t big.Int
	for _, e := range b.eq {
		intmat.Dot(&t, e, v, len(v))
		if t.Sign() != 0 {
			return false
		}
	}
	for _, in := range b.ineq {
		intmat.Dot(&t, in, v, len(v))
		if t.Sign() < 0 {
			return false
		}
	}
	return true
}

// FromVec returns the basic set holding exactly the rational point v,
// with v installed as the cached sample.
func FromVec(ctx *Ctx, v intmat.Vec) *BasicSet {
	if len(v) == 0 {
		panic(ErrInternal)
	}
	dim := len(v) - 1
	b := NewBasicSet(ctx, 0, dim, 0)
	for i := dim - 1; i >= 0; i-- {
		k := b.AllocEquality()
		b.eq[k][0].Neg(&v[1+i])
		b.eq[k][1+i].Set(&v[0])
	}
	b.sample = v.Clone()
	return b
}

// eliminateVar eliminates column pos of dst using the constraint src,
// which must have src[pos] != 0. The multiplier applied to dst is kept
// positive so that inequality directions are preserved.
func eliminateVar(dst, src []big.Int, pos int) {
	if dst[pos].Sign() == 0 {
		return
	}
	var g, a, c, t big.Int
	g.GCD(nil, nil, new(big.Int).Abs(&src[pos]), new(big.Int).Abs(&dst[pos]))
	a.Quo(&src[pos], &g)
	c.Quo(&dst[pos], &g)
	if a.Sign() < 0 {
		a.Neg(&a)
		c.Neg(&c)
	}
	for i := range dst {
		dst[i].Mul(&dst[i], &a)
		t.Mul(&c, &src[i])
		dst[i].Sub(&dst[i], &t)
	}
}

func lastNonZero(s []big.Int) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

// gauss uses each equality to eliminate its last variable from all
// other constraints. Trivial equalities are dropped; contradictory
// ones mark the set empty.
func (b *BasicSet) gauss() {
	for k := 0; k < len(b.eq); k++ {
		row := b.eq[k]
		pos := lastNonZero(row[1:])
		if pos < 0 {
			if row[0].Sign() != 0 {
				b.setToEmpty()
				return
			}
			b.eq = append(b.eq[:k], b.eq[k+1:]...)
			k--
			continue
		}
		for j, e := range b.eq {
			if j == k {
				continue
			}
			eliminateVar(e, row, 1+pos)
		}
		for _, in := range b.ineq {
			eliminateVar(in, row, 1+pos)
		}
	}
}

// normalizeConstraints divides every constraint by the content of its
// coefficients, tightening inequality constants and detecting
// equalities without integer solutions.
func (b *BasicSet) normalizeConstraints() {
	var g, r big.Int
	for k := 0; k < len(b.eq); k++ {
		row := b.eq[k]
		intmat.Gcd(&g, row[1:])
		if g.Sign() == 0 {
			if row[0].Sign() != 0 {
				b.setToEmpty()
				return
			}
			b.eq = append(b.eq[:k], b.eq[k+1:]...)
			k--
			continue
		}
		if g.Cmp(big.NewInt(1)) == 0 {
			continue
		}
		r.Mod(&row[0], &g)
		if r.Sign() != 0 {
			b.setToEmpty()
			return
		}
		intmat.ScaleDown(row, &g)
	}
	for k := 0; k < len(b.ineq); k++ {
		row := b.ineq[k]
		intmat.Gcd(&g, row[1:])
		if g.Sign() == 0 {
			if row[0].Sign() < 0 {
				b.setToEmpty()
				return
			}
			b.ineq = append(b.ineq[:k], b.ineq[k+1:]...)
			k--
			continue
		}
		if g.Cmp(big.NewInt(1)) == 0 {
			continue
		}
		intmat.FDiv(&row[0], &row[0], &g)
		intmat.ScaleDown(row[1:], &g)
	}
}

// coalesceIneqs drops duplicate inequalities, detects contradictory
// opposite pairs and promotes complementary pairs to equalities. It
// reports whether an equality was promoted, in which case the caller
// must run gauss again.
func (b *BasicSet) coalesceIneqs() bool {
	seen := make(map[string]int, len(b.ineq))
	promoted := false
	var t big.Int
	for k := 0; k < len(b.ineq); k++ {
		row := b.ineq[k]
		key := rowKey(row[1:])
		if j, ok := seen[key]; ok {
			// Same direction: keep the tighter constant.
			if b.ineq[j][0].Cmp(&row[0]) > 0 {
				b.ineq[j][0].Set(&row[0])
			}
			b.dropIneqOrdered(k)
			k--
			continue
		}
		neg := make([]big.Int, len(row)-1)
		intmat.Neg(neg, row[1:])
		if j, ok := seen[rowKey(neg)]; ok {
			t.Add(&b.ineq[j][0], &row[0])
			switch t.Sign() {
			case -1:
				b.setToEmpty()
				return false
			case 0:
				b.eq = append(b.eq, row)
				b.dropIneqOrdered(k)
				b.dropIneqOrdered(j)
				promoted = true
				// Indices shifted; rescan from the start.
				seen = make(map[string]int, len(b.ineq))
				k = -1
				continue
			}
		}
		seen[key] = k
	}
	return promoted
}

func (b *BasicSet) dropIneqOrdered(i int) {
	b.ineq = append(b.ineq[:i], b.ineq[i+1:]...)
}

func rowKey(s []big.Int) string {
	var buf []byte
	for i := range s {
		buf = append(buf, s[i].String()...)
		buf = append(buf, ',')
	}
	return string(buf)
}

// Simplify brings the constraint system to a normalized form: gauss
// elimination of equalities, content normalization with constant
// tightening, removal of duplicates and promotion of complementary
// inequality pairs.
func (b *BasicSet) Simplify() *BasicSet {
	if b.FastIsEmpty() {
		return b
	}
	b = b.cow()
	for {
		b.gauss()
		if b.FastIsEmpty() {
			return b
		}
		b.normalizeConstraints()
		if b.FastIsEmpty() {
			return b
		}
		if !b.coalesceIneqs() {
			break
		}
	}
	return b
}

// Preimage transforms b into {x' : T x' ∈ b}, where T is an affine map
// represented by a (1+Total()) by (1+m) matrix. Constraint rows are
// multiplied by T on the right, so the result has m columns following
// the constant.
func (b *BasicSet) Preimage(T *intmat.Mat) *BasicSet {
	r, c := T.Dims()
	if r != 1+b.Total() {
		panic(intmat.ErrShape)
	}
	b = b.cow()
	for k, row := range b.eq {
		b.eq[k] = intmat.VecMatProduct(row, T)
	}
	for k, row := range b.ineq {
		b.ineq[k] = intmat.VecMatProduct(row, T)
	}
	b.dim = c - 1 - b.nparam - b.ndiv
	b.sample = nil
	b.flags &^= flagNoImplicit | flagFinal
	return b.Simplify()
}

// RecessionCone returns the recession cone of b: the directions along
// which b is unbounded, obtained by zeroing the constant term of every
// constraint. Implicit equalities of the cone are surfaced so that the
// equality count equals the codimension of the cone.
func (b *BasicSet) RecessionCone() *BasicSet {
	c := b.cow()
	for _, e := range c.eq {
		e[0].SetInt64(0)
	}
	for _, in := range c.ineq {
		in[0].SetInt64(0)
	}
	c.flags &^= flagEmpty | flagNoImplicit
	c.sample = nil
	c = c.Simplify()
	c.surfaceImplicitEqualities()
	c = c.Simplify()
	c.flags |= flagNoImplicit
	return c
}

// surfaceImplicitEqualities promotes every inequality that holds with
// equality throughout the set to an equality constraint.
func (b *BasicSet) surfaceImplicitEqualities() {
	if b.FastIsEmpty() || len(b.ineq) == 0 {
		return
	}
	t := NewTabFromBasicSet(b)
	if t.empty {
		b.setToEmpty()
		return
	}
	t.DetectImplicitEqualities()
	nEq := len(b.eq)
	for i := len(b.ineq) - 1; i >= 0; i-- {
		if t.IsEquality(nEq + i) {
			b.eq = append(b.eq, b.ineq[i])
			b.ineq = append(b.ineq[:i], b.ineq[i+1:]...)
		}
	}
}

// DropDims removes columns [first, first+n) of the free dimensions.
// No constraint may involve the removed dimensions.
func (b *BasicSet) DropDims(first, n int) *BasicSet {
	b = b.cow()
	col := 1 + b.nparam + first
	for k, row := range b.eq {
		b.eq[k] = dropCols(row, col, n)
	}
	for k, row := range b.ineq {
		b.ineq[k] = dropCols(row, col, n)
	}
	b.dim -= n
	b.sample = nil
	return b
}

func dropCols(row []big.Int, first, n int) []big.Int {
	w := make([]big.Int, len(row)-n)
	intmat.Set(w[:first], row[:first])
	intmat.Set(w[first:], row[first+n:])
	return w
}

// RemoveDims projects out dimensions [first, first+n) and drops them.
// Dimensions defined by an equality are substituted; the rest are
// eliminated by Fourier-Motzkin. The projection is rational.
func (b *BasicSet) RemoveDims(first, n int) *BasicSet {
	b = b.cow()
	for d := first; d < first+n; d++ {
		b.eliminateDim(d)
		if b.FastIsEmpty() {
			break
		}
	}
	if b.FastIsEmpty() {
		return b
	}
	return b.DropDims(first, n)
}

// eliminateDim removes every occurrence of free dimension d from the
// constraint system without dropping the column.
func (b *BasicSet) eliminateDim(d int) {
	col := 1 + b.nparam + d
	for k, e := range b.eq {
		if e[col].Sign() == 0 {
			continue
		}
		for j, o := range b.eq {
			if j != k {
				eliminateVar(o, e, col)
			}
		}
		for _, in := range b.ineq {
			eliminateVar(in, e, col)
		}
		b.eq = append(b.eq[:k], b.eq[k+1:]...)
		return
	}
	var pos, zero, negIdx []int
	for i, in := range b.ineq {
		switch in[col].Sign() {
		case 1:
			pos = append(pos, i)
		case -1:
			negIdx = append(negIdx, i)
		default:
			zero = append(zero, i)
		}
	}
	var out [][]big.Int
	for _, i := range zero {
		out = append(out, b.ineq[i])
	}
	var g, a, c, t big.Int
	for _, p := range pos {
		for _, q := range negIdx {
			lo, hi := b.ineq[p], b.ineq[q]
			g.GCD(nil, nil, new(big.Int).Abs(&lo[col]), new(big.Int).Abs(&hi[col]))
			a.Quo(&lo[col], &g)
			c.Neg(&hi[col])
			c.Quo(&c, &g)
			row := make([]big.Int, len(lo))
			for i := range row {
				row[i].Mul(&a, &hi[i])
				t.Mul(&c, &lo[i])
				row[i].Add(&row[i], &t)
			}
			intmat.Gcd(&g, row[1:])
			if g.Sign() == 0 {
				if row[0].Sign() < 0 {
					b.setToEmpty()
					return
				}
				continue
			}
			intmat.FDiv(&row[0], &row[0], &g)
			intmat.ScaleDown(row[1:], &g)
			out = append(out, row)
		}
	}
	b.ineq = out
}
