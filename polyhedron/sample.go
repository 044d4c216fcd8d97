// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

import (
	"math/big"

	"gonum.org/v1/presburger/intmat"
)

// SampleVec returns an integer point of b, or a zero-length vector
// when b contains none. The set must have no parameters and no
// division variables. A returned point has length 1+Dim() with
// denominator 1 in element 0 and satisfies every constraint of b.
func (b *BasicSet) SampleVec() (intmat.Vec, error) {
	return basicSetSample(b, false)
}

// SampleBounded returns an integer point of b like SampleVec, where
// the caller guarantees that b is bounded.
func (b *BasicSet) SampleBounded() (intmat.Vec, error) {
	return basicSetSample(b, true)
}

func basicSetSample(b *BasicSet, bounded bool) (intmat.Vec, error) {
	if b.FastIsEmpty() {
		return emptySample(), nil
	}
	if b.nparam != 0 || b.ndiv != 0 {
		return nil, ErrInvalidInput
	}
	dim := b.Dim()

	if len(b.sample) == 1+dim && b.Contains(b.sample) {
		return b.sample.Clone(), nil
	}
	b.sample = nil

	if len(b.eq) > 0 {
		if bounded {
			return sampleEq(b, (*BasicSet).SampleBounded)
		}
		return sampleEq(b, (*BasicSet).SampleVec)
	}
	if dim == 0 {
		return zeroSample(b), nil
	}
	if dim == 1 {
		return intervalSample(b)
	}

	switch b.ctx.Settings.Solver {
	case SolverBranchBound:
		return pipStyleSample(b)
	case SolverGBR:
		if bounded {
			return sampleBounded(b)
		}
		return gbrSample(b)
	}
	return nil, ErrInvalidInput
}

func emptySample() intmat.Vec {
	return intmat.Vec{}
}

// zeroSample returns the origin of the space of b, homogenized. For a
// zero-dimensional set this is the point (1).
func zeroSample(b *BasicSet) intmat.Vec {
	s := intmat.NewVec(1 + b.Total())
	s[0].SetInt64(1)
	return s
}

// intervalSample samples a one-dimensional set. After simplification
// the system is either a single equality with a unit coefficient or a
// collection of inequalities, in which case the bound of the first
// inequality is the candidate.
func intervalSample(b *BasicSet) (intmat.Vec, error) {
	b = b.Simplify()
	if b.FastIsEmpty() {
		return emptySample(), nil
	}
	if len(b.eq) == 0 && len(b.ineq) == 0 {
		return zeroSample(b), nil
	}

	s := intmat.NewVec(2)
	s[0].SetInt64(1)

	if len(b.eq) > 0 {
		if len(b.eq) != 1 || len(b.ineq) != 0 {
			panic(ErrInternal)
		}
		e := b.eq[0]
		switch {
		case isOneInt(&e[1]):
			s[1].Neg(&e[0])
		case isNegOneInt(&e[1]):
			s[1].Set(&e[0])
		default:
			panic(ErrInternal)
		}
		return s, nil
	}

	if isOneInt(&b.ineq[0][1]) {
		s[1].Neg(&b.ineq[0][0])
	} else {
		s[1].Set(&b.ineq[0][0])
	}
	var t big.Int
	for _, in := range b.ineq[1:] {
		intmat.Dot(&t, s, in, 2)
		if t.Sign() < 0 {
			return emptySample(), nil
		}
	}
	return s, nil
}

func isOneInt(x *big.Int) bool    { return x.Cmp(oneBig) == 0 }
func isNegOneInt(x *big.Int) bool { return x.Sign() < 0 && x.CmpAbs(oneBig) == 0 }

// sampleEq removes the equalities of b, samples the reduced set with
// recurse and lifts a found point back through the affine embedding.
func sampleEq(b *BasicSet, recurse func(*BasicSet) (intmat.Vec, error)) (intmat.Vec, error) {
	reduced, T := b.RemoveEqualities()
	s, err := recurse(reduced)
	if err != nil || len(s) == 0 {
		return s, err
	}
	return T.VecProduct(s), nil
}

// sampleBounded samples a basic set that is known to be bounded. It
// dispatches the trivial cases, builds a tableau with the basic set
// tracked as its shadow, surfaces implicit equalities and runs the
// depth-first tableau sampler. A found point is cached on b.
func sampleBounded(b *BasicSet) (intmat.Vec, error) {
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
	if len(b.eq) > 0 {
		return sampleEq(b, sampleBounded)
	}

	tab := NewTabFromBasicSet(b)
	if tab.empty {
		b.setToEmpty()
		return emptySample(), nil
	}
	tab.TrackBSet(b.Copy())
	if b.flags&flagNoImplicit == 0 {
		tab.DetectImplicitEqualities()
	}
	s, err := TabSample(tab)
	if err != nil {
		return nil, err
	}
	if len(s) > 0 {
		b.sample = s.Clone()
	}
	return s, nil
}

// initialBasis returns a basis for the bounded tableau t whose first
// directions are aligned with the equalities of t, so that their
// min-max ranges are singletons. Without equalities the identity is
// returned.
func initialBasis(t *Tab) *intmat.Mat {
	eq := t.Equalities()
	nEq, _ := eq.Dims()
	if t.empty || nEq == 0 || nEq == t.nVar {
		return intmat.Identity(1 + t.nVar)
	}
	_, _, q := eq.LeftHermite(false)
	return q.LinToAff()
}

// TabSample finds an integer point in the set represented by the
// feasible tableau t, or returns a zero-length vector when there is
// none. It scans the integer values in the range attained along each
// basis direction depth-first, pinning a chosen value as an equality
// and backtracking over tableau snapshots.
//
// When t.NUnbounded is non-zero the caller must have installed a
// basis with the unbounded directions last, and must have added
// shifted copies of the constraints involving unbounded directions
// (see SetInitialBasisWithCone) so that any feasible rational value
// in those directions can be rounded up to a feasible integer value.
//
// t.NZero is used as scratch and is clobbered.
func TabSample(t *Tab) (intmat.Vec, error) {
	if t.empty {
		return emptySample(), nil
	}
	if t.basis == nil {
		t.basis = initialBasis(t)
	}
	if r, c := t.basis.Dims(); r != 1+t.nVar || c != 1+t.nVar {
		return nil, ErrInvalidInput
	}

	ctx := t.ctx
	dim := t.nVar
	savedGBR := ctx.Settings.GBR
	defer func() { ctx.Settings.GBR = savedGBR }()

	if t.NUnbounded == t.nVar {
		s := t.basis.VecProduct(t.GetSampleValue())
		s.Ceil()
		return t.basis.VecInverseProduct(s), nil
	}

	t.ExtendCons(dim + 1)

	min := intmat.NewVec(dim)
	max := intmat.NewVec(dim)
	snap := make([]Stamp, dim)

	level := 0
	init := true
	reduced := false

	for level >= 0 {
		empty := false
		if init {
			res := t.Min(t.basis.Row(1+level), &ctx.one, &min[level])
			switch res {
			case LPEmpty:
				empty = true
			case LPUnbounded, LPError:
				return nil, ErrBackend
			}
			if !empty && t.SampleIsInteger() {
				break
			}
			row := t.basis.Row(1 + level)
			intmat.Neg(row[1:], row[1:])
			res = t.Min(row, &ctx.one, &max[level])
			intmat.Neg(row[1:], row[1:])
			max[level].Neg(&max[level])
			switch res {
			case LPEmpty:
				empty = true
			case LPUnbounded, LPError:
				return nil, ErrBackend
			}
			if !empty && t.SampleIsInteger() {
				break
			}
			if !empty && !reduced && ctx.Settings.GBR != GBRNever &&
				min[level].Cmp(&max[level]) < 0 {
				if ctx.Settings.GBR == GBROnce {
					ctx.Settings.GBR = GBRNever
				}
				t.NZero = level
				savedOnlyFirst := ctx.Settings.GBROnlyFirst
				ctx.Settings.GBROnlyFirst = ctx.Settings.GBR == GBRAlways
				err := t.ComputeReducedBasis()
				ctx.Settings.GBROnlyFirst = savedOnlyFirst
				if err != nil {
					return nil, err
				}
				reduced = true
				continue
			}
			reduced = false
			snap[level] = t.Snap()
		} else {
			min[level].Add(&min[level], oneBig)
		}

		if empty || min[level].Cmp(&max[level]) > 0 {
			level--
			init = false
			if level >= 0 {
				t.Rollback(snap[level])
			}
			continue
		}

		row := t.basis.Row(1 + level)
		row[0].Neg(&min[level])
		t.AddValidEq(row)
		row[0].SetInt64(0)

		if level+t.NUnbounded < dim-1 {
			level++
			init = true
			continue
		}
		break
	}

	if level < 0 {
		return emptySample(), nil
	}
	s := t.GetSampleValue()
	if t.NUnbounded > 0 && !s.IsInteger() {
		s = t.basis.VecProduct(s)
		s.Ceil()
		s = t.basis.VecInverseProduct(s)
	}
	return s, nil
}

// gbrSample samples b with the generalized basis reduction strategy,
// splitting off the recession cone first when it is non-trivial.
func gbrSample(b *BasicSet) (intmat.Vec, error) {
	dim := b.Total()
	cone := b.Copy().RecessionCone()
	if cone.NEq() < dim {
		return SampleWithCone(b, cone)
	}
	return sampleBounded(b)
}

// plugIn fixes the leading coordinates of b to the values of sample
// and drops them, by taking the preimage of the map that places the
// sample in front of an identity block.
func plugIn(b *BasicSet, sample intmat.Vec) *BasicSet {
	total := b.Total()
	T := intmat.NewMat(1+total, 1+total-(len(sample)-1))
	for i := range sample {
		T.At(i, 0).Set(&sample[i])
	}
	_, c := T.Dims()
	for i := 0; i < c-1; i++ {
		T.At(len(sample)+i, 1+i).SetInt64(1)
	}
	return b.Preimage(T)
}

// rationalSample returns any rational point of b.
func rationalSample(b *BasicSet) (intmat.Vec, error) {
	t := NewTabFromBasicSet(b)
	if t.empty {
		return nil, ErrBackend
	}
	return t.GetSampleValue(), nil
}

// shiftCone returns the polyhedron with cone as recession cone such
// that the unit box at any of its points lies inside the affine cone
// vec + cone. Any rational point of the result can therefore be
// rounded up to an integer point of the affine cone.
//
// For a constraint <a,x> ≥ 0 of the cone and the rational point v/d,
// the result carries <a,x> - ⌈<a,v>/d⌉ + Σ_{aⱼ<0} aⱼ ≥ 0: the ceiling
// keeps the constraints unscaled and the sum over the negative
// coefficients accounts for the worst vertex of the unit box.
func shiftCone(cone *BasicSet, vec intmat.Vec) (*BasicSet, error) {
	if cone.NEq() != 0 {
		return nil, ErrInvalidInput
	}
	total := cone.Total()
	shift := NewBasicSet(cone.ctx, 0, total, 0)
	for i := 0; i < cone.NIneq(); i++ {
		k := shift.AllocInequality()
		row := shift.ineq[k]
		intmat.Set(row[1:], cone.ineq[i][1:])
		intmat.Dot(&row[0], row[1:], vec[1:], total)
		intmat.CDiv(&row[0], &row[0], &vec[0])
		row[0].Neg(&row[0])
		for j := 0; j < total; j++ {
			if row[1+j].Sign() < 0 {
				row[0].Add(&row[0], &row[1+j])
			}
		}
	}
	return shift.Finalize(), nil
}

// roundUpInCone promotes the rational point vec of a set with
// recession cone cone, transformed by U, to an integer point of the
// set. A point that is already integer is returned unchanged.
func roundUpInCone(vec intmat.Vec, cone *BasicSet, U *intmat.Mat) (intmat.Vec, error) {
	if len(vec) == 0 {
		panic(ErrInternal)
	}
	if vec.IsInteger() {
		return vec, nil
	}
	total := cone.Total()
	cone = cone.Preimage(U)
	cone = cone.RemoveDims(0, total-(len(vec)-1))
	shift, err := shiftCone(cone, vec)
	if err != nil {
		return nil, err
	}
	s, err := rationalSample(shift)
	if err != nil {
		return nil, err
	}
	s.Ceil()
	return s, nil
}

// vecConcat concatenates two integer vectors, dropping the
// denominator slot of the second.
func vecConcat(v1, v2 intmat.Vec) intmat.Vec {
	if len(v1) == 0 || len(v2) == 0 || !v1.IsInteger() || !v2.IsInteger() {
		panic(ErrInternal)
	}
	w := intmat.NewVec(len(v1) + len(v2) - 1)
	intmat.Set(w[:len(v1)], v1)
	intmat.Set(w[len(v1):], v2[1:])
	return w
}

// dropConstraintsInvolving removes every inequality of b whose support
// intersects dimensions [first, first+n).
func dropConstraintsInvolving(b *BasicSet, first, n int) *BasicSet {
	b = b.cow()
	for i := len(b.ineq) - 1; i >= 0; i-- {
		if intmat.FirstNonZero(b.ineq[i][1+first:1+first+n]) == -1 {
			continue
		}
		b = b.DropInequality(i)
	}
	return b
}

// SampleWithCone returns an integer point of b, whose recession cone
// is cone, or a zero-length vector when there is none.
//
// A unimodular transformation derived from the cone equalities moves
// the bounded directions of b to the leading coordinates. The
// transformed set is projected onto those coordinates by dropping
// every constraint whose support meets the unbounded suffix: any
// combination of such constraints bounding only the leading
// coordinates would itself have been a bounded direction. An integer
// point of the projection is then extended along the full-dimensional
// remaining cone by rounding up a rational point, and the pieces are
// transformed back to the original coordinates.
func SampleWithCone(b, cone *BasicSet) (intmat.Vec, error) {
	total := cone.Total()
	coneDim := total - cone.NEq()

	M := intmat.SubMatrix(cone.eq, 0, cone.NEq(), 1, total)
	_, U, _ := M.LeftHermite(false)
	U = U.LinToAff()
	b = b.Preimage(U.Clone())

	bounded := b.Copy()
	bounded = dropConstraintsInvolving(bounded, total-coneDim, coneDim)
	bounded = bounded.DropDims(total-coneDim, coneDim)
	s, err := sampleBounded(bounded)
	if err != nil || len(s) == 0 {
		return s, err
	}

	b = plugIn(b, s.Clone())
	cs, err := rationalSample(b)
	if err != nil {
		return nil, err
	}
	cs, err = roundUpInCone(cs, cone, U.Clone())
	if err != nil {
		return nil, err
	}
	return U.VecProduct(vecConcat(s, cs)), nil
}

// vecSumOfNeg sets s to the sum of the negative elements of v.
func vecSumOfNeg(s *big.Int, v []big.Int) {
	s.SetInt64(0)
	for i := range v {
		if v[i].Sign() < 0 {
			s.Add(s, &v[i])
		}
	}
}

// tabShiftCone adds to t, whose recession cone is represented by
// tCone, shifted copies of the cone constraints in terms of the new
// basis with inverse U, so that any rational value in the unbounded
// directions can be rounded up to an integer value.
func tabShiftCone(t, tCone *Tab, U *intmat.Mat) error {
	if t.NUnbounded == 0 {
		return nil
	}
	bset := tCone.PeekBSet()
	if bset == nil {
		return ErrBackend
	}
	U = U.DropCols(0, t.nVar-t.NUnbounded)
	var v big.Int
	for i := 0; i < len(bset.ineq); i++ {
		if tCone.IsEquality(len(bset.eq) + i) {
			continue
		}
		row := intmat.Vec(cloneRow(bset.ineq[i][1:]))
		row = intmat.VecMatProduct(row, U)
		vecSumOfNeg(&v, row)
		if v.Sign() == 0 {
			continue
		}
		t.Extend(1)
		bset.ineq[i][0].Add(&bset.ineq[i][0], &v)
		t.AddIneq(bset.ineq[i])
		bset.ineq[i][0].Sub(&bset.ineq[i][0], &v)
	}
	return nil
}

// SetInitialBasisWithCone installs a basis for the possibly unbounded
// tableau t, with tCone a tableau for its recession cone: equalities
// of t first, then the bounded directions (equalities of the cone),
// then the unbounded directions, and adds the shifted constraints
// required by TabSample. It sets t.NZero and t.NUnbounded.
func SetInitialBasisWithCone(t, tCone *Tab) error {
	coneEq := tCone.Equalities()
	coneRank, _ := coneEq.Dims()
	if tCone.empty || coneRank == tCone.nVar {
		t.basis = initialBasis(t)
		return nil
	}

	eq := t.Equalities()
	t.NZero, _ = eq.Dims()
	eq = eq.Concat(coneEq)
	t.NUnbounded = t.nVar - coneRank
	_, U, Q := eq.LeftHermite(false)
	t.basis = Q.LinToAff()
	return tabShiftCone(t, tCone, U)
}
