// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intmat

import "math/big"

// Vec is a vector of arbitrary-precision integers. By convention a
// vector describing a rational point has length 1+n with the common
// positive denominator in element 0.
type Vec []big.Int

// NewVec returns a zero vector of length n.
func NewVec(n int) Vec {
	return make(Vec, n)
}

// NewVecInts returns a vector holding the given values.
func NewVecInts(v ...int64) Vec {
	w := make(Vec, len(v))
	for i, x := range v {
		w[i].SetInt64(x)
	}
	return w
}

// Clone returns a copy of v that shares no storage with it.
func (v Vec) Clone() Vec {
	w := make(Vec, len(v))
	Set(w, v)
	return w
}

// Ceil replaces every coordinate of v by its quotient with the
// denominator in element 0, rounded up, and resets the denominator
// to 1. The denominator must be positive.
func (v Vec) Ceil() {
	if len(v) == 0 {
		return
	}
	for i := 1; i < len(v); i++ {
		CDiv(&v[i], &v[i], &v[0])
	}
	v[0].SetInt64(1)
}

// IsInteger reports whether v has denominator 1.
func (v Vec) IsInteger() bool {
	return len(v) > 0 && isOne(&v[0])
}

// Set copies src into dst. The slices must have equal length.
func Set(dst, src []big.Int) {
	for i := range src {
		dst[i].Set(&src[i])
	}
}

// Zero sets every element of s to zero.
func Zero(s []big.Int) {
	for i := range s {
		s[i].SetInt64(0)
	}
}

// Neg sets dst to -src element-wise. The slices may be identical.
func Neg(dst, src []big.Int) {
	for i := range src {
		dst[i].Neg(&src[i])
	}
}

// Dot sets res to the inner product of a and b over their first n
// elements.
func Dot(res *big.Int, a, b []big.Int, n int) {
	var t big.Int
	res.SetInt64(0)
	for i := 0; i < n; i++ {
		t.Mul(&a[i], &b[i])
		res.Add(res, &t)
	}
}

// FirstNonZero returns the index of the first non-zero element of s,
// or -1 if all elements are zero.
func FirstNonZero(s []big.Int) int {
	for i := range s {
		if s[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

// IsZero reports whether all elements of s are zero.
func IsZero(s []big.Int) bool {
	return FirstNonZero(s) == -1
}

// Gcd sets g to the greatest common divisor of the elements of s.
// The result is non-negative and zero only if all elements are zero.
func Gcd(g *big.Int, s []big.Int) {
	g.SetInt64(0)
	for i := range s {
		if s[i].Sign() == 0 {
			continue
		}
		if g.Sign() == 0 {
			g.Abs(&s[i])
			continue
		}
		g.GCD(nil, nil, g, new(big.Int).Abs(&s[i]))
		if isOne(g) {
			return
		}
	}
}

// ScaleDown divides every element of s by g. The division must be
// exact.
func ScaleDown(s []big.Int, g *big.Int) {
	if isOne(g) {
		return
	}
	for i := range s {
		s[i].Quo(&s[i], g)
	}
}

// Elim eliminates element pos of dst using src, with src[pos] != 0.
// dst is scaled by src[pos]/g and then reduced by dst[pos]/g times
// src, with g the gcd of the two pivots, so that dst[pos] becomes
// zero. The first n elements take part.
func Elim(dst, src []big.Int, pos, n int) {
	if dst[pos].Sign() == 0 {
		return
	}
	var g, a, b, t big.Int
	g.GCD(nil, nil, new(big.Int).Abs(&src[pos]), new(big.Int).Abs(&dst[pos]))
	a.Quo(&src[pos], &g)
	b.Quo(&dst[pos], &g)
	for i := 0; i < n; i++ {
		dst[i].Mul(&dst[i], &a)
		t.Mul(&b, &src[i])
		dst[i].Sub(&dst[i], &t)
	}
	Gcd(&g, dst[:n])
	if g.Sign() != 0 {
		ScaleDown(dst[:n], &g)
	}
}

// CDiv sets q to the quotient a/b rounded towards positive infinity.
// Rounding direction matters for negative operands, so the ceiling is
// computed explicitly rather than relying on the truncated division
// of the underlying integer type.
func CDiv(q, a, b *big.Int) {
	var r big.Int
	q.QuoRem(a, b, &r)
	if r.Sign() != 0 && r.Sign() == b.Sign() {
		q.Add(q, oneInt)
	}
}

// FDiv sets q to the quotient a/b rounded towards negative infinity.
func FDiv(q, a, b *big.Int) {
	var r big.Int
	q.QuoRem(a, b, &r)
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		q.Sub(q, oneInt)
	}
}

var oneInt = big.NewInt(1)

func isOne(x *big.Int) bool {
	return x.Cmp(oneInt) == 0
}
