// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package polyhedron implements integer-point sampling for convex
// rational polyhedra described by linear equality and inequality
// constraints over arbitrary-precision integers.
//
// The central question answered by the package is whether a basic set
// contains an integer point, and if so, which one. The sampler
// decomposes a polyhedron into a bounded part and a recession cone,
// searches the bounded part depth-first along a reduced lattice basis
// inside an exact simplex tableau, and promotes rational points to
// integer points by rounding up inside the cone.
//
// A returned sample is a vector of length 1+dim whose element 0 is the
// denominator 1; a zero-length vector means the set provably contains
// no integer point.
package polyhedron // import "gonum.org/v1/presburger/polyhedron"
