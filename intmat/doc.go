// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package intmat provides dense vectors and matrices of arbitrary
// precision integers, together with the exact linear algebra used by
// the polyhedron package: inner products, row reduction, ceiling
// division and the left Hermite normal form.
//
// Vectors that represent rational points store a common positive
// denominator in element 0 and the coordinates in elements 1..n.
// Integer points have denominator 1. A zero-length vector is used as
// a witness for the empty set.
package intmat // import "gonum.org/v1/presburger/intmat"
