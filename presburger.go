// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package presburger is a set of packages for working with integer
// points of rational polyhedra in Go.
//
// The polyhedron package decides whether a basic set described by
// linear constraints contains an integer point and returns one, and
// the intmat package provides the exact vector and matrix arithmetic
// it is built on.
package presburger // import "gonum.org/v1/presburger"
