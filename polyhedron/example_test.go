// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron_test

import (
	"fmt"

	"gonum.org/v1/presburger/polyhedron"
)

func ExampleBasicSet_SampleVec() {
	ctx := polyhedron.NewCtx()

	// The interval 3 ≤ x ≤ 5.
	b := polyhedron.NewBasicSet(ctx, 0, 1, 0).
		AddInequality(-3, 1).
		AddInequality(5, -1)

	s, err := b.SampleVec()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("x =", s[1].Int64())
	// Output:
	// x = 3
}

func ExampleBasicSet_SampleVec_empty() {
	ctx := polyhedron.NewCtx()

	// 2x = 1 has no integer solution.
	b := polyhedron.NewBasicSet(ctx, 0, 1, 0).AddEquality(-1, 2)

	s, err := b.SampleVec()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("integer point found:", len(s) != 0)
	// Output:
	// integer point found: false
}
