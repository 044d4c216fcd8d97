// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

import (
	"math/big"
	"testing"

	"gonum.org/v1/presburger/intmat"
)

// triangle returns {(x,y) : x ≥ 0, y ≥ 0, x+y ≤ 4}.
func triangle(ctx *Ctx) *BasicSet {
	return NewBasicSet(ctx, 0, 2, 0).
		AddInequality(0, 1, 0).
		AddInequality(0, 0, 1).
		AddInequality(4, -1, -1)
}

func TestTabFeasible(t *testing.T) {
	t.Parallel()
	tab := NewTabFromBasicSet(triangle(NewCtx()))
	if tab.IsEmpty() {
		t.Fatal("feasible set reported empty")
	}
	s := tab.GetSampleValue()
	if len(s) != 3 {
		t.Fatalf("unexpected sample length: got %d, want 3", len(s))
	}
	if !triangle(NewCtx()).Contains(s) {
		t.Error("tableau sample not in the set")
	}
}

func TestTabInfeasible(t *testing.T) {
	t.Parallel()
	b := NewBasicSet(NewCtx(), 0, 1, 0).
		AddInequality(-1, 1). // x ≥ 1
		AddInequality(0, -1)  // x ≤ 0
	tab := NewTabFromBasicSet(b)
	if !tab.IsEmpty() {
		t.Error("infeasible set not reported empty")
	}
}

func TestTabMin(t *testing.T) {
	t.Parallel()
	ctx := NewCtx()
	tab := NewTabFromBasicSet(triangle(ctx))
	var opt big.Int

	// Minimize x.
	row := intmat.NewVecInts(0, 1, 0)
	if res := tab.Min(row, &ctx.one, &opt); res != LPOK {
		t.Fatalf("unexpected result minimizing x: %v", res)
	}
	if opt.Int64() != 0 {
		t.Errorf("unexpected minimum of x: got %v, want 0", &opt)
	}

	// Minimize -x-y, i.e. find -max(x+y).
	row = intmat.NewVecInts(0, -1, -1)
	if res := tab.Min(row, &ctx.one, &opt); res != LPOK {
		t.Fatalf("unexpected result minimizing -x-y: %v", res)
	}
	if opt.Int64() != -4 {
		t.Errorf("unexpected minimum of -x-y: got %v, want -4", &opt)
	}
}

func TestTabMinRoundsUp(t *testing.T) {
	t.Parallel()
	ctx := NewCtx()
	// 2x ≥ 1: the rational minimum of x is 1/2 and must round up to 1.
	b := NewBasicSet(ctx, 0, 1, 0).AddInequality(-1, 2)
	tab := NewTabFromBasicSet(b)
	var opt big.Int
	if res := tab.Min(intmat.NewVecInts(0, 1), &ctx.one, &opt); res != LPOK {
		t.Fatalf("unexpected result: %v", res)
	}
	if opt.Int64() != 1 {
		t.Errorf("unexpected rounded minimum: got %v, want 1", &opt)
	}
}

func TestTabMinUnbounded(t *testing.T) {
	t.Parallel()
	ctx := NewCtx()
	b := NewBasicSet(ctx, 0, 1, 0).AddInequality(0, 1) // x ≥ 0
	tab := NewTabFromBasicSet(b)
	var opt big.Int
	if res := tab.Min(intmat.NewVecInts(0, -1), &ctx.one, &opt); res != LPUnbounded {
		t.Errorf("unexpected result for unbounded direction: %v", res)
	}
}

func TestTabAddIneqAndRollback(t *testing.T) {
	t.Parallel()
	ctx := NewCtx()
	tab := NewTabFromBasicSet(triangle(ctx))
	st := tab.Snap()

	// x ≥ 5 empties the triangle.
	tab.AddIneq(intmat.NewVecInts(-5, 1, 0))
	if !tab.IsEmpty() {
		t.Fatal("tableau not empty after contradictory inequality")
	}

	tab.Rollback(st)
	if tab.IsEmpty() {
		t.Fatal("tableau still empty after rollback")
	}
	var opt big.Int
	if res := tab.Min(intmat.NewVecInts(0, 1, 0), &ctx.one, &opt); res != LPOK {
		t.Fatalf("unexpected result after rollback: %v", res)
	}
	if opt.Int64() != 0 {
		t.Errorf("unexpected minimum after rollback: got %v, want 0", &opt)
	}
}

func TestTabAddValidEq(t *testing.T) {
	t.Parallel()
	ctx := NewCtx()
	tab := NewTabFromBasicSet(triangle(ctx))
	// Pin x = 2.
	tab.AddValidEq(intmat.NewVecInts(-2, 1, 0))
	if tab.IsEmpty() {
		t.Fatal("tableau empty after valid equality")
	}
	var opt big.Int
	if res := tab.Min(intmat.NewVecInts(0, 0, -1), &ctx.one, &opt); res != LPOK {
		t.Fatalf("unexpected result: %v", res)
	}
	// max y = 4 - x = 2.
	if opt.Int64() != -2 {
		t.Errorf("unexpected maximum of y with x pinned: got %v, want -2", &opt)
	}
}

func TestDetectImplicitEqualities(t *testing.T) {
	t.Parallel()
	// x ≥ 0 and x ≤ 0 force x = 0; y is free in [0,1].
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(0, 1, 0).
		AddInequality(0, -1, 0).
		AddInequality(0, 0, 1).
		AddInequality(1, 0, -1)
	tab := NewTabFromBasicSet(b)
	tab.DetectImplicitEqualities()
	if !tab.IsEquality(0) || !tab.IsEquality(1) {
		t.Error("bounds on x not detected as implicit equalities")
	}
	if tab.IsEquality(2) || tab.IsEquality(3) {
		t.Error("bounds on y wrongly detected as implicit equalities")
	}
	eq := tab.Equalities()
	if r, _ := eq.Dims(); r != 1 {
		t.Errorf("unexpected equality rank: got %d, want 1", r)
	}
}

func TestTabTrackedShadowStaysInSync(t *testing.T) {
	t.Parallel()
	b := triangle(NewCtx())
	tab := NewTabFromBasicSet(b)
	tab.TrackBSet(b.Copy())
	st := tab.Snap()

	tab.AddValidEq(intmat.NewVecInts(-1, 1, 0))
	tab.AddIneq(intmat.NewVecInts(0, 0, 1))
	shadow := tab.PeekBSet()
	if shadow.NEq() != 1 || shadow.NIneq() != 4 {
		t.Fatalf("shadow out of sync: %d equalities, %d inequalities", shadow.NEq(), shadow.NIneq())
	}

	tab.Rollback(st)
	if shadow.NEq() != 0 || shadow.NIneq() != 3 {
		t.Errorf("shadow not rolled back: %d equalities, %d inequalities", shadow.NEq(), shadow.NIneq())
	}
}

func TestInitialBasisAlignsEqualities(t *testing.T) {
	t.Parallel()
	ctx := NewCtx()
	// x + y = 2 inside a box.
	b := NewBasicSet(ctx, 0, 2, 0).
		AddEquality(-2, 1, 1).
		AddInequality(0, 1, 0).
		AddInequality(3, -1, 0).
		AddInequality(0, 0, 1).
		AddInequality(3, 0, -1)
	tab := NewTabFromBasicSet(b)
	basis := initialBasis(tab)
	var lo, hi big.Int
	row := basis.Row(1)
	if res := tab.Min(row, &ctx.one, &lo); res != LPOK {
		t.Fatalf("unexpected result: %v", res)
	}
	intmat.Neg(row[1:], row[1:])
	if res := tab.Min(row, &ctx.one, &hi); res != LPOK {
		t.Fatalf("unexpected result: %v", res)
	}
	intmat.Neg(row[1:], row[1:])
	hi.Neg(&hi)
	if lo.Cmp(&hi) != 0 {
		t.Errorf("first basis direction not pinned by the equality: range [%v, %v]", &lo, &hi)
	}
}
