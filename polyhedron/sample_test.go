// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"

	"gonum.org/v1/presburger/intmat"
)

var bigIntCmp = cmp.Comparer(func(x, y big.Int) bool { return x.Cmp(&y) == 0 })

// checkSample verifies the sample invariants against the original set:
// denominator 1 and every constraint satisfied.
func checkSample(t *testing.T, b *BasicSet, s intmat.Vec) {
	t.Helper()
	if len(s) != 1+b.Total() {
		t.Fatalf("unexpected sample length: got %d, want %d", len(s), 1+b.Total())
	}
	if !s.IsInteger() {
		t.Fatalf("sample denominator not 1: %v", &s[0])
	}
	if !b.Contains(s) {
		t.Fatalf("sample not contained in the set")
	}
}

func TestSampleEmptyInterval(t *testing.T) {
	t.Parallel()
	// x ≥ 1 and x ≤ 0.
	b := NewBasicSet(NewCtx(), 0, 1, 0).
		AddInequality(-1, 1).
		AddInequality(0, -1)
	s, err := b.SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 0 {
		t.Errorf("unexpected sample from empty set: %v", s)
	}
}

func TestSampleInterval(t *testing.T) {
	t.Parallel()
	// 3 ≤ x ≤ 5 returns (1, 3).
	b := NewBasicSet(NewCtx(), 0, 1, 0).
		AddInequality(-3, 1).
		AddInequality(5, -1)
	s, err := b.SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(intmat.NewVecInts(1, 3), s, bigIntCmp); diff != "" {
		t.Errorf("unexpected sample: (-want +got)\n%s", diff)
	}
}

func TestSampleEqualityWithoutIntegerSolution(t *testing.T) {
	t.Parallel()
	// 2x = 1.
	b := NewBasicSet(NewCtx(), 0, 1, 0).AddEquality(-1, 2)
	s, err := b.SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 0 {
		t.Errorf("unexpected sample from 2x = 1: %v", s)
	}
}

func TestSampleBoundedTriangle(t *testing.T) {
	t.Parallel()
	// x+y ≥ 0, x-y ≥ 0, x ≤ 5.
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(0, 1, 1).
		AddInequality(0, 1, -1).
		AddInequality(5, -1, 0)
	s, err := b.Copy().SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, b, s)
}

func TestSampleHalfPlane(t *testing.T) {
	t.Parallel()
	// y ≥ 0 is unbounded in every direction but one.
	b := NewBasicSet(NewCtx(), 0, 2, 0).AddInequality(0, 0, 1)
	s, err := b.Copy().SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, b, s)
}

func TestSampleRoundUpInCone(t *testing.T) {
	t.Parallel()
	// 2x+2y ≥ 1 and 2x-2y ≥ 1 have the rational vertex (1/2, 0) and
	// no integer point on the boundary; the round-up step must still
	// land inside the cone.
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(-1, 2, 2).
		AddInequality(-1, 2, -2)
	s, err := b.Copy().SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, b, s)
}

func TestSampleZeroDim(t *testing.T) {
	t.Parallel()
	b := NewBasicSet(NewCtx(), 0, 0, 0)
	s, err := b.SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 1 || s[0].Int64() != 1 {
		t.Errorf("unexpected zero-dimensional sample: %v", s)
	}
}

func TestSampleRejectsParameters(t *testing.T) {
	t.Parallel()
	b := NewBasicSet(NewCtx(), 1, 2, 0)
	if _, err := b.SampleVec(); err != ErrInvalidInput {
		t.Errorf("unexpected error: got %v, want %v", err, ErrInvalidInput)
	}
	b = NewBasicSet(NewCtx(), 0, 2, 1)
	if _, err := b.SampleVec(); err != ErrInvalidInput {
		t.Errorf("unexpected error: got %v, want %v", err, ErrInvalidInput)
	}
}

func TestSampleCacheIdempotence(t *testing.T) {
	t.Parallel()
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(-1, 1, 0).
		AddInequality(7, -1, 0).
		AddInequality(-1, 0, 1).
		AddInequality(7, 0, -1)
	first, err := b.SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	if len(b.sample) == 0 {
		t.Fatal("sample not cached")
	}
	second, err := b.SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second, bigIntCmp); diff != "" {
		t.Errorf("second sample differs from cached first: (-want +got)\n%s", diff)
	}
}

func TestSampleStaleCacheIgnored(t *testing.T) {
	t.Parallel()
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(0, 1, 0).
		AddInequality(3, -1, 0).
		AddInequality(0, 0, 1).
		AddInequality(3, 0, -1)
	// Install a cached point outside the set.
	b.sample = intmat.NewVecInts(1, 9, 9)
	s, err := b.SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, b, s)
}

func TestSampleBoundedAgreesWithSampleVec(t *testing.T) {
	t.Parallel()
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(0, 1, 0).
		AddInequality(0, 0, 1).
		AddInequality(4, -1, -1)
	s1, err := b.Copy().SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	s2, err := b.Copy().SampleBounded()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s1, s2, bigIntCmp); diff != "" {
		t.Errorf("bounded sampler disagrees: (-want +got)\n%s", diff)
	}
}

func TestSampleDeterministic(t *testing.T) {
	t.Parallel()
	mk := func() *BasicSet {
		return NewBasicSet(NewCtx(), 0, 3, 0).
			AddInequality(3, 2, -1, 1).
			AddInequality(1, -1, 2, 2).
			AddInequality(4, 1, 1, -2).
			AddInequality(5, -1, -1, 1).
			AddInequality(6, 0, 1, 1)
	}
	s1, err := mk().SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	s2, err := mk().SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s1, s2, bigIntCmp); diff != "" {
		t.Errorf("sampler not deterministic: (-want +got)\n%s", diff)
	}
}

func TestSampleGBRPolicies(t *testing.T) {
	t.Parallel()
	for _, policy := range []GBRPolicy{GBRNever, GBROnce, GBRAlways} {
		ctx := NewCtx()
		ctx.Settings.GBR = policy
		// A thin slab where basis reduction pays off: the short
		// lattice direction is x+8y.
		b := NewBasicSet(ctx, 0, 2, 0).
			AddInequality(0, 1, 8).  // x+8y ≥ 0
			AddInequality(3, -1, -8). // x+8y ≤ 3
			AddInequality(20, 1, 0).
			AddInequality(20, -1, 0)
		s, err := b.Copy().SampleVec()
		if err != nil {
			t.Fatalf("%v: %v", policy, err)
		}
		if len(s) == 0 {
			t.Fatalf("%v: no sample found", policy)
		}
		checkSample(t, b, s)
		if ctx.Settings.GBR != policy {
			t.Errorf("%v: policy not restored: %v", policy, ctx.Settings.GBR)
		}
	}
}

func TestSampleUnboundedWithEqualities(t *testing.T) {
	t.Parallel()
	// x = 2y inside an unbounded wedge.
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddEquality(0, 1, -2).
		AddInequality(-4, 1, 0) // x ≥ 4
	s, err := b.Copy().SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, b, s)
}

func TestSampleWithConeDirect(t *testing.T) {
	t.Parallel()
	// Half-strip 0 ≤ x ≤ 3, y ≥ x.
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(0, 1, 0).
		AddInequality(3, -1, 0).
		AddInequality(0, -1, 1)
	cone := b.Copy().RecessionCone()
	s, err := SampleWithCone(b.Copy(), cone)
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, b, s)
}

func TestTabSampleWithConeBasis(t *testing.T) {
	t.Parallel()
	// Half-strip 0 ≤ x ≤ 3, y ≥ x entered through the initialized
	// tableau path: the basis puts the unbounded direction last and
	// shifted constraints justify rounding up.
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(0, 1, 0).
		AddInequality(3, -1, 0).
		AddInequality(0, -1, 1)
	cone := b.Copy().RecessionCone()

	tab := NewTabFromBasicSet(b)
	tab.TrackBSet(b.Copy())
	tabCone := NewTabFromBasicSet(cone)
	tabCone.TrackBSet(cone.Copy())

	if err := SetInitialBasisWithCone(tab, tabCone); err != nil {
		t.Fatal(err)
	}
	if tab.NUnbounded != 1 {
		t.Fatalf("unexpected number of unbounded directions: got %d, want 1", tab.NUnbounded)
	}
	s, err := TabSample(tab)
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, b, s)
}

func TestTabSampleAllUnbounded(t *testing.T) {
	t.Parallel()
	// 2x+2y ≥ 1, 2x-2y ≥ 1: the recession cone is full-dimensional,
	// so every direction is unbounded.
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(-1, 2, 2).
		AddInequality(-1, 2, -2)
	cone := b.Copy().RecessionCone()
	if cone.NEq() != 0 {
		t.Fatalf("unexpected cone equalities: %d", cone.NEq())
	}

	tab := NewTabFromBasicSet(b)
	tab.TrackBSet(b.Copy())
	tabCone := NewTabFromBasicSet(cone)
	tabCone.TrackBSet(cone.Copy())

	if err := SetInitialBasisWithCone(tab, tabCone); err != nil {
		t.Fatal(err)
	}
	if tab.NUnbounded != 2 {
		t.Fatalf("unexpected number of unbounded directions: got %d, want 2", tab.NUnbounded)
	}
	s, err := TabSample(tab)
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, b, s)
}

func TestSampleUnimodularRoundTrip(t *testing.T) {
	t.Parallel()
	b := NewBasicSet(NewCtx(), 0, 2, 0).
		AddInequality(0, 1, 0).
		AddInequality(0, 0, 1).
		AddInequality(4, -1, -1)
	U := intmat.NewMatInts(2, 2, []int64{1, 3, 0, 1}).LinToAff()
	pre := b.Copy().Preimage(U.Clone())
	s, err := pre.Copy().SampleVec()
	if err != nil {
		t.Fatal(err)
	}
	if len(s) == 0 {
		t.Fatal("transformed set unexpectedly empty")
	}
	checkSample(t, pre, s)
	if !b.Contains(U.VecProduct(s)) {
		t.Error("lifted sample not in the original set")
	}
}

// randomBoundedSet returns a set bounded inside the box [-bound,
// bound]^dim with extra random constraints.
func randomBoundedSet(ctx *Ctx, rnd *rand.Rand, dim int, bound, extra int) *BasicSet {
	b := NewBasicSet(ctx, 0, dim, 0)
	for d := 0; d < dim; d++ {
		lo := make([]int64, 1+dim)
		hi := make([]int64, 1+dim)
		lo[0], lo[1+d] = int64(bound), 1
		hi[0], hi[1+d] = int64(bound), -1
		b = b.AddInequality(lo...).AddInequality(hi...)
	}
	for k := 0; k < extra; k++ {
		row := make([]int64, 1+dim)
		row[0] = rnd.Int63n(11) - 5
		for d := 0; d < dim; d++ {
			row[d+1] = rnd.Int63n(7) - 3
		}
		b = b.AddInequality(row...)
	}
	return b
}

// bruteForceHasPoint scans the integer box [-bound, bound]^dim.
func bruteForceHasPoint(b *BasicSet, bound int) bool {
	dim := b.Total()
	pt := intmat.NewVec(1 + dim)
	pt[0].SetInt64(1)
	var scan func(d int) bool
	scan = func(d int) bool {
		if d == dim {
			return b.Contains(pt)
		}
		for v := -bound; v <= bound; v++ {
			pt[1+d].SetInt64(int64(v))
			if scan(d + 1) {
				return true
			}
		}
		return false
	}
	return scan(0)
}

func TestSampleRandomBounded(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewSource(7))
	for trial := 0; trial < 60; trial++ {
		dim := 2 + trial%2
		bound := 3 - trial%2
		b := randomBoundedSet(NewCtx(), rnd, dim, bound, 2+rnd.Intn(3))
		s, err := b.Copy().SampleVec()
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		want := bruteForceHasPoint(b, bound)
		if (len(s) > 0) != want {
			t.Fatalf("trial %d: sampler says %v, brute force says %v", trial, len(s) > 0, want)
		}
		if len(s) > 0 {
			checkSample(t, b, s)
		}
	}
}

func TestSampleRandomBoundedPolicies(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewSource(11))
	for trial := 0; trial < 30; trial++ {
		b := randomBoundedSet(NewCtx(), rnd, 2, 3, 3)
		var got [3]bool
		for i, policy := range []GBRPolicy{GBRNever, GBROnce, GBRAlways} {
			ctx := NewCtx()
			ctx.Settings.GBR = policy
			c := b.Clone()
			c.ctx = ctx
			s, err := c.SampleVec()
			if err != nil {
				t.Fatalf("trial %d, %v: %v", trial, policy, err)
			}
			got[i] = len(s) > 0
			if len(s) > 0 {
				checkSample(t, b, s)
			}
		}
		if got[0] != got[1] || got[1] != got[2] {
			t.Fatalf("trial %d: policies disagree on emptiness: %v", trial, got)
		}
	}
}

func TestSampleRandomUnbounded(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewSource(13))
	for trial := 0; trial < 40; trial++ {
		dim := 2 + trial%2
		b := NewBasicSet(NewCtx(), 0, dim, 0)
		for k := 0; k < 1+rnd.Intn(3); k++ {
			row := make([]int64, 1+dim)
			row[0] = rnd.Int63n(9) - 4
			for d := 0; d < dim; d++ {
				row[d+1] = rnd.Int63n(7) - 3
			}
			b = b.AddInequality(row...)
		}
		s, err := b.Copy().SampleVec()
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if len(s) > 0 {
			checkSample(t, b, s)
		}
	}
}
