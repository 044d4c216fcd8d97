// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

import (
	"errors"
	"math/big"
)

//go:generate stringer -type=GBRPolicy -trimprefix=GBR
//go:generate stringer -type=Solver -trimprefix=Solver
//go:generate stringer -type=LPResult -trimprefix=LP

// GBRPolicy controls when the depth-first sampler performs generalized
// basis reduction on the tableau basis.
type GBRPolicy int

const (
	// GBRNever disables basis reduction.
	GBRNever GBRPolicy = iota
	// GBROnce performs basis reduction the first time a direction
	// with more than one candidate integer value is encountered.
	GBROnce
	// GBRAlways performs basis reduction whenever such a direction
	// is encountered.
	GBRAlways
)

// Solver selects the integer sampling backend.
type Solver int

const (
	// SolverGBR samples with the generalized basis reduction search.
	SolverGBR Solver = iota
	// SolverBranchBound samples with the branch-and-bound backend
	// after skewing the set into the positive orthant.
	SolverBranchBound
)

// Settings holds the policy block consulted by the sampler.
type Settings struct {
	// GBR is the basis reduction policy.
	GBR GBRPolicy
	// GBROnlyFirst allows a basis reduction to return as soon as a
	// reasonable first direction has been found. Direct calls of
	// Tab.ComputeReducedBasis honour it; for each reduction it
	// triggers, the depth-first sampler sets it to true while GBR is
	// GBRAlways and to false otherwise, and restores it afterwards.
	GBROnlyFirst bool
	// Solver selects the sampling backend.
	Solver Solver
}

// DefaultSettings returns the settings used by NewCtx.
func DefaultSettings() Settings {
	return Settings{GBR: GBROnce, Solver: SolverGBR}
}

// Ctx is a per-computation environment. It carries the policy block
// and reusable constants shared by all structures derived from it.
// Structures holding the same Ctx must not be used concurrently.
type Ctx struct {
	// Settings is the policy block. The sampler saves and restores
	// the fields it mutates, also on error paths.
	Settings Settings

	one big.Int
}

// NewCtx returns a context with default settings.
func NewCtx() *Ctx {
	ctx := &Ctx{Settings: DefaultSettings()}
	ctx.one.SetInt64(1)
	return ctx
}

var (
	// ErrInvalidInput is returned when a sampled set has parameters
	// or division variables, or when an operation's preconditions on
	// the constraint system do not hold.
	ErrInvalidInput = errors.New("polyhedron: invalid input")

	// ErrBackend is returned when the tableau reports an outcome the
	// caller has excluded, such as an unbounded direction where the
	// basis guarantees boundedness.
	ErrBackend = errors.New("polyhedron: unexpected tableau result")
)

// Error is the type of the panic values used for violated internal
// invariants.
type Error struct{ string }

func (err Error) Error() string { return err.string }

// ErrInternal is the panic value for states the sampler has proved
// unreachable.
var ErrInternal = Error{"polyhedron: internal invariant violated"}
