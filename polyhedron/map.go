// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

// BasicMap is a basic relation between an input and an output tuple,
// represented by its underlying basic set over the concatenated
// dimensions.
type BasicMap struct {
	bset *BasicSet
	nIn  int
	nOut int
}

// NewBasicMap wraps b as a relation with nIn input and nOut output
// dimensions. The free dimensions of b must cover both tuples.
func NewBasicMap(b *BasicSet, nIn, nOut int) *BasicMap {
	if nIn+nOut != b.Dim() {
		panic(ErrInternal)
	}
	return &BasicMap{bset: b, nIn: nIn, nOut: nOut}
}

// BasicSet returns the underlying basic set of bm.
func (bm *BasicMap) BasicSet() *BasicSet { return bm.bset }

// NIn returns the number of input dimensions.
func (bm *BasicMap) NIn() int { return bm.nIn }

// NOut returns the number of output dimensions.
func (bm *BasicMap) NOut() int { return bm.nOut }

// IsEmpty reports whether bm has been marked empty.
func (bm *BasicMap) IsEmpty() bool { return bm.bset.FastIsEmpty() }

// Sample returns a basic map holding a single integer pair of bm, or
// an empty basic map when bm contains none.
func (bm *BasicMap) Sample() (*BasicMap, error) {
	s, err := bm.bset.Copy().SampleVec()
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		empty := NewBasicSet(bm.bset.ctx, 0, bm.bset.Dim(), 0)
		empty.setToEmpty()
		return &BasicMap{bset: empty, nIn: bm.nIn, nOut: bm.nOut}, nil
	}
	return &BasicMap{bset: FromVec(bm.bset.ctx, s), nIn: bm.nIn, nOut: bm.nOut}, nil
}

// Map is a finite union of basic maps over the same tuple shape.
type Map struct {
	disjuncts []*BasicMap
}

// NewMap returns the union of the given basic maps.
func NewMap(disjuncts ...*BasicMap) *Map {
	return &Map{disjuncts: disjuncts}
}

// Sample returns a basic map holding a single integer pair of m: the
// disjuncts are sampled in order and the first non-empty sample wins.
// When every disjunct is empty, an empty basic map is returned.
func (m *Map) Sample() (*BasicMap, error) {
	for _, bm := range m.disjuncts {
		s, err := bm.Sample()
		if err != nil {
			return nil, err
		}
		if !s.IsEmpty() {
			return s, nil
		}
	}
	if len(m.disjuncts) == 0 {
		return nil, ErrInvalidInput
	}
	first := m.disjuncts[0]
	empty := NewBasicSet(first.bset.ctx, 0, first.bset.Dim(), 0)
	empty.setToEmpty()
	return &BasicMap{bset: empty, nIn: first.nIn, nOut: first.nOut}, nil
}

// Set is a finite union of basic sets of the same dimension.
type Set struct {
	disjuncts []*BasicSet
}

// NewSet returns the union of the given basic sets.
func NewSet(disjuncts ...*BasicSet) *Set {
	return &Set{disjuncts: disjuncts}
}

// Sample returns a basic set holding a single integer point of s, or
// an empty basic set when every disjunct is empty.
func (s *Set) Sample() (*BasicSet, error) {
	for _, b := range s.disjuncts {
		v, err := b.Copy().SampleVec()
		if err != nil {
			return nil, err
		}
		if len(v) > 0 {
			return FromVec(b.ctx, v), nil
		}
	}
	if len(s.disjuncts) == 0 {
		return nil, ErrInvalidInput
	}
	first := s.disjuncts[0]
	empty := NewBasicSet(first.ctx, 0, first.Dim(), 0)
	empty.setToEmpty()
	return empty, nil
}
