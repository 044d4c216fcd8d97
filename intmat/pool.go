// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intmat

import (
	"math/bits"
	"sync"
)

// poolFor returns the ceiling of base 2 log of size. It provides an
// index into a pool array to a sync.Pool that will return values able
// to hold size elements.
func poolFor(size uint) int {
	if size == 0 {
		return 0
	}
	return bits.Len(size - 1)
}

// poolVec contains size stratified workspace Vec pools. Each pool
// element i returns vectors with a slice capped at 1<<i.
var poolVec [63]sync.Pool

func init() {
	for i := range poolVec {
		l := 1 << uint(i)
		poolVec[i].New = func() interface{} {
			v := make(Vec, l)
			return &v
		}
	}
}

// GetVecWorkspace returns a zeroed Vec of length n from a workspace
// pool. Pass the vector to PutVecWorkspace when it is no longer
// needed.
func GetVecWorkspace(n int) Vec {
	v := *poolVec[poolFor(uint(n))].Get().(*Vec)
	v = v[:n]
	Zero(v)
	return v
}

// PutVecWorkspace replaces a used workspace Vec into the appropriate
// size workspace pool. Vectors with zero capacity are ignored.
func PutVecWorkspace(v Vec) {
	if cap(v) == 0 {
		return
	}
	v = v[:cap(v)]
	poolVec[poolFor(uint(cap(v)))].Put(&v)
}
