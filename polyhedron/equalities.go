// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyhedron

import (
	"math/big"

	"gonum.org/v1/presburger/intmat"
)

// RemoveEqualities eliminates the equality constraints of b by a
// unimodular change of variables, returning the reduced set together
// with the affine embedding T: a point x' of the reduced set lifts to
// the point T·(1,x') of b. When the equalities admit no integer
// solution, the returned set is marked empty and T is nil.
//
// The embedding is computed by variable compression: with the
// equalities E·(1,x) = 0 split into constants c and coefficients C,
// the left Hermite form C·U = H gives x = U·(y,z) with H·y = -c fixed
// and z free. The system has integer solutions exactly when the
// triangular solve for y is integral.
func (b *BasicSet) RemoveEqualities() (*BasicSet, *intmat.Mat) {
	b = b.Simplify()
	if b.FastIsEmpty() {
		return b, nil
	}
	total := b.Total()
	k := len(b.eq)
	if k == 0 {
		return b, intmat.Identity(1 + total)
	}

	C := intmat.SubMatrix(b.eq, 0, k, 1, total)
	H, U, _ := C.LeftHermite(false)

	// Forward substitution of H y = -c. After gauss the equalities
	// are independent, so the pivots sit on the diagonal.
	y := intmat.NewVec(k)
	var t, r big.Int
	for i := 0; i < k; i++ {
		t.Neg(&b.eq[i][0])
		for j := 0; j < i; j++ {
			r.Mul(H.At(i, j), &y[j])
			t.Sub(&t, &r)
		}
		if H.At(i, i).Sign() == 0 {
			panic(ErrInternal)
		}
		r.Mod(&t, new(big.Int).Abs(H.At(i, i)))
		if r.Sign() != 0 {
			b = b.cow()
			b.setToEmpty()
			return b, nil
		}
		y[i].Quo(&t, H.At(i, i))
	}

	// T has the lifted particular solution U·(y,0) in its first
	// column and the free columns of U in the rest.
	T := intmat.NewMat(1+total, 1+total-k)
	T.At(0, 0).SetInt64(1)
	for i := 0; i < total; i++ {
		for j := 0; j < k; j++ {
			r.Mul(U.At(i, j), &y[j])
			T.At(1+i, 0).Add(T.At(1+i, 0), &r)
		}
		for j := k; j < total; j++ {
			T.At(1+i, 1+j-k).Set(U.At(i, j))
		}
	}

	return b.Preimage(T), T
}
