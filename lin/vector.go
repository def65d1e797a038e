// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lin implements small linear algebra entities for 3D space:
// vectors, matrices, stress/strain tensors, rotations and coordinate frames
package lin

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// tolerances
var (
	TolZero = 1e-15 // smallest magnitude considered nonzero
	TolOrth = 1e-12 // orthonormality of axes and rotation matrices
)

// NewVec returns a new 3D vector with components x, y, z
func NewVec(x, y, z float64) []float64 {
	return []float64{x, y, z}
}

// Dot returns the internal product u・v of two 3D vectors
func Dot(u, v []float64) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// Cross computes the external product w = u × v
//  Note: w must be pre-allocated and different to u and v
func Cross(w, u, v []float64) {
	w[0] = u[1]*v[2] - u[2]*v[1]
	w[1] = u[2]*v[0] - u[0]*v[2]
	w[2] = u[0]*v[1] - u[1]*v[0]
}

// Norm returns the Euclidean norm of v
func Norm(v []float64) float64 {
	return la.VecNorm(v)
}

// Dist returns the Euclidean distance between points a and b
func Dist(a, b []float64) float64 {
	d := 0.0
	for i := 0; i < 3; i++ {
		d += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math.Sqrt(d)
}

// Unit returns a normalised copy of v. Vectors with magnitude smaller
// than TolZero result in the zero vector.
func Unit(v []float64) (n []float64) {
	n = make([]float64, 3)
	nrm := la.VecNorm(v)
	if nrm < TolZero {
		return
	}
	la.VecCopy(n, 1.0/nrm, v)
	return
}

// Normalise scales v in-place to unit magnitude. Vectors with magnitude
// smaller than TolZero are zeroed.
func Normalise(v []float64) {
	nrm := la.VecNorm(v)
	if nrm < TolZero {
		la.VecFill(v, 0)
		return
	}
	la.VecCopy(v, 1.0/nrm, v)
}

// StdBasis returns the three standard basis vectors e1, e2, e3
func StdBasis() [][]float64 {
	return [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}
