// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Rotation maps the representation of vectors and tensors from an old
// orthonormal basis to a new one. The entries are
//  R[i][j] = enew_i ・ eold_j
// and the transpose is the inverse.
type Rotation struct {
	R  [][]float64 // rotation matrix (old to new)
	Rt [][]float64 // cached transpose (new to old)
}

// NewRotation returns the identity rotation
func NewRotation() *Rotation {
	return &Rotation{R: Identity(), Rt: Identity()}
}

// SetIdentity resets o to the identity rotation
func (o *Rotation) SetIdentity() {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.R[i][j], o.Rt[i][j] = 0, 0
		}
		o.R[i][i], o.Rt[i][i] = 1, 1
	}
}

// SetFromBases sets the rotation given an ordered pair of orthonormal
// bases (3 rows each). A pair producing a non-orthonormal matrix resets
// o to the identity and returns ok == false.
func (o *Rotation) SetFromBases(eold, enew [][]float64) (ok bool) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.R[i][j] = Dot(enew[i], eold[j])
		}
	}
	if !IsOrthonormal(o.R) {
		o.SetIdentity()
		return false
	}
	Transpose(o.Rt, o.R)
	return true
}

// SetEuler sets the rotation from the Bunge Euler angles (φ1, Φ, φ2):
//  R = Rz(φ2)・Rx(Φ)・Rz(φ1)
func (o *Rotation) SetEuler(φ1, Φ, φ2 float64) {
	c1, s1 := math.Cos(φ1), math.Sin(φ1)
	cF, sF := math.Cos(Φ), math.Sin(Φ)
	c2, s2 := math.Cos(φ2), math.Sin(φ2)
	o.R[0][0] = c1*c2 - s1*s2*cF
	o.R[0][1] = s1*c2 + c1*s2*cF
	o.R[0][2] = s2 * sF
	o.R[1][0] = -c1*s2 - s1*c2*cF
	o.R[1][1] = -s1*s2 + c1*c2*cF
	o.R[1][2] = c2 * sF
	o.R[2][0] = s1 * sF
	o.R[2][1] = -c1 * sF
	o.R[2][2] = cF
	Transpose(o.Rt, o.R)
}

// RotVec computes w := R・v, the components of v in the new basis
//  Note: w must be pre-allocated and different to v
func (o *Rotation) RotVec(w, v []float64) {
	la.MatVecMul(w, 1, o.R, v)
}

// UnrotVec computes w := transpose(R)・v, back to the old basis
//  Note: w must be pre-allocated and different to v
func (o *Rotation) UnrotVec(w, v []float64) {
	la.MatVecMul(w, 1, o.Rt, v)
}

// RotTen computes res := R・t・transpose(R), the components of the tensor
// t in the new basis
//  Note: res must be different to t
func (o *Rotation) RotTen(res, t *Tensor) {
	la.MatTrMul3(res.M, 1, o.Rt, t.M, o.Rt)
}

// UnrotTen computes res := transpose(R)・t・R, back to the old basis
//  Note: res must be different to t
func (o *Rotation) UnrotTen(res, t *Tensor) {
	la.MatTrMul3(res.M, 1, o.R, t.M, o.R)
}
