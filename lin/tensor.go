// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/tsr"
)

// Tensor holds the components of a symmetric second order tensor in 3D,
// e.g. stress or strain. The matrix of components is kept symmetric in
// all states visible outside the constructors.
type Tensor struct {
	M [][]float64 // [3][3] components
}

// Stress and Strain are symmetric tensors; the names carry the meaning
type (
	Stress = Tensor
	Strain = Tensor
)

// NewTensor returns a new zeroed tensor
func NewTensor() *Tensor {
	return &Tensor{M: la.MatAlloc(3, 3)}
}

// NewTensorComps returns a new tensor given its three principal components
// followed by the three shears (xy, xz, yz)
func NewTensorComps(xx, yy, zz, xy, xz, yz float64) (o *Tensor) {
	o = NewTensor()
	o.M[0][0], o.M[1][1], o.M[2][2] = xx, yy, zz
	o.M[0][1], o.M[1][0] = xy, xy
	o.M[0][2], o.M[2][0] = xz, xz
	o.M[1][2], o.M[2][1] = yz, yz
	return
}

// NewTensorMat returns a new tensor with the components of the 3x3 matrix
// A. An asymmetric A (within tol) results in a zeroed tensor and ok == false.
func NewTensorMat(A [][]float64, tol float64) (o *Tensor, ok bool) {
	o = NewTensor()
	if math.Abs(A[0][1]-A[1][0]) > tol || math.Abs(A[0][2]-A[2][0]) > tol || math.Abs(A[1][2]-A[2][1]) > tol {
		return o, false
	}
	la.MatCopy(o.M, 1, A)
	return o, true
}

// Zero zeroes all components of o
func (o *Tensor) Zero() {
	la.MatFill(o.M, 0)
}

// Clone returns a new copy of o
func (o *Tensor) Clone() *Tensor {
	return &Tensor{M: la.MatClone(o.M)}
}

// CopyFrom copies the components of t into o
func (o *Tensor) CopyFrom(t *Tensor) {
	la.MatCopy(o.M, 1, t.M)
}

// Add adds s times t to o:  o += s・t
func (o *Tensor) Add(s float64, t *Tensor) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.M[i][j] += s * t.M[i][j]
		}
	}
}

// Comps returns the six independent components of o: the three principal
// values followed by the shears (xy, xz, yz)
func (o *Tensor) Comps() (xx, yy, zz, xy, xz, yz float64) {
	return o.M[0][0], o.M[1][1], o.M[2][2], o.M[0][1], o.M[0][2], o.M[1][2]
}

// Mandel returns the components of o in Mandel's basis:
//  {Txx, Tyy, Tzz, Txy・√2, Tyz・√2, Txz・√2}
func (o *Tensor) Mandel() []float64 {
	return []float64{
		o.M[0][0], o.M[1][1], o.M[2][2],
		o.M[0][1] * tsr.SQ2, o.M[1][2] * tsr.SQ2, o.M[0][2] * tsr.SQ2,
	}
}
