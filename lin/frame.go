// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Frame represents a coordinate frame: an origin and three orthonormal
// axes expressed in the parent frame, plus the rotation taking parent
// components into local components. Par == nil identifies the root frame.
type Frame struct {
	X0  []float64   // origin in the parent frame
	E   [][]float64 // axes (3 rows) in the parent frame
	Rot *Rotation   // parent-to-local rotation
	Par *Frame      // parent frame; nil for the root
}

// NewFrame returns a new frame at the origin of par with standard axes
func NewFrame(par *Frame) *Frame {
	return &Frame{
		X0:  make([]float64, 3),
		E:   StdBasis(),
		Rot: NewRotation(),
		Par: par,
	}
}

// SetOrigin copies x into the frame origin
func (o *Frame) SetOrigin(x []float64) {
	la.VecCopy(o.X0, 1, x)
}

// SetAxes sets the three axes of the frame, normalising each one first.
// Axes shorter than TolZero or failing pairwise orthogonality within
// TolOrth are rejected: the frame falls back to the standard basis with
// identity rotation and ok == false is returned.
func (o *Frame) SetAxes(e1, e2, e3 []float64) (ok bool) {
	u1, u2, u3 := Unit(e1), Unit(e2), Unit(e3)
	if Norm(u1) < TolZero || Norm(u2) < TolZero || Norm(u3) < TolZero {
		o.resetAxes()
		return false
	}
	if math.Abs(Dot(u1, u2)) > TolOrth || math.Abs(Dot(u1, u3)) > TolOrth || math.Abs(Dot(u2, u3)) > TolOrth {
		o.resetAxes()
		return false
	}
	o.E = [][]float64{u1, u2, u3}
	o.RecomputeRot()
	return true
}

// SetEuler sets the rotation from the Bunge Euler angles (φ1, Φ, φ2) and
// derives the axes as the rows of the rotation matrix
func (o *Frame) SetEuler(φ1, Φ, φ2 float64) {
	o.Rot.SetEuler(φ1, Φ, φ2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.E[i][j] = o.Rot.R[i][j]
		}
	}
}

// RecomputeRot rebuilds the parent-to-local rotation from the current axes
func (o *Frame) RecomputeRot() {
	o.Rot.SetFromBases(StdBasis(), o.E)
}

// resetAxes restores the standard basis and identity rotation
func (o *Frame) resetAxes() {
	o.E = StdBasis()
	o.Rot.SetIdentity()
}

// transport of vectors and tensors ///////////////////////////////////////////

// VecToLocal converts the position vector v, expressed in the parent
// frame, to the local frame: translate by -X0 then rotate
func (o *Frame) VecToLocal(res, v []float64) {
	d := []float64{v[0] - o.X0[0], v[1] - o.X0[1], v[2] - o.X0[2]}
	o.Rot.RotVec(res, d)
}

// VecToBase converts the position vector v, expressed in the local frame,
// to the parent frame: rotate back then translate by +X0
func (o *Frame) VecToBase(res, v []float64) {
	o.Rot.UnrotVec(res, v)
	la.VecAdd(res, 1, o.X0)
}

// DirToLocal converts a direction or force-like vector to the local
// frame: rotation only, no translation
func (o *Frame) DirToLocal(res, v []float64) {
	o.Rot.RotVec(res, v)
}

// DirToBase converts a direction or force-like vector to the parent frame
func (o *Frame) DirToBase(res, v []float64) {
	o.Rot.UnrotVec(res, v)
}

// TenToLocal converts tensor components from the parent frame to the
// local frame
func (o *Frame) TenToLocal(res, t *Tensor) {
	o.Rot.RotTen(res, t)
}

// TenToBase converts tensor components from the local frame to the
// parent frame
func (o *Frame) TenToBase(res, t *Tensor) {
	o.Rot.UnrotTen(res, t)
}

// transport through the chain of parents /////////////////////////////////////

// VecToRoot converts the position vector v, expressed in this frame, to
// the root frame by walking the chain of parents
func (o *Frame) VecToRoot(res, v []float64) {
	cur := la.VecClone(v)
	tmp := make([]float64, 3)
	for f := o; f.Par != nil; f = f.Par {
		f.VecToBase(tmp, cur)
		la.VecCopy(cur, 1, tmp)
	}
	la.VecCopy(res, 1, cur)
}

// VecFromRoot converts the position vector v, expressed in the root
// frame, to this frame
func (o *Frame) VecFromRoot(res, v []float64) {
	cur := la.VecClone(v)
	tmp := make([]float64, 3)
	for _, f := range o.pathFromRoot() {
		f.VecToLocal(tmp, cur)
		la.VecCopy(cur, 1, tmp)
	}
	la.VecCopy(res, 1, cur)
}

// TenToRoot converts tensor components from this frame to the root frame
func (o *Frame) TenToRoot(res, t *Tensor) {
	cur := t.Clone()
	tmp := NewTensor()
	for f := o; f.Par != nil; f = f.Par {
		f.TenToBase(tmp, cur)
		cur.CopyFrom(tmp)
	}
	res.CopyFrom(cur)
}

// TenFromRoot converts tensor components from the root frame to this frame
func (o *Frame) TenFromRoot(res, t *Tensor) {
	cur := t.Clone()
	tmp := NewTensor()
	for _, f := range o.pathFromRoot() {
		f.TenToLocal(tmp, cur)
		cur.CopyFrom(tmp)
	}
	res.CopyFrom(cur)
}

// pathFromRoot returns the chain of frames from the first child of the
// root down to this frame
func (o *Frame) pathFromRoot() (chain []*Frame) {
	for f := o; f.Par != nil; f = f.Par {
		chain = append(chain, f)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return
}
