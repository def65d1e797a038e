// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package defect

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

// Dislo is an edge dislocation gliding on a slip plane. Its frame keeps
// the x-axis parallel to the Burgers vector and the z-axis parallel to
// the line vector, hence glide happens along the local x-axis.
type Dislo struct {

	// essential
	Base
	BPlane []float64 // Burgers vector in the slip-plane frame
	BLocal []float64 // Burgers vector in the dislocation frame: (|BPlane|, 0, 0)
	L      []float64 // line vector in the slip-plane frame
	BMag   float64   // physical magnitude of the Burgers vector [m]
	Mobile bool      // free to glide

	// current force and velocity
	Frc []float64 // Peach-Koehler force, dislocation frame
	Vel float64   // scalar velocity along the local x-axis [m/s]

	// histories
	FrcHist [][]float64 // per-iteration force records
	VelHist []float64   // per-iteration velocity records

	// scratchpad. computed @ each stress query
	xloc []float64
	σown *lin.Stress
	sb   []float64
	ell  []float64
}

// NewDislo returns a new dislocation with its id minted from the
// registry. x, bp and l are given in the slip-plane frame; bmag is the
// physical Burgers magnitude in metres. The birth record stores the
// Burgers vector and bmag.
func NewDislo(reg *uid.Registry, x, bp, l []float64, bmag float64, mobile bool) (o *Dislo, err error) {
	o = &Dislo{
		Base:   NewBase(reg, Dislocation, []float64{bp[0], bp[1], bp[2], bmag}),
		BPlane: la.VecClone(bp),
		BLocal: lin.NewVec(lin.Norm(bp), 0, 0),
		L:      la.VecClone(l),
		BMag:   bmag,
		Mobile: mobile,
		Frc:    make([]float64, 3),
		xloc:   make([]float64, 3),
		σown:   lin.NewTensor(),
		sb:     make([]float64, 3),
		ell:    lin.NewVec(0, 0, 1),
	}
	o.SetPos(x)
	err = o.AlignFrame()
	return
}

// AlignFrame (re)builds the dislocation frame axes within the parent
// plane frame: x parallel to the Burgers vector, z parallel to the line
// vector, y = z × x. The stress field and the force resolution hold for
// pure edge geometry only, so a Burgers vector not perpendicular to the
// line vector is an error.
func (o *Dislo) AlignFrame() (err error) {
	ex := lin.Unit(o.BPlane)
	ez := lin.Unit(o.L)
	if math.Abs(lin.Dot(ex, ez)) > lin.TolOrth {
		return chk.Err("dislocation %d is not pure edge: b・l = %g with b = %v and l = %v",
			o.Id(), lin.Dot(o.BPlane, o.L), o.BPlane, o.L)
	}
	ey := make([]float64, 3)
	lin.Cross(ey, ez, ex)
	if !o.Frame().SetAxes(ex, ey, ez) {
		return chk.Err("dislocation %d: cannot build frame with b = %v and l = %v",
			o.Id(), o.BPlane, o.L)
	}
	return
}

// StressFieldAt computes the stress field of this dislocation at the
// point x expressed in the dislocation's own frame; the result σ is in
// the same frame. The point r = 0 yields the zero tensor: a dislocation
// does not contribute to the stress at its own centre.
func (o *Dislo) StressFieldAt(σ *lin.Stress, x []float64, μ, ν float64) {
	σ.Zero()
	r2 := x[0]*x[0] + x[1]*x[1]
	if r2 < 1e-30 {
		return
	}
	D := μ * o.BMag / (2.0 * math.Pi * (1.0 - ν))
	r4 := r2 * r2
	xx, yy := x[0]*x[0], x[1]*x[1]
	σxx := -D * x[1] * (3.0*xx + yy) / r4
	σyy := D * x[1] * (xx - yy) / r4
	σxy := D * x[0] * (xx - yy) / r4
	σ.M[0][0] = σxx
	σ.M[1][1] = σyy
	σ.M[2][2] = ν * (σxx + σyy)
	σ.M[0][1], σ.M[1][0] = σxy, σxy
}

// StressAtPoint computes the stress field of this dislocation at the
// point x expressed in the parent (slip-plane) frame; the result σ is in
// the parent frame
func (o *Dislo) StressAtPoint(σ *lin.Stress, x []float64, μ, ν float64) {
	o.Frame().VecToLocal(o.xloc, x)
	o.StressFieldAt(o.σown, o.xloc, μ, ν)
	o.Frame().TenToBase(σ, o.σown)
}

// PKForce computes the Peach-Koehler force f = (σ・b) × l with σ in the
// dislocation's own frame, b = BLocal scaled by BMag and l along the
// local z-axis. The result is in the dislocation frame; the first
// component is the glide force.
func (o *Dislo) PKForce(f []float64, σ *lin.Stress) {
	la.MatVecMul(o.sb, o.BMag, σ.M, o.BLocal)
	lin.Cross(f, o.sb, o.ell)
}

// ResolvedShear returns the xy shear component of σ, the resolved shear
// stress for the edge geometry established by AlignFrame
func (o *Dislo) ResolvedShear(σ *lin.Stress) float64 {
	return σ.M[0][1]
}

// RecordForceVel appends the current force and velocity to the histories
func (o *Dislo) RecordForceVel() {
	f := make([]float64, 3)
	copy(f, o.Frc)
	o.FrcHist = append(o.FrcHist, f)
	o.VelHist = append(o.VelHist, o.Vel)
}

// ForceAt returns the force recorded at iteration it. Out-of-range
// indices return the zero vector.
func (o *Dislo) ForceAt(it int) []float64 {
	if it < 0 || it >= len(o.FrcHist) {
		return make([]float64, 3)
	}
	return o.FrcHist[it]
}

// VelAt returns the velocity recorded at iteration it. Out-of-range
// indices return zero.
func (o *Dislo) VelAt(it int) float64 {
	if it < 0 || it >= len(o.VelHist) {
		return 0
	}
	return o.VelHist[it]
}
