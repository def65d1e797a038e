// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package poly implements the upper aggregation levels of the defect
// tree: grains with their crystallographic orientation and the
// polycrystal holding them together
package poly

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/slip"
)

// Grain is a collection of slip systems sharing a crystallographic
// orientation, positioned in the polycrystal frame. The orientation is
// given by Bunge Euler angles; the grain frame is the rotation
//  R = Rz(φ2)・Rx(Φ)・Rz(φ1)
// with the axes derived as the rows of R.
type Grain struct {

	// orientation and position
	Euler []float64 // Bunge Euler angles (φ1, Φ, φ2)
	Frm   *lin.Frame

	// children
	Systems []*slip.System

	// grain-boundary polygon, root frame, z = 0
	Poly [][]float64

	// per-iteration stress caches
	σpar *lin.Stress // applied stress in the polycrystal frame
	σloc *lin.Stress // applied stress in the grain frame

	// time stepping
	Dt float64 // per-grain time increment
}

// NewGrain returns a grain at x0 (polycrystal frame) oriented by the
// Bunge Euler angles
func NewGrain(x0 []float64, φ1, Φ, φ2 float64) (o *Grain) {
	o = &Grain{
		Euler: []float64{φ1, Φ, φ2},
		Frm:   lin.NewFrame(nil),
		σpar:  lin.NewTensor(),
		σloc:  lin.NewTensor(),
	}
	o.Frm.SetOrigin(x0)
	o.Frm.SetEuler(φ1, Φ, φ2)
	return
}

// SetParent links the grain frame into the polycrystal frame
func (o *Grain) SetParent(par *lin.Frame) {
	o.Frm.Par = par
}

// SetPoly copies the grain-boundary polygon vertices (root frame)
func (o *Grain) SetPoly(verts [][]float64) {
	o.Poly = make([][]float64, len(verts))
	for i, v := range verts {
		o.Poly[i] = la.VecClone(v)
	}
}

// AddSystem inserts a slip system, reparenting its frame
func (o *Grain) AddSystem(s *slip.System) {
	s.SetParent(o.Frm)
	o.Systems = append(o.Systems, s)
}

// SetApplied caches the applied stress, given in the polycrystal frame,
// in both frames and pushes the local representation down to the
// systems. Called once per iteration.
func (o *Grain) SetApplied(σroot *lin.Stress) {
	o.σpar.CopyFrom(σroot)
	o.Frm.TenToLocal(o.σloc, σroot)
	for _, s := range o.Systems {
		s.SetApplied(o.σloc)
	}
}

// Applied returns the cached applied stress in the grain frame
func (o *Grain) Applied() *lin.Stress {
	return o.σloc
}

// ComputeStress computes and records the total stress on every defect
// of every slip system of this grain
func (o *Grain) ComputeStress(μ, ν float64) {
	for _, s := range o.Systems {
		s.ComputeStress(μ, ν)
	}
}

// ComputeForcesVelocities resolves forces and velocities on every
// mobile dislocation of this grain
func (o *Grain) ComputeForcesVelocities(B, τstatic float64) {
	for _, s := range o.Systems {
		s.ComputeForcesVelocities(B, τstatic)
	}
}

// TimeStepCandidate returns the smallest time increment proposed by the
// systems of this grain, clamped below by minStep
func (o *Grain) TimeStepCandidate(minDist, minStep float64) float64 {
	dt := math.Inf(1)
	for _, s := range o.Systems {
		dt = utl.Min(dt, s.TimeStepCandidate(minDist, minStep))
	}
	o.Dt = dt
	return dt
}

// MoveDefects advances the mobile dislocations of every system
func (o *Grain) MoveDefects(dt, μ, ν, minDist float64, eqPull bool) {
	for _, s := range o.Systems {
		s.MoveDefects(dt, μ, ν, minDist, eqPull)
	}
}

// CheckSources ticks all sources of this grain and performs due
// emissions
func (o *Grain) CheckSources(dt, μ, ν, minDist float64) (emitted int, err error) {
	for _, s := range o.Systems {
		ne, err := s.CheckSources(dt, μ, ν, minDist)
		if err != nil {
			return emitted, err
		}
		emitted += ne
	}
	return
}

// CheckLocalReactions resolves the short-range reactions of every plane
// of this grain
func (o *Grain) CheckLocalReactions(reactRadius float64) {
	for _, s := range o.Systems {
		s.CheckLocalReactions(reactRadius)
	}
}

// NumDislos returns the number of live dislocations in this grain
func (o *Grain) NumDislos() (n int) {
	for _, s := range o.Systems {
		n += s.NumDislos()
	}
	return
}

// RootPositions appends the root-frame positions of all defects of this
// grain, in canonical order, to res
func (o *Grain) RootPositions(res []float64) []float64 {
	for _, s := range o.Systems {
		res = s.RootPositions(res)
	}
	return res
}

// Contains tells whether the point x (root frame, z ignored) lies
// inside the grain-boundary polygon
func (o *Grain) Contains(x []float64) bool {
	n := len(o.Poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := o.Poly[i][0], o.Poly[i][1]
		xj, yj := o.Poly[j][0], o.Poly[j][1]
		if (yi > x[1]) != (yj > x[1]) {
			if x[0] < (xj-xi)*(x[1]-yi)/(yj-yi)+xi {
				inside = !inside
			}
		}
	}
	return inside
}
