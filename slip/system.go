// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slip

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
)

// System is a slip system: a set of parallel slip planes sharing a
// normal and a slip direction, positioned in the parent grain frame
type System struct {

	// geometry, in the parent grain frame
	X0  []float64 // position
	N   []float64 // normal shared by all planes
	Dir []float64 // slip direction
	Frm *lin.Frame

	// children, ordered by position along the local z-axis
	Planes []*Plane

	// per-iteration stress caches
	σpar *lin.Stress // applied stress in the parent grain frame
	σloc *lin.Stress // applied stress in the system frame

	// time stepping
	Dt float64 // per-system time increment
}

// NewSystem returns a slip system with its frame built from the slip
// direction and the normal: x along dir, z along n, y = z × x and
// origin at x0, all in the parent grain frame
func NewSystem(x0, n, dir []float64) (o *System, err error) {
	o = &System{
		X0:   la.VecClone(x0),
		N:    la.VecClone(n),
		Dir:  la.VecClone(dir),
		Frm:  lin.NewFrame(nil),
		σpar: lin.NewTensor(),
		σloc: lin.NewTensor(),
	}
	o.Frm.SetOrigin(x0)
	ex := lin.Unit(dir)
	ez := lin.Unit(n)
	ey := make([]float64, 3)
	lin.Cross(ey, ez, ex)
	if !o.Frm.SetAxes(ex, ey, ez) {
		return nil, chk.Err("slip system: cannot build frame with direction %v and normal %v", dir, n)
	}
	return
}

// SetParent links the system frame into the parent grain frame
func (o *System) SetParent(par *lin.Frame) {
	o.Frm.Par = par
}

// AddPlane inserts a slip plane, reparenting its frame and keeping the
// planes ordered by their stacking offset
func (o *System) AddPlane(p *Plane) {
	p.SetParent(o.Frm)
	o.Planes = append(o.Planes, p)
	sort.Slice(o.Planes, func(i, j int) bool {
		return o.planeOffset(o.Planes[i]) < o.planeOffset(o.Planes[j])
	})
}

// planeOffset returns the position of a plane origin along the local
// y-axis, the stacking direction of the parallel planes of this system
func (o *System) planeOffset(p *Plane) float64 {
	x := make([]float64, 3)
	o.Frm.VecToLocal(x, p.X0)
	return x[1]
}

// SetApplied caches the applied stress, given in the parent grain
// frame, in both frames and pushes the local representation down to the
// planes. Called once per iteration.
func (o *System) SetApplied(σgrain *lin.Stress) {
	o.σpar.CopyFrom(σgrain)
	o.Frm.TenToLocal(o.σloc, σgrain)
	for _, p := range o.Planes {
		p.SetApplied(o.σloc)
	}
}

// Applied returns the cached applied stress in the system frame
func (o *System) Applied() *lin.Stress {
	return o.σloc
}

// ComputeStress computes and records the total stress on every defect
// of every plane. Defects see the applied cache, the fields of their
// own plane and the fields of the sibling planes, all at the
// start-of-iteration positions.
func (o *System) ComputeStress(μ, ν float64) {
	var remotes []*Plane
	if len(o.Planes) > 1 {
		remotes = o.Planes
	}
	for _, p := range o.Planes {
		p.ComputeStress(μ, ν, remotes)
	}
}

// ComputeForcesVelocities resolves forces and velocities on every
// mobile dislocation of every plane
func (o *System) ComputeForcesVelocities(B, τstatic float64) {
	for _, p := range o.Planes {
		p.ComputeForcesVelocities(B, τstatic)
	}
}

// TimeStepCandidate returns the smallest time increment proposed by the
// planes of this system, clamped below by minStep
func (o *System) TimeStepCandidate(minDist, minStep float64) float64 {
	dt := math.Inf(1)
	for _, p := range o.Planes {
		dt = utl.Min(dt, p.TimeStepCandidate(minDist, minStep))
	}
	o.Dt = dt
	return dt
}

// MoveDefects advances the mobile dislocations of every plane
func (o *System) MoveDefects(dt, μ, ν, minDist float64, eqPull bool) {
	for _, p := range o.Planes {
		p.MoveDefects(dt, μ, ν, minDist, eqPull)
	}
}

// CheckSources ticks the sources of every plane and performs due
// emissions
func (o *System) CheckSources(dt, μ, ν, minDist float64) (emitted int, err error) {
	for _, p := range o.Planes {
		ne, err := p.CheckSources(dt, μ, ν, minDist)
		if err != nil {
			return emitted, err
		}
		emitted += ne
	}
	return
}

// CheckLocalReactions resolves the short-range reactions of every plane
func (o *System) CheckLocalReactions(reactRadius float64) {
	for _, p := range o.Planes {
		p.CheckLocalReactions(reactRadius)
	}
}

// NumDislos returns the number of live dislocations in this system
func (o *System) NumDislos() (n int) {
	for _, p := range o.Planes {
		n += p.NumDislos()
	}
	return
}

// RootPositions appends the root-frame positions of all defects of this
// system, in canonical order, to res
func (o *System) RootPositions(res []float64) []float64 {
	for _, p := range o.Planes {
		res = p.RootPositions(res)
	}
	return res
}
