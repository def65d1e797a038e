// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"math"

	"github.com/cpmech/gosl/utl"

	"github.com/adhishm/dd2d-Matryoshka-sub000/inp"
	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
)

// Crystal is the polycrystal: the root of the coordinate-frame tree,
// the Voronoi tessellation partitioning the body, the grains filling
// the cells and the externally applied stress
type Crystal struct {

	// root frame: parentless, standard axes
	Frm *lin.Frame

	// tessellation and grains
	Tess    *inp.Tess
	Grains  []*Grain
	Orients [][]float64 // Euler triples, one per grain

	// externally applied stress, root frame
	Sig *lin.Stress

	// time stepping
	Dt float64 // global time increment
}

// NewCrystal returns an empty polycrystal with a root frame and zero
// applied stress
func NewCrystal() *Crystal {
	return &Crystal{
		Frm: lin.NewFrame(nil),
		Sig: lin.NewTensor(),
	}
}

// SetApplied copies the externally applied stress (root frame)
func (o *Crystal) SetApplied(σ *lin.Stress) {
	o.Sig.CopyFrom(σ)
}

// AddGrain inserts a grain, reparenting its frame and recording its
// orientation
func (o *Crystal) AddGrain(g *Grain) {
	g.SetParent(o.Frm)
	o.Grains = append(o.Grains, g)
	o.Orients = append(o.Orients, g.Euler)
}

// PropagateStress rotates the applied stress into every grain, slip
// system and slip plane. Called once per iteration, before any stress
// query.
func (o *Crystal) PropagateStress() {
	for _, g := range o.Grains {
		g.SetApplied(o.Sig)
	}
}

// ComputeStress computes and records the total stress on every defect
// of the polycrystal
func (o *Crystal) ComputeStress(μ, ν float64) {
	for _, g := range o.Grains {
		g.ComputeStress(μ, ν)
	}
}

// ComputeForcesVelocities resolves forces and velocities on every
// mobile dislocation of the polycrystal
func (o *Crystal) ComputeForcesVelocities(B, τstatic float64) {
	for _, g := range o.Grains {
		g.ComputeForcesVelocities(B, τstatic)
	}
}

// TimeStepCandidate returns the smallest time increment proposed by the
// grains, clamped below by minStep
func (o *Crystal) TimeStepCandidate(minDist, minStep float64) float64 {
	dt := math.Inf(1)
	for _, g := range o.Grains {
		dt = utl.Min(dt, g.TimeStepCandidate(minDist, minStep))
	}
	o.Dt = dt
	return dt
}

// MoveDefects advances every mobile dislocation of the polycrystal
func (o *Crystal) MoveDefects(dt, μ, ν, minDist float64, eqPull bool) {
	for _, g := range o.Grains {
		g.MoveDefects(dt, μ, ν, minDist, eqPull)
	}
}

// CheckSources ticks all sources and performs due emissions
func (o *Crystal) CheckSources(dt, μ, ν, minDist float64) (emitted int, err error) {
	for _, g := range o.Grains {
		ne, err := g.CheckSources(dt, μ, ν, minDist)
		if err != nil {
			return emitted, err
		}
		emitted += ne
	}
	return
}

// CheckLocalReactions resolves the short-range reactions of every plane
func (o *Crystal) CheckLocalReactions(reactRadius float64) {
	for _, g := range o.Grains {
		g.CheckLocalReactions(reactRadius)
	}
}

// NumDislos returns the number of live dislocations in the polycrystal
func (o *Crystal) NumDislos() (n int) {
	for _, g := range o.Grains {
		n += g.NumDislos()
	}
	return
}

// RootPositions returns the root-frame positions of all defects, in
// canonical order: grain by grain, system by system, plane by plane,
// each plane sorted by local-x
func (o *Crystal) RootPositions() (res []float64) {
	for _, g := range o.Grains {
		res = g.RootPositions(res)
	}
	return
}

// GrainAt returns the index of the grain whose boundary polygon
// contains the point x (root frame), or -1. Best-effort query meant for
// the statistics boundary.
func (o *Crystal) GrainAt(x []float64) int {
	for i, g := range o.Grains {
		if g.Contains(x) {
			return i
		}
	}
	return -1
}
