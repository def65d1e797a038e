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

// Dipole describes the latest dipole emitted by a source
type Dipole struct {
	Len  float64   // separation between the two children
	BPos []float64 // Burgers vector of the child placed on the positive side, plane frame
}

// Source is a Frank-Read dislocation source. Whenever the resolved shear
// stress stays at or above the critical value TauCrit for the time TTrig,
// it emits a pair of opposite-sign mobile dislocations separated by the
// equilibrium dipole length. State machine:
//  DORMANT  -> COUNTING on any iteration with |τ| ≥ TauCrit
//  COUNTING -> DORMANT  whenever the condition fails (timer resets)
//  COUNTING -> EMIT     when the timer empties; the timer stays empty
//                       until an emission is recorded, so a refused
//                       emission is retried on the next iteration
type Source struct {

	// essential
	Base
	BPlane  []float64 // Burgers vector in the slip-plane frame
	BLocal  []float64 // Burgers vector in the source frame: (|BPlane|, 0, 0)
	L       []float64 // line vector in the slip-plane frame
	BMag    float64   // physical magnitude of the Burgers vector [m]
	TauCrit float64   // critical resolved shear stress [Pa]
	TTrig   float64   // time under critical stress before emission [s]
	Timer   float64   // running countdown [s]

	// cached descriptor of the latest emission; nil before the first one
	LastDip *Dipole
}

// timer roundoff guard so an exact multiple of dt empties the countdown
var timerTol = 1e-10

// NewSource returns a new Frank-Read source with its id minted from the
// registry. x, bp and l are given in the slip-plane frame. The birth
// record stores the Burgers vector, bmag and the critical stress.
func NewSource(reg *uid.Registry, x, bp, l []float64, bmag, τcrit, ttrig float64) (o *Source, err error) {
	if τcrit <= 0 {
		return nil, chk.Err("source critical stress must be positive: τcrit = %g", τcrit)
	}
	o = &Source{
		Base:    NewBase(reg, FrankReadSource, []float64{bp[0], bp[1], bp[2], bmag, τcrit}),
		BPlane:  la.VecClone(bp),
		BLocal:  lin.NewVec(lin.Norm(bp), 0, 0),
		L:       la.VecClone(l),
		BMag:    bmag,
		TauCrit: τcrit,
		TTrig:   ttrig,
		Timer:   ttrig,
	}
	o.SetPos(x)
	err = o.AlignFrame()
	return
}

// AlignFrame (re)builds the source frame axes within the parent plane
// frame, with the same convention as a dislocation: x parallel to the
// Burgers vector, z parallel to the line vector, y = z × x
func (o *Source) AlignFrame() (err error) {
	ex := lin.Unit(o.BPlane)
	ez := lin.Unit(o.L)
	if math.Abs(lin.Dot(ex, ez)) > lin.TolOrth {
		return chk.Err("source %d is not pure edge: b・l = %g with b = %v and l = %v",
			o.Id(), lin.Dot(o.BPlane, o.L), o.BPlane, o.L)
	}
	ey := make([]float64, 3)
	lin.Cross(ey, ez, ex)
	if !o.Frame().SetAxes(ex, ey, ez) {
		return chk.Err("source %d: cannot build frame with b = %v and l = %v",
			o.Id(), o.BPlane, o.L)
	}
	return
}

// ResolvedShear returns the xy shear component of σ in the source frame
func (o *Source) ResolvedShear(σ *lin.Stress) float64 {
	return σ.M[0][1]
}

// CountDown advances the state machine by dt under the resolved shear τ.
// It returns emit == true when the countdown is empty; the countdown
// restarts whenever the stress condition fails, whereas only a recorded
// emission rearms it.
func (o *Source) CountDown(τ, dt float64) (emit bool) {
	if math.Abs(τ) < o.TauCrit {
		o.Timer = o.TTrig
		return
	}
	o.Timer -= dt
	if o.Timer <= timerTol*o.TTrig {
		o.Timer = 0
		return true
	}
	return
}

// Counting tells whether the source is currently counting down
func (o *Source) Counting() bool {
	return o.Timer < o.TTrig
}

// DipoleLen returns the equilibrium dipole length
//  L = μ・b / (2π・(1−ν)・τcrit)
func (o *Source) DipoleLen(μ, ν float64) float64 {
	return μ * o.BMag / (2.0 * math.Pi * (1.0 - ν) * o.TauCrit)
}

// RecordEmission caches the descriptor of the latest dipole, rearms the
// countdown and keeps the source frame oriented with the dipole
func (o *Source) RecordEmission(dip *Dipole) {
	o.LastDip = dip
	o.Timer = o.TTrig
	if lin.Dot(dip.BPos, o.BPlane) < 0 {
		la.VecCopy(o.BPlane, -1, o.BPlane)
		o.AlignFrame()
	}
}
