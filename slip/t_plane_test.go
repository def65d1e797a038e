// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slip

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adhishm/dd2d-Matryoshka-sub000/defect"
	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

// newTestPlane returns a 20 μm plane along x, normal along z, with a
// grain boundary on the left and a free surface on the right
func newTestPlane(tst *testing.T, reg *uid.Registry) *Plane {
	p, err := NewPlane(reg,
		lin.NewVec(-1e-5, 0, 0), lin.NewVec(1e-5, 0, 0),
		lin.NewVec(0, 0, 1), lin.NewVec(0, 0, 0),
		defect.GrainBoundary, defect.FreeSurface)
	if err != nil {
		tst.Fatalf("NewPlane failed:\n%v", err)
	}
	return p
}

func addDislo(tst *testing.T, p *Plane, x float64, b []float64, bmag float64) *defect.Dislo {
	d, err := defect.NewDislo(p.reg, lin.NewVec(x, 0, 0), b, lin.NewVec(0, 0, 1), bmag, true)
	if err != nil {
		tst.Fatalf("NewDislo failed:\n%v", err)
	}
	p.AddDislo(d)
	return d
}

func Test_plane01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane01. ordering invariant and stress superposition")

	μ, ν, bmag := 80e9, 0.3, 2.5e-10
	reg := uid.New()
	p := newTestPlane(tst, reg)

	// terminators sit first and last
	chk.IntAssert(len(p.All), 2)
	chk.Scalar(tst, "left terminator", 1e-17, p.All[0].Pos()[0], -1e-5)
	chk.Scalar(tst, "right terminator", 1e-17, p.All[1].Pos()[0], 1e-5)

	// insertion in arbitrary order keeps the list sorted
	addDislo(tst, p, 2e-6, lin.NewVec(1, 0, 0), bmag)
	addDislo(tst, p, -3e-6, lin.NewVec(1, 0, 0), bmag)
	addDislo(tst, p, 5e-7, lin.NewVec(-1, 0, 0), bmag)
	chk.IntAssert(len(p.All), 5)
	chk.IntAssert(p.NumDislos(), 3)
	for i := 0; i < len(p.All)-1; i++ {
		if p.All[i].Pos()[0] >= p.All[i+1].Pos()[0] {
			tst.Errorf("defect list out of order at %d: %g ≥ %g\n", i, p.All[i].Pos()[0], p.All[i+1].Pos()[0])
			return
		}
	}

	// superposition: applied + the three fields
	σapp := lin.NewTensorComps(0, 0, 0, 1e8, 0, 0)
	p.SetApplied(σapp)
	σ := lin.NewTensor()
	x := lin.NewVec(8e-6, 0, 0)
	p.StressAt(σ, x, μ, ν)
	D := μ * bmag / (2.0 * math.Pi * (1.0 - ν))
	ana := 1e8 + D/(8e-6-2e-6) + D/(8e-6+3e-6) - D/(8e-6-5e-7)
	chk.Scalar(tst, "σxy superposed", 1e-4, σ.M[0][1], ana)

	// at a dislocation centre its own field is excluded
	p.StressAt(σ, lin.NewVec(2e-6, 0, 0), μ, ν)
	if math.IsNaN(σ.M[0][1]) || math.IsInf(σ.M[0][1], 0) {
		tst.Errorf("self stress not excluded at dislocation centre\n")
	}
}

func Test_plane02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane02. forces and velocities (isolated and driven)")

	μ, ν, bmag, B := 80e9, 0.3, 2.5e-10, 1e-4
	reg := uid.New()
	p := newTestPlane(tst, reg)
	d := addDislo(tst, p, 0, lin.NewVec(1, 0, 0), bmag)

	// isolated dislocation without applied stress: no force, no velocity
	p.SetApplied(lin.NewTensor())
	p.ComputeStress(μ, ν, nil)
	p.ComputeForcesVelocities(B, 0)
	chk.Vector(tst, "f isolated", 1e-17, d.Frc, []float64{0, 0, 0})
	chk.Scalar(tst, "v isolated", 1e-17, d.Vel, 0)
	p.MoveDefects(1e-9, μ, ν, 25*bmag, false)
	chk.Scalar(tst, "position unchanged", 1e-17, d.Pos()[0], 0)

	// pure applied shear: v = b・τ・bmag/B along +x
	τ := 1e8
	p.SetApplied(lin.NewTensorComps(0, 0, 0, τ, 0, 0))
	p.ComputeStress(μ, ν, nil)
	p.ComputeForcesVelocities(B, 0)
	chk.Scalar(tst, "driven velocity", 1e-8, d.Vel, bmag*τ/B)

	// the static friction gate zeroes everything below it
	p.ComputeForcesVelocities(B, 2e8)
	chk.Scalar(tst, "gated velocity", 1e-17, d.Vel, 0)
	chk.Vector(tst, "gated force", 1e-17, d.Frc, []float64{0, 0, 0})

	// a negative dislocation under the same shear glides the other way
	dn := addDislo(tst, p, -5e-6, lin.NewVec(-1, 0, 0), bmag)
	p.ComputeStress(μ, ν, nil)
	p.ComputeForcesVelocities(B, 0)
	io.Pforan("v+ = %g, v- = %g\n", d.Vel, dn.Vel)
	if planeVel(dn) >= 0 {
		tst.Errorf("negative dislocation must glide towards -x: v = %g\n", planeVel(dn))
	}
}

func Test_plane03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane03. ideal time increment over adjacent pairs")

	minDist := 1e-8

	// approaching pair: dt = (|Δp| - minDist)/|Δv|
	chk.Scalar(tst, "approaching", 1e-12, idealDt(0, 100, 1e-6, -100, minDist), (1e-6-minDist)/200.0)

	// resting first defect: +Inf
	if !math.IsInf(idealDt(0, 0, 1e-6, -100, minDist), 1) {
		tst.Errorf("resting defect must give +Inf\n")
	}

	// diverging pair: +Inf
	if !math.IsInf(idealDt(0, -100, 1e-6, 100, minDist), 1) {
		tst.Errorf("diverging pair must give +Inf\n")
	}

	// coincident pair halts
	chk.Scalar(tst, "coincident", 1e-17, idealDt(0, 100, 0, -100, minDist), 0)

	// already within minDist halts
	chk.Scalar(tst, "within minDist", 1e-17, idealDt(0, 100, 0.5*minDist, 0, minDist), 0)

	// on a plane: two head-on dislocations propose the pair candidate,
	// clamped below by minStep
	μ, ν, bmag, B := 80e9, 0.3, 2.5e-10, 1e-4
	reg := uid.New()
	p := newTestPlane(tst, reg)
	a := addDislo(tst, p, -1e-6, lin.NewVec(1, 0, 0), bmag)
	b := addDislo(tst, p, 1e-6, lin.NewVec(-1, 0, 0), bmag)
	p.SetApplied(lin.NewTensorComps(0, 0, 0, 1e8, 0, 0))
	p.ComputeStress(μ, ν, nil)
	p.ComputeForcesVelocities(B, 0)
	io.Pforan("va = %g, vb = %g\n", planeVel(a), planeVel(b))
	dt := p.TimeStepCandidate(minDist, 1e-12)
	Δv := math.Abs(planeVel(b) - planeVel(a))
	chk.Scalar(tst, "plane dt", 1e-6, dt, (2e-6-minDist)/Δv)
	chk.Scalar(tst, "stored proposal", 1e-17, dt, p.Dt)
	chk.Scalar(tst, "clamp at minStep", 1e-17, p.TimeStepCandidate(minDist, 1e3), 1e3)
}

func Test_plane04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane04. annihilation, absorption and pinning")

	bmag := 2.5e-10
	reg := uid.New()
	p := newTestPlane(tst, reg)

	// opposite pair 3b apart annihilates within one scan (radius 5b)
	da := addDislo(tst, p, 0, lin.NewVec(1, 1, 0), bmag)
	db := addDislo(tst, p, 3*bmag, lin.NewVec(-1, -1, 0), bmag)
	chk.IntAssert(p.NumDislos(), 2)
	p.CheckLocalReactions(5 * bmag)
	chk.IntAssert(p.NumDislos(), 0)
	chk.IntAssert(p.NAnnihilated, 2)
	chk.IntAssert(len(p.All), 2)

	// same-sign pair does not annihilate
	addDislo(tst, p, 0, lin.NewVec(1, 0, 0), bmag)
	addDislo(tst, p, 3*bmag, lin.NewVec(1, 0, 0), bmag)
	p.CheckLocalReactions(5 * bmag)
	chk.IntAssert(p.NumDislos(), 2)

	// free surface absorbs; the registry keeps the historical record
	fs := addDislo(tst, p, 1e-5-4*bmag, lin.NewVec(1, 0, 0), bmag)
	id := fs.Id()
	p.CheckLocalReactions(5 * bmag)
	chk.IntAssert(p.NumDislos(), 2)
	chk.IntAssert(p.NAbsorbed, 1)
	chk.String(tst, reg.Kind(id), "dislocation")

	// grain boundary pins: the dislocation stays but stops
	gb := addDislo(tst, p, -1e-5+4*bmag, lin.NewVec(1, 0, 0), bmag)
	gb.Vel = -100
	p.CheckLocalReactions(5 * bmag)
	chk.IntAssert(p.NumDislos(), 3)
	if gb.Mobile {
		tst.Errorf("dislocation at grain boundary must be pinned\n")
	}
	chk.Scalar(tst, "pinned velocity", 1e-17, gb.Vel, 0)

	// creation/destruction accounting (live = created - destroyed)
	chk.IntAssert(p.NCreated-p.NAnnihilated-p.NAbsorbed, p.NumDislos())

	// ids of annihilated pair remain recorded
	chk.String(tst, reg.Kind(da.Id()), "dislocation")
	chk.String(tst, reg.Kind(db.Id()), "dislocation")
}

func Test_plane05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane05. Frank-Read source emission")

	μ, ν, bmag := 80e9, 0.3, 2.5e-10
	τcrit, ttrig, dt := 5e7, 1e-8, 1e-9
	reg := uid.New()
	p := newTestPlane(tst, reg)

	src, err := defect.NewSource(reg, lin.NewVec(0, 0, 0), lin.NewVec(1, 0, 0), lin.NewVec(0, 0, 1), bmag, τcrit, ttrig)
	if err != nil {
		tst.Fatalf("NewSource failed:\n%v", err)
	}
	p.AddSource(src)
	p.SetApplied(lin.NewTensorComps(0, 0, 0, 1e8, 0, 0))

	// nine iterations under sustained shear: counting, no emission yet
	minDist := 25 * bmag
	total := 0
	for it := 0; it < 9; it++ {
		p.ComputeStress(μ, ν, nil)
		ne, err := p.CheckSources(dt, μ, ν, minDist)
		if err != nil {
			tst.Fatalf("CheckSources failed:\n%v", err)
		}
		total += ne
	}
	chk.IntAssert(total, 0)
	if !src.Counting() {
		tst.Errorf("source must be counting down\n")
	}

	// tenth iteration: the dipole appears, centred at the source
	p.ComputeStress(μ, ν, nil)
	ne, err := p.CheckSources(dt, μ, ν, minDist)
	if err != nil {
		tst.Fatalf("CheckSources failed:\n%v", err)
	}
	chk.IntAssert(ne, 2)
	chk.IntAssert(p.NumDislos(), 2)
	L := μ * bmag / (2.0 * math.Pi * (1.0 - ν) * τcrit)
	io.Pforan("dipole length = %g m\n", L)
	chk.Scalar(tst, "dipole length", 1e-12, src.DipoleLen(μ, ν), L)
	chk.Scalar(tst, "child -", 1e-15, p.Dislos[0].Pos()[0], -L/2.0)
	chk.Scalar(tst, "child +", 1e-15, p.Dislos[1].Pos()[0], L/2.0)
	chk.Scalar(tst, "centred at source", 1e-15, p.Dislos[0].Pos()[0]+p.Dislos[1].Pos()[0], 0)

	// the children cancel vector-wise and the countdown is reset
	s := make([]float64, 3)
	for i := 0; i < 3; i++ {
		s[i] = p.Dislos[0].BPlane[i] + p.Dislos[1].BPlane[i]
	}
	chk.Vector(tst, "opposite Burgers", 1e-15, s, []float64{0, 0, 0})
	chk.Scalar(tst, "timer reset", 1e-17, src.Timer, ttrig)

	// emission is refused while the seats are occupied
	for it := 0; it < 10; it++ {
		p.ComputeStress(μ, ν, nil)
		ne, _ = p.CheckSources(dt, μ, ν, L)
		chk.IntAssert(ne, 0)
	}
	chk.IntAssert(p.NumDislos(), 2)
}

func Test_plane06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane06. moves keep order and minimum approach")

	μ, ν, bmag, B := 80e9, 0.3, 2.5e-10, 1e-4
	minDist := 25 * bmag
	reg := uid.New()
	p := newTestPlane(tst, reg)

	// two like dislocations pushed right by the applied shear; the
	// trailing one may not overrun the leader
	a := addDislo(tst, p, -2e-6, lin.NewVec(1, 0, 0), bmag)
	b := addDislo(tst, p, -1.99e-6, lin.NewVec(1, 0, 0), bmag)
	p.SetApplied(lin.NewTensorComps(0, 0, 0, 1e8, 0, 0))
	p.ComputeStress(μ, ν, nil)
	p.ComputeForcesVelocities(B, 0)

	// an exaggerated step: clamping must hold the invariant
	p.MoveDefects(1e-3, μ, ν, minDist, false)
	for i := 0; i < len(p.All)-1; i++ {
		gap := p.All[i+1].Pos()[0] - p.All[i].Pos()[0]
		if gap < minDist*(1.0-1e-12) {
			tst.Errorf("pair %d closer than minDist: %g < %g\n", i, gap, minDist)
			return
		}
	}

	// under a fixed small step nobody moves farther than v・dt
	xa, xb := a.Pos()[0], b.Pos()[0]
	p.ComputeStress(μ, ν, nil)
	p.ComputeForcesVelocities(B, 0)
	dt := 1e-10
	p.MoveDefects(dt, μ, ν, minDist, false)
	if math.Abs(a.Pos()[0]-xa) > math.Abs(planeVel(a))*dt*(1.0+1e-12) {
		tst.Errorf("defect moved farther than v・dt\n")
	}
	if math.Abs(b.Pos()[0]-xb) > math.Abs(planeVel(b))*dt*(1.0+1e-12) {
		tst.Errorf("defect moved farther than v・dt\n")
	}
}

func Test_plane07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane07. blocked source emits as soon as the seat frees")

	μ, ν, bmag := 80e9, 0.3, 2.5e-10
	τcrit, ttrig, dt := 1e7, 1e-8, 1e-9
	reg := uid.New()
	p := newTestPlane(tst, reg)

	src, err := defect.NewSource(reg, lin.NewVec(0, 0, 0), lin.NewVec(1, 0, 0), lin.NewVec(0, 0, 1), bmag, τcrit, ttrig)
	if err != nil {
		tst.Fatalf("NewSource failed:\n%v", err)
	}
	p.AddSource(src)
	p.SetApplied(lin.NewTensorComps(0, 0, 0, 1e8, 0, 0))

	// a bystander within minDist of the positive seat keeps it occupied
	L := src.DipoleLen(μ, ν)
	io.Pforan("dipole length = %g m, seats at ±%g m\n", L, L/2.0)
	blk := addDislo(tst, p, 4e-7, lin.NewVec(1, 0, 0), bmag)
	minDist := 2e-7

	// the countdown empties on the tenth tick, but the occupied seat
	// refuses the emission then and on every following tick
	for it := 0; it < 11; it++ {
		p.ComputeStress(μ, ν, nil)
		ne, err := p.CheckSources(dt, μ, ν, minDist)
		if err != nil {
			tst.Fatalf("CheckSources failed:\n%v", err)
		}
		chk.IntAssert(ne, 0)
	}
	chk.IntAssert(p.NumDislos(), 1)
	chk.Scalar(tst, "timer empty while refused", 1e-17, src.Timer, 0)

	// once the bystander leaves, the very next tick emits: no re-count
	blk.SetPos(lin.NewVec(5e-6, 0, 0))
	p.Sort()
	p.ComputeStress(μ, ν, nil)
	ne, err := p.CheckSources(dt, μ, ν, minDist)
	if err != nil {
		tst.Fatalf("CheckSources failed:\n%v", err)
	}
	chk.IntAssert(ne, 2)
	chk.IntAssert(p.NumDislos(), 3)
	chk.Scalar(tst, "timer rearmed by emission", 1e-17, src.Timer, ttrig)
}
