// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package slip implements slip planes and slip systems: the ordered
// one-dimensional containers where the dislocation dynamics happens
package slip

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"

	"github.com/adhishm/dd2d-Matryoshka-sub000/defect"
	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

// TolBurgers is the tolerance for two Burgers vectors to cancel on
// annihilation
var TolBurgers = 1e-9

// DisloArray, SrcArray and DefArray are defect containers kept sorted by
// local-x position
type (
	DisloArray []*defect.Dislo
	SrcArray   []*defect.Source
	DefArray   []defect.Defect
)

// Plane is a slip plane: a one-dimensional container of defects gliding
// along its local x-axis. The all-defects list is always sorted by
// local-x position and terminated by the two extremity defects; adjacent
// entries never end up closer than the minimum approach distance after a
// move.
type Plane struct {

	// geometry, in the parent slip-system frame
	Ext1 []float64 // first extremity
	Ext2 []float64 // second extremity
	N    []float64 // plane normal
	X0   []float64 // origin, also used for positional sorting within a system
	Frm  *lin.Frame

	// defects, each list sorted by local-x position
	Dislos DisloArray // dislocations
	Srcs   SrcArray   // Frank-Read sources
	All    DefArray   // dislocations + sources + the two terminators

	// per-iteration stress cache, plane frame
	σapp *lin.Stress // applied stress rotated into the plane frame

	// time stepping
	Dt float64 // per-plane time increment proposal

	// creation / destruction bookkeeping
	NCreated     int // dislocations loaded or emitted
	NAnnihilated int // dislocations removed by annihilation
	NAbsorbed    int // dislocations removed by free-surface absorption

	// collaborators
	reg *uid.Registry // mints ids for defects created here

	// scratchpad
	σfld  *lin.Stress // per-dislocation field
	σsum  *lin.Stress // field sum for remote queries
	σtot  *lin.Stress // per-defect total
	σrr   *lin.Stress // remote contribution, root frame
	σrem  *lin.Stress // remote contribution, plane frame
	σown  *lin.Stress // per-defect total, defect frame
	xtmp  []float64
	xroot []float64
}

// NewPlane returns a slip plane with its frame built from the two
// extremities and the normal: x along ext2−ext1, z along the normal,
// y = z × x and origin at x0, all in the parent slip-system frame. The
// extremities are materialised as terminating defects of the given kinds
// (grain boundary or free surface).
func NewPlane(reg *uid.Registry, ext1, ext2, n, x0 []float64, kind1, kind2 defect.Kind) (o *Plane, err error) {
	o = &Plane{
		Ext1:  la.VecClone(ext1),
		Ext2:  la.VecClone(ext2),
		N:     la.VecClone(n),
		X0:    la.VecClone(x0),
		Frm:   lin.NewFrame(nil),
		reg:   reg,
		σapp:  lin.NewTensor(),
		σfld:  lin.NewTensor(),
		σsum:  lin.NewTensor(),
		σtot:  lin.NewTensor(),
		σrr:   lin.NewTensor(),
		σrem:  lin.NewTensor(),
		σown:  lin.NewTensor(),
		xtmp:  make([]float64, 3),
		xroot: make([]float64, 3),
	}
	o.Frm.SetOrigin(x0)
	ex := make([]float64, 3)
	for i := 0; i < 3; i++ {
		ex[i] = ext2[i] - ext1[i]
	}
	exu := lin.Unit(ex)
	ezu := lin.Unit(n)
	ey := make([]float64, 3)
	lin.Cross(ey, ezu, exu)
	if !o.Frm.SetAxes(exu, ey, ezu) {
		return nil, chk.Err("slip plane: cannot build frame with extremities %v, %v and normal %v", ext1, ext2, n)
	}
	t1, err := o.newTerminator(kind1, ext1)
	if err != nil {
		return nil, err
	}
	t2, err := o.newTerminator(kind2, ext2)
	if err != nil {
		return nil, err
	}
	o.All = append(o.All, t1, t2)
	o.Sort()
	return
}

// SetParent links the plane frame into the parent system frame
func (o *Plane) SetParent(par *lin.Frame) {
	o.Frm.Par = par
}

// AddDislo inserts a dislocation, reparenting its frame and keeping the
// ordering invariant
func (o *Plane) AddDislo(d *defect.Dislo) {
	d.SetParent(o.Frm)
	o.Dislos = append(o.Dislos, d)
	o.All = append(o.All, d)
	o.Sort()
	o.NCreated++
}

// AddSource inserts a Frank-Read source, reparenting its frame and
// keeping the ordering invariant
func (o *Plane) AddSource(s *defect.Source) {
	s.SetParent(o.Frm)
	o.Srcs = append(o.Srcs, s)
	o.All = append(o.All, s)
	o.Sort()
}

// Sort re-establishes the ordering of the defect lists by local-x
func (o *Plane) Sort() {
	sort.Sort(o.Dislos)
	sort.Sort(o.Srcs)
	sort.Sort(o.All)
}

// stress computation /////////////////////////////////////////////////////////

// SetApplied caches the applied stress, given in the parent slip-system
// frame, rotated into the plane frame. Called once per iteration.
func (o *Plane) SetApplied(σsys *lin.Stress) {
	o.Frm.TenToLocal(o.σapp, σsys)
}

// Applied returns the cached applied stress in the plane frame
func (o *Plane) Applied() *lin.Stress {
	return o.σapp
}

// StressAt computes the total stress at the point x given in the plane
// frame: the applied cache plus the field of every dislocation on this
// plane, each evaluated in the dislocation's own frame and rotated out.
// The result σ is in the plane frame.
func (o *Plane) StressAt(σ *lin.Stress, x []float64, μ, ν float64) {
	σ.CopyFrom(o.σapp)
	for _, d := range o.Dislos {
		d.StressAtPoint(o.σfld, x, μ, ν)
		σ.Add(1, o.σfld)
	}
}

// FieldAtRoot computes the sum of this plane's dislocation stress fields
// at the point xroot given in the root frame; the result σ is in the
// root frame. Used for the superposition across sibling planes.
func (o *Plane) FieldAtRoot(σ *lin.Stress, xroot []float64, μ, ν float64) {
	o.Frm.VecFromRoot(o.xtmp, xroot)
	o.σsum.Zero()
	for _, d := range o.Dislos {
		d.StressAtPoint(o.σfld, o.xtmp, μ, ν)
		o.σsum.Add(1, o.σfld)
	}
	o.Frm.TenToRoot(σ, o.σsum)
}

// ComputeStress computes and records the total stress on every defect of
// the plane: the applied cache, the fields of the plane's own
// dislocations and the fields of the remote planes, all evaluated at the
// start-of-iteration positions. Each defect records the total in its own
// frame.
func (o *Plane) ComputeStress(μ, ν float64, remotes []*Plane) {
	for _, d := range o.All {
		x := d.Pos()
		o.StressAt(o.σtot, x, μ, ν)
		if len(remotes) > 0 {
			o.Frm.VecToRoot(o.xroot, x)
			for _, rp := range remotes {
				if rp == o {
					continue
				}
				rp.FieldAtRoot(o.σrr, o.xroot, μ, ν)
				o.Frm.TenFromRoot(o.σrem, o.σrr)
				o.σtot.Add(1, o.σrem)
			}
		}
		d.Frame().TenToLocal(o.σown, o.σtot)
		d.RecordStress(o.σown)
	}
}

// forces, velocities and time stepping ///////////////////////////////////////

// ComputeForcesVelocities resolves the stress recorded on every
// dislocation into a Peach-Koehler force and a glide velocity v = f/B.
// A resolved shear of magnitude below τstatic yields zero force and
// velocity; immobile dislocations keep zero velocity.
func (o *Plane) ComputeForcesVelocities(B, τstatic float64) {
	for _, d := range o.Dislos {
		σ := d.Stress()
		if math.Abs(d.ResolvedShear(σ)) < τstatic {
			la.VecFill(d.Frc, 0)
			d.Vel = 0
		} else {
			d.PKForce(d.Frc, σ)
			d.Vel = 0
			if d.Mobile {
				d.Vel = d.Frc[0] / B
			}
		}
		d.RecordForceVel()
	}
}

// TimeStepCandidate returns the smallest ideal time increment over all
// adjacent defect pairs: the earliest instant at which a pair would
// close to minDist under the current velocities. Resting or diverging
// pairs contribute +Inf; the result is clamped below by minStep and
// stored as the plane proposal.
func (o *Plane) TimeStepCandidate(minDist, minStep float64) float64 {
	dt := math.Inf(1)
	for i := 0; i < len(o.All)-1; i++ {
		a, b := o.All[i], o.All[i+1]
		pa, pb := a.Pos()[0], b.Pos()[0]
		va, vb := planeVel(a), planeVel(b)
		dt = utl.Min(dt, idealDt(pa, va, pb, vb, minDist))
		dt = utl.Min(dt, idealDt(pb, vb, pa, va, minDist))
	}
	if dt < minStep {
		dt = minStep
	}
	o.Dt = dt
	return dt
}

// idealDt computes the instant at which a defect at p0 moving with v0
// and a neighbour at p1 moving with v1 would reach a separation of
// minDist. Resting defects and diverging pairs give +Inf; coincident
// pairs halt the step.
func idealDt(p0, v0, p1, v1, minDist float64) float64 {
	if v0 == 0 {
		return math.Inf(1)
	}
	Δp := p1 - p0
	Δv := v1 - v0
	if Δp == 0 {
		return 0
	}
	if Δv == 0 {
		return math.Inf(1)
	}
	cosθ := Δv * Δp / (math.Abs(Δv) * math.Abs(Δp))
	if cosθ < 0 { // approaching
		if math.Abs(Δp) <= minDist {
			return 0
		}
		return (math.Abs(Δp) - minDist) / math.Abs(Δv)
	}
	return math.Inf(1)
}

// planeVel returns the velocity of a defect along the plane x-axis.
// Only dislocations move; their scalar velocity lives on the local
// x-axis whose direction in the plane frame is the first frame axis.
func planeVel(d defect.Defect) float64 {
	if dis, ok := d.(*defect.Dislo); ok {
		return dis.Vel * dis.Frame().E[0][0]
	}
	return 0
}

// motion /////////////////////////////////////////////////////////////////////

// MoveDefects advances every mobile dislocation by its velocity times dt,
// clamped so that no adjacent pair ends up closer than minDist. With
// eqPull enabled, a position of vanishing glide force found within the
// step replaces the kinematic target. Re-sorts afterwards.
func (o *Plane) MoveDefects(dt, μ, ν, minDist float64, eqPull bool) {
	for i, d := range o.All {
		dis, ok := d.(*defect.Dislo)
		if !ok || !dis.Mobile {
			continue
		}
		vx := planeVel(dis)
		if vx == 0 {
			continue
		}
		x0 := dis.Pos()[0]
		target := x0 + vx*dt
		if eqPull {
			if xeq, found := o.equilibriumX(dis, x0, vx, dt, μ, ν); found {
				target = xeq
			}
		}
		lo := o.All[i-1].Pos()[0] + minDist
		hi := o.All[i+1].Pos()[0] - minDist
		if hi < lo {
			target = x0 // crowded neighbours: stay
		} else {
			if target < lo {
				target = lo
			}
			if target > hi {
				target = hi
			}
		}
		dis.SetPos(lin.NewVec(target, dis.Pos()[1], dis.Pos()[2]))
	}
	o.Sort()
}

// equilibriumX searches for a position of vanishing glide force for the
// dislocation dis within the step [x0, x0+vx·dt]. The root search runs
// on the resolved shear of the applied cache plus all other dislocations
// of this plane.
func (o *Plane) equilibriumX(dis *defect.Dislo, x0, vx, dt, μ, ν float64) (xeq float64, found bool) {
	ffcn := func(fx, x []float64) error {
		fx[0] = o.shearAtExcluding(x[0], μ, ν, dis)
		return nil
	}
	var nls num.NlSolver
	nls.Init(1, ffcn, nil, nil, false, true, nil)
	defer nls.Clean()
	x := []float64{x0 + 0.5*vx*dt}
	err := nls.Solve(x, true)
	if err != nil {
		return 0, false
	}
	xeq = x[0]
	if vx > 0 && (xeq <= x0 || xeq > x0+vx*dt) {
		return 0, false
	}
	if vx < 0 && (xeq >= x0 || xeq < x0+vx*dt) {
		return 0, false
	}
	return xeq, true
}

// shearAtExcluding evaluates the resolved shear at the plane point
// (x, 0, 0) from the applied cache and every dislocation except skip
func (o *Plane) shearAtExcluding(x float64, μ, ν float64, skip *defect.Dislo) float64 {
	τ := o.σapp.M[0][1]
	pt := lin.NewVec(x, 0, 0)
	for _, d := range o.Dislos {
		if d == skip {
			continue
		}
		d.StressAtPoint(o.σfld, pt, μ, ν)
		τ += o.σfld.M[0][1]
	}
	return τ
}

// sources and reactions //////////////////////////////////////////////////////

// CheckSources ticks every source with the resolved shear it recorded
// this iteration and performs due dipole emissions: two opposite-sign
// mobile dislocations at ±L/2 from the source, the positive-side child
// carrying the Burgers vector favoured by the driving shear. An emission
// is refused when either seat would fall within minDist of an existing
// defect.
func (o *Plane) CheckSources(dt, μ, ν, minDist float64) (emitted int, err error) {
	for _, src := range o.Srcs {
		τ := src.ResolvedShear(src.Stress())
		if !src.CountDown(τ, dt) {
			continue
		}
		L := src.DipoleLen(μ, ν)
		xs := src.Pos()[0]
		xpos, xneg := xs+L/2.0, xs-L/2.0
		if o.seatTaken(xpos, minDist) || o.seatTaken(xneg, minDist) {
			continue
		}
		bpos := la.VecClone(src.BPlane)
		if τ < 0 {
			la.VecCopy(bpos, -1, bpos)
		}
		bneg := make([]float64, 3)
		la.VecCopy(bneg, -1, bpos)
		dp, err := defect.NewDislo(o.reg, lin.NewVec(xpos, 0, 0), bpos, src.L, src.BMag, true)
		if err != nil {
			return emitted, err
		}
		dn, err := defect.NewDislo(o.reg, lin.NewVec(xneg, 0, 0), bneg, src.L, src.BMag, true)
		if err != nil {
			return emitted, err
		}
		o.AddDislo(dp)
		o.AddDislo(dn)
		src.RecordEmission(&defect.Dipole{Len: L, BPos: bpos})
		emitted += 2
	}
	return
}

// seatTaken tells whether any defect sits within minDist of the plane
// point with local-x coordinate x
func (o *Plane) seatTaken(x, minDist float64) bool {
	for _, d := range o.All {
		if math.Abs(d.Pos()[0]-x) < minDist {
			return true
		}
	}
	return false
}

// CheckLocalReactions scans adjacent pairs of the sorted defect list and
// resolves those closer than reactRadius: dislocations pin at grain
// boundaries, free surfaces absorb dislocations and opposite-Burgers
// dislocation pairs annihilate. A deletion restarts the scan one entry
// back so freshly adjacent pairs are rechecked.
func (o *Plane) CheckLocalReactions(reactRadius float64) {
	i := 0
	for i < len(o.All)-1 {
		a, b := o.All[i], o.All[i+1]
		if math.Abs(b.Pos()[0]-a.Pos()[0]) >= reactRadius {
			i++
			continue
		}
		switch {
		case a.Kind() == defect.GrainBoundary && b.Kind() == defect.Dislocation:
			pin(b)
			i++
		case a.Kind() == defect.Dislocation && b.Kind() == defect.GrainBoundary:
			pin(a)
			i++
		case a.Kind() == defect.FreeSurface && b.Kind() == defect.Dislocation:
			o.removeDislo(b.(*defect.Dislo))
			o.NAbsorbed++
			if i > 0 {
				i--
			}
		case a.Kind() == defect.Dislocation && b.Kind() == defect.FreeSurface:
			o.removeDislo(a.(*defect.Dislo))
			o.NAbsorbed++
			if i > 0 {
				i--
			}
		case a.Kind() == defect.Dislocation && b.Kind() == defect.Dislocation:
			da := a.(*defect.Dislo)
			db := b.(*defect.Dislo)
			if annihilating(da, db) {
				o.removeDislo(da)
				o.removeDislo(db)
				o.NAnnihilated += 2
				if i > 0 {
					i--
				}
			} else {
				i++
			}
		default:
			i++
		}
	}
}

// pin stops the motion of a dislocation for good
func pin(d defect.Defect) {
	dis := d.(*defect.Dislo)
	dis.Mobile = false
	dis.Vel = 0
}

// annihilating tells whether two dislocations carry cancelling Burgers
// vectors
func annihilating(a, b *defect.Dislo) bool {
	s := make([]float64, 3)
	for i := 0; i < 3; i++ {
		s[i] = a.BPlane[i] + b.BPlane[i]
	}
	return lin.Norm(s) < TolBurgers
}

// removeDislo deletes a dislocation from every list
func (o *Plane) removeDislo(d *defect.Dislo) {
	for k, x := range o.Dislos {
		if x == d {
			o.Dislos = append(o.Dislos[:k], o.Dislos[k+1:]...)
			break
		}
	}
	for k, x := range o.All {
		if x == defect.Defect(d) {
			o.All = append(o.All[:k], o.All[k+1:]...)
			break
		}
	}
}

// queries ////////////////////////////////////////////////////////////////////

// NumDislos returns the number of live dislocations on the plane
func (o *Plane) NumDislos() int {
	return len(o.Dislos)
}

// RootPositions appends the root-frame positions of all defects of this
// plane, in canonical sorted order, to res
func (o *Plane) RootPositions(res []float64) []float64 {
	x := make([]float64, 3)
	for _, d := range o.All {
		o.Frm.VecToRoot(x, d.Pos())
		res = append(res, x[0], x[1], x[2])
	}
	return res
}

// auxiliary //////////////////////////////////////////////////////////////////

func (o *Plane) newTerminator(kind defect.Kind, extSys []float64) (d defect.Defect, err error) {
	xp := make([]float64, 3)
	o.Frm.VecToLocal(xp, extSys)
	switch kind {
	case defect.GrainBoundary:
		gb := defect.NewGrainBdry(o.reg, xp)
		gb.SetParent(o.Frm)
		return gb, nil
	case defect.FreeSurface:
		fs := defect.NewFreeSurf(o.reg, xp)
		fs.SetParent(o.Frm)
		return fs, nil
	}
	return nil, chk.Err("slip plane: invalid terminator kind %v", kind)
}

// functions to implement Sort interface
func (o DisloArray) Len() int           { return len(o) }
func (o DisloArray) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o DisloArray) Less(i, j int) bool { return o[i].Pos()[0] < o[j].Pos()[0] }

func (o SrcArray) Len() int           { return len(o) }
func (o SrcArray) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o SrcArray) Less(i, j int) bool { return o[i].Pos()[0] < o[j].Pos()[0] }

func (o DefArray) Len() int           { return len(o) }
func (o DefArray) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o DefArray) Less(i, j int) bool { return o[i].Pos()[0] < o[j].Pos()[0] }
