// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package defect

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

func Test_dislo01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dislo01. analytic stress field of an edge dislocation")

	// aluminium-like constants
	μ, ν, bmag := 80e9, 0.3, 2.5e-10
	D := μ * bmag / (2.0 * math.Pi * (1.0 - ν))

	reg := uid.New()
	d, err := NewDislo(reg, lin.NewVec(0, 0, 0), lin.NewVec(1, 0, 0), lin.NewVec(0, 0, 1), bmag, true)
	if err != nil {
		tst.Errorf("NewDislo failed:\n%v", err)
		return
	}

	// at its own centre the field vanishes
	σ := lin.NewTensor()
	d.StressFieldAt(σ, lin.NewVec(0, 0, 0), μ, ν)
	chk.Matrix(tst, "σ at centre", 1e-17, σ.M, lin.NewTensor().M)

	// along the glide direction only the shear survives: σxy = D/x
	x := 1e-6
	d.StressFieldAt(σ, lin.NewVec(x, 0, 0), μ, ν)
	io.Pforan("σxy(x=1μm) = %g Pa\n", σ.M[0][1])
	chk.Scalar(tst, "σxx", 1e-10, σ.M[0][0], 0)
	chk.Scalar(tst, "σyy", 1e-10, σ.M[1][1], 0)
	chk.Scalar(tst, "σxy", 1e-8, σ.M[0][1], D/x)

	// along the climb direction only normal components survive
	y := 2e-6
	d.StressFieldAt(σ, lin.NewVec(0, y, 0), μ, ν)
	chk.Scalar(tst, "σxx", 1e-8, σ.M[0][0], -D/y)
	chk.Scalar(tst, "σyy", 1e-8, σ.M[1][1], -D/y)
	chk.Scalar(tst, "σzz", 1e-8, σ.M[2][2], -2.0*ν*D/y)
	chk.Scalar(tst, "σxy", 1e-12, σ.M[0][1], 0)

	// along the line direction r = 0, so no stress and no shear
	d.StressFieldAt(σ, lin.NewVec(0, 0, 5e-6), μ, ν)
	chk.Matrix(tst, "σ along line", 1e-17, σ.M, lin.NewTensor().M)
}

func Test_dislo02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dislo02. frame alignment and sign of the field")

	μ, ν, bmag := 80e9, 0.3, 2.5e-10
	D := μ * bmag / (2.0 * math.Pi * (1.0 - ν))
	reg := uid.New()

	// a negative dislocation: frame x flips to -x, y to -y
	neg, err := NewDislo(reg, lin.NewVec(0, 0, 0), lin.NewVec(-1, 0, 0), lin.NewVec(0, 0, 1), bmag, true)
	if err != nil {
		tst.Errorf("NewDislo failed:\n%v", err)
		return
	}
	chk.Matrix(tst, "axes", 1e-15, neg.Frame().E, [][]float64{
		{-1, 0, 0},
		{0, -1, 0},
		{0, 0, 1},
	})

	// seen from the plane frame, the shear field has the opposite sign
	// of a positive dislocation's
	σ := lin.NewTensor()
	x := 1e-6
	neg.StressAtPoint(σ, lin.NewVec(x, 0, 0), μ, ν)
	chk.Scalar(tst, "σxy of negative dislocation", 1e-8, σ.M[0][1], -D/x)

	// mixed character is rejected
	_, err = NewDislo(reg, lin.NewVec(0, 0, 0), lin.NewVec(1, 0, 1), lin.NewVec(0, 0, 1), bmag, true)
	if err == nil {
		tst.Errorf("mixed-character dislocation must be rejected\n")
		return
	}
	io.Pfyel("expected failure: %v\n", err)
}

func Test_dislo03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dislo03. Peach-Koehler force and histories")

	bmag := 2.5e-10
	reg := uid.New()
	d, err := NewDislo(reg, lin.NewVec(0, 0, 0), lin.NewVec(1, 0, 0), lin.NewVec(0, 0, 1), bmag, true)
	if err != nil {
		tst.Errorf("NewDislo failed:\n%v", err)
		return
	}

	// pure shear: glide force f = b・τ・bmag along +x
	τ := 1e8
	σ := lin.NewTensorComps(0, 0, 0, τ, 0, 0)
	f := make([]float64, 3)
	d.PKForce(f, σ)
	chk.Vector(tst, "f", 1e-12, f, []float64{bmag * τ, 0, 0})
	chk.Scalar(tst, "resolved shear", 1e-12, d.ResolvedShear(σ), τ)

	// normal stress produces climb force only: no glide component
	σn := lin.NewTensorComps(1e8, 0, 0, 0, 0, 0)
	d.PKForce(f, σn)
	chk.Scalar(tst, "glide force under normal stress", 1e-12, f[0], 0)
	chk.Scalar(tst, "climb force under normal stress", 1e-6, f[1], -bmag*1e8)

	// histories are append-only, out-of-range reads give zeroes
	d.RecordStress(σ)
	d.Frc[0], d.Vel = bmag*τ, bmag*τ/1e-4
	d.RecordForceVel()
	chk.Scalar(tst, "stress history 0", 1e-12, d.StressAt(0).M[0][1], τ)
	chk.Scalar(tst, "vel history 0", 1e-12, d.VelAt(0), bmag*τ/1e-4)
	chk.Scalar(tst, "vel history out of range", 1e-17, d.VelAt(3), 0)
	chk.Vector(tst, "force history out of range", 1e-17, d.ForceAt(-1), []float64{0, 0, 0})
	chk.Matrix(tst, "stress history out of range", 1e-17, d.StressAt(9).M, lin.NewTensor().M)
}

func Test_dislo04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dislo04. near field at reaction-range distances")

	μ, ν, bmag := 80e9, 0.3, 2.5e-10
	D := μ * bmag / (2.0 * math.Pi * (1.0 - ν))
	reg := uid.New()
	d, err := NewDislo(reg, lin.NewVec(0, 0, 0), lin.NewVec(1, 0, 0), lin.NewVec(0, 0, 1), bmag, true)
	if err != nil {
		tst.Errorf("NewDislo failed:\n%v", err)
		return
	}

	// σxy = D/x holds down to a few Burgers vectors from the core, the
	// distances where annihilation and pinning are decided
	σ := lin.NewTensor()
	for _, n := range []float64{3, 10, 50, 126} {
		x := n * bmag
		d.StressFieldAt(σ, lin.NewVec(x, 0, 0), μ, ν)
		io.Pforan("σxy(x=%3gb) = %g Pa\n", n, σ.M[0][1])
		chk.Scalar(tst, io.Sf("σxy at %gb", n), 1e-2, σ.M[0][1], D/x)
	}

	// at the equilibrium dipole length the attraction balances τcrit
	τcrit := 5e7
	L := D / τcrit
	d.StressFieldAt(σ, lin.NewVec(L, 0, 0), μ, ν)
	chk.Scalar(tst, "σxy at dipole length", 1e-4, σ.M[0][1], τcrit)
}
