// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"encoding/json"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"

	"github.com/adhishm/dd2d-Matryoshka-sub000/defect"
	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/poly"
	"github.com/adhishm/dd2d-Matryoshka-sub000/slip"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

type Input struct {
	Mu      float64 // shear modulus
	Nu      float64 // Poisson's ratio
	Bmag    float64 // Burgers magnitude
	Drag    float64 // drag coefficient
	Sep     float64 // initial separation of the pair
	Tau     float64 // applied shear stress
	Niter   int     // number of iterations
	Dt      float64 // fixed time increment
	MinDist float64 // minimum approach distance
	ReactR  float64 // reaction radius
	FigEps  bool
	FigProp float64
	FigWid  float64

	// derived
	inpfn string
}

func (o *Input) PostProcess() {
	if o.Mu == 0 {
		o.Mu = 80e9
	}
	if o.Nu == 0 {
		o.Nu = 0.3
	}
	if o.Bmag == 0 {
		o.Bmag = 2.5e-10
	}
	if o.Drag == 0 {
		o.Drag = 1e-4
	}
	if o.Sep == 0 {
		o.Sep = 2e-6
	}
	if o.Niter == 0 {
		o.Niter = 100
	}
	if o.Dt == 0 {
		o.Dt = 1e-10
	}
	if o.MinDist == 0 {
		o.MinDist = 25 * o.Bmag
	}
	if o.ReactR == 0 {
		o.ReactR = 50 * o.Bmag
	}
	if o.FigProp < 0.1 {
		o.FigProp = 1.0
	}
	if o.FigWid < 10 {
		o.FigWid = 400
	}
}

func (o Input) String() (l string) {
	l = io.ArgsTable("INPUT ARGUMENTS",
		"input filename", "inpfn", o.inpfn,
		"shear modulus", "Mu", o.Mu,
		"Poisson's ratio", "Nu", o.Nu,
		"Burgers magnitude", "Bmag", o.Bmag,
		"drag coefficient", "Drag", o.Drag,
		"initial separation", "Sep", o.Sep,
		"applied shear", "Tau", o.Tau,
		"number of iterations", "Niter", o.Niter,
		"time increment", "Dt", o.Dt,
		"fig: generate .eps instead of .png", "FigEps", o.FigEps,
		"fig: proportion of figure", "FigProp", o.FigProp,
		"fig: width  of figure", "FigWid", o.FigWid,
	)
	return
}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data file
	var in Input
	in.inpfn, _ = io.ArgToFilename(0, "data/dipole1", ".inp", true)

	// read and parse input data
	b, err := io.ReadFile(in.inpfn)
	if err != nil {
		io.PfRed("cannot read %s\n", in.inpfn)
		return
	}
	err = json.Unmarshal(b, &in)
	if err != nil {
		io.PfRed("cannot parse %s\n", in.inpfn)
		return
	}
	in.PostProcess()

	// print input table
	io.Pf("%v\n", in)

	// one slip plane inside an unrotated tree, with an opposite pair
	// straddling the origin
	reg := uid.New()
	ext := 10.0 * in.Sep
	p, err := slip.NewPlane(reg,
		lin.NewVec(-ext, 0, 0), lin.NewVec(ext, 0, 0),
		lin.NewVec(0, 0, 1), lin.NewVec(0, 0, 0),
		defect.GrainBoundary, defect.GrainBoundary)
	if err != nil {
		io.PfRed("cannot build slip plane: %v\n", err)
		return
	}
	for _, c := range []float64{-1, 1} {
		d, err := defect.NewDislo(reg,
			lin.NewVec(c*in.Sep/2.0, 0, 0),
			lin.NewVec(-c, 0, 0), lin.NewVec(0, 0, 1),
			in.Bmag, true)
		if err != nil {
			io.PfRed("cannot build dislocation: %v\n", err)
			return
		}
		p.AddDislo(d)
	}
	sys, err := slip.NewSystem(lin.NewVec(0, 0, 0), lin.NewVec(0, 0, 1), lin.NewVec(1, 0, 0))
	if err != nil {
		io.PfRed("cannot build slip system: %v\n", err)
		return
	}
	sys.AddPlane(p)
	g := poly.NewGrain(lin.NewVec(0, 0, 0), 0, 0, 0)
	g.AddSystem(sys)
	cry := poly.NewCrystal()
	cry.AddGrain(g)
	cry.SetApplied(lin.NewTensorComps(0, 0, 0, in.Tau, 0, 0))

	// iterate, recording the pair trajectory
	var T, X1, X2 []float64
	t := 0.0
	for it := 0; it < in.Niter; it++ {
		cry.PropagateStress()
		cry.ComputeStress(in.Mu, in.Nu)
		cry.ComputeForcesVelocities(in.Drag, 0)
		cry.MoveDefects(in.Dt, in.Mu, in.Nu, in.MinDist, false)
		cry.CheckLocalReactions(in.ReactR)
		t += in.Dt
		if cry.NumDislos() < 2 {
			io.Pf("pair annihilated at t = %g\n", t)
			break
		}
		pos := cry.RootPositions()
		T = append(T, t)
		X1 = append(X1, pos[3])
		X2 = append(X2, pos[6])
	}

	// plot trajectories
	plt.Reset()
	if in.FigEps {
		plt.SetForEps(in.FigProp, in.FigWid)
	}
	plt.Plot(T, X1, "color='r',label='$x_1$'")
	plt.Plot(T, X2, "color='b',label='$x_2$'")
	plt.Gll("$t$", "$x$", "")
	ext2 := ".png"
	if in.FigEps {
		ext2 = ".eps"
	}
	plt.SaveD("/tmp", "dd2d_dipole"+ext2)
}
