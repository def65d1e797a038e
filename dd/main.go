// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dd implements the dislocation dynamics driver: the iteration
// loop over the defect tree
package dd

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adhishm/dd2d-Matryoshka-sub000/inp"
	"github.com/adhishm/dd2d-Matryoshka-sub000/out"
	"github.com/adhishm/dd2d-Matryoshka-sub000/poly"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

// Main holds all data for one dislocation dynamics simulation
type Main struct {
	Par     *inp.Params   // simulation parameters
	Reg     *uid.Registry // unique id registry
	Cry     *poly.Crystal // the defect tree
	Stp     Stepper       // time stepping discipline
	Sta     *out.Writer   // periodic statistics
	ShowMsg bool          // show messages
	T       float64       // current time
	Time    []float64     // time after each completed iteration
	It      int           // completed iterations
}

// NewMain reads the parameter file, assembles the defect tree and
// allocates the stepper and the statistics writer. Input problems are
// fatal.
//  Input:
//   parfnpath -- parameter (.par) filename including full path
//   verbose   -- show messages
func NewMain(parfnpath string, verbose bool) (o *Main) {

	// new Main object
	o = new(Main)
	o.ShowMsg = verbose

	// read input data
	o.Par = inp.ReadParams(parfnpath)
	o.Reg = uid.New()
	var err error
	o.Cry, o.T, err = BuildCrystal(o.Reg, o.Par)
	if err != nil {
		chk.Panic("cannot build defect structure:\n%v", err)
	}

	// allocate stepper
	if alloc, ok := allocators[o.Par.Discipline]; ok {
		o.Stp = alloc(o.Par)
	} else {
		chk.Panic("cannot find time stepper named %q", o.Par.Discipline)
	}

	// allocate statistics writer
	o.Sta, err = out.NewWriter(o.Par, o.Reg, o.Cry)
	if err != nil {
		chk.Panic("cannot allocate statistics writer:\n%v", err)
	}

	// message
	if o.ShowMsg {
		io.Pf("> Initialisation step completed\n")
		io.Pf("> Parameter (.par) file read\n")
		io.Pf("> Defect structure loaded: %d dislocations\n", o.Cry.NumDislos())
	}
	return
}

// Run runs the dislocation dynamics simulation
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Running dislocation dynamics\n")
	}

	// iteration loop
	for o.more() {
		err = o.Step()
		if err != nil {
			return
		}
		if o.ShowMsg && o.It%100 == 0 {
			io.Pf("> it = %d  t = %g  ndislo = %d\n", o.It, o.T, o.Cry.NumDislos())
		}
	}
	return
}

// Step performs one iteration: stresses and velocities at the
// start-of-iteration positions, then the global increment, the motion,
// the local reactions and the source emissions
func (o *Main) Step() (err error) {
	μ, ν := o.Par.Mu, o.Par.Nu

	// stresses at start-of-iteration positions
	o.Cry.PropagateStress()
	o.Cry.ComputeStress(μ, ν)
	o.Cry.ComputeForcesVelocities(o.Par.Drag, o.Par.Crss)

	// global increment
	dt := o.Stp.Select(o.Cry, o.T)

	// motion and topology changes
	o.Cry.MoveDefects(dt, μ, ν, o.Par.LimDist, o.Par.EqPull)
	o.Cry.CheckLocalReactions(o.Par.ReactRad)
	_, err = o.Cry.CheckSources(dt, μ, ν, o.Par.LimDist)
	if err != nil {
		return
	}

	// advance
	o.T += dt
	o.Time = append(o.Time, o.T)
	o.It++
	o.Sta.StepOutput(o.T, μ, ν)
	return
}

// more tells whether the stopping criterion still allows another
// iteration
func (o *Main) more() bool {
	if o.Par.StopKind == "time" {
		return o.T < o.Par.StopTime
	}
	return o.It < o.Par.StopIts
}

// auxiliary //////////////////////////////////////////////////////////////////

// onexit flushes the uniques file and prints the final message with the
// simulation and cpu times
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// flush registry
	err = o.Sta.Flush()

	// show final message
	if o.ShowMsg {
		if prevErr == nil && err == nil {
			io.PfGreen("> Success\n")
			io.Pf("> Simulated time = %g\n", o.T)
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// previous error takes precedence
	if prevErr != nil {
		err = prevErr
	}
	return
}
