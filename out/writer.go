// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the periodic statistics output of a simulation
// and the spatial index of defect positions
package out

import (
	"bytes"
	"os"
	"path"

	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/tsr"
	"github.com/cpmech/gosl/utl"

	"github.com/adhishm/dd2d-Matryoshka-sub000/inp"
	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/poly"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

// constants
var (
	TolC = 1e-8 // padding to build bins limits
	Ndiv = 20   // bins n-division
)

// Writer handles the periodic statistics of a simulation run. A write
// that fails to open its output file is skipped with a warning; the
// run is never aborted by statistics.
type Writer struct {

	// collaborators
	Par *inp.Params
	Reg *uid.Registry
	Cry *poly.Crystal

	// per-statistic iteration counters
	cntPos   int
	cntPlane int
	cntSys   int

	// position index over the loaded defects
	Bins    gm.Bins
	nloaded int

	// scratchpad
	σ *lin.Stress
}

// NewWriter returns a writer with its position index built over the
// currently loaded defects. The output directory is created here.
func NewWriter(par *inp.Params, reg *uid.Registry, cry *poly.Crystal) (o *Writer, err error) {
	o = &Writer{Par: par, Reg: reg, Cry: cry, σ: lin.NewTensor()}
	err = os.MkdirAll(par.DirOut, 0777)
	if err != nil {
		return nil, err
	}
	pos := cry.RootPositions()
	n := len(pos) / 3
	o.nloaded = n
	if n > 0 {
		xi := []float64{pos[0], pos[1]}
		xf := []float64{pos[0], pos[1]}
		for i := 1; i < n; i++ {
			xi[0] = utl.Min(xi[0], pos[3*i])
			xi[1] = utl.Min(xi[1], pos[3*i+1])
			xf[0] = utl.Max(xf[0], pos[3*i])
			xf[1] = utl.Max(xf[1], pos[3*i+1])
		}
		δ := TolC * 2
		xi[0], xi[1] = xi[0]-δ, xi[1]-δ
		xf[0], xf[1] = xf[0]+δ, xf[1]+δ
		err = o.Bins.Init(xi, xf, Ndiv)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			err = o.Bins.Append([]float64{pos[3*i], pos[3*i+1]}, i)
			if err != nil {
				return nil, err
			}
		}
	}
	return
}

// DefectAt returns the canonical index of the loaded defect at the
// point x (root frame), or -1. Best-effort query for post-processing.
func (o *Writer) DefectAt(x []float64) int {
	if o.nloaded == 0 {
		return -1
	}
	return o.Bins.Find(x[:2])
}

// StepOutput advances the per-statistic counters and performs the
// writes that are due at this iteration
func (o *Writer) StepOutput(t, μ, ν float64) {
	if o.Par.StatDisloPos.Enabled {
		o.cntPos++
		if o.cntPos >= o.Par.StatDisloPos.Period {
			o.cntPos = 0
			o.WriteDisloPositions(t)
		}
	}
	if o.Par.StatPlaneSig.Enabled {
		o.cntPlane++
		if o.cntPlane >= o.Par.StatPlaneSig.Period {
			o.cntPlane = 0
			o.WritePlaneStress(t, μ, ν)
		}
	}
	if o.Par.StatSysSig.Enabled {
		o.cntSys++
		if o.cntSys >= o.Par.StatSysSig.Period {
			o.cntSys = 0
			o.WriteSystemStress(t)
		}
	}
}

// WriteDisloPositions writes one file with the root-frame positions of
// every defect in canonical order: the current time followed by the
// three components of each position
func (o *Writer) WriteDisloPositions(t float64) {
	var buf bytes.Buffer
	io.Ff(&buf, "%23.15e", t)
	for _, v := range o.Cry.RootPositions() {
		io.Ff(&buf, " %23.15e", v)
	}
	io.Ff(&buf, "\n")
	o.save(io.Sf("%s_dislpos_%014.8e.res", o.Par.Fnkey, t), &buf)
}

// WritePlaneStress writes one file with the total stress sampled at the
// origin of every slip plane: per row the time, the grain, system and
// plane indices, the mean and deviatoric invariants and the resolved
// shear
func (o *Writer) WritePlaneStress(t, μ, ν float64) {
	var buf bytes.Buffer
	for ig, g := range o.Cry.Grains {
		for is, sys := range g.Systems {
			for ip, p := range sys.Planes {
				p.StressAt(o.σ, []float64{0, 0, 0}, μ, ν)
				m := o.σ.Mandel()
				io.Ff(&buf, "%23.15e %d %d %d %23.15e %23.15e %23.15e\n",
					t, ig, is, ip, tsr.M_p(m), tsr.M_q(m), o.σ.M[0][1])
			}
		}
	}
	o.save(io.Sf("%s_planesig_%014.8e.res", o.Par.Fnkey, t), &buf)
}

// WriteSystemStress writes one file with the applied stress resolved in
// every slip-system frame
func (o *Writer) WriteSystemStress(t float64) {
	var buf bytes.Buffer
	for ig, g := range o.Cry.Grains {
		for is, sys := range g.Systems {
			σ := sys.Applied()
			m := σ.Mandel()
			io.Ff(&buf, "%23.15e %d %d %23.15e %23.15e %23.15e\n",
				t, ig, is, tsr.M_p(m), tsr.M_q(m), σ.M[0][1])
		}
	}
	o.save(io.Sf("%s_syssig_%014.8e.res", o.Par.Fnkey, t), &buf)
}

// Flush writes the uniques file: one row per id ever assigned, with the
// kind and the parameter blob. Called once at shutdown.
func (o *Writer) Flush() (err error) {
	return o.Reg.Save(o.Par.DirOut, o.Par.Fnkey)
}

// save writes one statistics file; failures are warned about and
// skipped so a full disk or a missing directory never aborts the run
func (o *Writer) save(fname string, buf *bytes.Buffer) {
	fil, err := os.Create(path.Join(o.Par.DirOut, fname))
	if err != nil {
		io.Pfred("cannot write statistic %q: %v\n", fname, err)
		return
	}
	defer fil.Close()
	fil.Write(buf.Bytes())
}
