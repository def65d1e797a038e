// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from the line-oriented
// parameter, defect-structure and tessellation files
package inp

import (
	"path"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"

	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
)

// StatCtl controls one periodic statistic
type StatCtl struct {
	Enabled bool // write this statistic
	Period  int  // write period in iterations
}

// Params holds the simulation parameters read from the parameter file.
// Lines whose first non-whitespace character is '#' are comments; each
// meaningful line begins with a keyword, matched case-insensitively on
// its initial letter, followed by whitespace-separated values.
type Params struct {

	// material
	Mu   float64 // shear modulus [Pa]
	Nu   float64 // Poisson's ratio
	Bmag float64 // Burgers vector magnitude [m]
	Drag float64 // drag coefficient B [kg/s]
	Crss float64 // static friction gate on glide [Pa]

	// applied stress: three principal then three shear components [Pa]
	AppComps []float64

	// stopping criterion
	StopKind string  // "time" or "iterations"
	StopTime float64 // bound when stopping on time [s]
	StopIts  int     // bound when stopping on iterations

	// time stepping
	Discipline string  // "fixed" or "adaptive"
	LimDistB   float64 // minimum approach distance [multiples of bmag]
	ReactRadB  float64 // reaction radius [multiples of bmag]
	LimTStep   float64 // minimum permitted time step [s]
	EqPull     bool    // pull dislocations to local equilibrium within the step

	// sources
	TauMean  float64 // mean of the critical-stress distribution [Pa]
	TauStdev float64 // standard deviation of the distribution [Pa]
	TauTime  float64 // time under critical stress before emission [s]
	Seed     int     // random seed; 0 means time-based

	// IO
	StructType   string // structure file flavour: "plane", "system", "grain" or "crystal"
	StructFile   string // defect-structure file, relative to DirInp
	DirInp       string // input directory
	DirOut       string // output directory
	StatDisloPos StatCtl
	StatPlaneSig StatCtl
	StatSysSig   StatCtl

	// derived
	Fnkey    string      // parameter file name key
	LimDist  float64     // minimum approach distance [m]
	ReactRad float64     // reaction radius [m]
	Sig      *lin.Stress // applied stress tensor, root frame
	DtFunc   fun.Func    // time step function for the fixed discipline
}

// SetDefault sets default values
func (o *Params) SetDefault() {
	o.Mu = 80e9
	o.Nu = 0.3
	o.Bmag = 2.5e-10
	o.Drag = 1e-4
	o.Crss = 0
	o.AppComps = make([]float64, 6)
	o.StopKind = "iterations"
	o.StopIts = 1000
	o.Discipline = "adaptive"
	o.LimDistB = 25
	o.ReactRadB = 50
	o.LimTStep = 1e-12
	o.TauMean = 5e7
	o.TauStdev = 0
	o.TauTime = 1e-8
	o.StructType = "plane"
	o.DirInp = "."
	o.DirOut = "/tmp/dd2d"
	o.StatDisloPos = StatCtl{false, 1}
	o.StatPlaneSig = StatCtl{false, 1}
	o.StatSysSig = StatCtl{false, 1}
}

// ReadParams reads the parameter file and computes the derived
// quantities. Malformed content is fatal: the panic message names the
// file and the offending line.
func ReadParams(fn string) (o *Params) {
	o = new(Params)
	o.SetDefault()
	b, err := io.ReadFile(fn)
	if err != nil {
		chk.Panic("cannot read parameter file:\n%v", err)
	}
	for i, line := range strings.Split(string(b), "\n") {
		lnum := i + 1
		f := strings.Fields(line)
		if len(f) < 1 || strings.HasPrefix(f[0], "#") {
			continue
		}
		key, vals := f[0], f[1:]
		switch {
		case keyis(key, "mu"):
			o.Mu = onefloat(fn, lnum, key, vals)
		case keyis(key, "nu"):
			o.Nu = onefloat(fn, lnum, key, vals)
		case keyis(key, "bmag"):
			o.Bmag = onefloat(fn, lnum, key, vals)
		case keyis(key, "B"):
			o.Drag = onefloat(fn, lnum, key, vals)
		case keyis(key, "crss"):
			o.Crss = onefloat(fn, lnum, key, vals)
		case keyis(key, "appliedStress"):
			o.AppComps = floats(fn, lnum, key, vals, 6)
		case keyis(key, "stopping"):
			if len(vals) != 2 {
				chk.Panic("%s:%d: stopping needs a criterion and a bound", fn, lnum)
			}
			o.StopKind = vals[0]
			switch o.StopKind {
			case "time":
				o.StopTime = io.Atof(vals[1])
			case "iterations":
				o.StopIts = io.Atoi(vals[1])
			default:
				chk.Panic("%s:%d: unknown stopping criterion %q", fn, lnum, o.StopKind)
			}
		case keyis(key, "timeStep"):
			if len(vals) != 1 || (vals[0] != "adaptive" && vals[0] != "fixed") {
				chk.Panic("%s:%d: timeStep must be 'adaptive' or 'fixed'", fn, lnum)
			}
			o.Discipline = vals[0]
		case keyis(key, "limitingDistance"):
			o.LimDistB = onefloat(fn, lnum, key, vals)
		case keyis(key, "reactionRadius"):
			o.ReactRadB = onefloat(fn, lnum, key, vals)
		case keyis(key, "limitingTimeStep"):
			o.LimTStep = onefloat(fn, lnum, key, vals)
		case keyis(key, "tauCritical_mean"):
			o.TauMean = onefloat(fn, lnum, key, vals)
		case keyis(key, "tauCritical_stdev"):
			o.TauStdev = onefloat(fn, lnum, key, vals)
		case keyis(key, "tauCritical_time"):
			o.TauTime = onefloat(fn, lnum, key, vals)
		case keyis(key, "seed"):
			o.Seed = int(onefloat(fn, lnum, key, vals))
		case keyis(key, "equilibriumPull"):
			o.EqPull = onefloat(fn, lnum, key, vals) > 0
		case keyis(key, "dislocationStructureFile"):
			o.StructFile = onestring(fn, lnum, key, vals)
		case keyis(key, "structureType"):
			o.StructType = onestring(fn, lnum, key, vals)
			switch o.StructType {
			case "plane", "system", "grain", "crystal":
			default:
				chk.Panic("%s:%d: unknown structure type %q", fn, lnum, o.StructType)
			}
		case keyis(key, "input_dir"):
			o.DirInp = onestring(fn, lnum, key, vals)
		case keyis(key, "output_dir"):
			o.DirOut = onestring(fn, lnum, key, vals)
		case keyis(key, "statsDislocationPositions"):
			o.StatDisloPos = statctl(fn, lnum, key, vals)
		case keyis(key, "statsSlipPlaneStress"):
			o.StatPlaneSig = statctl(fn, lnum, key, vals)
		case keyis(key, "statsSlipSystemStress"):
			o.StatSysSig = statctl(fn, lnum, key, vals)
		default:
			chk.Panic("%s:%d: unknown keyword %q", fn, lnum, key)
		}
	}
	o.postprocess(fn)
	return
}

// postprocess validates the inputs and computes the derived quantities
func (o *Params) postprocess(fn string) {
	if o.Drag <= 0 {
		chk.Panic("%s: drag coefficient B must be positive: B = %g", fn, o.Drag)
	}
	if o.Bmag <= 0 {
		chk.Panic("%s: Burgers magnitude must be positive: bmag = %g", fn, o.Bmag)
	}
	o.Fnkey = io.FnKey(fn)
	o.LimDist = o.LimDistB * o.Bmag
	o.ReactRad = o.ReactRadB * o.Bmag
	c := o.AppComps
	o.Sig = lin.NewTensorComps(c[0], c[1], c[2], c[3], c[4], c[5])
	o.DtFunc = &fun.Cte{C: o.LimTStep}
	rnd.Init(o.Seed)
}

// StructPath returns the full path of the defect-structure file
func (o *Params) StructPath() string {
	return path.Join(o.DirInp, o.StructFile)
}

// MaterialPrms returns the material constants as a parameter set
func (o *Params) MaterialPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "mu", V: o.Mu},
		&fun.Prm{N: "nu", V: o.Nu},
		&fun.Prm{N: "bmag", V: o.Bmag},
		&fun.Prm{N: "B", V: o.Drag},
	}
}

// DrawTauCrit draws one critical resolved shear stress from the
// configured Gaussian. Non-positive draws are re-sampled; a zero
// standard deviation returns the mean exactly.
func (o *Params) DrawTauCrit() float64 {
	if o.TauStdev == 0 {
		return o.TauMean
	}
	for {
		τ := rnd.Normal(o.TauMean, o.TauStdev)
		if τ > 0 {
			return τ
		}
	}
}

// auxiliary //////////////////////////////////////////////////////////////////

// keyis matches a keyword read from file against a canonical one,
// case-insensitively on the initial letter (historical rule)
func keyis(word, key string) bool {
	if len(word) != len(key) {
		return false
	}
	return strings.EqualFold(word[:1], key[:1]) && word[1:] == key[1:]
}

func onefloat(fn string, lnum int, key string, vals []string) float64 {
	if len(vals) != 1 {
		chk.Panic("%s:%d: %s needs exactly one value", fn, lnum, key)
	}
	return io.Atof(vals[0])
}

func onestring(fn string, lnum int, key string, vals []string) string {
	if len(vals) != 1 {
		chk.Panic("%s:%d: %s needs exactly one value", fn, lnum, key)
	}
	return vals[0]
}

func floats(fn string, lnum int, key string, vals []string, n int) (res []float64) {
	if len(vals) != n {
		chk.Panic("%s:%d: %s needs exactly %d values", fn, lnum, key, n)
	}
	res = make([]float64, n)
	for i, v := range vals {
		res[i] = io.Atof(v)
	}
	return
}

func statctl(fn string, lnum int, key string, vals []string) StatCtl {
	if len(vals) != 2 {
		chk.Panic("%s:%d: %s needs an enable flag and a period", fn, lnum, key)
	}
	period := io.Atoi(vals[1])
	if period < 1 {
		chk.Panic("%s:%d: %s period must be at least 1", fn, lnum, key)
	}
	return StatCtl{io.Atob(vals[0]), period}
}
