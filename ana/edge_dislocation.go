// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// EdgeDislo implements the plane-strain stress field of a straight edge
// dislocation lying along z with Burgers vector along x
//
//        y ^
//          |
//          |      σxy = D・x・(x²−y²)/r⁴
//      ----⊥----------> x
//          |      D = μ・b / (2π・(1−ν))
//          |
type EdgeDislo struct {

	// input
	μ float64 // shear modulus
	ν float64 // Poisson's coefficient
	b float64 // Burgers vector magnitude

	// derived
	D float64 // field prefactor
}

// Init initialises this structure
func (o *EdgeDislo) Init(prms fun.Prms) {

	// default values
	o.μ = 80e9
	o.ν = 0.3
	o.b = 2.5e-10

	// parameters
	for _, p := range prms {
		switch p.N {
		case "mu":
			o.μ = p.V
		case "nu":
			o.ν = p.V
		case "bmag":
			o.b = p.V
		}
	}

	// derived
	o.D = o.μ * o.b / (2.0 * math.Pi * (1.0 - o.ν))
}

// Stress computes stresses @ (x,y). The dislocation core at r = 0
// contributes nothing.
func (o *EdgeDislo) Stress(x []float64) (sx, sy, sz, sxy float64) {
	r2 := x[0]*x[0] + x[1]*x[1]
	if r2 < 1e-30 {
		return
	}
	r4 := r2 * r2
	xx, yy := x[0]*x[0], x[1]*x[1]
	sx = -o.D * x[1] * (3.0*xx + yy) / r4
	sy = o.D * x[1] * (xx - yy) / r4
	sxy = o.D * x[0] * (xx - yy) / r4
	sz = o.ν * (sx + sy)
	return
}

// DipoleLength returns the equilibrium separation of an opposite pair
// nucleated against the critical stress τcrit
func (o *EdgeDislo) DipoleLength(τcrit float64) float64 {
	return o.μ * o.b / (2.0 * math.Pi * (1.0 - o.ν) * τcrit)
}

// CompareStress compares stresses @ (x,y)
//  Output:
//   e -- error for each component
func (o *EdgeDislo) CompareStress(x, σ []float64, tol float64, verbose bool) (e []float64) {

	// analytical solution
	sx, sy, sz, sxy := o.Stress(x)

	// message
	if verbose {
		chk.PrintAnaNum("σx ", tol, sx, σ[0], verbose)
		chk.PrintAnaNum("σy ", tol, sy, σ[1], verbose)
		chk.PrintAnaNum("σz ", tol, sz, σ[2], verbose)
		chk.PrintAnaNum("σxy", tol, sxy, σ[3], verbose)
	}

	// check stresses
	e = []float64{
		math.Abs(sx - σ[0]),
		math.Abs(sy - σ[1]),
		math.Abs(sz - σ[2]),
		math.Abs(sxy - σ[3]),
	}
	return
}

// PlotStress plots stresses along y=0 (glide direction) and x=0 (climb
// direction), from r0 away from the core up to L
func (o *EdgeDislo) PlotStress(r0, L float64, npts int) {

	d := utl.LinSpace(r0, L, npts)
	Sx := make([]float64, npts)
	Sy := make([]float64, npts)
	Sxy := make([]float64, npts)

	plt.Subplot(2, 1, 1)
	for i := 0; i < npts; i++ {
		Sx[i], Sy[i], _, Sxy[i] = o.Stress([]float64{d[i], 0}) // y=0
	}
	plt.Plot(d, Sx, "color='r',label='$\\sigma_x$ @ $y=0$'")
	plt.Plot(d, Sy, "color='g',label='$\\sigma_y$ @ $y=0$'")
	plt.Plot(d, Sxy, "color='b',label='$\\sigma_{xy}$ @ $y=0$'")
	plt.Gll("$x$", "stresses", "")

	plt.Subplot(2, 1, 2)
	for i := 0; i < npts; i++ {
		Sx[i], Sy[i], _, Sxy[i] = o.Stress([]float64{0, d[i]}) // x=0
	}
	plt.Plot(Sx, d, "color='r',label='$\\sigma_x$ @ $x=0$'")
	plt.Plot(Sy, d, "color='g',label='$\\sigma_y$ @ $x=0$'")
	plt.Plot(Sxy, d, "color='b',label='$\\sigma_{xy}$ @ $x=0$'")
	plt.Gll("stresses", "$y$", "")
}
