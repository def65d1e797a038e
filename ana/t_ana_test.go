// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func Test_edgedislo01(tst *testing.T) {

	chk.PrintTitle("edgedislo01. edge dislocation field")

	var sol EdgeDislo
	sol.Init(fun.Prms{
		&fun.Prm{N: "mu", V: 80e9},
		&fun.Prm{N: "nu", V: 0.3},
		&fun.Prm{N: "bmag", V: 2.5e-10},
	})
	D := 80e9 * 2.5e-10 / (2.0 * math.Pi * 0.7)

	// core contributes nothing
	sx, sy, sz, sxy := sol.Stress([]float64{0, 0})
	chk.Scalar(tst, "σx core", 1e-17, sx, 0)
	chk.Scalar(tst, "σxy core", 1e-17, sxy, 0)

	// pure shear on the glide line
	x := 1e-6
	sx, sy, sz, sxy = sol.Stress([]float64{x, 0})
	chk.Scalar(tst, "σx @ y=0", 1e-12, sx, 0)
	chk.Scalar(tst, "σy @ y=0", 1e-12, sy, 0)
	chk.Scalar(tst, "σxy @ y=0", 1e-4, sxy, D/x)

	// pure compression above the extra half plane
	y := 1e-6
	sx, sy, sz, sxy = sol.Stress([]float64{0, y})
	chk.Scalar(tst, "σx @ x=0", 1e-4, sx, -D/y)
	chk.Scalar(tst, "σy @ x=0", 1e-4, sy, -D/y)
	chk.Scalar(tst, "σz @ x=0", 1e-4, sz, -2.0*0.3*D/y)
	chk.Scalar(tst, "σxy @ x=0", 1e-12, sxy, 0)

	// equilibrium and antisymmetry: σxy(−x, y) = −σxy(x, y)
	a1x, _, _, a1xy := sol.Stress([]float64{2e-6, 1e-6})
	a2x, _, _, a2xy := sol.Stress([]float64{-2e-6, 1e-6})
	chk.Scalar(tst, "σx symmetric in x", 1e-12, a1x, a2x)
	chk.Scalar(tst, "σxy antisymmetric in x", 1e-12, a1xy, -a2xy)

	// dipole length against the closed form
	τcrit := 5e7
	chk.Scalar(tst, "dipole length", 1e-20, sol.DipoleLength(τcrit), 80e9*2.5e-10/(2.0*math.Pi*0.7*τcrit))

	// comparison helper
	e := sol.CompareStress([]float64{x, 0}, []float64{0, 0, 0, D / x}, 1e-4, false)
	for i, ei := range e {
		if ei > 1e-4 {
			tst.Errorf("component %d error too large: %g\n", i, ei)
		}
	}
}
