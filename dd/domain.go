// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dd

import (
	"github.com/cpmech/gosl/chk"

	"github.com/adhishm/dd2d-Matryoshka-sub000/defect"
	"github.com/adhishm/dd2d-Matryoshka-sub000/inp"
	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/poly"
	"github.com/adhishm/dd2d-Matryoshka-sub000/slip"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

// BuildCrystal assembles the live defect tree from the defect-structure
// file named by the parameters. Structure files below the polycrystal
// level are wrapped in unrotated parents so the simulation loop always
// runs on a complete tree. t0 is the snapshot time of the first slip
// plane block.
func BuildCrystal(reg *uid.Registry, par *inp.Params) (cry *poly.Crystal, t0 float64, err error) {
	cry = poly.NewCrystal()
	fn := par.StructPath()
	switch par.StructType {

	case "plane":
		dat := inp.ReadPlaneData(fn)
		t0 = dat.Time
		p, err := BuildPlane(reg, par, dat)
		if err != nil {
			return nil, 0, err
		}
		dir := make([]float64, 3)
		for i := 0; i < 3; i++ {
			dir[i] = dat.Ext2[i] - dat.Ext1[i]
		}
		sys, err := slip.NewSystem(lin.NewVec(0, 0, 0), dat.N, dir)
		if err != nil {
			return nil, 0, err
		}
		sys.AddPlane(p)
		g := poly.NewGrain(lin.NewVec(0, 0, 0), 0, 0, 0)
		g.AddSystem(sys)
		cry.AddGrain(g)

	case "system":
		dat := inp.ReadSystemData(fn)
		if len(dat.Planes) > 0 {
			t0 = dat.Planes[0].Time
		}
		sys, err := BuildSystem(reg, par, dat)
		if err != nil {
			return nil, 0, err
		}
		g := poly.NewGrain(lin.NewVec(0, 0, 0), 0, 0, 0)
		g.AddSystem(sys)
		cry.AddGrain(g)

	case "grain":
		dat := inp.ReadGrainData(fn)
		if len(dat.Systems) > 0 && len(dat.Systems[0].Planes) > 0 {
			t0 = dat.Systems[0].Planes[0].Time
		}
		g, err := BuildGrain(reg, par, dat, lin.NewVec(0, 0, 0))
		if err != nil {
			return nil, 0, err
		}
		cry.AddGrain(g)

	case "crystal":
		dat := inp.ReadCrystalData(fn)
		if dat.TessName != "" && dat.TessName != "-" {
			cry.Tess = inp.ReadTess(par.DirInp, dat.TessName)
		}
		for i, gd := range dat.Grains {
			x0 := lin.NewVec(0, 0, 0)
			var verts [][]float64
			if cry.Tess != nil {
				verts = cry.Tess.CellPoly(i)
				if verts != nil {
					x0 = polyCentroid(verts)
				}
			}
			g, err := BuildGrain(reg, par, gd, x0)
			if err != nil {
				return nil, 0, err
			}
			if verts != nil {
				g.SetPoly(verts)
			}
			cry.AddGrain(g)
			if t0 == 0 && len(gd.Systems) > 0 && len(gd.Systems[0].Planes) > 0 {
				t0 = gd.Systems[0].Planes[0].Time
			}
		}

	default:
		return nil, 0, chk.Err("unknown structure type %q", par.StructType)
	}
	return
}

// BuildGrain creates a live grain at x0 from its data block
func BuildGrain(reg *uid.Registry, par *inp.Params, dat *inp.GrainData, x0 []float64) (g *poly.Grain, err error) {
	g = poly.NewGrain(x0, dat.Euler[0], dat.Euler[1], dat.Euler[2])
	for _, sd := range dat.Systems {
		sys, err := BuildSystem(reg, par, sd)
		if err != nil {
			return nil, err
		}
		g.AddSystem(sys)
	}
	return
}

// BuildSystem creates a live slip system from its data block
func BuildSystem(reg *uid.Registry, par *inp.Params, dat *inp.SystemData) (sys *slip.System, err error) {
	sys, err = slip.NewSystem(dat.X0, dat.N, dat.Dir)
	if err != nil {
		return
	}
	for _, pd := range dat.Planes {
		p, err := BuildPlane(reg, par, pd)
		if err != nil {
			return nil, err
		}
		sys.AddPlane(p)
	}
	return
}

// BuildPlane creates a live slip plane from its data block. The
// extremities terminate at grain boundaries; critical stresses of the
// sources are drawn from the configured distribution. Loaded defects
// must lie strictly between the extremities.
func BuildPlane(reg *uid.Registry, par *inp.Params, dat *inp.PlaneData) (p *slip.Plane, err error) {
	p, err = slip.NewPlane(reg, dat.Ext1, dat.Ext2, dat.N, dat.X0,
		defect.GrainBoundary, defect.GrainBoundary)
	if err != nil {
		return
	}
	lo := p.All[0].Pos()[0]
	hi := p.All[len(p.All)-1].Pos()[0]
	for _, dd := range dat.Dislos {
		if dd.X[0] <= lo || dd.X[0] >= hi {
			return nil, chk.Err("file %q: dislocation at x = %g is not strictly between the plane extremities (%g, %g)",
				par.StructPath(), dd.X[0], lo, hi)
		}
		d, err := defect.NewDislo(reg, dd.X, dd.B, dd.L, dd.Bmag, dd.Mobile)
		if err != nil {
			return nil, err
		}
		p.AddDislo(d)
	}
	for _, sd := range dat.Srcs {
		if sd.X[0] <= lo || sd.X[0] >= hi {
			return nil, chk.Err("file %q: source at x = %g is not strictly between the plane extremities (%g, %g)",
				par.StructPath(), sd.X[0], lo, hi)
		}
		s, err := defect.NewSource(reg, sd.X, sd.B, sd.L, sd.Bmag, par.DrawTauCrit(), par.TauTime)
		if err != nil {
			return nil, err
		}
		p.AddSource(s)
	}
	return
}

// polyCentroid returns the vertex average of a polygon
func polyCentroid(verts [][]float64) []float64 {
	c := lin.NewVec(0, 0, 0)
	for _, v := range verts {
		for i := 0; i < 3; i++ {
			c[i] += v[i]
		}
	}
	n := float64(len(verts))
	for i := 0; i < 3; i++ {
		c[i] /= n
	}
	return c
}
