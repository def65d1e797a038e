// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements structures and functions to test whole
// dislocation dynamics simulations against reference snapshots
package tests

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adhishm/dd2d-Matryoshka-sub000/dd"
)

// Results holds one reference snapshot of a running simulation
type Results struct {
	It      int       // iteration number the snapshot belongs to
	Time    float64   // time at the snapshot
	NDislo  int       // live dislocations
	Pos     []float64 // root-frame positions in canonical order
	PosMult float64   // positions multiplier
}

// ResultsSet is a set of comparison results
type ResultsSet []*Results

// CompareResults runs the simulation described by a parameter file and
// compares it with the snapshots of a .cmp file (dd2d versus .cmp)
func CompareResults(tst *testing.T, parfilepath, cmpfname string, tolt, tolx float64, verbose bool) {

	// dd structure
	main := dd.NewMain(parfilepath, verbose)

	// read file with comparison results
	buf, err := io.ReadFile(cmpfname)
	if err != nil {
		tst.Errorf("CompareResults: ReadFile failed:%v\n", err)
		return
	}

	// unmarshal json
	var cmpSet ResultsSet
	err = json.Unmarshal(buf, &cmpSet)
	if err != nil {
		tst.Errorf("CompareResults: Unmarshal failed\n")
		return
	}

	// run comparisons
	xmult := 1.0
	for idx, cmp := range cmpSet {

		// positions multiplier
		if idx == 0 && math.Abs(cmp.PosMult) > 1e-10 {
			xmult = cmp.PosMult
		}

		// message
		if verbose {
			io.PfYel("\n\nit = %d . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . .\n", cmp.It)
		}

		// advance to the snapshot iteration
		for main.It < cmp.It {
			err = main.Step()
			if err != nil {
				chk.Panic("cannot advance simulation:\n%v", err)
			}
		}
		if verbose {
			io.Pfyel("time = %v\n", main.T)
		}

		// check time and population
		chk.AnaNum(tst, "t", tolt, main.T, cmp.Time, verbose)
		n := main.Cry.NumDislos()
		if n != cmp.NDislo {
			tst.Errorf("it %d: wrong number of dislocations: %d != %d\n", cmp.It, n, cmp.NDislo)
			return
		}

		// check positions
		if verbose {
			io.Pfgreen(". . . checking positions . . .\n")
		}
		pos := main.Cry.RootPositions()
		if len(pos) != len(cmp.Pos) {
			tst.Errorf("it %d: wrong number of position components: %d != %d\n", cmp.It, len(pos), len(cmp.Pos))
			return
		}
		for i, x := range cmp.Pos {
			chk.AnaNum(tst, io.Sf("x%d", i), tolx, pos[i], x*xmult, verbose)
		}
	}
}
